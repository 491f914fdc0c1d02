package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/daystack/daystack/internal/llm"
	"github.com/daystack/daystack/internal/model"
	"github.com/daystack/daystack/internal/repository"
	"github.com/google/uuid"
)

// TaskScorer is the LLM surface the task service needs. Satisfied by
// *llm.Client; faked in tests.
type TaskScorer interface {
	ScoreTaskEffort(ctx context.Context, title, notes string) (int, error)
	ScoreTasks(ctx context.Context, tasks []llm.TaskInput) (map[string]int, error)
	ParseTask(ctx context.Context, text string, now time.Time) (*llm.ParsedTask, error)
}

type TaskService struct {
	repo   repository.TaskRepository
	scorer TaskScorer
}

func NewTaskService(repo repository.TaskRepository, scorer TaskScorer) *TaskService {
	return &TaskService{
		repo:   repo,
		scorer: scorer,
	}
}

// Create inserts a task with an LLM effort score. Scoring failures never
// block creation: the task falls back to the default score.
func (s *TaskService) Create(ctx context.Context, userID, title string, notes, dueDate *string) (*model.Task, error) {
	effortScore := model.DefaultEffortScore

	scored, err := s.scorer.ScoreTaskEffort(ctx, title, deref(notes))
	if err != nil {
		slog.Warn("task scoring failed, using default score", "error", err, "user_id", userID)
	} else {
		effortScore = scored
	}

	now := time.Now()
	task := &model.Task{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       title,
		Notes:       notes,
		EffortScore: effortScore,
		DueDate:     dueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.repo.Create(task)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

func (s *TaskService) Tasks(userID, dueDate string) ([]*model.Task, error) {
	return s.repo.Tasks(userID, dueDate)
}

// TaskUpdate holds the optional fields of a partial update; nil means
// "leave unchanged".
type TaskUpdate struct {
	Title       *string
	Notes       *string
	Completed   *bool
	EffortScore *int
	DueDate     *string
}

var ErrInvalidEffortScore = fmt.Errorf("effort score must be between 1 and 10")

func (s *TaskService) Update(userID, taskID string, update TaskUpdate) (*model.Task, error) {
	task, err := s.repo.ByID(userID, taskID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Notes != nil {
		task.Notes = update.Notes
	}
	if update.Completed != nil {
		task.Completed = *update.Completed
	}
	if update.EffortScore != nil {
		if *update.EffortScore < 1 || *update.EffortScore > 10 {
			return nil, ErrInvalidEffortScore
		}
		task.EffortScore = *update.EffortScore
	}
	if update.DueDate != nil {
		task.DueDate = update.DueDate
	}
	task.UpdatedAt = time.Now()

	err = s.repo.Update(task)
	if err != nil {
		return nil, err
	}

	return task, nil
}

func (s *TaskService) Delete(userID, taskID string) error {
	return s.repo.Delete(userID, taskID)
}

// Rescore refreshes the effort scores of all incomplete tasks in one pass
// (typically triggered once per session by the frontend). Returns the number
// of tasks scored.
func (s *TaskService) Rescore(ctx context.Context, userID string) (int, error) {
	tasks, err := s.repo.Incomplete(userID)
	if err != nil {
		return 0, fmt.Errorf("failed to load tasks: %w", err)
	}
	if len(tasks) == 0 {
		return 0, nil
	}

	inputs := make([]llm.TaskInput, 0, len(tasks))
	for _, t := range tasks {
		inputs = append(inputs, llm.TaskInput{
			ID:    t.ID,
			Title: t.Title,
			Notes: deref(t.Notes),
		})
	}

	scores, err := s.scorer.ScoreTasks(ctx, inputs)
	if err != nil {
		return 0, fmt.Errorf("failed to rescore tasks: %w", err)
	}

	for taskID, score := range scores {
		err = s.repo.UpdateEffortScore(userID, taskID, score)
		if err != nil {
			return 0, fmt.Errorf("failed to store score for task %s: %w", taskID, err)
		}
	}

	slog.Info("tasks rescored", "user_id", userID, "count", len(tasks))
	return len(tasks), nil
}

// Parse resolves free text into a structured task via the LLM. Unlike
// scoring there is no fallback: an unparseable reply fails the request.
func (s *TaskService) Parse(ctx context.Context, text string) (*llm.ParsedTask, error) {
	return s.scorer.ParseTask(ctx, text, time.Now())
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
