package repository

import (
	"database/sql"
	"errors"

	"github.com/daystack/daystack/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrTaskNotFound = errors.New("task not found")
)

type TaskRepository interface {
	Create(task *model.Task) error
	ByID(userID, taskID string) (*model.Task, error)
	Tasks(userID, dueDate string) ([]*model.Task, error)
	Incomplete(userID string) ([]*model.Task, error)
	Update(task *model.Task) error
	UpdateEffortScore(userID, taskID string, score int) error
	Delete(userID, taskID string) error
	DeleteByUser(userID string) error
}

type taskRepository struct {
	db *sqlx.DB
}

func NewTaskRepository(db *sqlx.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(task *model.Task) error {
	query := `INSERT INTO tasks (id, user_id, title, notes, completed, effort_score, due_date, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(query,
		task.ID,
		task.UserID,
		task.Title,
		task.Notes,
		task.Completed,
		task.EffortScore,
		task.DueDate,
		task.CreatedAt,
		task.UpdatedAt,
	)

	return err
}

func (r *taskRepository) ByID(userID, taskID string) (*model.Task, error) {
	task := &model.Task{}
	query := `SELECT * FROM tasks WHERE id = $1 AND user_id = $2`

	err := r.db.Get(task, query, taskID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrTaskNotFound
	}

	return task, err
}

// Tasks lists the user's tasks newest first, optionally filtered to one due date.
func (r *taskRepository) Tasks(userID, dueDate string) ([]*model.Task, error) {
	var tasks []*model.Task

	if dueDate != "" {
		query := `SELECT * FROM tasks WHERE user_id = $1 AND due_date = $2 ORDER BY created_at DESC`
		err := r.db.Select(&tasks, query, userID, dueDate)
		return tasks, err
	}

	query := `SELECT * FROM tasks WHERE user_id = $1 ORDER BY created_at DESC`
	err := r.db.Select(&tasks, query, userID)
	return tasks, err
}

func (r *taskRepository) Incomplete(userID string) ([]*model.Task, error) {
	var tasks []*model.Task
	query := `SELECT * FROM tasks WHERE user_id = $1 AND completed = FALSE ORDER BY created_at DESC`

	err := r.db.Select(&tasks, query, userID)
	return tasks, err
}

func (r *taskRepository) Update(task *model.Task) error {
	query := `UPDATE tasks
	          SET title = $1, notes = $2, completed = $3, effort_score = $4, due_date = $5, updated_at = $6
	          WHERE id = $7 AND user_id = $8`

	result, err := r.db.Exec(query,
		task.Title,
		task.Notes,
		task.Completed,
		task.EffortScore,
		task.DueDate,
		task.UpdatedAt,
		task.ID,
		task.UserID,
	)
	if err != nil {
		return err
	}
	return requireRow(result, ErrTaskNotFound)
}

func (r *taskRepository) UpdateEffortScore(userID, taskID string, score int) error {
	query := `UPDATE tasks SET effort_score = $1 WHERE id = $2 AND user_id = $3`

	result, err := r.db.Exec(query, score, taskID, userID)
	if err != nil {
		return err
	}
	return requireRow(result, ErrTaskNotFound)
}

func (r *taskRepository) Delete(userID, taskID string) error {
	query := `DELETE FROM tasks WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(query, taskID, userID)
	if err != nil {
		return err
	}
	return requireRow(result, ErrTaskNotFound)
}

func (r *taskRepository) DeleteByUser(userID string) error {
	_, err := r.db.Exec(`DELETE FROM tasks WHERE user_id = $1`, userID)
	return err
}
