package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/daystack/daystack/internal/ctxkeys"
	"github.com/daystack/daystack/internal/repository"
	"github.com/daystack/daystack/internal/service"
)

type TaskHandler struct {
	taskService *service.TaskService
}

func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	tasks, err := h.taskService.Tasks(identity.UserID, r.URL.Query().Get("date"))
	if err != nil {
		slog.Error("failed to list tasks", "error", err, "user_id", identity.UserID)
		writeError(w, http.StatusInternalServerError, "failed to list tasks")
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	var body struct {
		Title   string  `json:"title"`
		Notes   *string `json:"notes"`
		DueDate *string `json:"dueDate"`
	}
	err := decode(r, &body)
	if err != nil || strings.TrimSpace(body.Title) == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	task, err := h.taskService.Create(r.Context(), identity.UserID, strings.TrimSpace(body.Title), body.Notes, body.DueDate)
	if err != nil {
		slog.Error("failed to create task", "error", err, "user_id", identity.UserID)
		writeError(w, http.StatusInternalServerError, "failed to create task")
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())
	taskID := r.PathValue("id")

	var body struct {
		Title       *string `json:"title"`
		Notes       *string `json:"notes"`
		Completed   *bool   `json:"completed"`
		EffortScore *int    `json:"effort_score"`
		DueDate     *string `json:"due_date"`
	}
	err := decode(r, &body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.taskService.Update(identity.UserID, taskID, service.TaskUpdate{
		Title:       body.Title,
		Notes:       body.Notes,
		Completed:   body.Completed,
		EffortScore: body.EffortScore,
		DueDate:     body.DueDate,
	})
	if errors.Is(err, repository.ErrTaskNotFound) {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	if errors.Is(err, service.ErrInvalidEffortScore) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to update task", "error", err, "user_id", identity.UserID, "task_id", taskID)
		writeError(w, http.StatusInternalServerError, "failed to update task")
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())
	taskID := r.PathValue("id")

	err := h.taskService.Delete(identity.UserID, taskID)
	if errors.Is(err, repository.ErrTaskNotFound) {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete task", "error", err, "user_id", identity.UserID, "task_id", taskID)
		writeError(w, http.StatusInternalServerError, "failed to delete task")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *TaskHandler) Rescore(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	count, err := h.taskService.Rescore(r.Context(), identity.UserID)
	if err != nil {
		slog.Error("failed to rescore tasks", "error", err, "user_id", identity.UserID)
		writeError(w, http.StatusInternalServerError, "failed to rescore tasks")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "tasks rescored",
		"tasksScored": count,
	})
}

func (h *TaskHandler) Parse(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	var body struct {
		Text string `json:"text"`
	}
	err := decode(r, &body)
	if err != nil || strings.TrimSpace(body.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	parsed, err := h.taskService.Parse(r.Context(), body.Text)
	if err != nil {
		// A wrong title or date is worse than no task, so no fallback here.
		slog.Error("failed to parse task text", "error", err, "user_id", identity.UserID)
		writeError(w, http.StatusInternalServerError, "failed to parse task")
		return
	}

	writeJSON(w, http.StatusOK, parsed)
}
