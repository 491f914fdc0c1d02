package handler

import (
	"log/slog"
	"net/http"

	"github.com/daystack/daystack/internal/ctxkeys"
	"github.com/daystack/daystack/internal/dateutil"
	"github.com/daystack/daystack/internal/score"
	"github.com/daystack/daystack/internal/service"
)

// SummaryHandler serves the dashboard's daily roll-up: both scores plus the
// raw counts they derive from.
type SummaryHandler struct {
	taskService     *service.TaskService
	healthService   *service.HealthService
	streakService   *service.StreakService
	pomodoroService *service.PomodoroService
}

func NewSummaryHandler(
	taskService *service.TaskService,
	healthService *service.HealthService,
	streakService *service.StreakService,
	pomodoroService *service.PomodoroService,
) *SummaryHandler {
	return &SummaryHandler{
		taskService:     taskService,
		healthService:   healthService,
		streakService:   streakService,
		pomodoroService: pomodoroService,
	}
}

func (h *SummaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	date := r.URL.Query().Get("date")
	if date == "" {
		date = dateutil.Today()
	}

	tasks, err := h.taskService.Tasks(identity.UserID, date)
	if err != nil {
		slog.Error("failed to load tasks for summary", "error", err, "user_id", identity.UserID)
		writeError(w, http.StatusInternalServerError, "failed to build summary")
		return
	}

	health, err := h.healthService.Cached(identity.UserID, date)
	if err != nil {
		slog.Error("failed to load health data for summary", "error", err, "user_id", identity.UserID)
		writeError(w, http.StatusInternalServerError, "failed to build summary")
		return
	}

	completions, err := h.streakService.Completions(identity.UserID, date, date)
	if err != nil {
		slog.Error("failed to load completions for summary", "error", err, "user_id", identity.UserID)
		writeError(w, http.StatusInternalServerError, "failed to build summary")
		return
	}

	session, err := h.pomodoroService.ByDate(identity.UserID, date)
	if err != nil {
		slog.Error("failed to load pomodoro session for summary", "error", err, "user_id", identity.UserID)
		writeError(w, http.StatusInternalServerError, "failed to build summary")
		return
	}

	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}

	productivity := score.Productivity(tasks)
	healthScore := score.Health(health)

	writeJSON(w, http.StatusOK, map[string]any{
		"date":               date,
		"productivity_score": productivity,
		"productivity_color": score.Color(productivity),
		"health_score":       healthScore,
		"health_color":       score.Color(healthScore),
		"tasks_total":        len(tasks),
		"tasks_completed":    completed,
		"pomodoro_count":     session.CompletedCount,
		"streak_completions": len(completions),
	})
}
