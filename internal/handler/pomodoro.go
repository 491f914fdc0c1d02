package handler

import (
	"log/slog"
	"net/http"

	"github.com/daystack/daystack/internal/ctxkeys"
	"github.com/daystack/daystack/internal/service"
)

type PomodoroHandler struct {
	pomodoroService *service.PomodoroService
}

func NewPomodoroHandler(pomodoroService *service.PomodoroService) *PomodoroHandler {
	return &PomodoroHandler{
		pomodoroService: pomodoroService,
	}
}

func (h *PomodoroHandler) Complete(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	var body struct {
		Date string `json:"date"`
	}
	err := decode(r, &body)
	if err != nil || body.Date == "" {
		writeError(w, http.StatusBadRequest, "date is required")
		return
	}

	session, err := h.pomodoroService.RecordCompletion(identity.UserID, body.Date)
	if err != nil {
		slog.Error("failed to record pomodoro completion", "error", err,
			"user_id", identity.UserID, "date", body.Date)
		writeError(w, http.StatusInternalServerError, "failed to record pomodoro completion")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"completed_count": session.CompletedCount,
	})
}
