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

type StreakHandler struct {
	streakService *service.StreakService
}

func NewStreakHandler(streakService *service.StreakService) *StreakHandler {
	return &StreakHandler{
		streakService: streakService,
	}
}

func (h *StreakHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	items, err := h.streakService.Items(identity.UserID)
	if err != nil {
		slog.Error("failed to list streak items", "error", err, "user_id", identity.UserID)
		writeError(w, http.StatusInternalServerError, "failed to list streak items")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *StreakHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	var body struct {
		Title string `json:"title"`
	}
	err := decode(r, &body)
	if err != nil || strings.TrimSpace(body.Title) == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	item, err := h.streakService.CreateItem(identity.UserID, strings.TrimSpace(body.Title))
	if err != nil {
		slog.Error("failed to create streak item", "error", err, "user_id", identity.UserID)
		writeError(w, http.StatusInternalServerError, "failed to create streak item")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"item": item})
}

func (h *StreakHandler) RenameItem(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())
	itemID := r.PathValue("id")

	var body struct {
		Title string `json:"title"`
	}
	err := decode(r, &body)
	if err != nil || strings.TrimSpace(body.Title) == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	item, err := h.streakService.RenameItem(identity.UserID, itemID, strings.TrimSpace(body.Title))
	if errors.Is(err, repository.ErrStreakItemNotFound) {
		writeError(w, http.StatusNotFound, "streak item not found")
		return
	}
	if err != nil {
		slog.Error("failed to rename streak item", "error", err, "user_id", identity.UserID, "item_id", itemID)
		writeError(w, http.StatusInternalServerError, "failed to rename streak item")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"item": item})
}

func (h *StreakHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())
	itemID := r.PathValue("id")

	err := h.streakService.DeleteItem(identity.UserID, itemID)
	if errors.Is(err, repository.ErrStreakItemNotFound) {
		writeError(w, http.StatusNotFound, "streak item not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete streak item", "error", err, "user_id", identity.UserID, "item_id", itemID)
		writeError(w, http.StatusInternalServerError, "failed to delete streak item")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *StreakHandler) ListCompletions(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	completions, err := h.streakService.Completions(
		identity.UserID,
		r.URL.Query().Get("startDate"),
		r.URL.Query().Get("endDate"),
	)
	if err != nil {
		slog.Error("failed to list streak completions", "error", err, "user_id", identity.UserID)
		writeError(w, http.StatusInternalServerError, "failed to list streak completions")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"completions": completions})
}

func (h *StreakHandler) ToggleCompletion(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	var body struct {
		StreakItemID   string `json:"streakItemId"`
		CompletionDate string `json:"completionDate"`
	}
	err := decode(r, &body)
	if err != nil || body.StreakItemID == "" || body.CompletionDate == "" {
		writeError(w, http.StatusBadRequest, "streakItemId and completionDate are required")
		return
	}

	completed, err := h.streakService.ToggleCompletion(identity.UserID, body.StreakItemID, body.CompletionDate)
	if errors.Is(err, repository.ErrStreakItemNotFound) {
		writeError(w, http.StatusNotFound, "streak item not found")
		return
	}
	if err != nil {
		slog.Error("failed to toggle streak completion", "error", err,
			"user_id", identity.UserID, "item_id", body.StreakItemID, "date", body.CompletionDate)
		writeError(w, http.StatusInternalServerError, "failed to toggle streak completion")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"completed": completed})
}
