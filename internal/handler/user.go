package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/daystack/daystack/internal/ctxkeys"
	"github.com/daystack/daystack/internal/repository"
	"github.com/daystack/daystack/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	user, err := h.userService.ByID(identity.UserID)
	if errors.Is(err, repository.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		slog.Error("failed to load user", "error", err, "user_id", identity.UserID)
		writeError(w, http.StatusInternalServerError, "failed to load user")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Ensure idempotently creates the caller's user row from the verified token
// claims. The frontend calls it on every login.
func (h *UserHandler) Ensure(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	var body struct {
		FullName *string `json:"fullName"`
	}
	// Optional body
	_ = decode(r, &body)

	if identity.Email == "" {
		writeError(w, http.StatusBadRequest, "token carries no email claim")
		return
	}

	user, err := h.userService.Ensure(identity.UserID, identity.Email, body.FullName)
	if err != nil {
		slog.Error("failed to ensure user", "error", err, "user_id", identity.UserID)
		writeError(w, http.StatusInternalServerError, "failed to ensure user")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    user,
	})
}

// UpdateMe updates the caller's profile. A null fullName clears the stored
// display name.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	var body struct {
		FullName *string `json:"fullName"`
	}
	err := decode(r, &body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.userService.UpdateName(identity.UserID, body.FullName)
	if errors.Is(err, repository.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		slog.Error("failed to update profile", "error", err, "user_id", identity.UserID)
		writeError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	err := h.userService.DeleteAccount(identity.UserID)
	if errors.Is(err, repository.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete account", "error", err, "user_id", identity.UserID)
		writeError(w, http.StatusInternalServerError, "failed to delete account")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
