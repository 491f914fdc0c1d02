package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/daystack/daystack/internal/ctxkeys"
	"github.com/daystack/daystack/internal/dateutil"
	"github.com/daystack/daystack/internal/service"
)

type HealthHandler struct {
	healthService *service.HealthService
	appURL        string
}

func NewHealthHandler(healthService *service.HealthService, appURL string) *HealthHandler {
	return &HealthHandler{
		healthService: healthService,
		appURL:        appURL,
	}
}

// Get returns the day's metrics. `sync=true` forces a Google Fit fetch
// first; otherwise the cached row (all zeros when absent) is served.
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	date := r.URL.Query().Get("date")
	if date == "" {
		date = dateutil.Today()
	}

	if r.URL.Query().Get("sync") == "true" {
		h.sync(w, r, identity.UserID, date)
		return
	}

	data, err := h.healthService.Cached(identity.UserID, date)
	if err != nil {
		slog.Error("failed to load health data", "error", err, "user_id", identity.UserID, "date", date)
		writeError(w, http.StatusInternalServerError, "failed to load health data")
		return
	}

	writeJSON(w, http.StatusOK, data)
}

// Sync forces a Google Fit fetch for the given date (default today).
func (h *HealthHandler) Sync(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	var body struct {
		Date string `json:"date"`
	}
	// Body is optional: an empty or absent date means today.
	_ = decode(r, &body)
	if body.Date == "" {
		body.Date = dateutil.Today()
	}

	h.sync(w, r, identity.UserID, body.Date)
}

func (h *HealthHandler) sync(w http.ResponseWriter, r *http.Request, userID, date string) {
	data, err := h.healthService.Sync(r.Context(), userID, date)
	if errors.Is(err, service.ErrFitNotConnected) {
		writeError(w, http.StatusBadRequest, "google fit not connected")
		return
	}
	if err != nil {
		slog.Error("failed to sync health data", "error", err, "user_id", userID, "date", date)
		writeError(w, http.StatusInternalServerError, "failed to sync health data")
		return
	}

	writeJSON(w, http.StatusOK, data)
}

// ConnectURL returns the Google Fit consent URL for the caller.
func (h *HealthHandler) ConnectURL(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	writeJSON(w, http.StatusOK, map[string]string{
		"authUrl": h.healthService.AuthCodeURL(identity.UserID),
	})
}

// Callback handles the provider redirect. It is hit by the browser coming
// back from Google (no bearer token), so the user id travels in the OAuth
// state parameter. The outcome is reported to the dashboard via query
// parameters.
func (h *HealthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	userID := r.URL.Query().Get("state")

	if code == "" {
		h.redirect(w, r, "error=no_code")
		return
	}
	if userID == "" {
		h.redirect(w, r, "error=no_user")
		return
	}

	err := h.healthService.HandleCallback(r.Context(), userID, code)
	if err != nil {
		slog.Error("google fit callback failed", "error", err, "user_id", userID)
		h.redirect(w, r, "error=google_fit_failed")
		return
	}

	h.redirect(w, r, "google_fit=connected")
}

func (h *HealthHandler) redirect(w http.ResponseWriter, r *http.Request, query string) {
	http.Redirect(w, r, h.appURL+"/dashboard?"+query, http.StatusTemporaryRedirect)
}

// Status reports whether the caller has a Google Fit token pair stored.
func (h *HealthHandler) Status(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	connected, err := h.healthService.Connected(identity.UserID)
	if err != nil {
		slog.Error("failed to check google fit status", "error", err, "user_id", identity.UserID)
		writeError(w, http.StatusInternalServerError, "failed to check status")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"connected": connected})
}
