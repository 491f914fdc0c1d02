package routes

import (
	"net/http"

	"github.com/daystack/daystack/internal/app"
	"github.com/daystack/daystack/internal/handler"
	"github.com/daystack/daystack/internal/middleware"
)

func SetupRoutes(a *app.App) http.Handler {
	// Handlers
	task := handler.NewTaskHandler(a.TaskService)
	streak := handler.NewStreakHandler(a.StreakService)
	pomodoro := handler.NewPomodoroHandler(a.PomodoroService)
	health := handler.NewHealthHandler(a.HealthService, a.Cfg.AppURL)
	user := handler.NewUserHandler(a.UserService)
	summary := handler.NewSummaryHandler(a.TaskService, a.HealthService, a.StreakService, a.PomodoroService)

	mux := http.NewServeMux()

	// Liveness
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Tasks
	mux.HandleFunc("GET /api/tasks", middleware.RequireAuth(task.List))
	mux.HandleFunc("POST /api/tasks", middleware.RequireAuth(task.Create))
	mux.HandleFunc("PATCH /api/tasks/{id}", middleware.RequireAuth(task.Update))
	mux.HandleFunc("DELETE /api/tasks/{id}", middleware.RequireAuth(task.Delete))
	mux.HandleFunc("POST /api/tasks/rescore", middleware.RequireAuth(task.Rescore))
	mux.HandleFunc("POST /api/tasks/parse", middleware.RequireAuth(task.Parse))

	// Streaks
	mux.HandleFunc("GET /api/streaks/items", middleware.RequireAuth(streak.ListItems))
	mux.HandleFunc("POST /api/streaks/items", middleware.RequireAuth(streak.CreateItem))
	mux.HandleFunc("PUT /api/streaks/items/{id}", middleware.RequireAuth(streak.RenameItem))
	mux.HandleFunc("DELETE /api/streaks/items/{id}", middleware.RequireAuth(streak.DeleteItem))
	mux.HandleFunc("GET /api/streaks/completions", middleware.RequireAuth(streak.ListCompletions))
	mux.HandleFunc("POST /api/streaks/completions/toggle", middleware.RequireAuth(streak.ToggleCompletion))

	// Pomodoro
	mux.HandleFunc("POST /api/pomodoro/complete", middleware.RequireAuth(pomodoro.Complete))

	// Health data
	mux.HandleFunc("GET /api/health-data", middleware.RequireAuth(health.Get))
	mux.HandleFunc("POST /api/health-data/sync", middleware.RequireAuth(health.Sync))

	// Google Fit OAuth. The callback is hit by the browser redirect from
	// Google and carries no bearer token: the user id rides in state.
	mux.HandleFunc("GET /api/google-fit/auth", middleware.RequireAuth(health.ConnectURL))
	mux.HandleFunc("GET /api/google-fit/callback", health.Callback)
	mux.HandleFunc("GET /api/google-fit/status", middleware.RequireAuth(health.Status))

	// User / account
	mux.HandleFunc("GET /api/user/me", middleware.RequireAuth(user.Me))
	mux.HandleFunc("POST /api/user/ensure", middleware.RequireAuth(user.Ensure))
	mux.HandleFunc("PATCH /api/user/me", middleware.RequireAuth(user.UpdateMe))
	mux.HandleFunc("DELETE /api/user", middleware.RequireAuth(user.Delete))

	// Dashboard summary
	mux.HandleFunc("GET /api/summary", middleware.RequireAuth(summary.Get))

	return middleware.Chain(mux,
		middleware.RequestLogging,
		middleware.CORS(a.Cfg.CORSOrigins),
		middleware.Auth(a.AuthService),
	)
}
