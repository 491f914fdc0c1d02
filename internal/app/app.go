package app

import (
	"fmt"

	"github.com/daystack/daystack/internal/config"
	"github.com/daystack/daystack/internal/db"
	"github.com/daystack/daystack/internal/googlefit"
	"github.com/daystack/daystack/internal/llm"
	"github.com/daystack/daystack/internal/repository"
	"github.com/daystack/daystack/internal/service"
	"github.com/jmoiron/sqlx"
)

type App struct {
	Cfg             *config.Config
	DB              *sqlx.DB
	AuthService     *service.AuthService
	UserService     *service.UserService
	TaskService     *service.TaskService
	StreakService   *service.StreakService
	PomodoroService *service.PomodoroService
	HealthService   *service.HealthService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	taskRepository := repository.NewTaskRepository(database)
	healthRepository := repository.NewHealthDataRepository(database)
	streakItemRepository := repository.NewStreakItemRepository(database)
	streakCompletionRepository := repository.NewStreakCompletionRepository(database)
	pomodoroRepository := repository.NewPomodoroRepository(database)

	// External clients (explicitly constructed, injected below)
	llmClient := llm.New(cfg.AnthropicAPIKey)
	fitClient := googlefit.New(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.AppURL+"/api/google-fit/callback",
	)

	// Services
	authService := service.NewAuthService(cfg.JWTSecret, cfg.JWTExpiry)
	userService := service.NewUserService(
		userRepository,
		taskRepository,
		healthRepository,
		streakItemRepository,
		streakCompletionRepository,
		pomodoroRepository,
	)
	taskService := service.NewTaskService(taskRepository, llmClient)
	streakService := service.NewStreakService(streakItemRepository, streakCompletionRepository)
	pomodoroService := service.NewPomodoroService(pomodoroRepository)
	healthService := service.NewHealthService(userRepository, healthRepository, fitClient)

	return &App{
		Cfg:             cfg,
		DB:              database,
		AuthService:     authService,
		UserService:     userService,
		TaskService:     taskService,
		StreakService:   streakService,
		PomodoroService: pomodoroService,
		HealthService:   healthService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
