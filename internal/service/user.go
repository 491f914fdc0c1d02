package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/daystack/daystack/internal/model"
	"github.com/daystack/daystack/internal/repository"
)

type UserService struct {
	users       repository.UserRepository
	tasks       repository.TaskRepository
	health      repository.HealthDataRepository
	streakItems repository.StreakItemRepository
	completions repository.StreakCompletionRepository
	pomodoros   repository.PomodoroRepository
}

func NewUserService(
	users repository.UserRepository,
	tasks repository.TaskRepository,
	health repository.HealthDataRepository,
	streakItems repository.StreakItemRepository,
	completions repository.StreakCompletionRepository,
	pomodoros repository.PomodoroRepository,
) *UserService {
	return &UserService{
		users:       users,
		tasks:       tasks,
		health:      health,
		streakItems: streakItems,
		completions: completions,
		pomodoros:   pomodoros,
	}
}

// Ensure upserts the user row keyed on the auth provider's subject id.
// Called on every login, so it must be idempotent.
func (s *UserService) Ensure(userID, email string, fullName *string) (*model.User, error) {
	now := time.Now()
	err := s.users.Ensure(&model.User{
		ID:        userID,
		Email:     email,
		FullName:  fullName,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to ensure user: %w", err)
	}

	return s.users.ByID(userID)
}

func (s *UserService) ByID(userID string) (*model.User, error) {
	return s.users.ByID(userID)
}

// UpdateName sets or clears the display name and returns the updated row.
// Email is not mutable here: it belongs to the auth provider.
func (s *UserService) UpdateName(userID string, fullName *string) (*model.User, error) {
	err := s.users.UpdateName(userID, fullName)
	if err != nil {
		return nil, err
	}
	return s.users.ByID(userID)
}

// DeleteAccount purges every row the user owns, then the identity row
// itself. Dependent-table failures are logged and skipped so a single bad
// table cannot strand the rest of the data; only the final identity delete
// is allowed to fail the operation.
func (s *UserService) DeleteAccount(userID string) error {
	slog.Info("deleting account", "user_id", userID)

	purges := []struct {
		name string
		fn   func(string) error
	}{
		{"health_data", s.health.DeleteByUser},
		{"tasks", s.tasks.DeleteByUser},
		{"streak_completions", s.completions.DeleteByUser},
		{"streak_items", s.streakItems.DeleteByUser},
		{"pomodoro_sessions", s.pomodoros.DeleteByUser},
	}

	for _, p := range purges {
		err := p.fn(userID)
		if err != nil {
			slog.Error("failed to purge table during account deletion",
				"table", p.name, "user_id", userID, "error", err)
		}
	}

	err := s.users.Delete(userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	slog.Info("account deleted", "user_id", userID)
	return nil
}
