package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/daystack/daystack/internal/model"
	"github.com/daystack/daystack/internal/repository"
	"github.com/google/uuid"
)

type StreakService struct {
	items       repository.StreakItemRepository
	completions repository.StreakCompletionRepository
}

func NewStreakService(items repository.StreakItemRepository, completions repository.StreakCompletionRepository) *StreakService {
	return &StreakService{
		items:       items,
		completions: completions,
	}
}

func (s *StreakService) Items(userID string) ([]*model.StreakItem, error) {
	return s.items.Active(userID)
}

func (s *StreakService) CreateItem(userID, title string) (*model.StreakItem, error) {
	now := time.Now()
	item := &model.StreakItem{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.items.Create(item)
	if err != nil {
		return nil, fmt.Errorf("failed to create streak item: %w", err)
	}

	return item, nil
}

func (s *StreakService) RenameItem(userID, itemID, title string) (*model.StreakItem, error) {
	return s.items.Rename(userID, itemID, title)
}

// DeleteItem soft-deletes the item and purges all its completion history.
// Deletion here means "start over": the inactive row survives only so stale
// references don't dangle.
func (s *StreakService) DeleteItem(userID, itemID string) error {
	// Verify ownership before touching completions
	_, err := s.items.ByID(userID, itemID)
	if err != nil {
		return err
	}

	err = s.completions.DeleteByItem(itemID)
	if err != nil {
		return fmt.Errorf("failed to purge streak completions: %w", err)
	}

	err = s.items.Deactivate(userID, itemID)
	if err != nil {
		return err
	}

	slog.Info("streak item deleted", "user_id", userID, "item_id", itemID)
	return nil
}

func (s *StreakService) Completions(userID, startDate, endDate string) ([]*model.StreakCompletion, error) {
	return s.completions.Completions(userID, startDate, endDate)
}

// ToggleCompletion flips the completed state for (item, date) and reports
// the resulting state. Remove-first keeps each leg a single statement; the
// unique index guarantees at most one row per key even under concurrent
// toggles.
func (s *StreakService) ToggleCompletion(userID, itemID, date string) (bool, error) {
	// Verify ownership
	_, err := s.items.ByID(userID, itemID)
	if err != nil {
		return false, err
	}

	removed, err := s.completions.Remove(userID, itemID, date)
	if err != nil {
		return false, err
	}
	if removed {
		return false, nil
	}

	_, err = s.completions.Insert(&model.StreakCompletion{
		ID:             uuid.New().String(),
		UserID:         userID,
		StreakItemID:   itemID,
		CompletionDate: date,
		CreatedAt:      time.Now(),
	})
	if err != nil {
		return false, err
	}

	return true, nil
}
