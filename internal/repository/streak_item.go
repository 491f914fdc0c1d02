package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/daystack/daystack/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrStreakItemNotFound = errors.New("streak item not found")
)

type StreakItemRepository interface {
	Create(item *model.StreakItem) error
	ByID(userID, itemID string) (*model.StreakItem, error)
	Active(userID string) ([]*model.StreakItem, error)
	Rename(userID, itemID, title string) (*model.StreakItem, error)
	Deactivate(userID, itemID string) error
	DeleteByUser(userID string) error
}

type streakItemRepository struct {
	db *sqlx.DB
}

func NewStreakItemRepository(db *sqlx.DB) StreakItemRepository {
	return &streakItemRepository{db: db}
}

func (r *streakItemRepository) Create(item *model.StreakItem) error {
	query := `INSERT INTO streak_items (id, user_id, title, active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query,
		item.ID,
		item.UserID,
		item.Title,
		item.Active,
		item.CreatedAt,
		item.UpdatedAt,
	)

	return err
}

func (r *streakItemRepository) ByID(userID, itemID string) (*model.StreakItem, error) {
	item := &model.StreakItem{}
	query := `SELECT * FROM streak_items WHERE id = $1 AND user_id = $2`

	err := r.db.Get(item, query, itemID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrStreakItemNotFound
	}

	return item, err
}

// Active lists non-deleted items oldest first, matching creation order.
func (r *streakItemRepository) Active(userID string) ([]*model.StreakItem, error) {
	var items []*model.StreakItem
	query := `SELECT * FROM streak_items WHERE user_id = $1 AND active = TRUE ORDER BY created_at ASC`

	err := r.db.Select(&items, query, userID)
	return items, err
}

func (r *streakItemRepository) Rename(userID, itemID, title string) (*model.StreakItem, error) {
	query := `UPDATE streak_items SET title = $1, updated_at = $2 WHERE id = $3 AND user_id = $4`

	result, err := r.db.Exec(query, title, time.Now(), itemID, userID)
	if err != nil {
		return nil, err
	}
	err = requireRow(result, ErrStreakItemNotFound)
	if err != nil {
		return nil, err
	}

	return r.ByID(userID, itemID)
}

// Deactivate soft-deletes the item. Its completions are purged separately by
// the service.
func (r *streakItemRepository) Deactivate(userID, itemID string) error {
	query := `UPDATE streak_items SET active = FALSE, updated_at = $1 WHERE id = $2 AND user_id = $3`

	result, err := r.db.Exec(query, time.Now(), itemID, userID)
	if err != nil {
		return err
	}
	return requireRow(result, ErrStreakItemNotFound)
}

func (r *streakItemRepository) DeleteByUser(userID string) error {
	_, err := r.db.Exec(`DELETE FROM streak_items WHERE user_id = $1`, userID)
	return err
}
