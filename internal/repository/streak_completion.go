package repository

import (
	"github.com/daystack/daystack/internal/model"
	"github.com/jmoiron/sqlx"
)

type StreakCompletionRepository interface {
	Completions(userID, startDate, endDate string) ([]*model.StreakCompletion, error)
	Insert(completion *model.StreakCompletion) (bool, error)
	Remove(userID, itemID, date string) (bool, error)
	DeleteByItem(itemID string) error
	DeleteByUser(userID string) error
}

type streakCompletionRepository struct {
	db *sqlx.DB
}

func NewStreakCompletionRepository(db *sqlx.DB) StreakCompletionRepository {
	return &streakCompletionRepository{db: db}
}

// Completions lists the user's completion rows, optionally bounded by an
// inclusive date range.
func (r *streakCompletionRepository) Completions(userID, startDate, endDate string) ([]*model.StreakCompletion, error) {
	completions := []*model.StreakCompletion{}

	query := `SELECT * FROM streak_completions WHERE user_id = $1`
	args := []any{userID}

	if startDate != "" {
		args = append(args, startDate)
		query += ` AND completion_date >= $2`
	}
	if endDate != "" {
		args = append(args, endDate)
		if startDate != "" {
			query += ` AND completion_date <= $3`
		} else {
			query += ` AND completion_date <= $2`
		}
	}
	query += ` ORDER BY completion_date ASC`

	err := r.db.Select(&completions, query, args...)
	return completions, err
}

// Insert adds a completion row for (item, date). The unique index makes the
// insert a no-op when the row already exists (e.g. a concurrent toggle);
// the return value reports whether a row was actually written.
func (r *streakCompletionRepository) Insert(completion *model.StreakCompletion) (bool, error) {
	query := `INSERT INTO streak_completions (id, user_id, streak_item_id, completion_date, created_at)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (streak_item_id, completion_date) DO NOTHING`

	result, err := r.db.Exec(query,
		completion.ID,
		completion.UserID,
		completion.StreakItemID,
		completion.CompletionDate,
		completion.CreatedAt,
	)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// Remove deletes the completion row for (item, date) and reports whether one
// existed.
func (r *streakCompletionRepository) Remove(userID, itemID, date string) (bool, error) {
	query := `DELETE FROM streak_completions
	          WHERE user_id = $1 AND streak_item_id = $2 AND completion_date = $3`

	result, err := r.db.Exec(query, userID, itemID, date)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *streakCompletionRepository) DeleteByItem(itemID string) error {
	_, err := r.db.Exec(`DELETE FROM streak_completions WHERE streak_item_id = $1`, itemID)
	return err
}

func (r *streakCompletionRepository) DeleteByUser(userID string) error {
	_, err := r.db.Exec(`DELETE FROM streak_completions WHERE user_id = $1`, userID)
	return err
}
