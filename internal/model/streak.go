package model

import (
	"time"
)

type StreakItem struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Title     string    `db:"title" json:"title"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// StreakCompletion existence means "completed that day". At most one row per
// (streak item, date).
type StreakCompletion struct {
	ID             string    `db:"id" json:"id"`
	UserID         string    `db:"user_id" json:"user_id"`
	StreakItemID   string    `db:"streak_item_id" json:"streak_item_id"`
	CompletionDate string    `db:"completion_date" json:"completion_date"` // YYYY-MM-DD
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
