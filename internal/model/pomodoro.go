package model

import (
	"time"
)

type PomodoroSession struct {
	ID             string    `db:"id" json:"id"`
	UserID         string    `db:"user_id" json:"user_id"`
	Date           string    `db:"date" json:"date"` // YYYY-MM-DD
	CompletedCount int       `db:"completed_count" json:"completed_count"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
