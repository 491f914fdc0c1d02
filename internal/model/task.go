package model

import (
	"time"
)

const DefaultEffortScore = 5

type Task struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	Title       string    `db:"title" json:"title"`
	Notes       *string   `db:"notes" json:"notes"`
	Completed   bool      `db:"completed" json:"completed"`
	EffortScore int       `db:"effort_score" json:"effort_score"`
	DueDate     *string   `db:"due_date" json:"due_date"` // YYYY-MM-DD
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
