package model

import (
	"time"
)

// HealthData caches the last successful Google Fit fetch for one (user, date).
type HealthData struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Date      string    `db:"date" json:"date"` // YYYY-MM-DD
	Steps     int       `db:"steps" json:"steps"`
	Calories  int       `db:"calories" json:"calories"`
	Distance  int       `db:"distance" json:"distance"` // meters
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
