package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/daystack/daystack/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var (
	ErrPomodoroSessionNotFound = errors.New("pomodoro session not found")
)

type PomodoroRepository interface {
	RecordCompletion(userID, date string) (*model.PomodoroSession, error)
	ByUserDate(userID, date string) (*model.PomodoroSession, error)
	DeleteByUser(userID string) error
}

type pomodoroRepository struct {
	db *sqlx.DB
}

func NewPomodoroRepository(db *sqlx.DB) PomodoroRepository {
	return &pomodoroRepository{db: db}
}

// RecordCompletion bumps the day's completed count in a single conditional
// write: the first completion inserts count 1, later ones increment in place.
// Atomic, so concurrent completions never read a stale count.
func (r *pomodoroRepository) RecordCompletion(userID, date string) (*model.PomodoroSession, error) {
	now := time.Now()
	query := `INSERT INTO pomodoro_sessions (id, user_id, date, completed_count, created_at, updated_at)
	          VALUES ($1, $2, $3, 1, $4, $5)
	          ON CONFLICT (user_id, date) DO UPDATE
	          SET completed_count = pomodoro_sessions.completed_count + 1, updated_at = excluded.updated_at`

	_, err := r.db.Exec(query, uuid.New().String(), userID, date, now, now)
	if err != nil {
		return nil, err
	}

	return r.ByUserDate(userID, date)
}

func (r *pomodoroRepository) ByUserDate(userID, date string) (*model.PomodoroSession, error) {
	session := &model.PomodoroSession{}
	query := `SELECT * FROM pomodoro_sessions WHERE user_id = $1 AND date = $2`

	err := r.db.Get(session, query, userID, date)
	if err == sql.ErrNoRows {
		return nil, ErrPomodoroSessionNotFound
	}

	return session, err
}

func (r *pomodoroRepository) DeleteByUser(userID string) error {
	_, err := r.db.Exec(`DELETE FROM pomodoro_sessions WHERE user_id = $1`, userID)
	return err
}
