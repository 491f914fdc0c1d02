package repository

import (
	"database/sql"
	"errors"

	"github.com/daystack/daystack/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrHealthDataNotFound = errors.New("health data not found")
)

type HealthDataRepository interface {
	Upsert(data *model.HealthData) (*model.HealthData, error)
	ByUserDate(userID, date string) (*model.HealthData, error)
	DeleteByUser(userID string) error
}

type healthDataRepository struct {
	db *sqlx.DB
}

func NewHealthDataRepository(db *sqlx.DB) HealthDataRepository {
	return &healthDataRepository{db: db}
}

// Upsert inserts or replaces the cached metrics for (user, date) and returns
// the persisted row.
func (r *healthDataRepository) Upsert(data *model.HealthData) (*model.HealthData, error) {
	query := `INSERT INTO health_data (id, user_id, date, steps, calories, distance, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          ON CONFLICT (user_id, date) DO UPDATE
	          SET steps = excluded.steps, calories = excluded.calories, distance = excluded.distance`

	_, err := r.db.Exec(query,
		data.ID,
		data.UserID,
		data.Date,
		data.Steps,
		data.Calories,
		data.Distance,
		data.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return r.ByUserDate(data.UserID, data.Date)
}

func (r *healthDataRepository) ByUserDate(userID, date string) (*model.HealthData, error) {
	data := &model.HealthData{}
	query := `SELECT * FROM health_data WHERE user_id = $1 AND date = $2`

	err := r.db.Get(data, query, userID, date)
	if err == sql.ErrNoRows {
		return nil, ErrHealthDataNotFound
	}

	return data, err
}

func (r *healthDataRepository) DeleteByUser(userID string) error {
	_, err := r.db.Exec(`DELETE FROM health_data WHERE user_id = $1`, userID)
	return err
}
