package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/daystack/daystack/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

type UserRepository interface {
	Ensure(user *model.User) error
	ByID(id string) (*model.User, error)
	UpdateName(id string, fullName *string) error
	UpdateTokens(id string, accessToken, refreshToken *string) error
	UpdateAccessToken(id string, accessToken string) error
	Delete(id string) error
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// Ensure inserts the user row or, when the id already exists, refreshes the
// email from the auth provider. Idempotent by design: the frontend calls it
// on every login.
func (r *userRepository) Ensure(user *model.User) error {
	query := `INSERT INTO users (id, email, full_name, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (id) DO UPDATE SET email = excluded.email, updated_at = excluded.updated_at`

	_, err := r.db.Exec(query, user.ID, user.Email, user.FullName, user.CreatedAt, user.UpdatedAt)
	return err
}

func (r *userRepository) ByID(id string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE id = $1`

	err := r.db.Get(user, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) UpdateName(id string, fullName *string) error {
	query := `UPDATE users SET full_name = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.Exec(query, fullName, time.Now(), id)
	if err != nil {
		return err
	}
	return requireRow(result, ErrUserNotFound)
}

func (r *userRepository) UpdateTokens(id string, accessToken, refreshToken *string) error {
	query := `UPDATE users SET google_access_token = $1, google_refresh_token = $2, updated_at = $3 WHERE id = $4`

	result, err := r.db.Exec(query, accessToken, refreshToken, time.Now(), id)
	if err != nil {
		return err
	}
	return requireRow(result, ErrUserNotFound)
}

func (r *userRepository) UpdateAccessToken(id string, accessToken string) error {
	query := `UPDATE users SET google_access_token = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.Exec(query, accessToken, time.Now(), id)
	if err != nil {
		return err
	}
	return requireRow(result, ErrUserNotFound)
}

func (r *userRepository) Delete(id string) error {
	query := `DELETE FROM users WHERE id = $1`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}
	return requireRow(result, ErrUserNotFound)
}

// requireRow converts a zero-row write into the given sentinel.
func requireRow(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
