package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/daystack/daystack/internal/db"
	"github.com/daystack/daystack/internal/model"
	"github.com/daystack/daystack/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.Init("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))
	return database
}

func createTestUser(t *testing.T, users repository.UserRepository, mutate func(*model.User)) *model.User {
	t.Helper()

	now := time.Now()
	user := &model.User{
		ID:        uuid.New().String(),
		Email:     uuid.New().String() + "@example.com",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if mutate != nil {
		mutate(user)
	}
	require.NoError(t, users.Ensure(user))

	if user.GoogleAccessToken != nil || user.GoogleRefreshToken != nil {
		require.NoError(t, users.UpdateTokens(user.ID, user.GoogleAccessToken, user.GoogleRefreshToken))
	}
	return user
}

func strPtr(s string) *string {
	return &s
}
