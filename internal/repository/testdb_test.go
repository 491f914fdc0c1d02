package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/daystack/daystack/internal/db"
	"github.com/daystack/daystack/internal/model"
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

func createTestUser(t *testing.T, users UserRepository) *model.User {
	t.Helper()

	now := time.Now()
	user := &model.User{
		ID:        uuid.New().String(),
		Email:     uuid.New().String() + "@example.com",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, users.Ensure(user))
	return user
}

func strPtr(s string) *string {
	return &s
}
