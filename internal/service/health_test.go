package service

import (
	"context"
	"testing"
	"time"

	"github.com/daystack/daystack/internal/googlefit"
	"github.com/daystack/daystack/internal/model"
	"github.com/daystack/daystack/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

// fakeFit scripts the Google Fit API: access tokens in expired reject with
// ErrUnauthorized, everything else returns data.
type fakeFit struct {
	data    *googlefit.Data
	expired map[string]bool

	refreshed string // access token minted by Refresh

	fetchCalls   []string // access tokens seen by DayData
	refreshCalls []string // refresh tokens seen by Refresh
	exchangeCode string
}

func (f *fakeFit) AuthCodeURL(state string) string {
	return "https://accounts.example.com/auth?state=" + state
}

func (f *fakeFit) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	f.exchangeCode = code
	return &oauth2.Token{AccessToken: "exchanged-access", RefreshToken: "exchanged-refresh"}, nil
}

func (f *fakeFit) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	f.refreshCalls = append(f.refreshCalls, refreshToken)
	return &oauth2.Token{AccessToken: f.refreshed}, nil
}

func (f *fakeFit) DayData(ctx context.Context, accessToken string, day time.Time) (*googlefit.Data, error) {
	f.fetchCalls = append(f.fetchCalls, accessToken)
	if f.expired[accessToken] {
		return nil, googlefit.ErrUnauthorized
	}
	return f.data, nil
}

func connectedUser(t *testing.T, users repository.UserRepository, access, refresh string) *model.User {
	t.Helper()
	return createTestUser(t, users, func(u *model.User) {
		u.GoogleAccessToken = strPtr(access)
		u.GoogleRefreshToken = strPtr(refresh)
	})
}

func TestHealthSyncPersistsFetchedData(t *testing.T) {
	database := setupTestDB(t)
	users := repository.NewUserRepository(database)
	health := repository.NewHealthDataRepository(database)
	fit := &fakeFit{data: &googlefit.Data{Steps: 9001, Calories: 1900, Distance: 7300}}
	svc := NewHealthService(users, health, fit)

	user := connectedUser(t, users, "valid-token", "refresh-token")

	row, err := svc.Sync(context.Background(), user.ID, "2024-06-15")
	require.NoError(t, err)
	assert.Equal(t, 9001, row.Steps)
	assert.Equal(t, 1900, row.Calories)
	assert.Equal(t, 7300, row.Distance)

	// No refresh needed for a valid token.
	assert.Empty(t, fit.refreshCalls)
	assert.Equal(t, []string{"valid-token"}, fit.fetchCalls)

	cached, err := svc.Cached(user.ID, "2024-06-15")
	require.NoError(t, err)
	assert.Equal(t, 9001, cached.Steps)
}

func TestHealthSyncRefreshesExpiredTokenOnce(t *testing.T) {
	database := setupTestDB(t)
	users := repository.NewUserRepository(database)
	health := repository.NewHealthDataRepository(database)
	fit := &fakeFit{
		data:      &googlefit.Data{Steps: 5000, Calories: 1200, Distance: 4000},
		expired:   map[string]bool{"stale-token": true},
		refreshed: "fresh-token",
	}
	svc := NewHealthService(users, health, fit)

	user := connectedUser(t, users, "stale-token", "refresh-token")

	row, err := svc.Sync(context.Background(), user.ID, "2024-06-15")
	require.NoError(t, err)
	assert.Equal(t, 5000, row.Steps)

	// Exactly one refresh with the stored refresh token, then one retried
	// fetch with the new access token.
	assert.Equal(t, []string{"refresh-token"}, fit.refreshCalls)
	assert.Equal(t, []string{"stale-token", "fresh-token"}, fit.fetchCalls)

	// The refreshed access token is persisted for the next sync.
	stored, err := users.ByID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.GoogleAccessToken)
	assert.Equal(t, "fresh-token", *stored.GoogleAccessToken)
	require.NotNil(t, stored.GoogleRefreshToken)
	assert.Equal(t, "refresh-token", *stored.GoogleRefreshToken)
}

func TestHealthSyncFailsWhenRefreshedTokenStillRejected(t *testing.T) {
	database := setupTestDB(t)
	users := repository.NewUserRepository(database)
	health := repository.NewHealthDataRepository(database)
	fit := &fakeFit{
		expired:   map[string]bool{"stale-token": true, "still-bad": true},
		refreshed: "still-bad",
	}
	svc := NewHealthService(users, health, fit)

	user := connectedUser(t, users, "stale-token", "refresh-token")

	_, err := svc.Sync(context.Background(), user.ID, "2024-06-15")
	assert.ErrorIs(t, err, googlefit.ErrUnauthorized)

	// One refresh, one retry, no second attempt.
	assert.Len(t, fit.refreshCalls, 1)
	assert.Len(t, fit.fetchCalls, 2)
}

func TestHealthSyncNotConnected(t *testing.T) {
	database := setupTestDB(t)
	users := repository.NewUserRepository(database)
	health := repository.NewHealthDataRepository(database)
	svc := NewHealthService(users, health, &fakeFit{})

	user := createTestUser(t, users, nil)

	_, err := svc.Sync(context.Background(), user.ID, "2024-06-15")
	assert.ErrorIs(t, err, ErrFitNotConnected)
}

func TestHealthSyncNoRefreshToken(t *testing.T) {
	database := setupTestDB(t)
	users := repository.NewUserRepository(database)
	health := repository.NewHealthDataRepository(database)
	fit := &fakeFit{expired: map[string]bool{"stale-token": true}}
	svc := NewHealthService(users, health, fit)

	user := createTestUser(t, users, func(u *model.User) {
		u.GoogleAccessToken = strPtr("stale-token")
	})

	_, err := svc.Sync(context.Background(), user.ID, "2024-06-15")
	assert.ErrorIs(t, err, ErrFitNotConnected)
	assert.Empty(t, fit.refreshCalls)
}

func TestHealthSyncPersistsZeroActivityDay(t *testing.T) {
	database := setupTestDB(t)
	users := repository.NewUserRepository(database)
	health := repository.NewHealthDataRepository(database)
	fit := &fakeFit{data: &googlefit.Data{}}
	svc := NewHealthService(users, health, fit)

	user := connectedUser(t, users, "valid-token", "refresh-token")

	row, err := svc.Sync(context.Background(), user.ID, "2024-06-15")
	require.NoError(t, err)
	assert.Zero(t, row.Steps)
	assert.Zero(t, row.Calories)
	assert.Zero(t, row.Distance)

	// A real zero-activity row is cached, distinguishable from "never synced"
	// only by its presence.
	_, err = repository.NewHealthDataRepository(database).ByUserDate(user.ID, "2024-06-15")
	assert.NoError(t, err)
}

func TestHealthCachedMissingRowYieldsZeros(t *testing.T) {
	database := setupTestDB(t)
	users := repository.NewUserRepository(database)
	health := repository.NewHealthDataRepository(database)
	svc := NewHealthService(users, health, &fakeFit{})

	user := createTestUser(t, users, nil)

	row, err := svc.Cached(user.ID, "2024-06-15")
	require.NoError(t, err)
	assert.Zero(t, row.Steps)
	assert.Zero(t, row.Calories)
	assert.Zero(t, row.Distance)
	assert.Equal(t, "2024-06-15", row.Date)
}

func TestHealthHandleCallbackStoresTokens(t *testing.T) {
	database := setupTestDB(t)
	users := repository.NewUserRepository(database)
	health := repository.NewHealthDataRepository(database)
	fit := &fakeFit{}
	svc := NewHealthService(users, health, fit)

	user := createTestUser(t, users, nil)

	connected, err := svc.Connected(user.ID)
	require.NoError(t, err)
	assert.False(t, connected)

	require.NoError(t, svc.HandleCallback(context.Background(), user.ID, "auth-code"))
	assert.Equal(t, "auth-code", fit.exchangeCode)

	connected, err = svc.Connected(user.ID)
	require.NoError(t, err)
	assert.True(t, connected)
}
