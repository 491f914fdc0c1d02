package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/daystack/daystack/internal/dateutil"
	"github.com/daystack/daystack/internal/googlefit"
	"github.com/daystack/daystack/internal/model"
	"github.com/daystack/daystack/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

var (
	// ErrFitNotConnected means the user has no stored access token.
	ErrFitNotConnected = errors.New("google fit not connected")
)

// FitAPI is the Google Fit surface the health service needs. Satisfied by
// *googlefit.Client; faked in tests.
type FitAPI interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error)
	DayData(ctx context.Context, accessToken string, day time.Time) (*googlefit.Data, error)
}

type HealthService struct {
	users  repository.UserRepository
	health repository.HealthDataRepository
	fit    FitAPI
}

func NewHealthService(users repository.UserRepository, health repository.HealthDataRepository, fit FitAPI) *HealthService {
	return &HealthService{
		users:  users,
		health: health,
		fit:    fit,
	}
}

// Cached returns the stored row for (user, date). A missing row is not an
// error: it yields zero values for every metric.
func (s *HealthService) Cached(userID, date string) (*model.HealthData, error) {
	data, err := s.health.ByUserDate(userID, date)
	if errors.Is(err, repository.ErrHealthDataNotFound) {
		return &model.HealthData{UserID: userID, Date: date}, nil
	}
	return data, err
}

// Sync fetches the day's metrics from Google Fit with the stored access
// token, refreshing it once on a 401 and retrying, then upserts the result
// and returns the persisted row.
func (s *HealthService) Sync(ctx context.Context, userID, date string) (*model.HealthData, error) {
	user, err := s.users.ByID(userID)
	if err != nil {
		return nil, err
	}
	if user.GoogleAccessToken == nil || *user.GoogleAccessToken == "" {
		return nil, ErrFitNotConnected
	}

	day, err := dateutil.ParseLocal(date)
	if err != nil {
		return nil, err
	}

	data, err := s.fit.DayData(ctx, *user.GoogleAccessToken, day)
	if errors.Is(err, googlefit.ErrUnauthorized) {
		data, err = s.refreshAndRetry(ctx, user, day)
	}
	if err != nil {
		return nil, err
	}

	return s.persist(userID, date, data)
}

// refreshAndRetry handles the expired-token path: one refresh, persist the
// new access token, one retried fetch. No further retries.
func (s *HealthService) refreshAndRetry(ctx context.Context, user *model.User, day time.Time) (*googlefit.Data, error) {
	if user.GoogleRefreshToken == nil || *user.GoogleRefreshToken == "" {
		return nil, fmt.Errorf("access token expired and no refresh token stored: %w", ErrFitNotConnected)
	}

	slog.Info("google fit access token expired, refreshing", "user_id", user.ID)

	token, err := s.fit.Refresh(ctx, *user.GoogleRefreshToken)
	if err != nil {
		return nil, err
	}

	err = s.users.UpdateAccessToken(user.ID, token.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to store refreshed access token: %w", err)
	}

	return s.fit.DayData(ctx, token.AccessToken, day)
}

func (s *HealthService) persist(userID, date string, data *googlefit.Data) (*model.HealthData, error) {
	row, err := s.health.Upsert(&model.HealthData{
		ID:        uuid.New().String(),
		UserID:    userID,
		Date:      date,
		Steps:     data.Steps,
		Calories:  data.Calories,
		Distance:  data.Distance,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save health data: %w", err)
	}

	slog.Info("health data synced",
		"user_id", userID,
		"date", date,
		"steps", data.Steps,
		"calories", data.Calories,
		"distance", data.Distance,
	)
	return row, nil
}

// AuthCodeURL builds the Google Fit consent URL for the user. The user id
// travels in the OAuth state parameter.
func (s *HealthService) AuthCodeURL(userID string) string {
	return s.fit.AuthCodeURL(userID)
}

// HandleCallback exchanges the authorization code and persists the token
// pair on the user identified by the state parameter.
func (s *HealthService) HandleCallback(ctx context.Context, userID, code string) error {
	token, err := s.fit.Exchange(ctx, code)
	if err != nil {
		return err
	}

	refresh := token.RefreshToken
	err = s.users.UpdateTokens(userID, &token.AccessToken, &refresh)
	if err != nil {
		return fmt.Errorf("failed to store google fit tokens: %w", err)
	}

	slog.Info("google fit connected", "user_id", userID)
	return nil
}

// Connected reports whether the user has a complete token pair stored.
func (s *HealthService) Connected(userID string) (bool, error) {
	user, err := s.users.ByID(userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.FitConnected(), nil
}
