package service

import (
	"errors"

	"github.com/daystack/daystack/internal/model"
	"github.com/daystack/daystack/internal/repository"
)

type PomodoroService struct {
	repo repository.PomodoroRepository
}

func NewPomodoroService(repo repository.PomodoroRepository) *PomodoroService {
	return &PomodoroService{repo: repo}
}

// RecordCompletion counts one finished pomodoro for the day and returns the
// day's session row.
func (s *PomodoroService) RecordCompletion(userID, date string) (*model.PomodoroSession, error) {
	return s.repo.RecordCompletion(userID, date)
}

// ByDate returns the day's session, or a zero-count session when none exists.
func (s *PomodoroService) ByDate(userID, date string) (*model.PomodoroSession, error) {
	session, err := s.repo.ByUserDate(userID, date)
	if errors.Is(err, repository.ErrPomodoroSessionNotFound) {
		return &model.PomodoroSession{UserID: userID, Date: date}, nil
	}
	return session, err
}
