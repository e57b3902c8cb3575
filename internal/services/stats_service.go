package services

import (
	"context"

	"github.com/focusmate/focusmate-cli/internal/domain"
	"github.com/focusmate/focusmate-cli/internal/ports"
)

// StatsService reads focus records for the status and stats views.
type StatsService struct {
	backend ports.Backend
	storage ports.Storage
}

// NewStatsService creates a stats service.
func NewStatsService(backend ports.Backend, storage ports.Storage) *StatsService {
	return &StatsService{backend: backend, storage: storage}
}

// Record returns the user's badge count and title.
func (s *StatsService) Record(ctx context.Context) (*domain.RecordStatus, error) {
	userID, err := s.storage.UserID(ctx)
	if err != nil {
		return nil, err
	}
	return s.backend.RecordStatus(ctx, userID)
}

// Weekly returns per-day focus minutes for the trailing week.
func (s *StatsService) Weekly(ctx context.Context) ([]domain.DailyFocus, error) {
	userID, err := s.storage.UserID(ctx)
	if err != nil {
		return nil, err
	}
	return s.backend.WeeklyFocus(ctx, userID)
}

// RecentLocal lists locally logged sessions, newest first.
func (s *StatsService) RecentLocal(ctx context.Context, limit int) ([]*ports.LocalSession, error) {
	return s.storage.RecentSessions(ctx, limit)
}
