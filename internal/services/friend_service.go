package services

import (
	"context"
	"fmt"

	"github.com/focusmate/focusmate-cli/internal/domain"
	"github.com/focusmate/focusmate-cli/internal/ports"
)

// defaultNudge is the message sent when the caller gives none.
const defaultNudge = "休息太久了!回來!!"

// FriendService reads the friend graph and sends nudges.
type FriendService struct {
	backend ports.Backend
	storage ports.Storage
}

// NewFriendService creates a friend service.
func NewFriendService(backend ports.Backend, storage ports.Storage) *FriendService {
	return &FriendService{backend: backend, storage: storage}
}

// List fetches the friend list with presence. The graph endpoint only returns
// ids, so statuses come from a second call.
func (s *FriendService) List(ctx context.Context) ([]domain.Friend, error) {
	userID, err := s.storage.UserID(ctx)
	if err != nil {
		return nil, err
	}
	ids, err := s.backend.FriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return s.backend.FriendStatuses(ctx, ids)
}

// Nudge sends a come-back message to a friend. Sending costs nothing but
// requires at least one badge, mirroring the unlock rule in the app.
func (s *FriendService) Nudge(ctx context.Context, friendID int, message string) error {
	userID, err := s.storage.UserID(ctx)
	if err != nil {
		return err
	}

	record, err := s.backend.RecordStatus(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check badge count: %w", err)
	}
	if record.BadgeCount < 1 {
		return domain.ErrNotEnoughBadges
	}

	if message == "" {
		message = defaultNudge
	}
	return s.backend.SendMessage(ctx, userID, friendID, message)
}
