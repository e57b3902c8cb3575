package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sahilm/fuzzy"

	"github.com/focusmate/focusmate-cli/internal/domain"
	"github.com/focusmate/focusmate-cli/internal/ports"
)

// DeadlineService manages the user's backend deadline list.
type DeadlineService struct {
	backend ports.Backend
	storage ports.Storage
}

// NewDeadlineService creates a deadline service.
func NewDeadlineService(backend ports.Backend, storage ports.Storage) *DeadlineService {
	return &DeadlineService{backend: backend, storage: storage}
}

// List returns the deadline list in display order.
func (s *DeadlineService) List(ctx context.Context) ([]domain.Deadline, error) {
	userID, err := s.storage.UserID(ctx)
	if err != nil {
		return nil, err
	}
	return s.backend.Deadlines(ctx, userID)
}

// Add creates a deadline entry.
func (s *DeadlineService) Add(ctx context.Context, task, date string) error {
	userID, err := s.storage.UserID(ctx)
	if err != nil {
		return err
	}
	return s.backend.AddDeadline(ctx, userID, task, date)
}

// Find resolves a reference to a deadline. A numeric reference is an exact id;
// anything else is a fuzzy match on the task text, best match wins.
func (s *DeadlineService) Find(ctx context.Context, ref string) (*domain.Deadline, error) {
	deadlines, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	if id, err := strconv.Atoi(ref); err == nil {
		for i := range deadlines {
			if deadlines[i].ID == id {
				return &deadlines[i], nil
			}
		}
		return nil, fmt.Errorf("%w: id %d", domain.ErrDeadlineNotFound, id)
	}

	tasks := make([]string, len(deadlines))
	for i, d := range deadlines {
		tasks[i] = d.Task
	}
	matches := fuzzy.Find(ref, tasks)
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %q", domain.ErrDeadlineNotFound, ref)
	}
	return &deadlines[matches[0].Index], nil
}

// Edit renames and/or redates a deadline. Empty fields keep their current
// value.
func (s *DeadlineService) Edit(ctx context.Context, ref, task, date string) error {
	userID, err := s.storage.UserID(ctx)
	if err != nil {
		return err
	}
	d, err := s.Find(ctx, ref)
	if err != nil {
		return err
	}
	if task == "" {
		task = d.Task
	}
	if date == "" {
		date = d.DeadlineDate
	}
	return s.backend.EditDeadline(ctx, userID, d.ID, task, date)
}

// Remove deletes a deadline.
func (s *DeadlineService) Remove(ctx context.Context, ref string) error {
	userID, err := s.storage.UserID(ctx)
	if err != nil {
		return err
	}
	d, err := s.Find(ctx, ref)
	if err != nil {
		return err
	}
	return s.backend.RemoveDeadline(ctx, userID, d.ID)
}

// SetDone toggles a deadline's completion flag.
func (s *DeadlineService) SetDone(ctx context.Context, ref string, done bool) error {
	userID, err := s.storage.UserID(ctx)
	if err != nil {
		return err
	}
	d, err := s.Find(ctx, ref)
	if err != nil {
		return err
	}
	return s.backend.SetDeadlineDone(ctx, userID, d.ID, done)
}

// SetDoing marks a deadline as the one being worked on. Only one entry can
// carry the marker, so any current holder is cleared first.
func (s *DeadlineService) SetDoing(ctx context.Context, ref string) error {
	userID, err := s.storage.UserID(ctx)
	if err != nil {
		return err
	}
	deadlines, err := s.backend.Deadlines(ctx, userID)
	if err != nil {
		return err
	}
	target, err := s.Find(ctx, ref)
	if err != nil {
		return err
	}

	for _, d := range deadlines {
		if d.CurrentDoing && d.ID != target.ID {
			if err := s.backend.SetDeadlineDoing(ctx, userID, d.ID, false); err != nil {
				return err
			}
		}
	}
	return s.backend.SetDeadlineDoing(ctx, userID, target.ID, true)
}

// Move shifts a deadline to a new 1-based position and persists the whole
// order.
func (s *DeadlineService) Move(ctx context.Context, ref string, position int) error {
	userID, err := s.storage.UserID(ctx)
	if err != nil {
		return err
	}
	deadlines, err := s.backend.Deadlines(ctx, userID)
	if err != nil {
		return err
	}
	target, err := s.Find(ctx, ref)
	if err != nil {
		return err
	}
	if position < 1 || position > len(deadlines) {
		return fmt.Errorf("position %d out of range 1-%d", position, len(deadlines))
	}

	ids := make([]int, 0, len(deadlines))
	for _, d := range deadlines {
		if d.ID != target.ID {
			ids = append(ids, d.ID)
		}
	}
	at := position - 1
	ids = append(ids[:at], append([]int{target.ID}, ids[at:]...)...)

	return s.backend.ReorderDeadlines(ctx, userID, ids)
}
