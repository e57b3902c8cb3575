// Package services implements the application use cases on top of the ports.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/focusmate/focusmate-cli/internal/domain"
	"github.com/focusmate/focusmate-cli/internal/ports"
)

// Rest reminder notification content. The body text is fixed regardless of the
// configured delay; the server-side app shipped it that way.
const (
	reminderTitle = "FocusMate 提醒 🐱"
	reminderBody  = "已經休息 1 分鐘了喔，該回來了！"
)

// SessionManager owns the focus session state machine. All session state lives
// here (and in storage for cross-invocation restarts) rather than in globals,
// so every transition goes through one lock.
type SessionManager struct {
	backend       ports.Backend
	storage       ports.Storage
	scheduler     ports.NotificationScheduler
	clock         ports.Clock
	logger        *slog.Logger
	reminderDelay time.Duration

	mu      sync.Mutex
	session *domain.FocusSession
	resting bool
}

// NewSessionManager creates a session manager. The resting flag and any
// pending reminders are process-local; only the running session itself is
// persisted.
func NewSessionManager(backend ports.Backend, storage ports.Storage, scheduler ports.NotificationScheduler, clock ports.Clock, logger *slog.Logger, reminderDelay time.Duration) *SessionManager {
	return &SessionManager{
		backend:       backend,
		storage:       storage,
		scheduler:     scheduler,
		clock:         clock,
		logger:        logger,
		reminderDelay: reminderDelay,
	}
}

// Restore loads a persisted running session so a stop issued in a later CLI
// invocation still sees it.
func (m *SessionManager) Restore(ctx context.Context) error {
	active, err := m.storage.ActiveSession(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}
	if active == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = &domain.FocusSession{
		ID:        active.ID,
		State:     domain.StateFocusing,
		StartedAt: active.StartedAt,
	}
	return nil
}

// Start begins a new focus session. The transition clears any pending rest
// reminder and the resting flag before the session exists, then flips the
// remote presence flag best effort.
func (m *SessionManager) Start(ctx context.Context) (*domain.FocusSession, error) {
	userID, err := m.storage.UserID(ctx)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	if m.session.Focusing() {
		m.mu.Unlock()
		return nil, domain.ErrSessionActive
	}

	m.scheduler.CancelAll()
	m.resting = false

	session := domain.NewFocusSession(m.clock.Now())
	m.session = session
	m.mu.Unlock()

	if err := m.storage.SetActiveSession(ctx, &ports.ActiveSession{ID: session.ID, StartedAt: session.StartedAt}); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	// Presence is cosmetic; a failure here must not block the session.
	if err := m.backend.SetStudying(ctx, userID, true); err != nil {
		m.logger.Warn("failed to set studying flag", "error", err)
	}

	return session, nil
}

// StopRequest carries the inputs to a session stop.
type StopRequest struct {
	Mode             domain.StopMode
	Note             string
	PhotoBase64      string
	PhotoDescription string
}

// Stop finishes the active session. Local state is torn down first so the
// session never survives a failed save; the remote save error is surfaced to
// the caller because the interval would otherwise be lost.
func (m *SessionManager) Stop(ctx context.Context, req StopRequest) (*domain.SessionOutcome, error) {
	userID, err := m.storage.UserID(ctx)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	if !m.session.Focusing() {
		m.mu.Unlock()
		return nil, domain.ErrNoActiveSession
	}

	now := m.clock.Now()
	duration := m.session.ElapsedSeconds(now)
	startedAt := m.session.StartedAt
	sessionID := m.session.ID

	m.session = nil
	m.scheduler.CancelAll()
	m.resting = req.Mode == domain.StopPause
	m.mu.Unlock()

	if err := m.storage.ClearActiveSession(ctx); err != nil {
		m.logger.Warn("failed to clear persisted session", "error", err)
	}

	note := req.Note
	switch req.Mode {
	case domain.StopPause:
		if note == "" {
			note = domain.NotePausedRest
		}
		m.scheduleRestReminder()
	case domain.StopEnd:
		if note == "" {
			note = domain.NoteFocusEnded
		}
		// A pause deliberately leaves the remote flag up; only a real
		// finish takes it down.
		if err := m.backend.SetStudying(ctx, userID, false); err != nil {
			m.logger.Warn("failed to clear studying flag", "error", err)
		}
	}

	outcome, err := m.backend.SaveSession(ctx, ports.SaveSessionRequest{
		UserID:          userID,
		DurationSeconds: duration,
		Note:            note,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	outcome.DurationSeconds = duration
	outcome.Note = note

	if req.PhotoBase64 != "" {
		err := m.backend.UploadPhoto(ctx, ports.PhotoUpload{
			UserID:      userID,
			ImageBase64: req.PhotoBase64,
			Description: req.PhotoDescription,
		})
		if err != nil {
			m.logger.Warn("failed to upload photo", "error", err)
		}
	}

	local := &ports.LocalSession{
		ID:              sessionID,
		StartedAt:       startedAt,
		DurationSeconds: duration,
		Note:            note,
		BadgeEarned:     outcome.BadgeEarned,
	}
	if err := m.storage.AppendSession(ctx, local); err != nil {
		m.logger.Warn("failed to log session locally", "error", err)
	}

	return outcome, nil
}

func (m *SessionManager) scheduleRestReminder() {
	_, err := m.scheduler.ScheduleIn(m.reminderDelay,
		domain.NotificationContent{Title: reminderTitle, Body: reminderBody, Sound: true},
		domain.NotificationPayload{})
	if err != nil {
		m.logger.Warn("failed to schedule rest reminder", "error", err)
	}
}

// Elapsed returns whole seconds since the session started, or 0 when idle.
func (m *SessionManager) Elapsed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.ElapsedSeconds(m.clock.Now())
}

// Focusing reports whether a session is running.
func (m *SessionManager) Focusing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.Focusing()
}

// Resting reports whether the user stopped with a rest break and has not
// started again. Not persisted; a restart comes back not resting.
func (m *SessionManager) Resting() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resting
}

// FocusState snapshots the machine for the MCP surface and the status command.
func (m *SessionManager) FocusState() ports.FocusState {
	m.mu.Lock()
	defer m.mu.Unlock()

	state := domain.StateIdle
	if m.session.Focusing() {
		state = domain.StateFocusing
	}
	return ports.FocusState{
		State:          state,
		ElapsedSeconds: m.session.ElapsedSeconds(m.clock.Now()),
		Resting:        m.resting,
	}
}
