package domain

import (
	"errors"
	"time"
)

// Common domain errors.
var (
	ErrSessionActive    = errors.New("focus session already active")
	ErrNoActiveSession  = errors.New("no active focus session")
	ErrNoIdentity       = errors.New("no user identity configured (run \"focusmate login\")")
	ErrDeadlineNotFound = errors.New("deadline not found")
	ErrNotEnoughBadges  = errors.New("not enough badges to send a nudge")
)

// SessionState represents the state of the focus session machine.
type SessionState string

const (
	StateIdle     SessionState = "idle"
	StateFocusing SessionState = "focusing"
)

// StopMode selects what a stop means: a rest break or a real finish.
type StopMode string

const (
	StopPause StopMode = "pause"
	StopEnd   StopMode = "end"
)

// Note markers stored by the backend with each saved session. These are the
// exact values the server expects; do not localize.
const (
	NotePausedRest = "暫停休息"
	NoteFocusEnded = "結束專注"
)

// FocusSession is the single focus interval owned by the session manager.
// Elapsed time is always derived from StartedAt, never stored.
type FocusSession struct {
	ID        string
	State     SessionState
	StartedAt time.Time
}

// NewFocusSession creates a session in the Focusing state starting now.
func NewFocusSession(now time.Time) *FocusSession {
	return &FocusSession{
		ID:        generateID(),
		State:     StateFocusing,
		StartedAt: now,
	}
}

// Focusing reports whether the session is running.
func (s *FocusSession) Focusing() bool {
	return s != nil && s.State == StateFocusing
}

// ElapsedSeconds returns whole seconds since the session started, or 0 when
// not focusing.
func (s *FocusSession) ElapsedSeconds(now time.Time) int {
	if !s.Focusing() {
		return 0
	}
	secs := int(now.Sub(s.StartedAt) / time.Second)
	if secs < 0 {
		return 0
	}
	return secs
}

// SessionOutcome is the backend's response to saving a session, consumed once
// to build the user-facing summary.
type SessionOutcome struct {
	DurationSeconds int
	Minutes         int
	BadgeEarned     bool
	Note            string
}

// RecordStatus is the user's personal record as reported by the backend.
type RecordStatus struct {
	BadgeCount int    `json:"badge_count"`
	Title      string `json:"title"`
}

// DailyFocus is one day's focus total, used for the weekly chart.
type DailyFocus struct {
	Date    string `json:"date"`
	Minutes int    `json:"minutes"`
}
