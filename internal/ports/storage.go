package ports

import (
	"context"
	"time"
)

// LocalSession is one locally recorded focus interval. The backend is the
// system of record; this log exists so the stats view works offline.
type LocalSession struct {
	ID              string
	StartedAt       time.Time
	DurationSeconds int
	Note            string
	BadgeEarned     bool
}

// ActiveSession is the persisted running session, if any. Stored so start and
// stop can happen in separate CLI invocations; elapsed time is still derived
// from StartedAt.
type ActiveSession struct {
	ID        string
	StartedAt time.Time
}

// Storage is the driven port for local SQLite state.
type Storage interface {
	// UserID returns the logged-in identity, or ErrNoIdentity.
	UserID(ctx context.Context) (int, error)

	// SetUserID persists the identity selected at login.
	SetUserID(ctx context.Context, id int) error

	// ClearUserID removes the identity at logout.
	ClearUserID(ctx context.Context) error

	// ActiveSession returns the persisted running session, or nil.
	ActiveSession(ctx context.Context) (*ActiveSession, error)

	// SetActiveSession records the running session.
	SetActiveSession(ctx context.Context, s *ActiveSession) error

	// ClearActiveSession removes the running session row.
	ClearActiveSession(ctx context.Context) error

	// AppendSession appends a finished interval to the local log.
	AppendSession(ctx context.Context, s *LocalSession) error

	// RecentSessions lists locally logged intervals, newest first.
	RecentSessions(ctx context.Context, limit int) ([]*LocalSession, error)

	// Close closes the database.
	Close() error

	// Migrate creates the schema.
	Migrate() error
}
