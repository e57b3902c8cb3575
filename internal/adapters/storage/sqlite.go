// Package storage provides the SQLite implementation of the local state port.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/focusmate/focusmate-cli/internal/domain"
	"github.com/focusmate/focusmate-cli/internal/ports"
	_ "modernc.org/sqlite"
)

// sqliteStorage implements the ports.Storage interface using SQLite.
type sqliteStorage struct {
	db *sql.DB
}

// Ensure sqliteStorage implements ports.Storage.
var _ ports.Storage = (*sqliteStorage)(nil)

// New creates a new SQLite storage instance.
func New(dbPath string) (ports.Storage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	s := &sqliteStorage{db: db}
	if err := s.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory storage instance for testing.
func NewMemory() (ports.Storage, error) {
	return New(":memory:")
}

// Close closes the database connection.
func (s *sqliteStorage) Close() error {
	return s.db.Close()
}

// Migrate creates the database schema.
func (s *sqliteStorage) Migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS identity (
		key TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS active_session (
		key TEXT PRIMARY KEY,
		id TEXT NOT NULL,
		started_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS focus_log (
		id TEXT PRIMARY KEY,
		started_at DATETIME NOT NULL,
		duration_seconds INTEGER NOT NULL,
		note TEXT,
		badge_earned INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_focus_log_started ON focus_log(started_at);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// UserID returns the logged-in identity.
func (s *sqliteStorage) UserID(ctx context.Context) (int, error) {
	var id int
	err := s.db.QueryRowContext(ctx, `SELECT user_id FROM identity WHERE key = 'current'`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrNoIdentity
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query identity: %w", err)
	}
	return id, nil
}

// SetUserID persists the identity selected at login.
func (s *sqliteStorage) SetUserID(ctx context.Context, id int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO identity (key, user_id) VALUES ('current', ?)
		 ON CONFLICT(key) DO UPDATE SET user_id = excluded.user_id`, id)
	if err != nil {
		return fmt.Errorf("failed to save identity: %w", err)
	}
	return nil
}

// ClearUserID removes the identity at logout.
func (s *sqliteStorage) ClearUserID(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM identity WHERE key = 'current'`); err != nil {
		return fmt.Errorf("failed to clear identity: %w", err)
	}
	return nil
}

// ActiveSession returns the persisted running session, or nil.
func (s *sqliteStorage) ActiveSession(ctx context.Context) (*ports.ActiveSession, error) {
	var (
		id        string
		startedAt time.Time
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, started_at FROM active_session WHERE key = 'current'`).Scan(&id, &startedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query active session: %w", err)
	}
	return &ports.ActiveSession{ID: id, StartedAt: startedAt}, nil
}

// SetActiveSession records the running session.
func (s *sqliteStorage) SetActiveSession(ctx context.Context, a *ports.ActiveSession) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO active_session (key, id, started_at) VALUES ('current', ?, ?)
		 ON CONFLICT(key) DO UPDATE SET id = excluded.id, started_at = excluded.started_at`,
		a.ID, a.StartedAt)
	if err != nil {
		return fmt.Errorf("failed to save active session: %w", err)
	}
	return nil
}

// ClearActiveSession removes the running session row.
func (s *sqliteStorage) ClearActiveSession(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM active_session WHERE key = 'current'`); err != nil {
		return fmt.Errorf("failed to clear active session: %w", err)
	}
	return nil
}

// AppendSession appends a finished interval to the local log.
func (s *sqliteStorage) AppendSession(ctx context.Context, l *ports.LocalSession) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO focus_log (id, started_at, duration_seconds, note, badge_earned)
		 VALUES (?, ?, ?, ?, ?)`,
		l.ID, l.StartedAt, l.DurationSeconds, l.Note, boolToInt(l.BadgeEarned))
	if err != nil {
		return fmt.Errorf("failed to append session: %w", err)
	}
	return nil
}

// RecentSessions lists locally logged intervals, newest first.
func (s *sqliteStorage) RecentSessions(ctx context.Context, limit int) ([]*ports.LocalSession, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, duration_seconds, note, badge_earned
		 FROM focus_log ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query focus log: %w", err)
	}
	defer rows.Close()

	var sessions []*ports.LocalSession
	for rows.Next() {
		var (
			l     ports.LocalSession
			badge int
		)
		if err := rows.Scan(&l.ID, &l.StartedAt, &l.DurationSeconds, &l.Note, &badge); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		l.BadgeEarned = badge != 0
		sessions = append(sessions, &l)
	}
	return sessions, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
