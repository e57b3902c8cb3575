package services

import (
	"context"

	"github.com/focusmate/focusmate-cli/internal/domain"
	"github.com/focusmate/focusmate-cli/internal/ports"
)

// App bundles the services a driving adapter needs. It satisfies
// ports.MCPStateProvider so the MCP server can share the same session machine
// as the CLI commands.
type App struct {
	Sessions  *SessionManager
	Deadlines *DeadlineService
	Friends   *FriendService
	Stats     *StatsService
	Poller    *Poller
}

var _ ports.MCPStateProvider = (*App)(nil)

// FocusState snapshots the session machine.
func (a *App) FocusState() ports.FocusState {
	return a.Sessions.FocusState()
}

// StartFocus begins a focus session.
func (a *App) StartFocus(ctx context.Context) error {
	_, err := a.Sessions.Start(ctx)
	return err
}

// StopFocus stops the session with the given mode.
func (a *App) StopFocus(ctx context.Context, mode domain.StopMode, note string) (*domain.SessionOutcome, error) {
	return a.Sessions.Stop(ctx, StopRequest{Mode: mode, Note: note})
}

// ListDeadlines returns the deadline list.
func (a *App) ListDeadlines(ctx context.Context) ([]domain.Deadline, error) {
	return a.Deadlines.List(ctx)
}

// Record returns the user's record status.
func (a *App) Record(ctx context.Context) (*domain.RecordStatus, error) {
	return a.Stats.Record(ctx)
}
