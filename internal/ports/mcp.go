package ports

import (
	"context"

	"github.com/focusmate/focusmate-cli/internal/domain"
)

// FocusState is a snapshot of the session machine for external consumers.
type FocusState struct {
	State          domain.SessionState
	ElapsedSeconds int
	Resting        bool
}

// MCPStateProvider is what the MCP server needs from the application layer.
// This is a driving port.
type MCPStateProvider interface {
	FocusState() FocusState
	StartFocus(ctx context.Context) error
	StopFocus(ctx context.Context, mode domain.StopMode, note string) (*domain.SessionOutcome, error)
	ListDeadlines(ctx context.Context) ([]domain.Deadline, error)
	Record(ctx context.Context) (*domain.RecordStatus, error)
}

// MCPHandler is the lifecycle interface of the MCP server adapter.
type MCPHandler interface {
	Start(ctx context.Context) error
	Stop() error
}
