// Package ports defines the interfaces (driven and driving ports) between the
// application layer and external infrastructure.
package ports

import (
	"context"

	"github.com/focusmate/focusmate-cli/internal/domain"
)

// SaveSessionRequest is the payload for persisting a finished focus interval.
type SaveSessionRequest struct {
	UserID          int
	DurationSeconds int
	Note            string
}

// PhotoUpload carries a completion photo with an optional description.
type PhotoUpload struct {
	UserID      int
	ImageBase64 string
	Description string
}

// Backend is the driven port for the FocusMate REST API. Implemented by the
// api adapter; replaced with a fake in tests.
type Backend interface {
	// SetStudying flips the user's remote "is studying" presence flag.
	SetStudying(ctx context.Context, userID int, studying bool) error

	// SaveSession persists a finished or paused focus interval and returns
	// the computed outcome (minutes, badge grant).
	SaveSession(ctx context.Context, req SaveSessionRequest) (*domain.SessionOutcome, error)

	// UploadPhoto stores a completion photo for the user.
	UploadPhoto(ctx context.Context, req PhotoUpload) error

	// LatestUnread probes for the single most recent unread message.
	LatestUnread(ctx context.Context, userID int) (*domain.UnreadProbe, error)

	// MarkRead records a read receipt for a message. Best effort.
	MarkRead(ctx context.Context, messageID int) error

	// SendMessage delivers a nudge from one user to another.
	SendMessage(ctx context.Context, senderID, receiverID int, content string) error

	// FriendIDs returns the user's friend graph as a flat id list.
	FriendIDs(ctx context.Context, userID int) ([]int, error)

	// FriendStatuses resolves presence for a set of friend ids.
	FriendStatuses(ctx context.Context, ids []int) ([]domain.Friend, error)

	// RecordStatus returns the user's badge count and title.
	RecordStatus(ctx context.Context, userID int) (*domain.RecordStatus, error)

	// WeeklyFocus returns per-day focus minutes for the trailing week.
	WeeklyFocus(ctx context.Context, userID int) ([]domain.DailyFocus, error)

	// Deadlines returns the user's deadline list ordered by display_order.
	Deadlines(ctx context.Context, userID int) ([]domain.Deadline, error)

	// AddDeadline creates a deadline entry.
	AddDeadline(ctx context.Context, userID int, task, date string) error

	// EditDeadline renames and/or redates an entry.
	EditDeadline(ctx context.Context, userID, id int, task, date string) error

	// RemoveDeadline deletes an entry.
	RemoveDeadline(ctx context.Context, userID, id int) error

	// SetDeadlineDone toggles an entry's completion flag.
	SetDeadlineDone(ctx context.Context, userID, id int, done bool) error

	// SetDeadlineDoing toggles the "currently working on this" marker.
	SetDeadlineDoing(ctx context.Context, userID, id int, doing bool) error

	// ReorderDeadlines persists a new display order for the given ids.
	ReorderDeadlines(ctx context.Context, userID int, orderedIDs []int) error
}
