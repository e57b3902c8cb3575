package ports

import (
	"time"

	"github.com/focusmate/focusmate-cli/internal/domain"
)

// Clock abstracts time so the session machine and poller are testable with a
// fake. This is a driven port.
type Clock interface {
	Now() time.Time
}

// DeliveredFunc is invoked when a scheduled notification fires (or a pushed
// one is opened). Invocations are serialized but cross-notification ordering
// is not guaranteed.
type DeliveredFunc func(content domain.NotificationContent, payload domain.NotificationPayload)

// NotificationScheduler schedules fire-once local notifications. This is a
// driven port (implemented by the notification adapter).
type NotificationScheduler interface {
	// ScheduleIn schedules a one-shot notification after delay and returns
	// its handle.
	ScheduleIn(delay time.Duration, content domain.NotificationContent, payload domain.NotificationPayload) (string, error)

	// ScheduleNow delivers a notification immediately.
	ScheduleNow(content domain.NotificationContent, payload domain.NotificationPayload) (string, error)

	// CancelAll cancels every pending scheduled notification.
	CancelAll()

	// OnDelivered registers the single callback by which a delivered
	// notification drives in-app UI.
	OnDelivered(fn DeliveredFunc)
}
