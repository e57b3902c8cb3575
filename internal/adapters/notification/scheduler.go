// Package notification provides desktop notification scheduling.
package notification

import (
	"log/slog"
	"sync"
	"time"

	"github.com/focusmate/focusmate-cli/internal/config"
	"github.com/focusmate/focusmate-cli/internal/domain"
	"github.com/focusmate/focusmate-cli/internal/ports"
	"github.com/gen2brain/beeep"
	"github.com/google/uuid"
)

// pending is one scheduled, not-yet-fired notification.
type pending struct {
	timer   *time.Timer
	content domain.NotificationContent
	payload domain.NotificationPayload
}

// Scheduler schedules fire-once desktop notifications and routes deliveries
// into the in-app dialog via a single callback.
type Scheduler struct {
	cfg    *config.NotificationConfig
	logger *slog.Logger

	mu        sync.Mutex
	scheduled map[string]*pending
	delivered ports.DeliveredFunc

	warnOnce sync.Once
}

// Ensure Scheduler implements the port.
var _ ports.NotificationScheduler = (*Scheduler)(nil)

// New creates a scheduler with the given notification configuration.
func New(cfg *config.NotificationConfig, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cfg:       cfg,
		logger:    logger,
		scheduled: make(map[string]*pending),
	}
}

// OnDelivered registers the delivery callback. Deliveries are serialized
// under the scheduler's lock; ordering between notifications firing close
// together is not guaranteed.
func (s *Scheduler) OnDelivered(fn ports.DeliveredFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delivered = fn
}

// ScheduleIn schedules a one-shot notification after delay.
func (s *Scheduler) ScheduleIn(delay time.Duration, content domain.NotificationContent, payload domain.NotificationPayload) (string, error) {
	handle := uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()

	p := &pending{content: content, payload: payload}
	p.timer = time.AfterFunc(delay, func() {
		s.fire(handle)
	})
	s.scheduled[handle] = p
	return handle, nil
}

// ScheduleNow delivers a notification immediately.
func (s *Scheduler) ScheduleNow(content domain.NotificationContent, payload domain.NotificationPayload) (string, error) {
	return s.ScheduleIn(0, content, payload)
}

// CancelAll cancels every pending notification.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for handle, p := range s.scheduled {
		p.timer.Stop()
		delete(s.scheduled, handle)
	}
}

// fire delivers a scheduled notification: OS banner first, then the in-app
// callback. A delivery error never suppresses the in-app dialog.
func (s *Scheduler) fire(handle string) {
	s.mu.Lock()
	p, ok := s.scheduled[handle]
	if !ok {
		// Cancelled between the timer firing and the lock.
		s.mu.Unlock()
		return
	}
	delete(s.scheduled, handle)
	fn := s.delivered
	s.mu.Unlock()

	if s.cfg == nil || s.cfg.Enabled {
		if err := s.notify(p.content); err != nil {
			s.warnOnce.Do(func() {
				s.logger.Warn("Desktop notifications unavailable; reminders will only appear in-app", "error", err)
			})
			s.logger.Debug("Notification delivery failed", "title", p.content.Title, "error", err)
		}
	}

	if fn != nil {
		fn(p.content, p.payload)
	}
}

// notify shows the OS-level banner.
func (s *Scheduler) notify(content domain.NotificationContent) error {
	if content.Sound && (s.cfg == nil || s.cfg.Sound) {
		return beeep.Alert(content.Title, content.Body, "")
	}
	return beeep.Notify(content.Title, content.Body, "")
}

// PendingCount reports how many notifications are scheduled but not fired.
func (s *Scheduler) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.scheduled)
}
