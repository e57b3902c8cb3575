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

// messageTitleFormat is the notification title for a friend message.
const messageTitleFormat = "來自 %s 的訊息 🔔"

// Poller probes the backend for the latest unread message and raises a local
// notification for each new one. Polling failures are silent; the next tick
// retries anyway. The dedup id is per-process, so the first unread message is
// re-announced after a restart.
type Poller struct {
	backend   ports.Backend
	scheduler ports.NotificationScheduler
	logger    *slog.Logger
	interval  time.Duration

	mu     sync.Mutex
	lastID int
}

// NewPoller creates a poller. Run must be called to start probing.
func NewPoller(backend ports.Backend, scheduler ports.NotificationScheduler, logger *slog.Logger, interval time.Duration) *Poller {
	return &Poller{
		backend:   backend,
		scheduler: scheduler,
		logger:    logger,
		interval:  interval,
	}
}

// Run probes until ctx is cancelled. The first probe happens after one full
// interval, matching the app's behavior of waiting out the initial tick.
func (p *Poller) Run(ctx context.Context, userID int) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Debug("message polling started", "interval", p.interval)
	for {
		select {
		case <-ctx.Done():
			p.logger.Debug("message polling stopped")
			return
		case <-ticker.C:
			p.Poll(ctx, userID)
		}
	}
}

// Poll performs a single probe. Exposed so a tick can be driven from tests
// and from the TUI's own update loop.
func (p *Poller) Poll(ctx context.Context, userID int) {
	probe, err := p.backend.LatestUnread(ctx, userID)
	if err != nil {
		p.logger.Debug("unread probe failed", "error", err)
		return
	}
	if !probe.HasUnread || probe.Data == nil {
		return
	}

	msg := probe.Data
	p.mu.Lock()
	if msg.ID == p.lastID {
		p.mu.Unlock()
		return
	}
	p.lastID = msg.ID
	p.mu.Unlock()

	content := domain.NotificationContent{
		Title: fmt.Sprintf(messageTitleFormat, msg.SenderName),
		Body:  msg.Content,
		Sound: true,
	}
	payload := domain.NotificationPayload{
		MessageID:  msg.ID,
		SenderName: msg.SenderName,
	}
	if _, err := p.scheduler.ScheduleNow(content, payload); err != nil {
		p.logger.Debug("failed to raise message notification", "error", err)
	}
}

// HandleOpened marks a message read once its notification has been seen.
// Best effort; the read receipt is cosmetic.
func (p *Poller) HandleOpened(ctx context.Context, payload domain.NotificationPayload) {
	if payload.MessageID == 0 {
		return
	}
	if err := p.backend.MarkRead(ctx, payload.MessageID); err != nil {
		p.logger.Debug("failed to mark message read", "message_id", payload.MessageID, "error", err)
	}
}
