package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/focusmate/focusmate-cli/internal/domain"
)

func setupPoller(t *testing.T) (*Poller, *fakeBackend, *fakeScheduler) {
	t.Helper()
	backend := newFakeBackend()
	sched := &fakeScheduler{}
	p := NewPoller(backend, sched, testLogger(), 5*time.Second)
	return p, backend, sched
}

func TestPoller_Poll(t *testing.T) {
	ctx := context.Background()

	t.Run("new message raises a notification", func(t *testing.T) {
		p, backend, sched := setupPoller(t)
		backend.probes = []*domain.UnreadProbe{
			{HasUnread: true, Data: &domain.UnreadMessage{ID: 42, SenderName: "小明", Content: "加油！"}},
		}

		p.Poll(ctx, 1)

		note, ok := sched.lastScheduled()
		if !ok {
			t.Fatal("expected a notification")
		}
		if note.content.Title != "來自 小明 的訊息 🔔" {
			t.Errorf("title = %q", note.content.Title)
		}
		if note.content.Body != "加油！" {
			t.Errorf("body = %q", note.content.Body)
		}
		if note.payload.MessageID != 42 || note.payload.SenderName != "小明" {
			t.Errorf("payload = %+v", note.payload)
		}
	})

	t.Run("same id is announced once", func(t *testing.T) {
		p, backend, sched := setupPoller(t)
		msg := &domain.UnreadMessage{ID: 7, SenderName: "小華", Content: "hi"}
		backend.probes = []*domain.UnreadProbe{
			{HasUnread: true, Data: msg},
			{HasUnread: true, Data: msg},
		}

		p.Poll(ctx, 1)
		p.Poll(ctx, 1)

		if len(sched.scheduled) != 1 {
			t.Errorf("notifications = %d, want 1", len(sched.scheduled))
		}
	})

	t.Run("changed id is announced again", func(t *testing.T) {
		p, backend, sched := setupPoller(t)
		backend.probes = []*domain.UnreadProbe{
			{HasUnread: true, Data: &domain.UnreadMessage{ID: 7, SenderName: "a", Content: "x"}},
			{HasUnread: true, Data: &domain.UnreadMessage{ID: 8, SenderName: "b", Content: "y"}},
		}

		p.Poll(ctx, 1)
		p.Poll(ctx, 1)

		if len(sched.scheduled) != 2 {
			t.Errorf("notifications = %d, want 2", len(sched.scheduled))
		}
	})

	t.Run("no unread is quiet", func(t *testing.T) {
		p, backend, sched := setupPoller(t)
		backend.probes = []*domain.UnreadProbe{{HasUnread: false}}

		p.Poll(ctx, 1)

		if len(sched.scheduled) != 0 {
			t.Errorf("notifications = %d, want 0", len(sched.scheduled))
		}
	})

	t.Run("probe error is silent and does not advance dedup", func(t *testing.T) {
		p, backend, sched := setupPoller(t)
		backend.probeErr = errors.New("network down")
		p.Poll(ctx, 1)

		backend.probeErr = nil
		backend.probes = []*domain.UnreadProbe{
			{HasUnread: true, Data: &domain.UnreadMessage{ID: 3, SenderName: "c", Content: "z"}},
		}
		p.Poll(ctx, 1)

		if len(sched.scheduled) != 1 {
			t.Errorf("notifications = %d, want 1", len(sched.scheduled))
		}
	})
}

func TestPoller_HandleOpened(t *testing.T) {
	ctx := context.Background()

	t.Run("marks the message read", func(t *testing.T) {
		p, backend, _ := setupPoller(t)

		p.HandleOpened(ctx, domain.NotificationPayload{MessageID: 42, SenderName: "小明"})

		if len(backend.markedRead) != 1 || backend.markedRead[0] != 42 {
			t.Errorf("marked read = %v, want [42]", backend.markedRead)
		}
	})

	t.Run("system reminders carry no message", func(t *testing.T) {
		p, backend, _ := setupPoller(t)

		p.HandleOpened(ctx, domain.NotificationPayload{})

		if len(backend.markedRead) != 0 {
			t.Errorf("marked read = %v, want none", backend.markedRead)
		}
	})

	t.Run("mark read failure is swallowed", func(t *testing.T) {
		p, backend, _ := setupPoller(t)
		backend.markErr = errors.New("gone")

		p.HandleOpened(ctx, domain.NotificationPayload{MessageID: 9})
	})
}

func TestPoller_Run_StopsOnCancel(t *testing.T) {
	backend := newFakeBackend()
	sched := &fakeScheduler{}
	p := NewPoller(backend, sched, testLogger(), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx, 1)
		close(done)
	}()

	time.Sleep(35 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run() did not stop on cancel")
	}
}
