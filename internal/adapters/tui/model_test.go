package tui

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/focusmate/focusmate-cli/internal/adapters/storage"
	"github.com/focusmate/focusmate-cli/internal/domain"
	"github.com/focusmate/focusmate-cli/internal/ports"
	"github.com/focusmate/focusmate-cli/internal/services"
)

// stubBackend satisfies ports.Backend with canned zero responses, recording
// only what the dialog tests assert on.
type stubBackend struct {
	markedRead []int
}

func (b *stubBackend) SetStudying(context.Context, int, bool) error { return nil }
func (b *stubBackend) SaveSession(context.Context, ports.SaveSessionRequest) (*domain.SessionOutcome, error) {
	return &domain.SessionOutcome{}, nil
}
func (b *stubBackend) UploadPhoto(context.Context, ports.PhotoUpload) error { return nil }
func (b *stubBackend) LatestUnread(context.Context, int) (*domain.UnreadProbe, error) {
	return &domain.UnreadProbe{}, nil
}
func (b *stubBackend) MarkRead(_ context.Context, id int) error {
	b.markedRead = append(b.markedRead, id)
	return nil
}
func (b *stubBackend) SendMessage(context.Context, int, int, string) error { return nil }
func (b *stubBackend) FriendIDs(context.Context, int) ([]int, error)       { return nil, nil }
func (b *stubBackend) FriendStatuses(context.Context, []int) ([]domain.Friend, error) {
	return nil, nil
}
func (b *stubBackend) RecordStatus(context.Context, int) (*domain.RecordStatus, error) {
	return &domain.RecordStatus{}, nil
}
func (b *stubBackend) WeeklyFocus(context.Context, int) ([]domain.DailyFocus, error) {
	return nil, nil
}
func (b *stubBackend) Deadlines(context.Context, int) ([]domain.Deadline, error) { return nil, nil }
func (b *stubBackend) AddDeadline(context.Context, int, string, string) error    { return nil }
func (b *stubBackend) EditDeadline(context.Context, int, int, string, string) error {
	return nil
}
func (b *stubBackend) RemoveDeadline(context.Context, int, int) error        { return nil }
func (b *stubBackend) SetDeadlineDone(context.Context, int, int, bool) error { return nil }
func (b *stubBackend) SetDeadlineDoing(context.Context, int, int, bool) error {
	return nil
}
func (b *stubBackend) ReorderDeadlines(context.Context, int, []int) error { return nil }

// nullScheduler drops everything.
type nullScheduler struct{}

func (nullScheduler) ScheduleIn(time.Duration, domain.NotificationContent, domain.NotificationPayload) (string, error) {
	return "", nil
}
func (nullScheduler) ScheduleNow(domain.NotificationContent, domain.NotificationPayload) (string, error) {
	return "", nil
}
func (nullScheduler) CancelAll()                      {}
func (nullScheduler) OnDelivered(ports.DeliveredFunc) {}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func newTestModel(t *testing.T) (Model, *stubBackend) {
	t.Helper()
	store, err := storage.NewMemory()
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	store.SetUserID(context.Background(), 1)

	backend := &stubBackend{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sched := nullScheduler{}
	app := &services.App{
		Sessions: services.NewSessionManager(backend, store, sched, realClock{}, logger, time.Minute),
		Poller:   services.NewPoller(backend, sched, logger, 5*time.Second),
	}
	return NewModel(context.Background(), app), backend
}

func notif(id int, sender, body string) notificationMsg {
	return notificationMsg{
		content: domain.NotificationContent{Title: "ignored", Body: body},
		payload: domain.NotificationPayload{MessageID: id, SenderName: sender},
	}
}

func TestDialogTitle(t *testing.T) {
	t.Run("friend message is titled by sender", func(t *testing.T) {
		got := dialogTitle(domain.NotificationPayload{MessageID: 1, SenderName: "小明"})
		if got != "來自 小明 的訊息 🔔" {
			t.Errorf("dialogTitle() = %q", got)
		}
	})

	t.Run("system reminder uses the app title", func(t *testing.T) {
		got := dialogTitle(domain.NotificationPayload{})
		if got != appTitle {
			t.Errorf("dialogTitle() = %q, want %q", got, appTitle)
		}
	})
}

func TestDialogLastWriteWins(t *testing.T) {
	m, _ := newTestModel(t)

	updated, _ := m.Update(notif(1, "小明", "first"))
	m = updated.(Model)
	updated, _ = m.Update(notif(2, "小華", "second"))
	m = updated.(Model)

	if m.dialog == nil {
		t.Fatal("expected a dialog")
	}
	if m.dialog.body != "second" {
		t.Errorf("dialog body = %q, newer notification should replace the older", m.dialog.body)
	}
	if m.dialog.payload.MessageID != 2 {
		t.Errorf("dialog payload id = %d, want 2", m.dialog.payload.MessageID)
	}
}

func TestDialogDismissMarksRead(t *testing.T) {
	m, backend := newTestModel(t)

	updated, _ := m.Update(notif(42, "小明", "hi"))
	m = updated.(Model)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	if m.dialog != nil {
		t.Error("dialog should close on enter")
	}
	if cmd == nil {
		t.Fatal("dismiss should produce a command")
	}
	cmd()

	if len(backend.markedRead) != 1 || backend.markedRead[0] != 42 {
		t.Errorf("marked read = %v, want [42]", backend.markedRead)
	}
}

func TestDialogBlocksOtherKeys(t *testing.T) {
	m, _ := newTestModel(t)

	updated, _ := m.Update(notif(1, "", "break over"))
	m = updated.(Model)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	m = updated.(Model)

	if m.dialog == nil {
		t.Error("non-dismiss keys must not close the dialog")
	}
	if m.app.Sessions.Focusing() {
		t.Error("keys behind the dialog must not reach the session machine")
	}
}

func TestFormatClock(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{59, "00:59"},
		{90, "01:30"},
		{3599, "59:59"},
		{3600, "1:00:00"},
		{3725, "1:02:05"},
	}
	for _, c := range cases {
		if got := formatClock(c.seconds); got != c.want {
			t.Errorf("formatClock(%d) = %q, want %q", c.seconds, got, c.want)
		}
	}
}
