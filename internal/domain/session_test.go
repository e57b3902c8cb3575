package domain

import (
	"testing"
	"time"
)

func TestNewFocusSession(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	s := NewFocusSession(now)

	if s.ID == "" {
		t.Error("NewFocusSession() should assign an id")
	}
	if s.State != StateFocusing {
		t.Errorf("NewFocusSession() state = %v, want focusing", s.State)
	}
	if !s.StartedAt.Equal(now) {
		t.Errorf("NewFocusSession() startedAt = %v, want %v", s.StartedAt, now)
	}
}

func TestFocusSession_Focusing(t *testing.T) {
	now := time.Now()

	var nilSession *FocusSession
	if nilSession.Focusing() {
		t.Error("nil session should not be focusing")
	}

	s := NewFocusSession(now)
	if !s.Focusing() {
		t.Error("new session should be focusing")
	}

	s.State = StateIdle
	if s.Focusing() {
		t.Error("idle session should not be focusing")
	}
}

func TestFocusSession_ElapsedSeconds(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	s := NewFocusSession(start)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"at start", start, 0},
		{"partial second floors", start.Add(1500 * time.Millisecond), 1},
		{"ten minutes", start.Add(10 * time.Minute), 600},
		{"clock went backwards", start.Add(-5 * time.Second), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.ElapsedSeconds(tt.now); got != tt.want {
				t.Errorf("ElapsedSeconds() = %d, want %d", got, tt.want)
			}
		})
	}

	t.Run("idle session reports zero", func(t *testing.T) {
		idle := &FocusSession{State: StateIdle, StartedAt: start}
		if got := idle.ElapsedSeconds(start.Add(time.Hour)); got != 0 {
			t.Errorf("ElapsedSeconds() = %d, want 0", got)
		}
	})
}

func TestNotificationPayload_FromFriend(t *testing.T) {
	if (NotificationPayload{}).FromFriend() {
		t.Error("empty payload should not be from a friend")
	}
	if !(NotificationPayload{SenderName: "小明"}).FromFriend() {
		t.Error("payload with a sender should be from a friend")
	}
}

func TestFriend_DisplayStatus(t *testing.T) {
	tests := []struct {
		name   string
		friend Friend
		want   string
	}{
		{"timer wins", Friend{Studying: true, CurrentTimer: "25:00"}, "25:00"},
		{"studying", Friend{Studying: true}, "studying"},
		{"relaxing", Friend{}, "relaxing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.friend.DisplayStatus(); got != tt.want {
				t.Errorf("DisplayStatus() = %q, want %q", got, tt.want)
			}
			if tt.friend.Relaxing() != (tt.want == "relaxing") {
				t.Errorf("Relaxing() inconsistent with DisplayStatus()")
			}
		})
	}
}
