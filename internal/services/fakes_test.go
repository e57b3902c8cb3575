package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/focusmate/focusmate-cli/internal/domain"
	"github.com/focusmate/focusmate-cli/internal/ports"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// studyingCall records one SetStudying invocation.
type studyingCall struct {
	userID   int
	studying bool
}

// fakeBackend records calls and serves canned responses.
type fakeBackend struct {
	mu sync.Mutex

	studyingCalls []studyingCall
	studyingErr   error

	saveCalls []ports.SaveSessionRequest
	saveErr   error
	outcome   domain.SessionOutcome

	photoCalls []ports.PhotoUpload
	photoErr   error

	probes     []*domain.UnreadProbe
	probeErr   error
	probeIdx   int
	markedRead []int
	markErr    error

	sentMessages []string
	friendIDs    []int
	friends      []domain.Friend
	record       domain.RecordStatus
	weekly       []domain.DailyFocus
	deadlines    []domain.Deadline
	reordered    [][]int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{outcome: domain.SessionOutcome{Minutes: 25, BadgeEarned: false}}
}

func (b *fakeBackend) SetStudying(_ context.Context, userID int, studying bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.studyingCalls = append(b.studyingCalls, studyingCall{userID, studying})
	return b.studyingErr
}

func (b *fakeBackend) SaveSession(_ context.Context, req ports.SaveSessionRequest) (*domain.SessionOutcome, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.saveCalls = append(b.saveCalls, req)
	if b.saveErr != nil {
		return nil, b.saveErr
	}
	out := b.outcome
	return &out, nil
}

func (b *fakeBackend) UploadPhoto(_ context.Context, req ports.PhotoUpload) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.photoCalls = append(b.photoCalls, req)
	return b.photoErr
}

func (b *fakeBackend) LatestUnread(_ context.Context, _ int) (*domain.UnreadProbe, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.probeErr != nil {
		return nil, b.probeErr
	}
	if b.probeIdx >= len(b.probes) {
		return &domain.UnreadProbe{}, nil
	}
	p := b.probes[b.probeIdx]
	b.probeIdx++
	return p, nil
}

func (b *fakeBackend) MarkRead(_ context.Context, messageID int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.markedRead = append(b.markedRead, messageID)
	return b.markErr
}

func (b *fakeBackend) SendMessage(_ context.Context, senderID, receiverID int, content string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sentMessages = append(b.sentMessages, fmt.Sprintf("%d->%d:%s", senderID, receiverID, content))
	return nil
}

func (b *fakeBackend) FriendIDs(_ context.Context, _ int) ([]int, error) {
	return b.friendIDs, nil
}

func (b *fakeBackend) FriendStatuses(_ context.Context, _ []int) ([]domain.Friend, error) {
	return b.friends, nil
}

func (b *fakeBackend) RecordStatus(_ context.Context, _ int) (*domain.RecordStatus, error) {
	r := b.record
	return &r, nil
}

func (b *fakeBackend) WeeklyFocus(_ context.Context, _ int) ([]domain.DailyFocus, error) {
	return b.weekly, nil
}

func (b *fakeBackend) Deadlines(_ context.Context, _ int) ([]domain.Deadline, error) {
	return b.deadlines, nil
}

func (b *fakeBackend) AddDeadline(_ context.Context, _ int, task, date string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deadlines = append(b.deadlines, domain.Deadline{ID: len(b.deadlines) + 1, Task: task, DeadlineDate: date})
	return nil
}

func (b *fakeBackend) EditDeadline(_ context.Context, _, id int, task, date string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.deadlines {
		if b.deadlines[i].ID == id {
			b.deadlines[i].Task = task
			b.deadlines[i].DeadlineDate = date
			return nil
		}
	}
	return domain.ErrDeadlineNotFound
}

func (b *fakeBackend) RemoveDeadline(_ context.Context, _, id int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.deadlines {
		if b.deadlines[i].ID == id {
			b.deadlines = append(b.deadlines[:i], b.deadlines[i+1:]...)
			return nil
		}
	}
	return domain.ErrDeadlineNotFound
}

func (b *fakeBackend) SetDeadlineDone(_ context.Context, _, id int, done bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.deadlines {
		if b.deadlines[i].ID == id {
			b.deadlines[i].Done = done
			return nil
		}
	}
	return domain.ErrDeadlineNotFound
}

func (b *fakeBackend) SetDeadlineDoing(_ context.Context, _, id int, doing bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.deadlines {
		if b.deadlines[i].ID == id {
			b.deadlines[i].CurrentDoing = doing
			return nil
		}
	}
	return domain.ErrDeadlineNotFound
}

func (b *fakeBackend) ReorderDeadlines(_ context.Context, _ int, orderedIDs []int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reordered = append(b.reordered, orderedIDs)
	return nil
}

// scheduledNote is one recorded ScheduleIn/ScheduleNow call.
type scheduledNote struct {
	delay   time.Duration
	content domain.NotificationContent
	payload domain.NotificationPayload
}

// fakeScheduler records scheduling calls without timers.
type fakeScheduler struct {
	mu        sync.Mutex
	scheduled []scheduledNote
	cancels   int
	delivered ports.DeliveredFunc
	nextID    int
}

func (s *fakeScheduler) ScheduleIn(delay time.Duration, content domain.NotificationContent, payload domain.NotificationPayload) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduled = append(s.scheduled, scheduledNote{delay, content, payload})
	s.nextID++
	return fmt.Sprintf("n%d", s.nextID), nil
}

func (s *fakeScheduler) ScheduleNow(content domain.NotificationContent, payload domain.NotificationPayload) (string, error) {
	return s.ScheduleIn(0, content, payload)
}

func (s *fakeScheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancels++
	s.scheduled = nil
}

func (s *fakeScheduler) OnDelivered(fn ports.DeliveredFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delivered = fn
}

func (s *fakeScheduler) lastScheduled() (scheduledNote, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.scheduled) == 0 {
		return scheduledNote{}, false
	}
	return s.scheduled[len(s.scheduled)-1], true
}
