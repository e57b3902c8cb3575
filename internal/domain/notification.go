package domain

// NotificationContent is what a scheduled or delivered notification shows.
type NotificationContent struct {
	Title string
	Body  string
	Sound bool
}

// NotificationPayload carries the data a notification was scheduled with.
// MessageID and SenderName are set only for friend-message notifications;
// system reminders carry neither.
type NotificationPayload struct {
	MessageID  int
	SenderName string
	ImageURL   string
}

// FromFriend reports whether the payload attributes the notification to a
// friend rather than to the app itself.
func (p NotificationPayload) FromFriend() bool {
	return p.SenderName != ""
}

// UnreadMessage is the single most recent unread message returned by the
// unread probe endpoint.
type UnreadMessage struct {
	ID         int    `json:"id"`
	SenderName string `json:"sender_name"`
	Content    string `json:"content"`
}

// UnreadProbe is the poll response envelope.
type UnreadProbe struct {
	HasUnread bool           `json:"has_unread"`
	Data      *UnreadMessage `json:"data"`
}
