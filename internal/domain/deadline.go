package domain

// Deadline is one entry in the user's task list, as stored by the backend.
type Deadline struct {
	ID           int    `json:"id"`
	UserID       int    `json:"user_id"`
	Task         string `json:"thing"`
	DeadlineDate string `json:"deadline_date"`
	Done         bool   `json:"is_done"`
	DisplayOrder int    `json:"display_order"`
	CurrentDoing bool   `json:"current_doing"`
}

// Friend is one row of the friend list with presence-style status.
type Friend struct {
	ID           int    `json:"friend_id"`
	Name         string `json:"name"`
	Studying     bool   `json:"is_studying"`
	CurrentTimer string `json:"current_timer"`
}

// DisplayStatus resolves the status line shown for a friend: an explicit
// timer label wins, then studying, then relaxing.
func (f Friend) DisplayStatus() string {
	if f.CurrentTimer != "" {
		return f.CurrentTimer
	}
	if f.Studying {
		return "studying"
	}
	return "relaxing"
}

// Relaxing reports whether the friend can be nudged back to focus.
func (f Friend) Relaxing() bool {
	return f.DisplayStatus() == "relaxing"
}
