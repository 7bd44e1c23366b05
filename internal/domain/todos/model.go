package todos

import "time"

// Todo is a reminder owned directly by a user (feed for the calendar view).
type Todo struct {
	ID     string
	UserID string

	Title   string
	Done    bool
	DueDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
