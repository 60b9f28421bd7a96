package models

import "time"

// CalendarNote is free text attached to one calendar day. There is at most
// one note per (UserID, Date).
type CalendarNote struct {
	ID        int64
	UserID    int64
	Date      string
	Content   string
	CreatedAt time.Time
}
