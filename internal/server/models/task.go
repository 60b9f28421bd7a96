package models

import "time"

// Task is a positioned, completable item on a user's canvas.
type Task struct {
	ID        int64
	UserID    int64
	Label     string
	X         int
	Y         int
	Color     string
	Completed bool
	CreatedAt time.Time
}
