// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID               int64
	UserName         string
	Email            string
	PasswordHash     string
	DisplayName      *string
	ExperiencePoints int64
	CreatedAt        time.Time
}
