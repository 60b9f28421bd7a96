package httpapi

import (
	"time"

	"github.com/dmitrijs2005/todoweb/internal/server/models"
)

// Request bodies use pointers so that "required" rejects absent fields
// while still accepting zero values such as x: 0 or content: "".

type registerRequest struct {
	UserName    *string `json:"username" binding:"required"`
	Email       *string `json:"email" binding:"required"`
	Password    *string `json:"password" binding:"required"`
	DisplayName *string `json:"display_name"`
}

type loginRequest struct {
	UserName *string `json:"username" binding:"required"`
	Password *string `json:"password" binding:"required"`
}

type checkUsernameRequest struct {
	UserName string `json:"username"`
}

type experienceRequest struct {
	Points *int64 `json:"points" binding:"required"`
}

type createTaskRequest struct {
	Label *string `json:"label" binding:"required"`
	X     *int    `json:"x" binding:"required"`
	Y     *int    `json:"y" binding:"required"`
	Color *string `json:"color" binding:"required"`
}

type upsertNoteRequest struct {
	Date    *string `json:"date" binding:"required"`
	Content *string `json:"content" binding:"required"`
}

type userResponse struct {
	ID               int64     `json:"id"`
	UserName         string    `json:"username"`
	Email            string    `json:"email"`
	DisplayName      *string   `json:"display_name"`
	ExperiencePoints int64     `json:"experience_points"`
	CreatedAt        time.Time `json:"created_at"`
}

type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        userResponse `json:"user"`
}

type taskResponse struct {
	ID        int64     `json:"id"`
	Label     string    `json:"label"`
	X         int       `json:"x"`
	Y         int       `json:"y"`
	Color     string    `json:"color"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

type noteResponse struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type availabilityResponse struct {
	Available bool `json:"available"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:               u.ID,
		UserName:         u.UserName,
		Email:            u.Email,
		DisplayName:      u.DisplayName,
		ExperiencePoints: u.ExperiencePoints,
		CreatedAt:        u.CreatedAt,
	}
}

func toTaskResponse(t *models.Task) taskResponse {
	return taskResponse{
		ID:        t.ID,
		Label:     t.Label,
		X:         t.X,
		Y:         t.Y,
		Color:     t.Color,
		Completed: t.Completed,
		CreatedAt: t.CreatedAt,
	}
}

func toNoteResponse(n *models.CalendarNote) noteResponse {
	return noteResponse{
		ID:        n.ID,
		Date:      n.Date,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
	}
}
