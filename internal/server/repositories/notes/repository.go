package notes

import (
	"context"

	"github.com/dmitrijs2005/todoweb/internal/server/models"
)

// Repository is the calendar note store, keyed by (user, date).
type Repository interface {
	ListByUser(ctx context.Context, userID int64) ([]*models.CalendarNote, error)
	GetByDate(ctx context.Context, userID int64, date string) (*models.CalendarNote, error)
	Upsert(ctx context.Context, note *models.CalendarNote) (*models.CalendarNote, error)
}
