package tasks

import (
	"context"

	"github.com/dmitrijs2005/todoweb/internal/server/models"
)

// Repository is the task store. Every method filters by owner; a task id
// alone never selects a row.
type Repository interface {
	ListByUser(ctx context.Context, userID int64) ([]*models.Task, error)
	Get(ctx context.Context, userID, id int64) (*models.Task, error)
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	Delete(ctx context.Context, userID, id int64) error
	MarkCompleted(ctx context.Context, userID, id int64) error
}
