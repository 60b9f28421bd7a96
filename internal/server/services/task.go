package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/todoweb/internal/server/models"
	"github.com/dmitrijs2005/todoweb/internal/server/repositories/repomanager"
)

// CreateTaskParams carries the fields of a new task.
type CreateTaskParams struct {
	Label string
	X     int
	Y     int
	Color string
}

// TaskService manages a user's tasks. Tasks of other users behave as if
// they did not exist.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

func (s *TaskService) List(ctx context.Context, userID int64) ([]*models.Task, error) {
	return s.repomanager.Tasks(s.db).ListByUser(ctx, userID)
}

// Create stores a new, not yet completed task owned by userID.
func (s *TaskService) Create(ctx context.Context, userID int64, p CreateTaskParams) (*models.Task, error) {
	return s.repomanager.Tasks(s.db).Create(ctx, &models.Task{
		UserID: userID,
		Label:  p.Label,
		X:      p.X,
		Y:      p.Y,
		Color:  p.Color,
	})
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID int64) error {
	return s.repomanager.Tasks(s.db).Delete(ctx, userID, taskID)
}

// Complete marks the task completed. Completing it again is not an error.
func (s *TaskService) Complete(ctx context.Context, userID, taskID int64) error {
	return s.repomanager.Tasks(s.db).MarkCompleted(ctx, userID, taskID)
}
