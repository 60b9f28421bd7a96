package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/todoweb/internal/common"
	"github.com/dmitrijs2005/todoweb/internal/dbx"
	"github.com/dmitrijs2005/todoweb/internal/server/models"
)

const selectTask = `SELECT id, user_id, label, x, y, color, completed, created_at
		 FROM tasks`

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Task, error) {
	rows, err := r.db.QueryContext(ctx, selectTask+` WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasks: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Task, 0)
	for rows.Next() {
		item, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *SQLRepository) Get(ctx context.Context, userID, id int64) (*models.Task, error) {
	row := r.db.QueryRowContext(ctx, selectTask+` WHERE id = $1 AND user_id = $2`, id, userID)

	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

func (r *SQLRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	query :=
		`INSERT INTO tasks (user_id, label, x, y, color, completed)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id
		 `

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		task.UserID, task.Label, task.X, task.Y, task.Color, task.Completed).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return r.Get(ctx, task.UserID, id)
}

func (r *SQLRepository) Delete(ctx context.Context, userID, id int64) error {
	return r.execOne(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
}

// MarkCompleted sets completed unconditionally, so repeating it succeeds.
func (r *SQLRepository) MarkCompleted(ctx context.Context, userID, id int64) error {
	return r.execOne(ctx, `UPDATE tasks SET completed = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
}

// execOne runs a statement expected to touch exactly one owned row.
func (r *SQLRepository) execOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}

	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (*models.Task, error) {
	t := &models.Task{}
	if err := s.Scan(&t.ID, &t.UserID, &t.Label, &t.X, &t.Y, &t.Color, &t.Completed, &t.CreatedAt); err != nil {
		return nil, err
	}
	return t, nil
}
