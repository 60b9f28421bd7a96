package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/todoweb/internal/common"
	"github.com/dmitrijs2005/todoweb/internal/dbx"
	"github.com/dmitrijs2005/todoweb/internal/server/models"
)

const selectNote = `SELECT id, user_id, date, content, created_at
		 FROM calendar_notes`

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) ListByUser(ctx context.Context, userID int64) ([]*models.CalendarNote, error) {
	rows, err := r.db.QueryContext(ctx, selectNote+` WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select notes: %w", err)
	}
	defer rows.Close()

	result := make([]*models.CalendarNote, 0)
	for rows.Next() {
		n := &models.CalendarNote{}
		if err := rows.Scan(&n.ID, &n.UserID, &n.Date, &n.Content, &n.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, n)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *SQLRepository) GetByDate(ctx context.Context, userID int64, date string) (*models.CalendarNote, error) {
	n := &models.CalendarNote{}
	err := r.db.QueryRowContext(ctx, selectNote+` WHERE user_id = $1 AND date = $2`, userID, date).
		Scan(&n.ID, &n.UserID, &n.Date, &n.Content, &n.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}

// Upsert writes content for (UserID, Date) in one statement. The unique
// (user_id, date) constraint turns a concurrent second insert into an
// update, so a day never holds two notes; the last committed writer wins.
func (r *SQLRepository) Upsert(ctx context.Context, note *models.CalendarNote) (*models.CalendarNote, error) {
	query :=
		`INSERT INTO calendar_notes (user_id, date, content)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, date)
		 DO UPDATE SET content = EXCLUDED.content
		 `

	if _, err := r.db.ExecContext(ctx, query, note.UserID, note.Date, note.Content); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return r.GetByDate(ctx, note.UserID, note.Date)
}
