// Package users implements the credential store on top of database/sql.
// Queries use $N placeholders and run unchanged on PostgreSQL and SQLite.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/todoweb/internal/common"
	"github.com/dmitrijs2005/todoweb/internal/dbx"
	"github.com/dmitrijs2005/todoweb/internal/server/models"
)

const selectUser = `SELECT id, username, email, hashed_password, display_name, experience_points, created_at
		 FROM users`

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

// Create inserts user and returns the stored row. Unique violations are
// reported as common.ErrDuplicateUsername or common.ErrDuplicateEmail.
func (r *SQLRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (username, email, hashed_password, display_name)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		user.UserName, user.Email, user.PasswordHash, user.DisplayName).Scan(&id)
	if err != nil {
		if detail, ok := dbx.UniqueViolation(err); ok {
			return nil, duplicateError(detail)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return r.GetByID(ctx, id)
}

func duplicateError(detail string) error {
	switch {
	case strings.Contains(detail, "username"):
		return common.ErrDuplicateUsername
	case strings.Contains(detail, "email"):
		return common.ErrDuplicateEmail
	default:
		return fmt.Errorf("db error: unexpected unique violation %q", detail)
	}
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, selectUser+` WHERE id = $1`, id)
}

func (r *SQLRepository) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	return r.getOne(ctx, selectUser+` WHERE username = $1`, userName)
}

func (r *SQLRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.UserName, &user.Email, &user.PasswordHash,
		&user.DisplayName, &user.ExperiencePoints, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *SQLRepository) ExistsByUserName(ctx context.Context, userName string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, userName)
}

func (r *SQLRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email)
}

func (r *SQLRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var found bool
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(&found); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return found, nil
}

// AddExperience adds delta (possibly negative) to the user's experience
// points in a single statement and returns the updated row.
func (r *SQLRepository) AddExperience(ctx context.Context, id int64, delta int64) (*models.User, error) {
	query :=
		`UPDATE users SET experience_points = experience_points + $1
		 WHERE id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, delta, id)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return nil, common.ErrorNotFound
	}

	return r.GetByID(ctx, id)
}
