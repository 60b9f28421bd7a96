// Package repomanager provides a concrete RepositoryManager over database/sql,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/todoweb/internal/dbx"
	"github.com/dmitrijs2005/todoweb/internal/server/migrations"
	"github.com/dmitrijs2005/todoweb/internal/server/repositories/notes"
	"github.com/dmitrijs2005/todoweb/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/todoweb/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

// SQLRepositoryManager vends SQL-backed repository implementations
// and exposes a schema migration hook for its dialect.
type SQLRepositoryManager struct {
	gooseDialect  string
	migrationsDir string
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db)
}

// Tasks returns a tasks.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Tasks(db dbx.DBTX) tasks.Repository {
	return tasks.NewSQLRepository(db)
}

// Notes returns a notes.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Notes(db dbx.DBTX) notes.Repository {
	return notes.NewSQLRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(m.gooseDialect); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, m.migrationsDir); err != nil {
		return err
	}
	return nil
}

// NewSQLRepositoryManager constructs a RepositoryManager for dialect.
func NewSQLRepositoryManager(dialect dbx.Dialect) (RepositoryManager, error) {
	switch dialect {
	case dbx.DialectPostgres:
		return &SQLRepositoryManager{gooseDialect: "pgx", migrationsDir: "postgres"}, nil
	case dbx.DialectSQLite:
		return &SQLRepositoryManager{gooseDialect: "sqlite3", migrationsDir: "sqlite"}, nil
	default:
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}
}
