package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/todoweb/internal/dbx"
	"github.com/dmitrijs2005/todoweb/internal/server/repositories/notes"
	"github.com/dmitrijs2005/todoweb/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/todoweb/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Tasks(db dbx.DBTX) tasks.Repository
	Notes(db dbx.DBTX) notes.Repository
}
