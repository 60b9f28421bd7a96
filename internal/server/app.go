// Package server wires the TodoWeb application together: logging, the
// database pool, migrations, services and the HTTP server.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/todoweb/internal/dbx"
	"github.com/dmitrijs2005/todoweb/internal/logging"
	"github.com/dmitrijs2005/todoweb/internal/server/config"
	"github.com/dmitrijs2005/todoweb/internal/server/httpapi"
	"github.com/dmitrijs2005/todoweb/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/todoweb/internal/server/services"
	"github.com/gin-gonic/gin"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	userService *services.UserService
	taskService *services.TaskService
	noteService *services.NoteService
}

// NewApp opens the database, applies migrations and builds the services.
// The returned App owns the pool; Run closes it on exit.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(os.Stdout, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	db, dialect, err := dbx.Open(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm, err := repomanager.NewSQLRepositoryManager(dialect)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	logger.Info(ctx, "Database ready", "dialect", string(dialect))

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		userService: services.NewUserService(db, rm, c),
		taskService: services.NewTaskService(db, rm),
		noteService: services.NewNoteService(db, rm),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) newHTTPServer() (*httpapi.HTTPServer, error) {
	return httpapi.NewHTTPServer(app.config, app.logger, httpapi.Services{
		Users: app.userService,
		Tasks: app.taskService,
		Notes: app.noteService,
		Ping:  app.db.PingContext,
	})
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s, err := app.newHTTPServer()
	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the database pool.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	gin.SetMode(gin.ReleaseMode)
	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
