// Package httpapi is the HTTP/JSON transport of TodoWeb: routing, bearer
// authentication, request validation and mapping of domain errors to status
// codes.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/todoweb/internal/logging"
	"github.com/dmitrijs2005/todoweb/internal/server/config"
	"github.com/dmitrijs2005/todoweb/internal/server/models"
	"github.com/dmitrijs2005/todoweb/internal/server/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type UserService interface {
	Register(ctx context.Context, p services.RegisterParams) (*models.User, string, error)
	Login(ctx context.Context, userName, password string) (*models.User, string, error)
	IsUsernameAvailable(ctx context.Context, userName string) (bool, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	AdjustExperience(ctx context.Context, userID, delta int64) (*models.User, error)
}

type TaskService interface {
	List(ctx context.Context, userID int64) ([]*models.Task, error)
	Create(ctx context.Context, userID int64, p services.CreateTaskParams) (*models.Task, error)
	Delete(ctx context.Context, userID, taskID int64) error
	Complete(ctx context.Context, userID, taskID int64) error
}

type NoteService interface {
	List(ctx context.Context, userID int64) ([]*models.CalendarNote, error)
	Get(ctx context.Context, userID int64, date string) (*models.CalendarNote, error)
	Upsert(ctx context.Context, userID int64, date, content string) (*models.CalendarNote, error)
}

// Services bundles the dependencies of the handlers. Ping is optional and
// backs GET /health.
type Services struct {
	Users UserService
	Tasks TaskService
	Notes NoteService
	Ping  func(context.Context) error
}

type HTTPServer struct {
	address         string
	shutdownTimeout time.Duration
	users           UserService
	tasks           TaskService
	notes           NoteService
	ping            func(context.Context) error
	logger          logging.Logger
	engine          *gin.Engine
}

// NewHTTPServer builds the router. It fails when the configured CORS
// origins are invalid.
func NewHTTPServer(cfg *config.Config, l logging.Logger, svc Services) (*HTTPServer, error) {
	s := &HTTPServer{
		address:         cfg.HTTPAddr,
		shutdownTimeout: cfg.ShutdownTimeout,
		users:           svc.Users,
		tasks:           svc.Tasks,
		notes:           svc.Notes,
		ping:            svc.Ping,
		logger:          l.With("module", "http_server"),
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(requestID())
	r.Use(s.recovery())
	r.Use(s.accessLog())

	if len(cfg.AllowedOrigins) > 0 {
		corsCfg := cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
			ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}
		if err := corsCfg.Validate(); err != nil {
			return nil, err
		}
		r.Use(cors.New(corsCfg))
	}

	r.NoRoute(func(c *gin.Context) { abortWithDetail(c, http.StatusNotFound, "Not Found") })
	r.NoMethod(func(c *gin.Context) { abortWithDetail(c, http.StatusMethodNotAllowed, "Method Not Allowed") })

	s.routes(r)
	s.engine = r

	return s, nil
}

func (s *HTTPServer) routes(r *gin.Engine) {
	r.GET("/health", s.Health)

	a := r.Group("/auth")
	{
		a.POST("/register", s.Register)
		a.POST("/login", s.Login)
		a.POST("/check-username", s.CheckUsername)
		a.GET("/me", s.requireUser, s.Me)
	}

	u := r.Group("/users")
	{
		u.PATCH("/experience", s.requireUser, s.UpdateExperience)
		u.GET("/:id", s.GetUser)
	}

	t := r.Group("/tasks", s.requireUser)
	{
		t.GET("", s.ListTasks)
		t.POST("", s.CreateTask)
		t.DELETE("/:id", s.DeleteTask)
		t.PATCH("/:id/complete", s.CompleteTask)
	}

	n := r.Group("/calendar-notes", s.requireUser)
	{
		n.GET("", s.ListNotes)
		n.POST("", s.UpsertNote)
		n.GET("/:date", s.GetNote)
	}
}

// Handler exposes the router, e.g. for httptest.
func (s *HTTPServer) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "forced shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
