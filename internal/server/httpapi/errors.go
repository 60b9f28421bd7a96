package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/todoweb/internal/common"
	"github.com/gin-gonic/gin"
)

const (
	detailNotAuthenticated   = "Not authenticated"
	detailInvalidCredentials = "Invalid authentication credentials"
	detailUserNotFound       = "User not found"
	detailTaskNotFound       = "Task not found"
	detailNoteNotFound       = "Note not found"
	detailUsernameTaken      = "Username already taken"
	detailEmailRegistered    = "Email already registered"
	detailBadLogin           = "Invalid username or password"
	detailUsernameRequired   = "Username is required"
	detailInternal           = "Internal server error"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

func abortWithDetail(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, errorResponse{Detail: detail})
}

// writeError maps a service error to its status code. notFound is the
// detail reported for common.ErrorNotFound.
func (s *HTTPServer) writeError(c *gin.Context, err error, notFound string) {
	switch {
	case errors.Is(err, common.ErrDuplicateUsername):
		abortWithDetail(c, http.StatusBadRequest, detailUsernameTaken)
	case errors.Is(err, common.ErrDuplicateEmail):
		abortWithDetail(c, http.StatusBadRequest, detailEmailRegistered)
	case errors.Is(err, common.ErrInvalidCredentials):
		abortWithDetail(c, http.StatusUnauthorized, detailBadLogin)
	case errors.Is(err, common.ErrorNotFound):
		abortWithDetail(c, http.StatusNotFound, notFound)
	case errors.Is(err, common.ErrorValidation):
		abortWithDetail(c, http.StatusUnprocessableEntity, err.Error())
	default:
		s.internalError(c, err)
	}
}

// internalError logs err and answers 500 without leaking it.
func (s *HTTPServer) internalError(c *gin.Context, err error) {
	s.logger.Error(c.Request.Context(), "request failed",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"error", err,
		"request_id", c.GetString(requestIDKey),
	)
	abortWithDetail(c, http.StatusInternalServerError, detailInternal)
}

func validationError(c *gin.Context, err error) {
	abortWithDetail(c, http.StatusUnprocessableEntity, err.Error())
}
