package httpapi

import (
	"errors"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/dmitrijs2005/todoweb/internal/common"
	"github.com/dmitrijs2005/todoweb/internal/server/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	userKey      = "user"
	requestIDKey = "request_id"
)

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(common.RequestIDHeaderName)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(common.RequestIDHeaderName, id)
		c.Next()
	}
}

func (s *HTTPServer) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info(c.Request.Context(), "request served",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", c.GetString(requestIDKey),
		)
	}
}

func (s *HTTPServer) recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				s.logger.Error(c.Request.Context(), "panic recovered",
					"panic", err,
					"stack", string(debug.Stack()),
					"request_id", c.GetString(requestIDKey),
				)
				abortWithDetail(c, http.StatusInternalServerError, detailInternal)
			}
		}()
		c.Next()
	}
}

// bearerToken extracts the credentials of an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, credentials, _ := strings.Cut(strings.TrimSpace(header), " ")
	credentials = strings.TrimSpace(credentials)
	if credentials == "" || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", false
	}
	return credentials, true
}

// requireUser resolves the bearer token to a user. Missing or malformed
// credentials are 403, tokens failing verification 401, and tokens of
// deleted users 404.
func (s *HTTPServer) requireUser(c *gin.Context) {
	token, ok := bearerToken(c.GetHeader(common.AuthorizationHeaderName))
	if !ok {
		abortWithDetail(c, http.StatusForbidden, detailNotAuthenticated)
		return
	}

	user, err := s.users.Authenticate(c.Request.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorUnauthorized):
			c.Header("WWW-Authenticate", common.BearerScheme)
			abortWithDetail(c, http.StatusUnauthorized, detailInvalidCredentials)
		case errors.Is(err, common.ErrorNotFound):
			abortWithDetail(c, http.StatusNotFound, detailUserNotFound)
		default:
			s.internalError(c, err)
		}
		return
	}

	c.Set(userKey, user)
	c.Next()
}

func currentUser(c *gin.Context) *models.User {
	return c.MustGet(userKey).(*models.User)
}
