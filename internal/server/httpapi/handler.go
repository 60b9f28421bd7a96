package httpapi

import (
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/todoweb/internal/common"
	"github.com/dmitrijs2005/todoweb/internal/server/services"
	"github.com/gin-gonic/gin"
)

func (s *HTTPServer) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "Registration request", "username", *req.UserName)

	user, token, err := s.users.Register(c.Request.Context(), services.RegisterParams{
		UserName:    *req.UserName,
		Email:       *req.Email,
		Password:    *req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		s.writeError(c, err, detailUserNotFound)
		return
	}

	s.logger.Info(c.Request.Context(), "Registered", "username", user.UserName, "id", user.ID)
	c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: common.TokenType, User: toUserResponse(user)})
}

func (s *HTTPServer) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	user, token, err := s.users.Login(c.Request.Context(), *req.UserName, *req.Password)
	if err != nil {
		s.writeError(c, err, detailUserNotFound)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: common.TokenType, User: toUserResponse(user)})
}

func (s *HTTPServer) Me(c *gin.Context) {
	c.JSON(http.StatusOK, toUserResponse(currentUser(c)))
}

func (s *HTTPServer) CheckUsername(c *gin.Context) {
	var req checkUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}
	if req.UserName == "" {
		abortWithDetail(c, http.StatusBadRequest, detailUsernameRequired)
		return
	}

	available, err := s.users.IsUsernameAvailable(c.Request.Context(), req.UserName)
	if err != nil {
		s.writeError(c, err, detailUserNotFound)
		return
	}

	c.JSON(http.StatusOK, availabilityResponse{Available: available})
}

func (s *HTTPServer) GetUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	user, err := s.users.GetUser(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err, detailUserNotFound)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

func (s *HTTPServer) UpdateExperience(c *gin.Context) {
	var req experienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	user, err := s.users.AdjustExperience(c.Request.Context(), currentUser(c).ID, *req.Points)
	if err != nil {
		s.writeError(c, err, detailUserNotFound)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

func (s *HTTPServer) Health(c *gin.Context) {
	if s.ping != nil {
		if err := s.ping(c.Request.Context()); err != nil {
			s.logger.Warn(c.Request.Context(), "health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// pathID parses the :id path parameter, answering 422 when it is not an
// integer.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abortWithDetail(c, http.StatusUnprocessableEntity, "id must be an integer")
		return 0, false
	}
	return id, true
}
