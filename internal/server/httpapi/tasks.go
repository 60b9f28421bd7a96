package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/todoweb/internal/server/services"
	"github.com/gin-gonic/gin"
)

func (s *HTTPServer) ListTasks(c *gin.Context) {
	tasks, err := s.tasks.List(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		s.writeError(c, err, detailTaskNotFound)
		return
	}

	resp := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp = append(resp, toTaskResponse(t))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *HTTPServer) CreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	task, err := s.tasks.Create(c.Request.Context(), currentUser(c).ID, services.CreateTaskParams{
		Label: *req.Label,
		X:     *req.X,
		Y:     *req.Y,
		Color: *req.Color,
	})
	if err != nil {
		s.writeError(c, err, detailTaskNotFound)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

func (s *HTTPServer) DeleteTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.tasks.Delete(c.Request.Context(), currentUser(c).ID, id); err != nil {
		s.writeError(c, err, detailTaskNotFound)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "Task deleted successfully"})
}

func (s *HTTPServer) CompleteTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.tasks.Complete(c.Request.Context(), currentUser(c).ID, id); err != nil {
		s.writeError(c, err, detailTaskNotFound)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "Task completed successfully"})
}
