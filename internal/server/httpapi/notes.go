package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *HTTPServer) ListNotes(c *gin.Context) {
	notes, err := s.notes.List(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		s.writeError(c, err, detailNoteNotFound)
		return
	}

	resp := make([]noteResponse, 0, len(notes))
	for _, n := range notes {
		resp = append(resp, toNoteResponse(n))
	}
	c.JSON(http.StatusOK, resp)
}

// UpsertNote creates the note for the given date or replaces its content.
func (s *HTTPServer) UpsertNote(c *gin.Context) {
	var req upsertNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	note, err := s.notes.Upsert(c.Request.Context(), currentUser(c).ID, *req.Date, *req.Content)
	if err != nil {
		s.writeError(c, err, detailNoteNotFound)
		return
	}

	c.JSON(http.StatusOK, toNoteResponse(note))
}

func (s *HTTPServer) GetNote(c *gin.Context) {
	note, err := s.notes.Get(c.Request.Context(), currentUser(c).ID, c.Param("date"))
	if err != nil {
		s.writeError(c, err, detailNoteNotFound)
		return
	}

	c.JSON(http.StatusOK, toNoteResponse(note))
}
