package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/todoweb/internal/common"
	"github.com/dmitrijs2005/todoweb/internal/server/models"
	"github.com/dmitrijs2005/todoweb/internal/server/repositories/repomanager"
)

// NoteService manages calendar notes, one per user and day.
type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewNoteService(db *sql.DB, m repomanager.RepositoryManager) *NoteService {
	return &NoteService{db: db, repomanager: m}
}

func (s *NoteService) List(ctx context.Context, userID int64) ([]*models.CalendarNote, error) {
	return s.repomanager.Notes(s.db).ListByUser(ctx, userID)
}

// Get returns the note for date. Dates that are not YYYY-MM-DD never match.
func (s *NoteService) Get(ctx context.Context, userID int64, date string) (*models.CalendarNote, error) {
	return s.repomanager.Notes(s.db).GetByDate(ctx, userID, date)
}

// Upsert creates the note for date or overwrites its content.
func (s *NoteService) Upsert(ctx context.Context, userID int64, date, content string) (*models.CalendarNote, error) {
	if err := ValidateDate(date); err != nil {
		return nil, err
	}
	return s.repomanager.Notes(s.db).Upsert(ctx, &models.CalendarNote{
		UserID:  userID,
		Date:    date,
		Content: content,
	})
}

// ValidateDate checks that date is a calendar day in YYYY-MM-DD form.
func ValidateDate(date string) error {
	if _, err := time.Parse(common.DateLayout, date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", common.ErrorValidation, date)
	}
	return nil
}
