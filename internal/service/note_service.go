package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"notesvc/internal/model"
	"notesvc/internal/repository"
)

// NoteService exposes owner-scoped note operations. The owner id always comes
// from the authenticated identity, never from client input.
type NoteService interface {
	Create(ctx context.Context, ownerID uuid.UUID, content string) (*model.Note, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Note, error)
	DeleteByOwnerAndID(ctx context.Context, ownerID, noteID uuid.UUID) error
}

type noteService struct {
	repo repository.NoteRepository
	log  logrus.FieldLogger
	now  func() time.Time
}

// NewNoteService creates a note service. A nil now uses time.Now.
func NewNoteService(repo repository.NoteRepository, log logrus.FieldLogger, now func() time.Time) NoteService {
	if now == nil {
		now = time.Now
	}
	return &noteService{repo: repo, log: log, now: now}
}

// Create stores content as a new note. Empty content is accepted.
func (s *noteService) Create(ctx context.Context, ownerID uuid.UUID, content string) (*model.Note, error) {
	note := &model.Note{
		UserID:  ownerID,
		Content: content,
		// Matches the column's microsecond precision so the response equals what a later list returns.
		CreatedAt: s.now().UTC().Truncate(time.Microsecond),
	}
	if err := s.repo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// ListByOwner returns the owner's notes oldest first; never nil.
func (s *noteService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Note, error) {
	notes, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []model.Note{}
	}
	return notes, nil
}

// DeleteByOwnerAndID removes the note if ownerID owns it. A missing or
// foreign note is not an error.
func (s *noteService) DeleteByOwnerAndID(ctx context.Context, ownerID, noteID uuid.UUID) error {
	removed, err := s.repo.DeleteByOwnerAndID(ctx, ownerID, noteID)
	if err != nil {
		return err
	}
	if removed == 0 {
		s.log.WithFields(logrus.Fields{"user_id": ownerID, "note_id": noteID}).Debug("delete matched no note")
	}
	return nil
}
