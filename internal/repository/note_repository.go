package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"notesvc/internal/model"
)

// NoteRepository defines note persistence operations. Every read and delete
// is filtered by owner.
type NoteRepository interface {
	Create(ctx context.Context, note *model.Note) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Note, error)
	DeleteByOwnerAndID(ctx context.Context, ownerID, noteID uuid.UUID) (int64, error)
}

type noteRepository struct {
	db *gorm.DB
}

// NewNoteRepository creates a new note repository.
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

// Create creates a new note.
func (r *noteRepository) Create(ctx context.Context, note *model.Note) error {
	if err := r.db.WithContext(ctx).Create(note).Error; err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

// ListByOwner returns the owner's notes, oldest first. Note ids are
// time-ordered and break timestamp ties.
func (r *noteRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Note, error) {
	notes := make([]model.Note, 0)
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// DeleteByOwnerAndID removes the note only when both id and owner match and
// reports how many rows were removed (0 or 1).
func (r *noteRepository) DeleteByOwnerAndID(ctx context.Context, ownerID, noteID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", noteID, ownerID).
		Delete(&model.Note{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete note: %w", res.Error)
	}
	return res.RowsAffected, nil
}
