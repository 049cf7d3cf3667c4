package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Note is a short piece of text owned by exactly one user.
type Note struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `json:"userId" gorm:"type:char(36);not null;index:idx_notes_owner_created,priority:1"`
	Content   string    `json:"content" gorm:"type:longtext;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"precision:6;not null;index:idx_notes_owner_created,priority:2"`
}

// BeforeCreate assigns a time-ordered UUID so notes created within the same
// timestamp still sort in creation order.
func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		n.ID = id
	}
	return nil
}
