// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is the single persisted entity: a short text post attributed to a
// snapshot of its author at creation time. Author fields are denormalized on
// purpose; later profile changes never rewrite history.
type Post struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Content        string     `gorm:"type:varchar(256);not null" json:"content"`
	AuthorName     string     `gorm:"type:varchar(256);not null" json:"authorName"`
	ProfilePicture string     `gorm:"type:varchar(256)" json:"profilePicture"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      *time.Time `gorm:"autoUpdateTime:false" json:"updatedAt"`
}

// BeforeCreate assigns a time-ordered UUIDv7 primary key at insert time, so
// "ORDER BY id DESC" is newest-first without touching created_at.
func (p *Post) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		p.ID = id
	}
	return nil
}
