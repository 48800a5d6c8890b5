package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserSession bounds a run of watches. The videos-watched counter feeds the
// cooldown rule; once ExpiresAt passes the session must not be reused and a
// fresh one starts with a zero counter.
type UserSession struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`

	VideosWatched int  `gorm:"not null;default:0" json:"videos_watched"`
	IsActive      bool `gorm:"not null;default:true" json:"is_active"`

	StartedAt time.Time `gorm:"not null" json:"started_at"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`
}

func (s *UserSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
