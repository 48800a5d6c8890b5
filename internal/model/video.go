package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	VideoStatusPending   = "pending"
	VideoStatusActive    = "active"
	VideoStatusCompleted = "completed"
	VideoStatusRemoved   = "removed"
)

type Video struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TikTokURL     string    `gorm:"type:text;not null" json:"tiktok_url"`
	TikTokVideoID string    `gorm:"size:64;index;not null" json:"tiktok_video_id"`
	CreatorID     uuid.UUID `gorm:"type:uuid;index;not null" json:"creator_id"`
	Creator       User      `gorm:"foreignKey:CreatorID" json:"-"`

	Status        string  `gorm:"size:20;index;not null;default:pending" json:"status"`
	PriorityScore float64 `gorm:"not null;default:0" json:"priority_score"`
	IsPaid        bool    `gorm:"not null;default:false" json:"is_paid"`

	// Set at activation, once the length is known.
	VideoLengthSeconds int `gorm:"not null;default:0" json:"video_length_seconds"`

	TotalViews    int `gorm:"not null;default:0" json:"total_views"`
	TotalLikes    int `gorm:"not null;default:0" json:"total_likes"`
	TotalComments int `gorm:"not null;default:0" json:"total_comments"`

	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	ActivatedAt *time.Time `json:"activated_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (v *Video) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
