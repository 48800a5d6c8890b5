package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PromotedAccount is a TikTok account users are rewarded for following.
type PromotedAccount struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	TikTokUsername string     `gorm:"size:100;uniqueIndex;not null" json:"tiktok_username"`
	DisplayName    *string    `gorm:"size:100" json:"display_name,omitempty"`
	PromotionSlots int        `gorm:"not null;default:0" json:"promotion_slots"`
	ActiveUntil    *time.Time `json:"active_until,omitempty"`
	TotalFollows   int        `gorm:"not null;default:0" json:"total_follows"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *PromotedAccount) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// FollowTracking records a user's verified follow of a promoted account.
// Verification itself happens outside this service; only the verified flag
// feeds the cooldown reduction.
type FollowTracking struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;index:idx_follow_user_account,unique,priority:1;not null" json:"user_id"`
	TikTokUsername string    `gorm:"size:100;index:idx_follow_user_account,unique,priority:2;not null" json:"tiktok_username"`
	Verified       bool      `gorm:"not null;default:false" json:"verified"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (f *FollowTracking) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
