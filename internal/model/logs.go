package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ViewLog is one row per user-video viewing attempt. Rows are append-only:
// a pending row is opened when the video is served and only CompletedAt
// (plus the final watch attributes) is filled in when the watch finalizes.
type ViewLog struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;index:idx_view_user_video,priority:1;not null" json:"user_id"`
	VideoID uuid.UUID `gorm:"type:uuid;index:idx_view_user_video,priority:2;not null" json:"video_id"`

	WatchSeconds   int  `gorm:"not null;default:0" json:"watch_seconds"`
	WatchCompleted bool `gorm:"not null;default:false" json:"watch_completed"`
	LikeClicked    bool `gorm:"not null;default:false" json:"like_clicked"`
	CommentClicked bool `gorm:"not null;default:false" json:"comment_clicked"`
	PointsAwarded  int  `gorm:"not null;default:0" json:"points_awarded"`

	SessionID uuid.UUID `gorm:"type:uuid;index;not null" json:"session_id"`

	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (l *ViewLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// PointsLog records every balance change. PointsChange carries the raw delta
// the engine requested; BalanceAfter is the balance after the floor-at-zero
// clamp applied by the persistence layer.
type PointsLog struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;index:idx_points_user_date,priority:1;not null" json:"user_id"`
	Action       string     `gorm:"size:50;not null" json:"action"` // 'watch_reward', 'abandonment_penalty'
	PointsChange int        `gorm:"not null" json:"points_change"`
	BalanceAfter int        `gorm:"not null" json:"balance_after"`
	VideoID      *uuid.UUID `gorm:"type:uuid" json:"video_id,omitempty"`
	CreatedAt    time.Time  `gorm:"index:idx_points_user_date,priority:2" json:"created_at"`
}

// AbandonmentLog records each abandoned watch with the consecutive streak
// position it occupied and the penalty charged for it.
type AbandonmentLog struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	VideoID          uuid.UUID `gorm:"type:uuid;not null" json:"video_id"`
	ConsecutiveCount int       `gorm:"not null" json:"consecutive_count"`
	PointsPenalty    int       `gorm:"not null" json:"points_penalty"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
}
