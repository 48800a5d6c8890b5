package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleViewer  = "viewer"
	RoleCreator = "creator"
	RoleAdmin   = "admin"
)

type User struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Role  string    `gorm:"size:20;not null;default:viewer" json:"role"`
	// PasswordHash is only set for admin accounts; viewers log in by email.
	PasswordHash *string `gorm:"size:255" json:"-"`

	PointsBalance       int `gorm:"not null;default:0;check:points_balance >= 0" json:"points_balance"`
	FreeSubmissionsUsed int `gorm:"not null;default:0" json:"free_submissions_used"`

	// ConsecutiveAbandonments is the running abandonment streak the penalty
	// rule is 1-indexed against. Incremented on each abandoned watch, reset
	// to zero by any completed watch.
	ConsecutiveAbandonments int `gorm:"not null;default:0" json:"consecutive_abandonments"`

	OnboardingCompleted     bool `gorm:"not null;default:false" json:"onboarding_completed"`
	OnboardingVideosWatched int  `gorm:"not null;default:0" json:"onboarding_videos_watched"`
	FollowedMainAccount     bool `gorm:"not null;default:false" json:"followed_main_account"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
