package repository

import (
	"context"
	"time"

	"github.com/0xFF-test/TikRewards/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(ctx context.Context, session *model.UserSession) error
	FindByID(ctx context.Context, id string) (*model.UserSession, error)

	// FindActive returns the user's live session at now, or nil.
	FindActive(ctx context.Context, userID uuid.UUID, now time.Time) (*model.UserSession, error)

	// IncrementWatched bumps the session's watch counter and returns the new
	// count, the value the cooldown rule is evaluated against.
	IncrementWatched(ctx context.Context, sessionID uuid.UUID) (int, error)
	Deactivate(ctx context.Context, sessionID uuid.UUID) error

	// DeactivateExpired flips is_active off for every session past its
	// expiry; run periodically by the sweeper.
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *model.UserSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) FindByID(ctx context.Context, id string) (*model.UserSession, error) {
	var session model.UserSession
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&session).Error; err != nil {
		return nil, err
	}

	return &session, nil
}

func (r *sessionRepository) FindActive(ctx context.Context, userID uuid.UUID, now time.Time) (*model.UserSession, error) {
	var session model.UserSession
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = true AND expires_at > ?", userID, now).
		Order("started_at DESC").
		First(&session).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &session, nil
}

func (r *sessionRepository) IncrementWatched(ctx context.Context, sessionID uuid.UUID) (int, error) {
	var count int
	if err := r.db.WithContext(ctx).Raw(
		"UPDATE user_sessions SET videos_watched = videos_watched + 1 WHERE id = ? RETURNING videos_watched",
		sessionID,
	).Scan(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *sessionRepository) Deactivate(ctx context.Context, sessionID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.UserSession{}).
		Where("id = ?", sessionID).
		Update("is_active", false).Error
}

func (r *sessionRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.UserSession{}).
		Where("is_active = true AND expires_at <= ?", now).
		Update("is_active", false)

	return result.RowsAffected, result.Error
}
