package repository

import (
	"context"

	"github.com/0xFF-test/TikRewards/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ViewLogRepository interface {
	Create(ctx context.Context, log *model.ViewLog) error

	// FindPending returns the most recent unfinalized view log for the
	// user/video pair, or nil when none is open.
	FindPending(ctx context.Context, userID, videoID uuid.UUID) (*model.ViewLog, error)

	Finalize(ctx context.Context, log *model.ViewLog) error

	// CompletedVideoIDs returns the videos the user already finished, used
	// to keep repeat rewards out of the serving order.
	CompletedVideoIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)

	CreateAbandonment(ctx context.Context, log *model.AbandonmentLog) error
}

type viewLogRepository struct {
	db *gorm.DB
}

func NewViewLogRepository(db *gorm.DB) ViewLogRepository {
	return &viewLogRepository{db: db}
}

func (r *viewLogRepository) Create(ctx context.Context, log *model.ViewLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *viewLogRepository) FindPending(ctx context.Context, userID, videoID uuid.UUID) (*model.ViewLog, error) {
	var log model.ViewLog
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND video_id = ? AND completed_at IS NULL", userID, videoID).
		Order("created_at DESC").
		First(&log).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &log, nil
}

func (r *viewLogRepository) Finalize(ctx context.Context, log *model.ViewLog) error {
	return r.db.WithContext(ctx).Save(log).Error
}

func (r *viewLogRepository) CompletedVideoIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&model.ViewLog{}).
		Where("user_id = ? AND watch_completed = true", userID).
		Distinct().
		Pluck("video_id", &ids).Error; err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *viewLogRepository) CreateAbandonment(ctx context.Context, log *model.AbandonmentLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}
