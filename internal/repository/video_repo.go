package repository

import (
	"context"
	"errors"
	"time"

	"github.com/0xFF-test/TikRewards/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrFreeSlotsExhausted is returned when a free submission loses the guarded
// slot update to a concurrent submission by the same user.
var ErrFreeSlotsExhausted = errors.New("free submission slots exhausted")

type VideoRepository interface {
	// CreateSubmission stores a new pending video. A free submission
	// (video.IsPaid false) consumes one of the submitter's free slots in the
	// same transaction, guarded against freeLimit so concurrent submissions
	// cannot overdraw; ErrFreeSlotsExhausted reports a lost guard.
	CreateSubmission(ctx context.Context, video *model.Video, freeLimit int) error

	FindByID(ctx context.Context, id string) (*model.Video, error)
	ExistsByTikTokVideoID(ctx context.Context, tiktokVideoID string) (bool, error)

	// ActiveCandidates returns every active video; ranking and exclusion
	// rules are applied by the engine.
	ActiveCandidates(ctx context.Context) ([]*model.Video, error)

	// LatestPaidByCreator returns the creator's most recent paid submission,
	// or nil when none exists.
	LatestPaidByCreator(ctx context.Context, creatorID uuid.UUID) (*model.Video, error)

	IncrementEngagement(ctx context.Context, videoID uuid.UUID, liked, commented bool) error

	ListByStatus(ctx context.Context, status string) ([]*model.Video, error)
	Activate(ctx context.Context, videoID uuid.UUID, lengthSeconds int, priorityScore float64, now time.Time) error
	Complete(ctx context.Context, videoID uuid.UUID, now time.Time) error
	Remove(ctx context.Context, videoID uuid.UUID, now time.Time) error
}

type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) CreateSubmission(ctx context.Context, video *model.Video, freeLimit int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if !video.IsPaid {
			// The limit check and the increment are one guarded statement, so
			// two concurrent submissions can never both take the last slot.
			result := tx.Model(&model.User{}).
				Where("id = ? AND free_submissions_used < ?", video.CreatorID, freeLimit).
				Update("free_submissions_used", gorm.Expr("free_submissions_used + 1"))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrFreeSlotsExhausted
			}
		}

		return tx.Create(video).Error
	})
}

func (r *videoRepository) FindByID(ctx context.Context, id string) (*model.Video, error) {
	var video model.Video
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&video).Error; err != nil {
		return nil, err
	}

	return &video, nil
}

func (r *videoRepository) ExistsByTikTokVideoID(ctx context.Context, tiktokVideoID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Video{}).
		Where("tiktok_video_id = ? AND status IN ?", tiktokVideoID,
			[]string{model.VideoStatusPending, model.VideoStatusActive}).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *videoRepository) ActiveCandidates(ctx context.Context) ([]*model.Video, error) {
	var videos []*model.Video
	if err := r.db.WithContext(ctx).
		Where("status = ?", model.VideoStatusActive).
		Find(&videos).Error; err != nil {
		return nil, err
	}

	return videos, nil
}

func (r *videoRepository) LatestPaidByCreator(ctx context.Context, creatorID uuid.UUID) (*model.Video, error) {
	var video model.Video
	err := r.db.WithContext(ctx).
		Where("creator_id = ? AND is_paid = true", creatorID).
		Order("created_at DESC").
		First(&video).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &video, nil
}

func (r *videoRepository) IncrementEngagement(ctx context.Context, videoID uuid.UUID, liked, commented bool) error {
	updates := map[string]interface{}{
		"total_views": gorm.Expr("total_views + 1"),
	}
	if liked {
		updates["total_likes"] = gorm.Expr("total_likes + 1")
	}
	if commented {
		updates["total_comments"] = gorm.Expr("total_comments + 1")
	}

	return r.db.WithContext(ctx).
		Model(&model.Video{}).
		Where("id = ?", videoID).
		Updates(updates).Error
}

func (r *videoRepository) ListByStatus(ctx context.Context, status string) ([]*model.Video, error) {
	var videos []*model.Video
	if err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&videos).Error; err != nil {
		return nil, err
	}

	return videos, nil
}

func (r *videoRepository) Activate(ctx context.Context, videoID uuid.UUID, lengthSeconds int, priorityScore float64, now time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Video{}).
		Where("id = ? AND status = ?", videoID, model.VideoStatusPending).
		Updates(map[string]interface{}{
			"status":               model.VideoStatusActive,
			"video_length_seconds": lengthSeconds,
			"priority_score":       priorityScore,
			"activated_at":         now,
		}).Error
}

func (r *videoRepository) Complete(ctx context.Context, videoID uuid.UUID, now time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Video{}).
		Where("id = ? AND status = ?", videoID, model.VideoStatusActive).
		Updates(map[string]interface{}{
			"status":       model.VideoStatusCompleted,
			"completed_at": now,
		}).Error
}

func (r *videoRepository) Remove(ctx context.Context, videoID uuid.UUID, now time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Video{}).
		Where("id = ? AND status IN ?", videoID,
			[]string{model.VideoStatusPending, model.VideoStatusActive}).
		Updates(map[string]interface{}{
			"status":       model.VideoStatusRemoved,
			"completed_at": now,
		}).Error
}
