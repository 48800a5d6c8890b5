package repository

import (
	"context"

	"github.com/0xFF-test/TikRewards/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error

	// ApplyPointsDelta applies a points change atomically: the balance is
	// updated with a floor-at-zero clamp and a PointsLog row records the
	// unclamped delta plus the resulting balance, all in one transaction.
	// It returns the balance after the change.
	ApplyPointsDelta(ctx context.Context, userID uuid.UUID, delta int, action string, videoID *uuid.UUID) (int, error)

	// IncrementAbandonmentStreak bumps the consecutive abandonment counter
	// in a single statement and returns the new count, so concurrent watches
	// cannot apply the same penalty step twice.
	IncrementAbandonmentStreak(ctx context.Context, userID uuid.UUID) (int, error)

	// ResetAbandonmentStreak zeroes the counter after a completed watch.
	ResetAbandonmentStreak(ctx context.Context, userID uuid.UUID) error

	TopByPoints(ctx context.Context, limit int) ([]*model.User, error)
	Count(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) ApplyPointsDelta(ctx context.Context, userID uuid.UUID, delta int, action string, videoID *uuid.UUID) (int, error) {
	var balanceAfter int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Single-writer balance update: the clamp and the addition happen in
		// one statement so concurrent deltas can never double-apply.
		if err := tx.Raw(
			"UPDATE users SET points_balance = GREATEST(points_balance + ?, 0), updated_at = NOW() WHERE id = ? RETURNING points_balance",
			delta, userID,
		).Scan(&balanceAfter).Error; err != nil {
			return err
		}

		logEntry := &model.PointsLog{
			UserID:       userID,
			Action:       action,
			PointsChange: delta,
			BalanceAfter: balanceAfter,
			VideoID:      videoID,
		}
		return tx.Create(logEntry).Error
	})
	if err != nil {
		return 0, err
	}

	return balanceAfter, nil
}

func (r *userRepository) IncrementAbandonmentStreak(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	if err := r.db.WithContext(ctx).Raw(
		"UPDATE users SET consecutive_abandonments = consecutive_abandonments + 1, updated_at = NOW() WHERE id = ? RETURNING consecutive_abandonments",
		userID,
	).Scan(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *userRepository) ResetAbandonmentStreak(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Update("consecutive_abandonments", 0).Error
}

func (r *userRepository) TopByPoints(ctx context.Context, limit int) ([]*model.User, error) {
	var users []*model.User
	if err := r.db.WithContext(ctx).
		Order("points_balance DESC, created_at ASC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
