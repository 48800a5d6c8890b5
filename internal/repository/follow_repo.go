package repository

import (
	"context"

	"github.com/0xFF-test/TikRewards/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowRepository interface {
	FindPromotedByUsername(ctx context.Context, username string) (*model.PromotedAccount, error)
	CreatePromoted(ctx context.Context, account *model.PromotedAccount) error

	// RecordVerifiedFollow upserts a verified follow row, bumps the
	// account's follow total and flips the user's followed flag, all in one
	// transaction.
	RecordVerifiedFollow(ctx context.Context, userID uuid.UUID, account *model.PromotedAccount) error

	HasVerifiedFollow(ctx context.Context, userID uuid.UUID, username string) (bool, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) FindPromotedByUsername(ctx context.Context, username string) (*model.PromotedAccount, error) {
	var account model.PromotedAccount
	if err := r.db.WithContext(ctx).
		Where("tiktok_username = ?", username).
		First(&account).Error; err != nil {
		return nil, err
	}

	return &account, nil
}

func (r *followRepository) CreatePromoted(ctx context.Context, account *model.PromotedAccount) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *followRepository) RecordVerifiedFollow(ctx context.Context, userID uuid.UUID, account *model.PromotedAccount) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		follow := &model.FollowTracking{
			UserID:         userID,
			TikTokUsername: account.TikTokUsername,
			Verified:       true,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "tiktok_username"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"verified": true}),
		}).Create(follow).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.PromotedAccount{}).
			Where("id = ?", account.ID).
			Update("total_follows", gorm.Expr("total_follows + 1")).Error; err != nil {
			return err
		}

		return tx.Model(&model.User{}).
			Where("id = ?", userID).
			Update("followed_main_account", true).Error
	})
}

func (r *followRepository) HasVerifiedFollow(ctx context.Context, userID uuid.UUID, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.FollowTracking{}).
		Where("user_id = ? AND tiktok_username = ? AND verified = true", userID, username).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
