package service

import (
	"context"
	"fmt"

	"github.com/0xFF-test/TikRewards/internal/repository"
	"github.com/0xFF-test/TikRewards/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FollowService interface {
	// VerifyFollow records that the user verifiably follows the promoted
	// account, unlocking the cooldown reduction. The verification itself
	// (checking the follow on TikTok) happens upstream.
	VerifyFollow(ctx context.Context, userID uuid.UUID, tiktokUsername string) error
}

type followService struct {
	followRepo repository.FollowRepository
}

func NewFollowService(followRepo repository.FollowRepository) FollowService {
	return &followService{followRepo: followRepo}
}

func (s *followService) VerifyFollow(ctx context.Context, userID uuid.UUID, tiktokUsername string) error {
	account, err := s.followRepo.FindPromotedByUsername(ctx, tiktokUsername)
	if err == gorm.ErrRecordNotFound {
		return fmt.Errorf("%w: promoted account %s", apperror.ErrNotFound, tiktokUsername)
	}
	if err != nil {
		return err
	}

	already, err := s.followRepo.HasVerifiedFollow(ctx, userID, account.TikTokUsername)
	if err != nil {
		return err
	}
	if already {
		return nil
	}

	return s.followRepo.RecordVerifiedFollow(ctx, userID, account)
}
