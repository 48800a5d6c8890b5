package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/0xFF-test/TikRewards/internal/dto"
	"github.com/0xFF-test/TikRewards/internal/engine"
	"github.com/0xFF-test/TikRewards/internal/model"
	"github.com/0xFF-test/TikRewards/internal/repository"
	"github.com/0xFF-test/TikRewards/pkg/apperror"
	"github.com/0xFF-test/TikRewards/pkg/tiktok"
	"github.com/google/uuid"
)

type SubmissionService interface {
	// Submit runs URL recognition, the minimum-points check and the
	// free/paid gate, then stores the video as pending.
	Submit(ctx context.Context, userID uuid.UUID, input dto.SubmitVideoInput) (*dto.SubmitVideoResponse, error)

	// Status reports what the user's next submission would cost without
	// consuming anything.
	Status(ctx context.Context, userID uuid.UUID) (*dto.SubmissionStatus, error)
}

type submissionService struct {
	cfg       engine.Config
	userRepo  repository.UserRepository
	videoRepo repository.VideoRepository
}

func NewSubmissionService(cfg engine.Config, userRepo repository.UserRepository, videoRepo repository.VideoRepository) SubmissionService {
	return &submissionService{
		cfg:       cfg,
		userRepo:  userRepo,
		videoRepo: videoRepo,
	}
}

func (s *submissionService) Submit(ctx context.Context, userID uuid.UUID, input dto.SubmitVideoInput) (*dto.SubmitVideoResponse, error) {
	// URL validation precedes gating: a malformed reference never consumes
	// a slot.
	if !tiktok.IsValidURL(input.TikTokURL) {
		return nil, fmt.Errorf("%w: not a recognized TikTok video URL", apperror.ErrInvalidInput)
	}
	tiktokVideoID, _ := tiktok.ExtractVideoID(input.TikTokURL)

	user, err := s.userRepo.FindByID(ctx, userID.String())
	if err != nil {
		return nil, err
	}

	if user.PointsBalance < s.cfg.MinimumPointsToSubmit {
		return nil, fmt.Errorf("%w: %d points required to submit, balance is %d",
			apperror.ErrNotEligible, s.cfg.MinimumPointsToSubmit, user.PointsBalance)
	}

	exists, err := s.videoRepo.ExistsByTikTokVideoID(ctx, tiktokVideoID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: video is already in circulation", apperror.ErrNotEligible)
	}

	sinceLastPaid, err := s.sinceLastPaid(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	decision, err := s.cfg.CanSubmit(user.FreeSubmissionsUsed, sinceLastPaid)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, fmt.Errorf("%w: next paid submission available in %ds",
			apperror.ErrNotEligible, int(decision.WaitRemaining.Seconds()))
	}

	video := &model.Video{
		TikTokURL:     input.TikTokURL,
		TikTokVideoID: tiktokVideoID,
		CreatorID:     userID,
		Status:        model.VideoStatusPending,
		IsPaid:        decision.RequiresPayment,
	}

	err = s.videoRepo.CreateSubmission(ctx, video, s.cfg.FreeSubmissionLimit)
	if errors.Is(err, repository.ErrFreeSlotsExhausted) {
		// A concurrent submission took the last free slot between the read
		// and the guarded update; re-gate this one as paid.
		decision, err = s.cfg.CanSubmit(s.cfg.FreeSubmissionLimit, sinceLastPaid)
		if err != nil {
			return nil, err
		}
		if !decision.Allowed {
			return nil, fmt.Errorf("%w: next paid submission available in %ds",
				apperror.ErrNotEligible, int(decision.WaitRemaining.Seconds()))
		}

		video.IsPaid = true
		err = s.videoRepo.CreateSubmission(ctx, video, s.cfg.FreeSubmissionLimit)
	}
	if err != nil {
		return nil, err
	}

	if user.Role == model.RoleViewer {
		user.Role = model.RoleCreator
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	return &dto.SubmitVideoResponse{
		VideoID:         video.ID.String(),
		Status:          video.Status,
		RequiresPayment: video.IsPaid,
	}, nil
}

func (s *submissionService) Status(ctx context.Context, userID uuid.UUID) (*dto.SubmissionStatus, error) {
	user, err := s.userRepo.FindByID(ctx, userID.String())
	if err != nil {
		return nil, err
	}

	sinceLastPaid, err := s.sinceLastPaid(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	decision, err := s.cfg.CanSubmit(user.FreeSubmissionsUsed, sinceLastPaid)
	if err != nil {
		return nil, err
	}

	left := s.cfg.FreeSubmissionLimit - user.FreeSubmissionsUsed
	if left < 0 {
		left = 0
	}

	return &dto.SubmissionStatus{
		Allowed:              decision.Allowed,
		RequiresPayment:      decision.RequiresPayment,
		WaitRemainingSeconds: int(decision.WaitRemaining.Seconds()),
		FreeSubmissionsLeft:  left,
	}, nil
}

func (s *submissionService) sinceLastPaid(ctx context.Context, creatorID uuid.UUID) (*time.Duration, error) {
	lastPaid, err := s.videoRepo.LatestPaidByCreator(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	if lastPaid == nil {
		return nil, nil
	}

	since := time.Since(lastPaid.CreatedAt)
	return &since, nil
}
