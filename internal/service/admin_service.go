package service

import (
	"context"
	"fmt"
	"time"

	"github.com/0xFF-test/TikRewards/internal/dto"
	"github.com/0xFF-test/TikRewards/internal/engine"
	"github.com/0xFF-test/TikRewards/internal/model"
	"github.com/0xFF-test/TikRewards/internal/repository"
	"github.com/0xFF-test/TikRewards/pkg/apperror"
	"github.com/google/uuid"
)

type AdminService interface {
	ListPendingVideos(ctx context.Context) ([]*model.Video, error)

	// ActivateVideo moves a pending video into circulation once its length
	// is known and inside the configured bounds.
	ActivateVideo(ctx context.Context, videoID uuid.UUID, input dto.ActivateVideoInput) error

	CompleteVideo(ctx context.Context, videoID uuid.UUID) error
	RemoveVideo(ctx context.Context, videoID uuid.UUID) error
}

type adminService struct {
	cfg       engine.Config
	videoRepo repository.VideoRepository
}

func NewAdminService(cfg engine.Config, videoRepo repository.VideoRepository) AdminService {
	return &adminService{
		cfg:       cfg,
		videoRepo: videoRepo,
	}
}

func (s *adminService) ListPendingVideos(ctx context.Context) ([]*model.Video, error) {
	return s.videoRepo.ListByStatus(ctx, model.VideoStatusPending)
}

func (s *adminService) ActivateVideo(ctx context.Context, videoID uuid.UUID, input dto.ActivateVideoInput) error {
	if !s.cfg.ValidVideoLength(input.LengthSeconds) {
		return fmt.Errorf("%w: video length must be between %d and %d seconds",
			apperror.ErrInvalidInput, s.cfg.MinVideoLengthSeconds, s.cfg.MaxVideoLengthSeconds)
	}

	video, err := s.videoRepo.FindByID(ctx, videoID.String())
	if err != nil {
		return fmt.Errorf("%w: video not found", apperror.ErrNotFound)
	}
	if video.Status != model.VideoStatusPending {
		return fmt.Errorf("%w: only pending videos can be activated", apperror.ErrNotEligible)
	}

	return s.videoRepo.Activate(ctx, videoID, input.LengthSeconds, input.PriorityScore, time.Now())
}

func (s *adminService) CompleteVideo(ctx context.Context, videoID uuid.UUID) error {
	video, err := s.videoRepo.FindByID(ctx, videoID.String())
	if err != nil {
		return fmt.Errorf("%w: video not found", apperror.ErrNotFound)
	}
	if video.Status != model.VideoStatusActive {
		return fmt.Errorf("%w: only active videos can be completed", apperror.ErrNotEligible)
	}

	return s.videoRepo.Complete(ctx, videoID, time.Now())
}

func (s *adminService) RemoveVideo(ctx context.Context, videoID uuid.UUID) error {
	video, err := s.videoRepo.FindByID(ctx, videoID.String())
	if err != nil {
		return fmt.Errorf("%w: video not found", apperror.ErrNotFound)
	}
	if video.Status == model.VideoStatusCompleted || video.Status == model.VideoStatusRemoved {
		return fmt.Errorf("%w: video is already out of circulation", apperror.ErrNotEligible)
	}

	return s.videoRepo.Remove(ctx, videoID, time.Now())
}
