package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/0xFF-test/TikRewards/internal/dto"
	"github.com/0xFF-test/TikRewards/internal/engine"
	"github.com/0xFF-test/TikRewards/internal/model"
	"github.com/0xFF-test/TikRewards/internal/repository"
	"github.com/0xFF-test/TikRewards/pkg/apperror"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	ActionWatchReward        = "watch_reward"
	ActionAbandonmentPenalty = "abandonment_penalty"

	// Viewers finish onboarding after this many completed watches.
	onboardingVideosRequired = 3
)

type WatchService interface {
	// NextVideo serves the highest-priority eligible video to the user,
	// opening a session if needed and a pending view log for the pick.
	NextVideo(ctx context.Context, userID uuid.UUID) (*dto.NextVideoResponse, error)

	// LogWatch finalizes a viewing attempt: awards points for a completed
	// watch or charges the escalating abandonment penalty, maintains the
	// streak counter, session counter and cooldown.
	LogWatch(ctx context.Context, userID, videoID uuid.UUID, input dto.WatchInput) (*dto.WatchResult, error)

	CooldownStatus(ctx context.Context, userID uuid.UUID) (*dto.CooldownStatus, error)

	// StartSessionSweeper periodically deactivates expired sessions.
	StartSessionSweeper(ctx context.Context)
}

type watchService struct {
	cfg         engine.Config
	userRepo    repository.UserRepository
	videoRepo   repository.VideoRepository
	viewLogRepo repository.ViewLogRepository
	sessionRepo repository.SessionRepository
	redisClient *redis.Client
	stream      PointsStream
}

func NewWatchService(
	cfg engine.Config,
	userRepo repository.UserRepository,
	videoRepo repository.VideoRepository,
	viewLogRepo repository.ViewLogRepository,
	sessionRepo repository.SessionRepository,
	redisClient *redis.Client,
	stream PointsStream,
) WatchService {
	return &watchService{
		cfg:         cfg,
		userRepo:    userRepo,
		videoRepo:   videoRepo,
		viewLogRepo: viewLogRepo,
		sessionRepo: sessionRepo,
		redisClient: redisClient,
		stream:      stream,
	}
}

func (s *watchService) NextVideo(ctx context.Context, userID uuid.UUID) (*dto.NextVideoResponse, error) {
	remaining, err := CooldownRemaining(ctx, s.redisClient, userID)
	if err != nil {
		return nil, err
	}
	if remaining > 0 {
		return nil, fmt.Errorf("%w: next video available in %ds",
			apperror.ErrCooldownActive, int(remaining.Seconds()))
	}

	now := time.Now()

	session, err := s.sessionRepo.FindActive(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	if session == nil {
		session = &model.UserSession{
			UserID:    userID,
			IsActive:  true,
			StartedAt: now,
			ExpiresAt: s.cfg.SessionExpiresAt(now),
		}
		if err := s.sessionRepo.Create(ctx, session); err != nil {
			return nil, err
		}
	}

	candidates, err := s.videoRepo.ActiveCandidates(ctx)
	if err != nil {
		return nil, err
	}

	completedIDs, err := s.viewLogRepo.CompletedVideoIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	completed := make(map[string]bool, len(completedIDs))
	for _, id := range completedIDs {
		completed[id.String()] = true
	}

	byID := make(map[string]*model.Video, len(candidates))
	serving := make([]engine.ServingCandidate, 0, len(candidates))
	for _, v := range candidates {
		byID[v.ID.String()] = v

		activatedAt := v.CreatedAt
		if v.ActivatedAt != nil {
			activatedAt = *v.ActivatedAt
		}
		serving = append(serving, engine.ServingCandidate{
			ID:            v.ID.String(),
			CreatorID:     v.CreatorID.String(),
			Status:        engine.VideoStatus(v.Status),
			PriorityScore: v.PriorityScore,
			ActivatedAt:   activatedAt,
		})
	}

	ranked := s.cfg.RankCandidates(serving, userID.String(), completed)
	if len(ranked) == 0 {
		return nil, fmt.Errorf("%w: no videos available", apperror.ErrNotFound)
	}

	video := byID[ranked[0].ID]

	pending := &model.ViewLog{
		UserID:    userID,
		VideoID:   video.ID,
		SessionID: session.ID,
	}
	if err := s.viewLogRepo.Create(ctx, pending); err != nil {
		return nil, err
	}

	return &dto.NextVideoResponse{
		VideoID:            video.ID.String(),
		TikTokURL:          video.TikTokURL,
		VideoLengthSeconds: video.VideoLengthSeconds,
		IsPaid:             video.IsPaid,
		SessionID:          session.ID.String(),
	}, nil
}

func (s *watchService) LogWatch(ctx context.Context, userID, videoID uuid.UUID, input dto.WatchInput) (*dto.WatchResult, error) {
	session, err := s.sessionRepo.FindByID(ctx, input.SessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: session not found", apperror.ErrNotFound)
	}
	if session.UserID != userID {
		return nil, apperror.ErrForbidden
	}

	video, err := s.videoRepo.FindByID(ctx, videoID.String())
	if err != nil {
		return nil, fmt.Errorf("%w: video not found", apperror.ErrNotFound)
	}
	if video.Status != model.VideoStatusActive {
		return nil, fmt.Errorf("%w: video is not active", apperror.ErrNotEligible)
	}

	pending, err := s.viewLogRepo.FindPending(ctx, userID, videoID)
	if err != nil {
		return nil, err
	}
	if pending == nil {
		return nil, fmt.Errorf("%w: no pending view for this video", apperror.ErrNotFound)
	}

	user, err := s.userRepo.FindByID(ctx, userID.String())
	if err != nil {
		return nil, err
	}

	watchCompleted, err := s.cfg.WatchCompleted(input.WatchSeconds, video.VideoLengthSeconds)
	if err != nil {
		return nil, err
	}

	result := &dto.WatchResult{WatchCompleted: watchCompleted}

	if watchCompleted {
		points := s.cfg.ComputePoints(true, input.LikeClicked, input.CommentClicked)
		result.PointsAwarded = points

		balanceAfter, err := s.userRepo.ApplyPointsDelta(ctx, userID, points, ActionWatchReward, &videoID)
		if err != nil {
			return nil, err
		}
		result.BalanceAfter = balanceAfter

		// Any completed watch resets the abandonment streak.
		if user.ConsecutiveAbandonments != 0 {
			if err := s.userRepo.ResetAbandonmentStreak(ctx, userID); err != nil {
				return nil, err
			}
		}

		if err := s.videoRepo.IncrementEngagement(ctx, videoID, input.LikeClicked, input.CommentClicked); err != nil {
			return nil, err
		}

		if err := s.advanceOnboarding(ctx, user); err != nil {
			return nil, err
		}

		s.publish(ctx, PointsUpdate{
			UserID:       userID.String(),
			Action:       ActionWatchReward,
			PointsChange: points,
			BalanceAfter: balanceAfter,
		})
	} else {
		// The streak is bumped in one statement so concurrent abandoned
		// watches each land on their own penalty step.
		streak, err := s.userRepo.IncrementAbandonmentStreak(ctx, userID)
		if err != nil {
			return nil, err
		}

		penalty, err := s.cfg.ComputePenalty(streak)
		if err != nil {
			return nil, err
		}
		result.PointsPenalty = penalty

		// The engine reports the unclamped delta; ApplyPointsDelta owns the
		// floor-at-zero policy for the stored balance.
		balanceAfter, err := s.userRepo.ApplyPointsDelta(ctx, userID, -penalty, ActionAbandonmentPenalty, &videoID)
		if err != nil {
			return nil, err
		}
		result.BalanceAfter = balanceAfter

		abandonment := &model.AbandonmentLog{
			UserID:           userID,
			VideoID:          videoID,
			ConsecutiveCount: streak,
			PointsPenalty:    penalty,
		}
		if err := s.viewLogRepo.CreateAbandonment(ctx, abandonment); err != nil {
			return nil, err
		}

		s.publish(ctx, PointsUpdate{
			UserID:       userID.String(),
			Action:       ActionAbandonmentPenalty,
			PointsChange: -penalty,
			BalanceAfter: balanceAfter,
		})
	}

	now := time.Now()
	pending.WatchSeconds = input.WatchSeconds
	pending.WatchCompleted = watchCompleted
	pending.LikeClicked = input.LikeClicked
	pending.CommentClicked = input.CommentClicked
	pending.PointsAwarded = result.PointsAwarded
	pending.CompletedAt = &now
	if err := s.viewLogRepo.Finalize(ctx, pending); err != nil {
		return nil, err
	}

	// An expired session is only a boundary: the watch itself still counts,
	// but it accumulates no cooldown state.
	if session.IsActive && !s.cfg.SessionExpired(session.StartedAt, now) {
		watched, err := s.sessionRepo.IncrementWatched(ctx, session.ID)
		if err != nil {
			return nil, err
		}

		cooldown, err := s.cfg.ComputeCooldown(watched, user.FollowedMainAccount)
		if err != nil {
			return nil, err
		}
		if cooldown > 0 {
			if err := ArmCooldown(ctx, s.redisClient, userID, cooldown); err != nil {
				return nil, err
			}
			result.CooldownSeconds = int(cooldown.Seconds())
		}
	}

	return result, nil
}

func (s *watchService) advanceOnboarding(ctx context.Context, user *model.User) error {
	if user.OnboardingCompleted {
		return nil
	}

	user.OnboardingVideosWatched++
	if user.OnboardingVideosWatched >= onboardingVideosRequired {
		user.OnboardingCompleted = true
	}

	return s.userRepo.Update(ctx, user)
}

func (s *watchService) CooldownStatus(ctx context.Context, userID uuid.UUID) (*dto.CooldownStatus, error) {
	remaining, err := CooldownRemaining(ctx, s.redisClient, userID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID.String())
	if err != nil {
		return nil, err
	}

	watched := 0
	session, err := s.sessionRepo.FindActive(ctx, userID, time.Now())
	if err != nil {
		return nil, err
	}
	if session != nil {
		watched = session.VideosWatched
	}

	return &dto.CooldownStatus{
		OnCooldown:              remaining > 0,
		RemainingSeconds:        int(remaining.Seconds()),
		VideosWatchedInSession:  watched,
		CooldownReductionActive: user.FollowedMainAccount,
	}, nil
}

func (s *watchService) publish(ctx context.Context, update PointsUpdate) {
	if s.stream == nil {
		return
	}
	if err := s.stream.Publish(ctx, update); err != nil {
		log.Printf("failed to publish points update for user %s: %v", update.UserID, err)
	}
}

func (s *watchService) StartSessionSweeper(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			expired, err := s.sessionRepo.DeactivateExpired(ctx, time.Now())
			if err != nil {
				log.Printf("session sweep failed: %v", err)
				continue
			}
			if expired > 0 {
				log.Printf("session sweep: deactivated %d expired sessions", expired)
			}
		case <-ctx.Done():
			return
		}
	}
}
