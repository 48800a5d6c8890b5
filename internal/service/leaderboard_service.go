package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/0xFF-test/TikRewards/internal/dto"
	"github.com/0xFF-test/TikRewards/internal/repository"
	"github.com/redis/go-redis/v9"
)

const (
	leaderboardCacheKey = "leaderboard:top"
	leaderboardCacheTTL = time.Minute
	leaderboardMaxLimit = 100
)

type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, limit int) ([]dto.LeaderboardEntry, error)
}

type leaderboardService struct {
	userRepo    repository.UserRepository
	redisClient *redis.Client
}

func NewLeaderboardService(userRepo repository.UserRepository, redisClient *redis.Client) LeaderboardService {
	return &leaderboardService{
		userRepo:    userRepo,
		redisClient: redisClient,
	}
}

func (s *leaderboardService) GetLeaderboard(ctx context.Context, limit int) ([]dto.LeaderboardEntry, error) {
	if limit <= 0 || limit > leaderboardMaxLimit {
		limit = 10
	}

	if cached := s.fromCache(ctx); cached != nil {
		if len(cached) > limit {
			cached = cached[:limit]
		}
		return cached, nil
	}

	users, err := s.userRepo.TopByPoints(ctx, leaderboardMaxLimit)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.LeaderboardEntry, 0, len(users))
	for i, user := range users {
		entries = append(entries, dto.LeaderboardEntry{
			Rank:          i + 1,
			Email:         user.Email,
			PointsBalance: user.PointsBalance,
		})
	}

	s.toCache(ctx, entries)

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (s *leaderboardService) fromCache(ctx context.Context) []dto.LeaderboardEntry {
	if s.redisClient == nil {
		return nil
	}

	payload, err := s.redisClient.Get(ctx, leaderboardCacheKey).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("leaderboard cache read failed: %v", err)
		}
		return nil
	}

	var entries []dto.LeaderboardEntry
	if err := json.Unmarshal([]byte(payload), &entries); err != nil {
		return nil
	}
	return entries
}

func (s *leaderboardService) toCache(ctx context.Context, entries []dto.LeaderboardEntry) {
	if s.redisClient == nil {
		return
	}

	payload, err := json.Marshal(entries)
	if err != nil {
		return
	}
	if err := s.redisClient.Set(ctx, leaderboardCacheKey, payload, leaderboardCacheTTL).Err(); err != nil {
		log.Printf("leaderboard cache write failed: %v", err)
	}
}
