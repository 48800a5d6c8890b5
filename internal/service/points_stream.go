package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// PointsUpdate is pushed to connected clients whenever a balance changes.
type PointsUpdate struct {
	UserID       string `json:"user_id"`
	Action       string `json:"action"`
	PointsChange int    `json:"points_change"`
	BalanceAfter int    `json:"balance_after"`
}

type PointsStream interface {
	Publish(ctx context.Context, update PointsUpdate) error
	Subscribe(ctx context.Context, userID uuid.UUID) *redis.PubSub
}

type redisPointsStream struct {
	redisClient *redis.Client
}

func NewPointsStream(redisClient *redis.Client) PointsStream {
	return &redisPointsStream{redisClient: redisClient}
}

func pointsChannel(userID string) string {
	return fmt.Sprintf("points:user:%s", userID)
}

func (s *redisPointsStream) Publish(ctx context.Context, update PointsUpdate) error {
	if s.redisClient == nil {
		return nil
	}

	payload, err := json.Marshal(update)
	if err != nil {
		return err
	}

	return s.redisClient.Publish(ctx, pointsChannel(update.UserID), payload).Err()
}

func (s *redisPointsStream) Subscribe(ctx context.Context, userID uuid.UUID) *redis.PubSub {
	if s.redisClient == nil {
		return nil
	}
	return s.redisClient.Subscribe(ctx, pointsChannel(userID.String()))
}
