package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// The cooldown computed by the engine is armed here as a Redis key with a
// TTL; admission checks compare against the remaining TTL instead of a
// stored timestamp.

func cooldownKey(userID uuid.UUID) string {
	return fmt.Sprintf("cooldown:user:%s", userID.String())
}

func ArmCooldown(ctx context.Context, rdb *redis.Client, userID uuid.UUID, d time.Duration) error {
	if rdb == nil || d <= 0 {
		return nil
	}

	_, err := rdb.SetNX(ctx, cooldownKey(userID), "locked", d).Result()
	if err != nil {
		return fmt.Errorf("failed to arm cooldown in redis: %w", err)
	}

	return nil
}

// CooldownRemaining returns how long the user must still wait, zero when no
// cooldown is active.
func CooldownRemaining(ctx context.Context, rdb *redis.Client, userID uuid.UUID) (time.Duration, error) {
	if rdb == nil {
		return 0, nil
	}

	ttl, err := rdb.TTL(ctx, cooldownKey(userID)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read cooldown ttl: %w", err)
	}
	if ttl < 0 {
		// -1 no expiry, -2 missing key
		return 0, nil
	}

	return ttl, nil
}

func ClearCooldown(ctx context.Context, rdb *redis.Client, userID uuid.UUID) error {
	if rdb == nil {
		return nil
	}
	_, err := rdb.Del(ctx, cooldownKey(userID)).Result()
	return err
}
