package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}

func TestCooldownArmAndRemaining(t *testing.T) {
	ctx := context.Background()
	rdb, mr := newTestRedis(t)
	userID := uuid.New()

	// No cooldown armed yet.
	remaining, err := CooldownRemaining(ctx, rdb, userID)
	require.NoError(t, err)
	assert.Zero(t, remaining)

	require.NoError(t, ArmCooldown(ctx, rdb, userID, 45*time.Second))

	remaining, err = CooldownRemaining(ctx, rdb, userID)
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, remaining)

	// Arming again while active must not extend the existing cooldown.
	mr.FastForward(20 * time.Second)
	require.NoError(t, ArmCooldown(ctx, rdb, userID, 45*time.Second))

	remaining, err = CooldownRemaining(ctx, rdb, userID)
	require.NoError(t, err)
	assert.Equal(t, 25*time.Second, remaining)

	// Fully elapsed.
	mr.FastForward(30 * time.Second)
	remaining, err = CooldownRemaining(ctx, rdb, userID)
	require.NoError(t, err)
	assert.Zero(t, remaining)
}

func TestCooldownClear(t *testing.T) {
	ctx := context.Background()
	rdb, _ := newTestRedis(t)
	userID := uuid.New()

	require.NoError(t, ArmCooldown(ctx, rdb, userID, time.Minute))
	require.NoError(t, ClearCooldown(ctx, rdb, userID))

	remaining, err := CooldownRemaining(ctx, rdb, userID)
	require.NoError(t, err)
	assert.Zero(t, remaining)
}

func TestCooldownZeroDurationIsNoop(t *testing.T) {
	ctx := context.Background()
	rdb, _ := newTestRedis(t)
	userID := uuid.New()

	require.NoError(t, ArmCooldown(ctx, rdb, userID, 0))

	remaining, err := CooldownRemaining(ctx, rdb, userID)
	require.NoError(t, err)
	assert.Zero(t, remaining)
}

func TestCooldownNilClient(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	assert.NoError(t, ArmCooldown(ctx, nil, userID, time.Minute))

	remaining, err := CooldownRemaining(ctx, nil, userID)
	assert.NoError(t, err)
	assert.Zero(t, remaining)

	assert.NoError(t, ClearCooldown(ctx, nil, userID))
}
