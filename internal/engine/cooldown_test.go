package engine

import (
	"testing"
	"time"

	"github.com/0xFF-test/TikRewards/pkg/apperror"
	"github.com/stretchr/testify/assert"
)

func TestComputeCooldown(t *testing.T) {
	cfg := DefaultConfig() // threshold 10, base 60s, reduction 0.25, floor 30s

	tests := []struct {
		name     string
		watched  int
		followed bool
		want     time.Duration
	}{
		{"below threshold, no wait", 0, false, 0},
		{"just below threshold", 9, false, 0},
		{"below threshold, followed changes nothing", 9, true, 0},
		{"at threshold", 10, false, 60 * time.Second},
		{"past threshold", 25, false, 60 * time.Second},
		{"at threshold with follow reduction", 10, true, 45 * time.Second}, // 60 * 0.75
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cfg.ComputeCooldown(tt.watched, tt.followed)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeCooldownFloor(t *testing.T) {
	// The follow reduction can shrink the cooldown but never below the floor.
	cfg := DefaultConfig()
	cfg.BaseCooldownSeconds = 35
	cfg.FollowCooldownReduction = 0.5 // would give 17.5s

	d, err := cfg.ComputeCooldown(cfg.BaseCooldownVideos, true)
	assert.NoError(t, err)
	assert.Equal(t, 30*time.Second, d)

	// Also holds when the base itself sits below the floor.
	cfg.BaseCooldownSeconds = 10
	d, err = cfg.ComputeCooldown(cfg.BaseCooldownVideos, false)
	assert.NoError(t, err)
	assert.Equal(t, 30*time.Second, d)
}

func TestComputeCooldownFollowRelation(t *testing.T) {
	// followed = max(floor, unfollowed * (1 - reduction))
	cfg := DefaultConfig()

	plain, err := cfg.ComputeCooldown(10, false)
	assert.NoError(t, err)

	reduced, err := cfg.ComputeCooldown(10, true)
	assert.NoError(t, err)

	expected := time.Duration(float64(plain) * (1 - cfg.FollowCooldownReduction))
	floor := time.Duration(cfg.MinimumCooldownSeconds) * time.Second
	if expected < floor {
		expected = floor
	}
	assert.Equal(t, expected, reduced)
	assert.GreaterOrEqual(t, reduced, floor)
}

func TestComputeCooldownInvalidCount(t *testing.T) {
	cfg := DefaultConfig()

	_, err := cfg.ComputeCooldown(-1, false)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}
