package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputePoints(t *testing.T) {
	cfg := DefaultConfig() // base 10, like 5, comment 10, multiplier 1.5

	tests := []struct {
		name           string
		watchCompleted bool
		likeClicked    bool
		commentClicked bool
		want           int
	}{
		{"incomplete watch earns nothing", false, false, false, 0},
		{"incomplete watch with like earns nothing", false, true, false, 0},
		{"incomplete watch with like and comment earns nothing", false, true, true, 0},
		{"completed watch only", true, false, false, 10},
		{"completed watch with like", true, true, false, 15},
		{"completed watch with comment", true, false, true, 20},
		{"all three actions, multiplier on the sum", true, true, true, 38}, // round(25 * 1.5) = round(37.5)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cfg.ComputePoints(tt.watchCompleted, tt.likeClicked, tt.commentClicked)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputePointsRounding(t *testing.T) {
	// The multiplier applies after summing, and .5 boundaries round up.
	cfg := DefaultConfig()
	cfg.BaseWatchPoints = 1
	cfg.LikePoints = 1
	cfg.CommentPoints = 1
	cfg.CompletionMultiplier = 1.5

	// 3 * 1.5 = 4.5 -> 5, not 4
	assert.Equal(t, 5, cfg.ComputePoints(true, true, true))

	cfg.CompletionMultiplier = 0.5
	// 3 * 0.5 = 1.5 -> 2
	assert.Equal(t, 2, cfg.ComputePoints(true, true, true))
}

func TestComputePointsMultiplierNeedsAllThree(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CompletionMultiplier = 10 // would be obvious if misapplied

	assert.Equal(t, cfg.BaseWatchPoints, cfg.ComputePoints(true, false, false))
	assert.Equal(t, cfg.BaseWatchPoints+cfg.LikePoints, cfg.ComputePoints(true, true, false))
	assert.Equal(t, cfg.BaseWatchPoints+cfg.CommentPoints, cfg.ComputePoints(true, false, true))
}
