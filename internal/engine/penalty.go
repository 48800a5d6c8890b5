package engine

import (
	"fmt"

	"github.com/0xFF-test/TikRewards/pkg/apperror"
)

// ComputePenalty returns the points penalty for the n-th consecutive
// abandonment. The count is 1-indexed: the first abandonment after a
// completed watch is count 1. Counts beyond the escalation table clamp to
// its last (largest) tier, so the penalty never exceeds the ceiling no
// matter how long the streak grows.
//
// The caller owns the counter: increment before calling, reset to zero on
// any completed watch.
func (c Config) ComputePenalty(consecutiveCount int) (int, error) {
	if consecutiveCount < 1 {
		return 0, fmt.Errorf("%w: consecutive abandonment count must be >= 1, got %d",
			apperror.ErrInvalidInput, consecutiveCount)
	}
	if len(c.AbandonmentPenalties) == 0 {
		return 0, nil
	}

	index := consecutiveCount - 1
	if index >= len(c.AbandonmentPenalties) {
		index = len(c.AbandonmentPenalties) - 1
	}
	return c.AbandonmentPenalties[index], nil
}
