package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/0xFF-test/TikRewards/pkg/apperror"
)

// ComputeCooldown returns the wait required before the user may watch the
// next video, based on how many videos they already watched in the current
// session. Below the threshold there is no wait. At or above it the base
// cooldown applies, reduced by the follow reduction when the user verifiably
// follows the promoted account, and never below the configured floor.
//
// The result is a duration only. The caller records now + d as the cooldown
// expiry and compares later requests against it; the engine never reads the
// clock.
func (c Config) ComputeCooldown(videosWatchedInSession int, hasFollowedPromotedAccount bool) (time.Duration, error) {
	if videosWatchedInSession < 0 {
		return 0, fmt.Errorf("%w: videos watched in session must be >= 0, got %d",
			apperror.ErrInvalidInput, videosWatchedInSession)
	}

	if videosWatchedInSession < c.BaseCooldownVideos {
		return 0, nil
	}

	seconds := float64(c.BaseCooldownSeconds)
	if hasFollowedPromotedAccount {
		seconds *= 1 - c.FollowCooldownReduction
	}

	seconds = math.Max(seconds, float64(c.MinimumCooldownSeconds))
	return time.Duration(seconds * float64(time.Second)), nil
}
