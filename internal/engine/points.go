package engine

import "math"

// ComputePoints returns the points earned for a single viewing event.
//
// Partial or abandoned views never earn points. A completed watch earns the
// base value plus the like and comment bonuses for the actions taken. When
// all three actions happened the combined total is multiplied by the
// completion multiplier and rounded half-up; the multiplier applies to the
// sum, never to individual terms.
func (c Config) ComputePoints(watchCompleted, likeClicked, commentClicked bool) int {
	if !watchCompleted {
		return 0
	}

	total := c.BaseWatchPoints
	if likeClicked {
		total += c.LikePoints
	}
	if commentClicked {
		total += c.CommentPoints
	}

	if likeClicked && commentClicked {
		// Round half-up so a .5 boundary (e.g. 25 * 1.5 = 37.5) awards the
		// higher value on every platform.
		total = int(math.Floor(float64(total)*c.CompletionMultiplier + 0.5))
	}

	return total
}
