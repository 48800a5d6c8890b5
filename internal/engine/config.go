// Package engine implements the rewards and anti-abuse decision rules:
// points for completed watches, escalating abandonment penalties, per-session
// cooldowns, the free/paid submission gate, serving order for active videos
// and the session expiry boundary.
//
// Every function is pure and stateless. The engine never touches the clock,
// the database or Redis; callers load the records, pass the values in and
// persist the returned deltas. Concurrent calls are safe because nothing here
// is shared or mutated.
package engine

import "time"

// Config holds every rule parameter, fixed at construction. Passing it
// explicitly (instead of reading process globals) keeps the rules testable
// with arbitrary parameter sets.
type Config struct {
	// Points
	BaseWatchPoints       int
	LikePoints            int
	CommentPoints         int
	CompletionMultiplier  float64
	MinimumPointsToSubmit int

	// Abandonment penalties, 1-indexed by consecutive count. Counts past the
	// end clamp to the last tier.
	AbandonmentPenalties []int

	// Cooldown
	BaseCooldownVideos      int
	BaseCooldownSeconds     int
	FollowCooldownReduction float64
	MinimumCooldownSeconds  int

	// Video constraints
	MinVideoLengthSeconds    int
	MaxVideoLengthSeconds    int
	WatchCompletionThreshold float64

	// Submissions
	FreeSubmissionLimit int
	PaidWait            time.Duration

	// Sessions
	SessionTimeout time.Duration
}

// DefaultConfig mirrors the production defaults.
func DefaultConfig() Config {
	return Config{
		BaseWatchPoints:       10,
		LikePoints:            5,
		CommentPoints:         10,
		CompletionMultiplier:  1.5,
		MinimumPointsToSubmit: 3800,

		AbandonmentPenalties: []int{15, 30, 60, 120},

		BaseCooldownVideos:      10,
		BaseCooldownSeconds:     60,
		FollowCooldownReduction: 0.25,
		MinimumCooldownSeconds:  30,

		MinVideoLengthSeconds:    15,
		MaxVideoLengthSeconds:    180,
		WatchCompletionThreshold: 0.9,

		FreeSubmissionLimit: 2,
		PaidWait:            30 * time.Minute,

		SessionTimeout: 5 * time.Minute,
	}
}
