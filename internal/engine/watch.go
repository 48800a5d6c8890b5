package engine

import (
	"fmt"

	"github.com/0xFF-test/TikRewards/pkg/apperror"
)

// WatchCompleted reports whether a view counts as completed: watched seconds
// must reach the completion threshold fraction of the video length.
func (c Config) WatchCompleted(watchedSeconds, videoLengthSeconds int) (bool, error) {
	if watchedSeconds < 0 {
		return false, fmt.Errorf("%w: watched seconds must be >= 0, got %d",
			apperror.ErrInvalidInput, watchedSeconds)
	}
	if videoLengthSeconds <= 0 {
		return false, fmt.Errorf("%w: video length must be > 0, got %d",
			apperror.ErrInvalidInput, videoLengthSeconds)
	}

	required := c.WatchCompletionThreshold * float64(videoLengthSeconds)
	return float64(watchedSeconds) >= required, nil
}

// ValidVideoLength reports whether a video length is inside the configured
// bounds.
func (c Config) ValidVideoLength(seconds int) bool {
	return seconds >= c.MinVideoLengthSeconds && seconds <= c.MaxVideoLengthSeconds
}
