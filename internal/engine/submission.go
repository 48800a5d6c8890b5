package engine

import (
	"fmt"
	"time"

	"github.com/0xFF-test/TikRewards/pkg/apperror"
)

// SubmissionDecision is the outcome of the submission gate.
type SubmissionDecision struct {
	Allowed         bool
	RequiresPayment bool
	// WaitRemaining is how long until a paid submission becomes possible.
	// Zero when Allowed.
	WaitRemaining time.Duration
}

// CanSubmit decides whether a new video submission is possible and whether
// it costs money. Submissions are free until the lifetime free limit is
// used up; afterwards every slot is paid, rate-limited by the paid wait
// since the user's most recent paid submission. sinceLastPaid is nil when
// the user has never paid for a slot, in which case the first paid
// submission is allowed immediately.
func (c Config) CanSubmit(freeSubmissionsUsed int, sinceLastPaid *time.Duration) (SubmissionDecision, error) {
	if freeSubmissionsUsed < 0 {
		return SubmissionDecision{}, fmt.Errorf("%w: free submissions used must be >= 0, got %d",
			apperror.ErrInvalidInput, freeSubmissionsUsed)
	}
	if sinceLastPaid != nil && *sinceLastPaid < 0 {
		return SubmissionDecision{}, fmt.Errorf("%w: time since last paid submission must be >= 0, got %v",
			apperror.ErrInvalidInput, *sinceLastPaid)
	}

	if freeSubmissionsUsed < c.FreeSubmissionLimit {
		return SubmissionDecision{Allowed: true}, nil
	}

	if sinceLastPaid == nil || *sinceLastPaid >= c.PaidWait {
		return SubmissionDecision{Allowed: true, RequiresPayment: true}, nil
	}

	return SubmissionDecision{
		RequiresPayment: true,
		WaitRemaining:   c.PaidWait - *sinceLastPaid,
	}, nil
}
