package engine

import (
	"testing"
	"time"

	"github.com/0xFF-test/TikRewards/pkg/apperror"
	"github.com/stretchr/testify/assert"
)

func durationPtr(d time.Duration) *time.Duration { return &d }

func TestCanSubmitFreeSlots(t *testing.T) {
	cfg := DefaultConfig() // free limit 2

	// Exactly freeLimit submissions go through free of charge.
	for used := 0; used < cfg.FreeSubmissionLimit; used++ {
		decision, err := cfg.CanSubmit(used, nil)
		assert.NoError(t, err)
		assert.True(t, decision.Allowed, "used=%d", used)
		assert.False(t, decision.RequiresPayment, "used=%d", used)
		assert.Zero(t, decision.WaitRemaining)
	}
}

func TestCanSubmitFirstPaidIsImmediate(t *testing.T) {
	cfg := DefaultConfig()

	// Free limit exhausted, no prior paid submission: allowed right away,
	// but it costs money.
	decision, err := cfg.CanSubmit(cfg.FreeSubmissionLimit, nil)
	assert.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.True(t, decision.RequiresPayment)
	assert.Zero(t, decision.WaitRemaining)
}

func TestCanSubmitPaidWait(t *testing.T) {
	cfg := DefaultConfig() // paid wait 30m

	tests := []struct {
		name          string
		sinceLastPaid time.Duration
		wantAllowed   bool
		wantRemaining time.Duration
	}{
		{"paid a minute ago", time.Minute, false, 29 * time.Minute},
		{"one second short", cfg.PaidWait - time.Second, false, time.Second},
		{"wait exactly elapsed", cfg.PaidWait, true, 0},
		{"wait long elapsed", 2 * time.Hour, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, err := cfg.CanSubmit(cfg.FreeSubmissionLimit, durationPtr(tt.sinceLastPaid))
			assert.NoError(t, err)
			assert.Equal(t, tt.wantAllowed, decision.Allowed)
			assert.True(t, decision.RequiresPayment)
			assert.Equal(t, tt.wantRemaining, decision.WaitRemaining)
		})
	}
}

func TestCanSubmitInvalidInput(t *testing.T) {
	cfg := DefaultConfig()

	_, err := cfg.CanSubmit(-1, nil)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = cfg.CanSubmit(0, durationPtr(-time.Minute))
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}
