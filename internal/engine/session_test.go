package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionExpiry(t *testing.T) {
	cfg := DefaultConfig() // timeout 5m
	started := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, started.Add(5*time.Minute), cfg.SessionExpiresAt(started))

	assert.False(t, cfg.SessionExpired(started, started))
	assert.False(t, cfg.SessionExpired(started, started.Add(5*time.Minute-time.Second)))
	assert.True(t, cfg.SessionExpired(started, started.Add(5*time.Minute)))
	assert.True(t, cfg.SessionExpired(started, started.Add(time.Hour)))
}
