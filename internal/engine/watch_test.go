package engine

import (
	"testing"

	"github.com/0xFF-test/TikRewards/pkg/apperror"
	"github.com/stretchr/testify/assert"
)

func TestWatchCompleted(t *testing.T) {
	cfg := DefaultConfig() // threshold 0.9

	tests := []struct {
		name    string
		watched int
		length  int
		want    bool
	}{
		{"watched nothing", 0, 60, false},
		{"watched half", 30, 60, false},
		{"just under threshold", 53, 60, false}, // need 54
		{"exactly at threshold", 54, 60, true},
		{"watched fully", 60, 60, true},
		{"watched past the end", 65, 60, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cfg.WatchCompleted(tt.watched, tt.length)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWatchCompletedInvalidInput(t *testing.T) {
	cfg := DefaultConfig()

	_, err := cfg.WatchCompleted(-1, 60)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = cfg.WatchCompleted(10, 0)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = cfg.WatchCompleted(10, -5)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestValidVideoLength(t *testing.T) {
	cfg := DefaultConfig() // 15..180

	assert.False(t, cfg.ValidVideoLength(14))
	assert.True(t, cfg.ValidVideoLength(15))
	assert.True(t, cfg.ValidVideoLength(180))
	assert.False(t, cfg.ValidVideoLength(181))
}
