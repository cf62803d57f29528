package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestTierFor(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		threshold int
		expected  Tier
	}{
		{"zero is none", 0, DefaultHighThreshold, TierNone},
		{"one is moderate", 1, DefaultHighThreshold, TierModerate},
		{"just below threshold", 9, DefaultHighThreshold, TierModerate},
		{"at threshold", 10, DefaultHighThreshold, TierHigh},
		{"above threshold", 42, DefaultHighThreshold, TierHigh},
		{"custom threshold", 5, 5, TierHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TierFor(tt.count, tt.threshold))
		})
	}
}

func TestStartOfToday(t *testing.T) {
	SetClock(clockwork.NewFakeClockAt(time.Date(2024, 4, 26, 17, 45, 12, 0, time.Local)))
	defer SetClock(nil)

	got := StartOfToday()

	assert.Equal(t, time.Date(2024, 4, 26, 0, 0, 0, 0, time.Local), got)
}

func TestZoneCountTotal(t *testing.T) {
	c := ZoneCount{MotionCount: 2, VibrationCount: 1}
	assert.Equal(t, 3, c.Total())
}
