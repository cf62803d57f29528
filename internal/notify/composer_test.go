package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseforge/alarm-report-etl/internal/domain"
)

func TestCompose(t *testing.T) {
	rows := []domain.ZoneCount{
		{Zone: "Sylhet", SiteAlias: "A1", MotionCount: 2, VibrationCount: 1},
	}
	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)

	msg := Compose("Sylhet", rows, since, "Karim", DefaultTemplate())

	assert.True(t, strings.HasPrefix(msg, "<b>Motion & Vibration Alarm Alert</b>\n\n"))
	assert.Contains(t, msg, "<b>Sylhet:</b>\nAlarm came after: 2024-01-01 12:00 AM")
	assert.Contains(t, msg, "#A1: Vibration: 1, Motion: 2")
	assert.True(t, strings.HasSuffix(msg, "@Karim, please take care."))
}

func TestCompose_SortsByTotalDescWithoutMutating(t *testing.T) {
	rows := []domain.ZoneCount{
		{Zone: "Sylhet", SiteAlias: "A1", MotionCount: 1},
		{Zone: "Sylhet", SiteAlias: "B2", MotionCount: 9, VibrationCount: 3},
	}
	since := time.Date(2024, 1, 1, 6, 30, 0, 0, time.Local)

	msg := Compose("Sylhet", rows, since, "Karim", DefaultTemplate())

	b2 := strings.Index(msg, "#B2:")
	a1 := strings.Index(msg, "#A1:")
	require.GreaterOrEqual(t, b2, 0)
	require.GreaterOrEqual(t, a1, 0)
	assert.Less(t, b2, a1)
	// Caller's slice keeps its order.
	assert.Equal(t, "A1", rows[0].SiteAlias)
}

func TestCompose_AfternoonFormat(t *testing.T) {
	rows := []domain.ZoneCount{{Zone: "Sylhet", SiteAlias: "A1", VibrationCount: 1}}
	since := time.Date(2024, 4, 26, 14, 5, 0, 0, time.Local)

	msg := Compose("Sylhet", rows, since, "Karim", DefaultTemplate())

	assert.Contains(t, msg, "Alarm came after: 2024-04-26 02:05 PM")
}

func TestCompose_SentinelOwner(t *testing.T) {
	rows := []domain.ZoneCount{{Zone: "Khulna", SiteAlias: "K1", MotionCount: 1}}
	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)

	msg := Compose("Khulna", rows, since, "Unknown Concern", DefaultTemplate())

	assert.True(t, strings.HasSuffix(msg, "@Unknown Concern, please take care."))
}
