package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReportTime(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected *time.Time
	}{
		{"full layout", "2024-04-26 15:10:05", timePtr(2024, 4, 26, 15, 10, 5)},
		{"no seconds", "2024-04-26 15:10", timePtr(2024, 4, 26, 15, 10, 0)},
		{"slashed", "2024/04/26 15:10:05", timePtr(2024, 4, 26, 15, 10, 5)},
		{"empty", "", nil},
		{"whitespace only", "   ", nil},
		{"garbage", "not a time", nil},
		{"bare date rejected", "2024-04-26", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseReportTime(tt.value)
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.expected.Equal(*got), "got %v, want %v", got, tt.expected)
		})
	}
}

func TestNormalizeReports(t *testing.T) {
	t.Run("tags kinds and keeps source order", func(t *testing.T) {
		motion := []RawRow{
			{SiteAlias: "A1", Zone: "Sylhet", StartTime: "2024-04-26 10:00:00"},
			{SiteAlias: "B2", Zone: "Gazipur", StartTime: "2024-04-26 11:00:00"},
		}
		vibration := []RawRow{
			{SiteAlias: "A1", Zone: "Sylhet", StartTime: "2024-04-26 12:00:00"},
		}

		records, skipped := NormalizeReports(motion, vibration)

		require.Len(t, records, 3)
		assert.Zero(t, skipped)
		assert.Equal(t, KindMotion, records[0].Kind)
		assert.Equal(t, KindMotion, records[1].Kind)
		assert.Equal(t, KindVibration, records[2].Kind)
		assert.Equal(t, "A1", records[0].SiteAlias)
		assert.Equal(t, "Gazipur", records[1].Zone)
	})

	t.Run("bad timestamp keeps the row with nil time", func(t *testing.T) {
		motion := []RawRow{
			{SiteAlias: "A1", Zone: "Sylhet", StartTime: "##ERR##", EndTime: "also bad"},
		}

		records, skipped := NormalizeReports(motion, nil)

		require.Len(t, records, 1)
		assert.Zero(t, skipped)
		assert.Nil(t, records[0].StartTime)
		assert.Nil(t, records[0].EndTime)
	})

	t.Run("rows without site or zone are dropped and counted", func(t *testing.T) {
		motion := []RawRow{
			{SiteAlias: "", Zone: "Sylhet"},
			{SiteAlias: "A1", Zone: ""},
			{SiteAlias: "  ", Zone: "  "},
			{SiteAlias: "A1", Zone: "Sylhet"},
		}

		records, skipped := NormalizeReports(motion, nil)

		require.Len(t, records, 1)
		assert.Equal(t, 3, skipped)
		assert.Equal(t, "A1", records[0].SiteAlias)
	})

	t.Run("trims whitespace from site and zone", func(t *testing.T) {
		vibration := []RawRow{{SiteAlias: " A1 ", Zone: " Sylhet "}}

		records, skipped := NormalizeReports(nil, vibration)

		require.Len(t, records, 1)
		assert.Zero(t, skipped)
		assert.Equal(t, "A1", records[0].SiteAlias)
		assert.Equal(t, "Sylhet", records[0].Zone)
	})

	t.Run("empty inputs", func(t *testing.T) {
		records, skipped := NormalizeReports(nil, nil)
		assert.Empty(t, records)
		assert.Zero(t, skipped)
	})
}

func timePtr(year int, month time.Month, day, hour, minute, sec int) *time.Time {
	t := time.Date(year, month, day, hour, minute, sec, 0, time.Local)
	return &t
}
