package summary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseforge/alarm-report-etl/internal/domain"
)

func rec(site, zone string, kind domain.AlarmKind, start *time.Time) domain.EventRecord {
	return domain.EventRecord{SiteAlias: site, Zone: zone, Kind: kind, StartTime: start}
}

func at(hour int) *time.Time {
	t := time.Date(2024, 4, 26, hour, 0, 0, 0, time.Local)
	return &t
}

func TestAggregate_SampleScenario(t *testing.T) {
	records := []domain.EventRecord{
		rec("A1", "Sylhet", domain.KindMotion, at(9)),
		rec("A1", "Sylhet", domain.KindMotion, at(10)),
		rec("A1", "Sylhet", domain.KindVibration, at(11)),
	}

	counts := Aggregate(records, nil)

	require.Len(t, counts, 1)
	assert.Equal(t, domain.ZoneCount{
		Zone: "Sylhet", SiteAlias: "A1", MotionCount: 2, VibrationCount: 1,
	}, counts[0])
}

func TestAggregate_OuterJoin(t *testing.T) {
	// A site seen in only one kind still gets a row with the other count zero.
	records := []domain.EventRecord{
		rec("A1", "Sylhet", domain.KindMotion, at(9)),
		rec("B2", "Sylhet", domain.KindVibration, at(9)),
	}

	counts := Aggregate(records, nil)

	require.Len(t, counts, 2)
	assert.Equal(t, domain.ZoneCount{Zone: "Sylhet", SiteAlias: "A1", MotionCount: 1}, counts[0])
	assert.Equal(t, domain.ZoneCount{Zone: "Sylhet", SiteAlias: "B2", VibrationCount: 1}, counts[1])
}

func TestAggregate_SinceFilter(t *testing.T) {
	records := []domain.EventRecord{
		rec("A1", "Sylhet", domain.KindMotion, at(8)),
		rec("A1", "Sylhet", domain.KindMotion, at(12)),
		rec("A1", "Sylhet", domain.KindVibration, nil), // unparseable start time
	}

	t.Run("nil since counts everything", func(t *testing.T) {
		counts := Aggregate(records, nil)
		require.Len(t, counts, 1)
		assert.Equal(t, 2, counts[0].MotionCount)
		assert.Equal(t, 1, counts[0].VibrationCount)
	})

	t.Run("since excludes earlier and nil start times", func(t *testing.T) {
		counts := Aggregate(records, at(10))
		require.Len(t, counts, 1)
		assert.Equal(t, 1, counts[0].MotionCount)
		assert.Equal(t, 0, counts[0].VibrationCount)
	})

	t.Run("since is inclusive", func(t *testing.T) {
		counts := Aggregate(records, at(12))
		require.Len(t, counts, 1)
		assert.Equal(t, 1, counts[0].MotionCount)
	})

	t.Run("no row when nothing survives the filter", func(t *testing.T) {
		counts := Aggregate(records, at(13))
		assert.Empty(t, counts)
	})
}

func TestAggregate_FilterMonotonicity(t *testing.T) {
	records := []domain.EventRecord{
		rec("A1", "Sylhet", domain.KindMotion, at(8)),
		rec("A1", "Sylhet", domain.KindMotion, at(10)),
		rec("A1", "Sylhet", domain.KindVibration, at(14)),
		rec("B2", "Gazipur", domain.KindVibration, at(9)),
	}

	// Tightening the lower bound can only shrink counts.
	totals := func(since *time.Time) int {
		sum := 0
		for _, c := range Aggregate(records, since) {
			sum += c.Total()
		}
		return sum
	}

	assert.GreaterOrEqual(t, totals(at(8)), totals(at(10)))
	assert.GreaterOrEqual(t, totals(at(10)), totals(at(15)))
}

func TestAggregate_FirstSeenOrder(t *testing.T) {
	records := []domain.EventRecord{
		rec("C3", "Sylhet", domain.KindMotion, at(9)),
		rec("A1", "Sylhet", domain.KindMotion, at(9)),
		rec("C3", "Sylhet", domain.KindVibration, at(9)),
	}

	counts := Aggregate(records, nil)

	require.Len(t, counts, 2)
	assert.Equal(t, "C3", counts[0].SiteAlias)
	assert.Equal(t, "A1", counts[1].SiteAlias)
}

func TestFilterZone(t *testing.T) {
	records := []domain.EventRecord{
		rec("A1", "Sylhet", domain.KindMotion, at(9)),
		rec("B2", "Gazipur", domain.KindMotion, at(9)),
		rec("A2", "Sylhet", domain.KindVibration, at(9)),
	}

	got := FilterZone(records, "Sylhet")

	require.Len(t, got, 2)
	assert.Equal(t, "A1", got[0].SiteAlias)
	assert.Equal(t, "A2", got[1].SiteAlias)
	assert.Empty(t, FilterZone(records, "Khulna"))
}
