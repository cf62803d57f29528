package summary

import (
	"sort"

	"github.com/pulseforge/alarm-report-etl/internal/domain"
)

// Row is one presented site line: its counts plus the severity tier of each
// count.
type Row struct {
	domain.ZoneCount
	TotalCount    int         `json:"total_count"`
	MotionTier    domain.Tier `json:"motion_tier"`
	VibrationTier domain.Tier `json:"vibration_tier"`
}

// ZoneSummary is one zone's presented block: its rows sorted by total count
// descending and the zone-level sums across all rows.
type ZoneSummary struct {
	Zone           string `json:"zone"`
	Rows           []Row  `json:"rows"`
	TotalMotion    int    `json:"total_motion"`
	TotalVibration int    `json:"total_vibration"`
}

// Present orders aggregated counts for display. Zones named in the priority
// list come first, in list order, skipping listed zones absent from the
// data; remaining zones follow in ascending name order. Within a zone, rows
// sort by total count descending with a stable sort, so ties keep their
// aggregation order. highThreshold feeds the per-count severity tier.
func Present(counts []domain.ZoneCount, priority []string, highThreshold int) []ZoneSummary {
	byZone := make(map[string][]domain.ZoneCount)
	var zoneOrder []string
	for _, c := range counts {
		if _, ok := byZone[c.Zone]; !ok {
			zoneOrder = append(zoneOrder, c.Zone)
		}
		byZone[c.Zone] = append(byZone[c.Zone], c)
	}

	prioritized := make(map[string]bool, len(priority))
	var ordered []string
	for _, zone := range priority {
		if _, ok := byZone[zone]; ok {
			prioritized[zone] = true
			ordered = append(ordered, zone)
		}
	}

	var rest []string
	for _, zone := range zoneOrder {
		if !prioritized[zone] {
			rest = append(rest, zone)
		}
	}
	sort.Strings(rest)
	ordered = append(ordered, rest...)

	summaries := make([]ZoneSummary, 0, len(ordered))
	for _, zone := range ordered {
		summaries = append(summaries, presentZone(zone, byZone[zone], highThreshold))
	}
	return summaries
}

func presentZone(zone string, counts []domain.ZoneCount, highThreshold int) ZoneSummary {
	SortByTotalDesc(counts)

	s := ZoneSummary{Zone: zone, Rows: make([]Row, 0, len(counts))}
	for _, c := range counts {
		s.TotalMotion += c.MotionCount
		s.TotalVibration += c.VibrationCount
		s.Rows = append(s.Rows, Row{
			ZoneCount:     c,
			TotalCount:    c.Total(),
			MotionTier:    domain.TierFor(c.MotionCount, highThreshold),
			VibrationTier: domain.TierFor(c.VibrationCount, highThreshold),
		})
	}
	return s
}

// SortByTotalDesc sorts counts by total count descending in place. The sort
// is stable on purpose: there is no secondary key, so ties must keep their
// incoming relative order for deterministic output.
func SortByTotalDesc(counts []domain.ZoneCount) {
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Total() > counts[j].Total()
	})
}
