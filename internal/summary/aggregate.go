// Package summary turns normalized alarm records into per-zone, per-site
// counts and orders them for display and alerting.
package summary

import (
	"time"

	"github.com/pulseforge/alarm-report-etl/internal/domain"
)

type zoneSite struct {
	zone string
	site string
}

// Aggregate groups records by (zone, site alias) and counts each alarm kind
// independently. When since is non-nil, records whose start time is nil or
// earlier than since are excluded before counting.
//
// Every (zone, site) pair with at least one surviving record yields exactly
// one row; a site seen only in one kind still gets a row with the other
// count at zero. Rows come out in first-seen order, which keeps the stable
// sorts applied later deterministic.
func Aggregate(records []domain.EventRecord, since *time.Time) []domain.ZoneCount {
	index := make(map[zoneSite]int)
	counts := make([]domain.ZoneCount, 0)

	for _, rec := range records {
		if since != nil {
			if rec.StartTime == nil || rec.StartTime.Before(*since) {
				continue
			}
		}

		key := zoneSite{zone: rec.Zone, site: rec.SiteAlias}
		i, ok := index[key]
		if !ok {
			i = len(counts)
			index[key] = i
			counts = append(counts, domain.ZoneCount{Zone: rec.Zone, SiteAlias: rec.SiteAlias})
		}

		switch rec.Kind {
		case domain.KindMotion:
			counts[i].MotionCount++
		case domain.KindVibration:
			counts[i].VibrationCount++
		}
	}

	return counts
}

// FilterZone returns the subset of records belonging to one zone, preserving
// order. Used by the notification path, which aggregates per zone.
func FilterZone(records []domain.EventRecord, zone string) []domain.EventRecord {
	var out []domain.EventRecord
	for _, rec := range records {
		if rec.Zone == zone {
			out = append(out, rec)
		}
	}
	return out
}
