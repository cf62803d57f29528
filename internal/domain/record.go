package domain

import "time"

// AlarmKind is the alarm category of a report row.
type AlarmKind string

const (
	KindMotion    AlarmKind = "motion"
	KindVibration AlarmKind = "vibration"
)

// RawRow is one row of a source report as extracted from the workbook.
// Only the required columns survive extraction; extra columns are dropped
// by the reader before rows reach the normalizer.
type RawRow struct {
	SiteAlias string
	Zone      string
	StartTime string
	EndTime   string
}

// EventRecord is the unified, typed form of a report row. StartTime and
// EndTime are nil when the source text could not be coerced to a timestamp;
// such records still count toward aggregate totals but never match a
// since filter. Immutable once constructed.
type EventRecord struct {
	SiteAlias string     `json:"site_alias"`
	Zone      string     `json:"zone"`
	Kind      AlarmKind  `json:"kind"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
}

// ZoneCount holds the per-site alarm tallies for one aggregation run.
// Derived, never persisted; owned by the caller that produced it.
type ZoneCount struct {
	Zone           string `json:"zone"`
	SiteAlias      string `json:"site_alias"`
	MotionCount    int    `json:"motion_count"`
	VibrationCount int    `json:"vibration_count"`
}

// Total is the derived display total, not a stored field.
func (c ZoneCount) Total() int {
	return c.MotionCount + c.VibrationCount
}
