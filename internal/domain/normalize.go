package domain

import (
	"strings"
	"time"
)

// timeLayouts are the timestamp formats seen in exported reports. The portal
// usually emits "2006-01-02 15:04:05", but older exports drop the seconds or
// use slashes.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	"02-01-2006 15:04:05",
	"01/02/2006 15:04:05",
	time.RFC3339,
}

// ParseReportTime coerces a report timestamp string to a time.Time.
// Returns nil when the value is empty or matches no known layout; a bad
// timestamp is never an error, the row is kept with a nil time.
func ParseReportTime(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return &t
		}
	}
	return nil
}

// NormalizeReports merges the motion and vibration report rows into one
// record sequence, tagging each record with its kind. Motion records come
// first, then vibration; downstream grouping is by zone/site/kind so the
// cross-source order carries no other meaning.
//
// Rows missing a site alias or zone cannot be attributed to anything and are
// dropped; the second return value is the number of dropped rows so callers
// can log and count them.
func NormalizeReports(motion, vibration []RawRow) ([]EventRecord, int) {
	records := make([]EventRecord, 0, len(motion)+len(vibration))
	skipped := 0

	for _, row := range motion {
		rec, ok := normalizeRow(row, KindMotion)
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	for _, row := range vibration {
		rec, ok := normalizeRow(row, KindVibration)
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}

	return records, skipped
}

func normalizeRow(row RawRow, kind AlarmKind) (EventRecord, bool) {
	site := strings.TrimSpace(row.SiteAlias)
	zone := strings.TrimSpace(row.Zone)
	if site == "" || zone == "" {
		return EventRecord{}, false
	}
	return EventRecord{
		SiteAlias: site,
		Zone:      zone,
		Kind:      kind,
		StartTime: ParseReportTime(row.StartTime),
		EndTime:   ParseReportTime(row.EndTime),
	}, true
}
