// Package domain models motion and vibration alarm reports for monitored
// sites grouped by geographic zone.
//
// # Data Source
//
// Reports are exported from the monitoring portal as two xlsx workbooks, one
// per alarm kind. Each sheet carries a two-row preamble before the header
// row, and at minimum the columns "Site Alias", "Zone", "Start Time" and
// "End Time". Extra columns are ignored.
//
// # Timestamp Coercion
//
// Start and end times arrive as display-formatted text whose exact layout
// has drifted across portal versions. [ParseReportTime] tries the known
// layouts and yields nil on failure; a record with a nil start time still
// counts toward zone totals but never satisfies a since filter. Malformed
// timestamps are expected in real exports and are never treated as errors.
//
// # Severity
//
// Each of a site's motion and vibration counts independently maps to a
// [Tier]: zero is none, counts at or above the configured threshold
// (default 10) are high, the rest moderate. The tier is a pure
// classification; rendering belongs to the front end.
package domain
