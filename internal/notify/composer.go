// Package notify composes alert messages for zones and dispatches them to
// the delivery transport, one outcome per zone.
package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/pulseforge/alarm-report-etl/internal/domain"
	"github.com/pulseforge/alarm-report-etl/internal/summary"
)

// sinceFormat renders the filter bound as "2024-01-01 12:00 AM", the format
// operators are used to from the portal.
const sinceFormat = "2006-01-02 03:04 PM"

// Template holds the fixed pieces of the alert message. The delivery
// transport renders HTML, hence the default bold tags.
type Template struct {
	Header  string `yaml:"header"`
	Closing string `yaml:"closing"`
}

// DefaultTemplate matches the message the team has been receiving all along.
func DefaultTemplate() Template {
	return Template{
		Header:  "<b>Motion & Vibration Alarm Alert</b>",
		Closing: ", please take care.",
	}
}

// Compose builds the alert body for one zone. rows must be non-empty: the
// dispatcher skips zones with nothing to report before composing. The input
// slice is not modified; rows are rendered in total-count descending order.
func Compose(zone string, rows []domain.ZoneCount, since time.Time, owner string, tpl Template) string {
	sorted := append([]domain.ZoneCount(nil), rows...)
	summary.SortByTotalDesc(sorted)

	var b strings.Builder
	b.WriteString(tpl.Header)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "<b>%s:</b>\nAlarm came after: %s\n\n", zone, since.Format(sinceFormat))
	for _, row := range sorted {
		fmt.Fprintf(&b, "#%s: Vibration: %d, Motion: %d\n", row.SiteAlias, row.VibrationCount, row.MotionCount)
	}
	fmt.Fprintf(&b, "\n@%s%s", owner, tpl.Closing)
	return b.String()
}
