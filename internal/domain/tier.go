package domain

// Tier is the severity classification of a single alarm count. It drives
// presentation styling in the front end; the core only produces the label.
type Tier string

const (
	TierNone     Tier = "none"
	TierModerate Tier = "moderate"
	TierHigh     Tier = "high"
)

// DefaultHighThreshold is the count at which an alarm tally becomes high.
const DefaultHighThreshold = 10

// TierFor classifies a count: zero is none, anything at or above the
// threshold is high, everything in between is moderate.
func TierFor(count, highThreshold int) Tier {
	switch {
	case count >= highThreshold:
		return TierHigh
	case count > 0:
		return TierModerate
	default:
		return TierNone
	}
}
