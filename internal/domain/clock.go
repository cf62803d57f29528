package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// clock is the package time source. Tests freeze it via SetClock to make
// the default since filter deterministic.
var clock = clockwork.NewRealClock()

// SetClock swaps the package time source. Pass nil to restore real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Now returns the current time from the package clock.
func Now() time.Time {
	return clock.Now()
}

// StartOfToday returns today's midnight in local time, the default lower
// bound for summaries and notifications when the caller supplies none.
func StartOfToday() time.Time {
	now := clock.Now().Local()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
}
