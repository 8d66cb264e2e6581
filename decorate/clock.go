package decorate

import (
	"time"

	"github.com/rickb777/date/v2/timespan"
)

// Clock is the time source Timing reads. Readings should carry a monotonic component.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func clockOrSystem(c Clock) Clock {
	if c == nil {
		return SystemClock{}
	}
	return c
}

// measure returns the span between two clock readings.
func measure(from, to time.Time) timespan.TimeSpan {
	return timespan.BetweenTimes(from, to)
}
