package observer

import (
	"time"

	apperrors "github.com/adya/memwatch/internal/errors"
)

// Interval selects the observation cadence. The zero value is
// IntervalDefault.
type Interval int

const (
	// IntervalDefault samples once per second.
	IntervalDefault Interval = iota
	// IntervalLive samples ten times per second, for interactive views.
	IntervalLive
	// IntervalFrequent samples twice per second.
	IntervalFrequent
	// IntervalDeferred samples every five seconds, for background use.
	IntervalDeferred
)

// cadenceOrder lists the intervals from fastest to slowest.
var cadenceOrder = []Interval{IntervalLive, IntervalFrequent, IntervalDefault, IntervalDeferred}

// Duration returns the tick period for the interval. Unknown values
// fall back to the default cadence.
func (i Interval) Duration() time.Duration {
	switch i {
	case IntervalLive:
		return 100 * time.Millisecond
	case IntervalFrequent:
		return 500 * time.Millisecond
	case IntervalDeferred:
		return 5 * time.Second
	default:
		return time.Second
	}
}

// String returns the interval's configuration name.
func (i Interval) String() string {
	switch i {
	case IntervalLive:
		return "live"
	case IntervalFrequent:
		return "frequent"
	case IntervalDeferred:
		return "deferred"
	default:
		return "default"
	}
}

// Faster returns the next shorter cadence, or the same interval when
// already at the fastest.
func (i Interval) Faster() Interval {
	for idx, v := range cadenceOrder {
		if v == i && idx > 0 {
			return cadenceOrder[idx-1]
		}
	}
	return i
}

// Slower returns the next longer cadence, or the same interval when
// already at the slowest.
func (i Interval) Slower() Interval {
	for idx, v := range cadenceOrder {
		if v == i && idx < len(cadenceOrder)-1 {
			return cadenceOrder[idx+1]
		}
	}
	return i
}

// ParseInterval maps a configuration name to its Interval.
//
// Parameters:
//   - s: One of "live", "frequent", "default" or "deferred". The empty
//     string parses as the default cadence.
//
// Returns:
//   - Interval: The parsed interval.
//   - error: A configuration error naming the valid choices when s is
//     not a known cadence.
func ParseInterval(s string) (Interval, error) {
	switch s {
	case "live":
		return IntervalLive, nil
	case "frequent":
		return IntervalFrequent, nil
	case "default", "":
		return IntervalDefault, nil
	case "deferred":
		return IntervalDeferred, nil
	default:
		return IntervalDefault, apperrors.NewConfigError(
			"unknown interval %q (valid: live, frequent, default, deferred)", s)
	}
}
