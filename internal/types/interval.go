package types

import (
	"strings"
	"time"

	"github.com/rxtech-lab/argo-data/pkg/errors"
)

// Interval is the period a single bar covers.
type Interval string

const (
	Interval1m  Interval = "1m"
	Interval5m  Interval = "5m"
	Interval15m Interval = "15m"
	Interval30m Interval = "30m"
	Interval1h  Interval = "1h"
	Interval4h  Interval = "4h"
	Interval1d  Interval = "1d"
	Interval1w  Interval = "1w"
)

// AllIntervals lists every supported bar period, shortest first.
var AllIntervals = []Interval{
	Interval1m,
	Interval5m,
	Interval15m,
	Interval30m,
	Interval1h,
	Interval4h,
	Interval1d,
	Interval1w,
}

var intervalDurations = map[Interval]time.Duration{
	Interval1m:  time.Minute,
	Interval5m:  5 * time.Minute,
	Interval15m: 15 * time.Minute,
	Interval30m: 30 * time.Minute,
	Interval1h:  time.Hour,
	Interval4h:  4 * time.Hour,
	Interval1d:  24 * time.Hour,
	Interval1w:  7 * 24 * time.Hour,
}

// Valid reports whether the interval is a supported bar period.
func (i Interval) Valid() bool {
	_, ok := intervalDurations[i]

	return ok
}

// String implements fmt.Stringer.
func (i Interval) String() string {
	return string(i)
}

// Duration returns the wall-clock span of one bar. Unknown intervals
// return zero.
func (i Interval) Duration() time.Duration {
	return intervalDurations[i]
}

// Minutes returns the bar period in whole minutes. Unknown intervals
// return zero.
func (i Interval) Minutes() int {
	return int(intervalDurations[i] / time.Minute)
}

// ParseInterval converts a period name into an Interval. Matching is
// case-insensitive.
func ParseInterval(s string) (Interval, error) {
	candidate := Interval(strings.ToLower(strings.TrimSpace(s)))
	if candidate.Valid() {
		return candidate, nil
	}

	return "", errors.Newf(errors.ErrCodeInvalidInterval, "unknown interval: %q", s)
}
