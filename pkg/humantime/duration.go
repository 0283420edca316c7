package humantime

import (
	"math"
	"time"
)

// Duration is a signed count of ticks. One tick is 100 nanoseconds.
type Duration int64

const (
	TicksPerMillisecond Duration = 10_000
	TicksPerSecond               = 1000 * TicksPerMillisecond
	TicksPerMinute               = 60 * TicksPerSecond
	TicksPerHour                 = 60 * TicksPerMinute
	TicksPerDay                  = 24 * TicksPerHour

	MaxDuration Duration = math.MaxInt64
	MinDuration Duration = math.MinInt64
)

const nanosPerTick = 100

// FromStd converts a time.Duration, truncating nanoseconds below one tick.
func FromStd(d time.Duration) Duration {
	return Duration(d / nanosPerTick)
}

// Ticks returns d as an integer tick count.
func (d Duration) Ticks() int64 {
	return int64(d)
}

// Std converts d to a time.Duration, saturating at the time.Duration range.
func (d Duration) Std() time.Duration {
	switch {
	case d > math.MaxInt64/nanosPerTick:
		return time.Duration(math.MaxInt64)
	case d < math.MinInt64/nanosPerTick:
		return time.Duration(math.MinInt64)
	}
	return time.Duration(d) * nanosPerTick
}

// Add returns d+o, saturating at MaxDuration and MinDuration instead of wrapping.
func (d Duration) Add(o Duration) Duration {
	s := d + o
	if o > 0 && s < d {
		return MaxDuration
	}
	if o < 0 && s > d {
		return MinDuration
	}
	return s
}

// String formats d the way time.Duration does, e.g. "2h15m0s".
func (d Duration) String() string {
	return d.Std().String()
}

// scale multiplies n by ratio with saturation.
func scale(n int64, ratio Duration) Duration {
	r := int64(ratio)
	switch {
	case r == 0 || n == 0:
		return 0
	case n > 0 && n > math.MaxInt64/r:
		return MaxDuration
	case n < 0 && n < math.MinInt64/r:
		return MinDuration
	}
	return Duration(n * r)
}
