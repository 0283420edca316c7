package humantime

// Unit is one of the fixed-ratio time granularities recognized in input.
type Unit int

const (
	Millisecond Unit = iota
	Second
	Minute
	Hour
	Day
)

// units lists every Unit in extraction order.
var units = [...]Unit{Millisecond, Second, Minute, Hour, Day}

// Units returns all units in extraction order.
func Units() []Unit {
	return units[:]
}

// Ticks returns the number of ticks in one u.
func (u Unit) Ticks() Duration {
	switch u {
	case Millisecond:
		return TicksPerMillisecond
	case Second:
		return TicksPerSecond
	case Minute:
		return TicksPerMinute
	case Hour:
		return TicksPerHour
	case Day:
		return TicksPerDay
	default:
		return 0
	}
}

func (u Unit) String() string {
	switch u {
	case Millisecond:
		return "millisecond"
	case Second:
		return "second"
	case Minute:
		return "minute"
	case Hour:
		return "hour"
	case Day:
		return "day"
	default:
		return "unknown"
	}
}
