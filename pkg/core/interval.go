package core

import "math"

// Interval is a closed range [Min, Max] of ray parameters or coordinates.
// Min > Max is the empty interval.
type Interval struct {
	Min, Max float64
}

var (
	// EmptyInterval contains nothing
	EmptyInterval = Interval{Min: math.Inf(1), Max: math.Inf(-1)}
	// UniverseInterval contains every value
	UniverseInterval = Interval{Min: math.Inf(-1), Max: math.Inf(1)}
)

// NewInterval creates an interval from its bounds
func NewInterval(min, max float64) Interval {
	return Interval{Min: min, Max: max}
}

// NewIntervalUnion returns the tightest interval enclosing both a and b
func NewIntervalUnion(a, b Interval) Interval {
	return Interval{Min: math.Min(a.Min, b.Min), Max: math.Max(a.Max, b.Max)}
}

// Size returns Max - Min
func (i Interval) Size() float64 {
	return i.Max - i.Min
}

// Contains reports whether x lies in [Min, Max]
func (i Interval) Contains(x float64) bool {
	return i.Min <= x && x <= i.Max
}

// Surrounds reports whether x lies in (Min, Max)
func (i Interval) Surrounds(x float64) bool {
	return i.Min < x && x < i.Max
}

// Clamp limits x to the interval
func (i Interval) Clamp(x float64) float64 {
	if x < i.Min {
		return i.Min
	}
	if x > i.Max {
		return i.Max
	}
	return x
}

// Expand grows the interval by delta in total, half on each side
func (i Interval) Expand(delta float64) Interval {
	padding := delta / 2
	return Interval{Min: i.Min - padding, Max: i.Max + padding}
}

// Add shifts both bounds by displacement
func (i Interval) Add(displacement float64) Interval {
	return Interval{Min: i.Min + displacement, Max: i.Max + displacement}
}

// IsEmpty reports whether the interval contains no values
func (i Interval) IsEmpty() bool {
	return i.Min > i.Max
}
