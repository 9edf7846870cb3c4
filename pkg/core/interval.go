package core

import "math"

// Interval is a range of ray parameters. A parameter t is accepted when Start < t < End.
type Interval struct {
	Start float64
	End   float64
}

// NewInterval creates a new interval
func NewInterval(start, end float64) Interval {
	return Interval{Start: start, End: end}
}

// Forward returns [epsilon, +Inf), the range used for bounce rays so a surface
// does not re-hit itself at t≈0
func Forward(epsilon float64) Interval {
	return Interval{Start: epsilon, End: math.Inf(1)}
}

// Surrounds reports whether t lies strictly inside the interval
func (i Interval) Surrounds(t float64) bool {
	return i.Start < t && t < i.End
}

// WithEnd returns a copy of the interval with a new upper bound
func (i Interval) WithEnd(end float64) Interval {
	return Interval{Start: i.Start, End: end}
}

// Clamp clamps x to [Start, End]
func (i Interval) Clamp(x float64) float64 {
	return max(i.Start, min(i.End, x))
}
