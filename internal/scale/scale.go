// internal/scale/scale.go
package scale

import (
	"math"
	"time"
)

// Linear maps a continuous domain onto a continuous range. A degenerate domain
// (d0 == d1) maps every input to the middle of the range.
type Linear struct {
	D0, D1 float64
	R0, R1 float64
}

// NewLinear creates a linear scale.
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{D0: d0, D1: d1, R0: r0, R1: r1}
}

// Map converts a domain value to the range. Values outside the domain extrapolate.
func (s Linear) Map(v float64) float64 {
	if s.D0 == s.D1 {
		return (s.R0 + s.R1) / 2
	}
	return s.R0 + (v-s.D0)/(s.D1-s.D0)*(s.R1-s.R0)
}

// Invert converts a range value back to the domain.
func (s Linear) Invert(r float64) float64 {
	if s.R0 == s.R1 {
		return (s.D0 + s.D1) / 2
	}
	return s.D0 + (r-s.R0)/(s.R1-s.R0)*(s.D1-s.D0)
}

// Sqrt is a power scale with exponent 0.5, used for area-proportional sizes.
type Sqrt struct {
	inner Linear
}

// NewSqrt creates a square-root scale.
func NewSqrt(d0, d1, r0, r1 float64) Sqrt {
	return Sqrt{inner: NewLinear(signedSqrt(d0), signedSqrt(d1), r0, r1)}
}

// Map converts a domain value to the range.
func (s Sqrt) Map(v float64) float64 {
	return s.inner.Map(signedSqrt(v))
}

func signedSqrt(v float64) float64 {
	if v < 0 {
		return -math.Sqrt(-v)
	}
	return math.Sqrt(v)
}

// Time maps instants onto a continuous range. Arithmetic is done on durations
// from the domain start so absolute timestamps keep nanosecond precision.
type Time struct {
	Start, End time.Time
	R0, R1     float64
}

// NewTime creates a time scale.
func NewTime(start, end time.Time, r0, r1 float64) Time {
	return Time{Start: start, End: end, R0: r0, R1: r1}
}

// Degenerate reports whether the domain is a single instant.
func (s Time) Degenerate() bool {
	return !s.End.After(s.Start)
}

// Map converts an instant to the range. A degenerate domain maps instants at or
// after its start to R1 and earlier instants to R0.
func (s Time) Map(t time.Time) float64 {
	if s.Degenerate() {
		if t.Before(s.Start) {
			return s.R0
		}
		return s.R1
	}
	frac := float64(t.Sub(s.Start)) / float64(s.End.Sub(s.Start))
	return s.R0 + frac*(s.R1-s.R0)
}

// Invert converts a range value back to an instant. The range endpoints map
// exactly to the domain endpoints.
func (s Time) Invert(r float64) time.Time {
	if s.Degenerate() || s.R0 == s.R1 {
		return s.Start
	}
	frac := (r - s.R0) / (s.R1 - s.R0)
	switch {
	case frac == 0:
		return s.Start
	case frac == 1:
		return s.End
	}
	return s.Start.Add(time.Duration(frac * float64(s.End.Sub(s.Start))))
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
