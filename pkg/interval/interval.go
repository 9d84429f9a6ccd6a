package interval

import (
	"math"

	"github.com/matzehuels/strata/pkg/errors"
)

// Interval is a single time interval. Start and End are ages in Ma and are
// not guaranteed to be ordered.
type Interval struct {
	ID     string  // Stable identifier, typically a concept URI
	Label  string  // Display text (may be empty)
	Start  float64 // One bound in Ma
	End    float64 // The other bound in Ma
	Color  string  // Hex or CSS named color (may be empty)
	Rank   string  // Classification rank (may be empty)
	Source string  // Originating collection key
}

// Min returns the younger bound.
func (iv Interval) Min() float64 { return math.Min(iv.Start, iv.End) }

// Max returns the older bound.
func (iv Interval) Max() float64 { return math.Max(iv.Start, iv.End) }

// Midpoint returns the mean of both bounds.
func (iv Interval) Midpoint() float64 { return (iv.Start + iv.End) / 2 }

// Duration returns the absolute length in Ma.
func (iv Interval) Duration() float64 { return iv.Max() - iv.Min() }

// HasColor reports whether the interval carries its own color.
func (iv Interval) HasColor() bool { return iv.Color != "" }

// Window is the visible time range [Min, Max] in Ma.
type Window struct {
	Min float64
	Max float64
}

// NewWindow returns a validated window. It fails with INVALID_WINDOW when
// either bound is not finite or when min >= max.
func NewWindow(min, max float64) (Window, error) {
	if math.IsNaN(min) || math.IsInf(min, 0) || math.IsNaN(max) || math.IsInf(max, 0) {
		return Window{}, errors.New(errors.ErrCodeInvalidWindow, "window bounds must be finite (got %g, %g)", min, max)
	}
	if min >= max {
		return Window{}, errors.New(errors.ErrCodeInvalidWindow, "window min %g must be below max %g", min, max)
	}
	return Window{Min: min, Max: max}, nil
}

// Validate re-checks a window built as a struct literal.
func (w Window) Validate() error {
	_, err := NewWindow(w.Min, w.Max)
	return err
}

// Span returns Max - Min.
func (w Window) Span() float64 { return w.Max - w.Min }

// Contains reports whether t lies inside the closed window.
func (w Window) Contains(t float64) bool { return t >= w.Min && t <= w.Max }
