package scale

import (
	"math"

	"github.com/matzehuels/strata/pkg/errors"
	"github.com/matzehuels/strata/pkg/interval"
)

// Extent and rate constants, in pixels unless noted otherwise.
const (
	BasePixelsPerMa    = 32.0
	LogPixelsPerMa     = 45.0
	ShortSpanBoost     = 1.4
	ShortSpanMa        = 66.0
	MinExtent          = 700.0
	TopPad             = 12.0
	BottomPad          = 20.0
	MinEffectiveExtent = 200.0
	SlotHeight         = 90.0
	MinSlotExtent      = 600.0
)

// Numeric tolerances.
const (
	// LogOffset keeps ln away from zero at the present day, in Ma.
	LogOffset = 0.05
	// BoundaryNudge is subtracted from values clamped onto the window maximum.
	BoundaryNudge = 1e-9
	// SlotTolerance widens slot bounds when locating a time.
	SlotTolerance = 1e-6
)

// Mapping converts ages to vertical positions for one window and mode.
type Mapping interface {
	// Mode returns the strategy actually in effect. An equal-slot request
	// without anchors reports Linear.
	Mode() Mode
	// Window returns the window the mapping was built for.
	Window() interval.Window
	// TotalExtent returns the drawable height in pixels.
	TotalExtent() float64
	// Position maps an age in Ma to pixels from the top.
	Position(ma float64) float64
}

// Build creates the mapping for w and mode. Reference intervals are only
// consulted by [EqualSlot], which anchors its slots on the visible
// finest-rank ones.
func Build(w interval.Window, mode Mode, reference []interval.Interval) (Mapping, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	switch mode {
	case Linear:
		return newLinear(w), nil
	case Logarithmic:
		if w.Min <= -LogOffset {
			return nil, errors.New(errors.ErrCodeInvalidWindow,
				"logarithmic scale needs window min above %g Ma (got %g)", -LogOffset, w.Min)
		}
		return newLog(w), nil
	case EqualSlot:
		if m := newEqualSlot(w, reference); m != nil {
			return m, nil
		}
		return newLinear(w), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidMode, "invalid scale mode: %q", string(mode))
	}
}

// Clamp limits t to [min, max]. A result equal to max is moved to
// max - BoundaryNudge.
func Clamp(t, min, max float64) float64 {
	c := math.Min(math.Max(t, min), max)
	if c == max {
		return max - BoundaryNudge
	}
	return c
}

// PixelsPerMa returns the vertical rate for mode over a span of Ma.
func PixelsPerMa(mode Mode, span float64) float64 {
	if mode == Logarithmic {
		return LogPixelsPerMa
	}
	if span > 0 && span <= ShortSpanMa {
		return math.Round(BasePixelsPerMa * ShortSpanBoost)
	}
	return BasePixelsPerMa
}

// extent returns the total and padded drawable heights for a span.
func extent(mode Mode, span float64) (total, effective float64) {
	total = math.Max(span*PixelsPerMa(mode, span), MinExtent)
	effective = math.Max(total-TopPad-BottomPad, MinEffectiveExtent)
	return total, effective
}

// nonZero guards divisions by a degenerate range.
func nonZero(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
