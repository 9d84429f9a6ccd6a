package layout

import (
	"fmt"

	"github.com/matzehuels/strata/pkg/scale"
)

// ZeroLabelNudge shifts the "0 (present)" label below the top border.
const ZeroLabelNudge = 6.0

// Tick is a labeled mark on the time axis.
type Tick struct {
	Ma     float64 `json:"ma"`
	Y      float64 `json:"y"`
	LabelY float64 `json:"label_y"`
	Label  string  `json:"label"`
}

// Axis holds the ticks and outer borders of a time column.
type Axis struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Ticks  []Tick  `json:"ticks"`
}

// TickStep picks the tick spacing in Ma for a window span.
func TickStep(span float64) float64 {
	switch {
	case span <= 10:
		return 1
	case span <= 25:
		return 2
	case span <= 80:
		return 5
	case span <= 150:
		return 10
	default:
		return 20
	}
}

// TickLabel formats an age for the axis.
func TickLabel(ma float64) string {
	switch {
	case ma == 0:
		return "0 (present)"
	case ma < 10:
		return fmt.Sprintf("%.1f", ma)
	default:
		return fmt.Sprintf("%.0f", ma)
	}
}

// BuildAxis computes ticks from the window minimum in [TickStep]
// increments, stopping short of the window maximum.
func BuildAxis(m scale.Mapping) Axis {
	w := m.Window()
	step := TickStep(w.Span())
	axis := Axis{
		Top:    m.Position(w.Min),
		Bottom: m.Position(scale.Clamp(w.Max, w.Min, w.Max)),
	}
	for i := 0; ; i++ {
		ma := w.Min + float64(i)*step
		if ma >= w.Max-scale.BoundaryNudge {
			break
		}
		y := m.Position(ma)
		t := Tick{Ma: ma, Y: y, LabelY: y, Label: TickLabel(ma)}
		if ma == 0 {
			t.LabelY += ZeroLabelNudge
		}
		axis.Ticks = append(axis.Ticks, t)
	}
	return axis
}
