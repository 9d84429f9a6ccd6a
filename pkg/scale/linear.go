package scale

import (
	"math"

	"github.com/matzehuels/strata/pkg/interval"
)

// linearMapping places ages proportionally between the paddings.
type linearMapping struct {
	window    interval.Window
	total     float64
	effective float64
}

func newLinear(w interval.Window) *linearMapping {
	total, effective := extent(Linear, w.Span())
	return &linearMapping{window: w, total: total, effective: effective}
}

func (m *linearMapping) Mode() Mode              { return Linear }
func (m *linearMapping) Window() interval.Window { return m.window }
func (m *linearMapping) TotalExtent() float64    { return m.total }

func (m *linearMapping) Position(ma float64) float64 {
	c := Clamp(ma, m.window.Min, m.window.Max)
	fraction := (c - m.window.Min) / nonZero(m.window.Span())
	return TopPad + fraction*m.effective
}

// logMapping places ln(age + LogOffset) proportionally between the paddings.
type logMapping struct {
	window    interval.Window
	total     float64
	effective float64
	logMin    float64
	logRange  float64
}

func newLog(w interval.Window) *logMapping {
	total, effective := extent(Logarithmic, w.Span())
	logMin := math.Log(w.Min + LogOffset)
	logMax := math.Log(w.Max + LogOffset)
	return &logMapping{
		window:    w,
		total:     total,
		effective: effective,
		logMin:    logMin,
		logRange:  nonZero(logMax - logMin),
	}
}

func (m *logMapping) Mode() Mode              { return Logarithmic }
func (m *logMapping) Window() interval.Window { return m.window }
func (m *logMapping) TotalExtent() float64    { return m.total }

func (m *logMapping) Position(ma float64) float64 {
	c := Clamp(ma, m.window.Min, m.window.Max)
	normalized := (math.Log(c+LogOffset) - m.logMin) / m.logRange
	return TopPad + normalized*m.effective
}
