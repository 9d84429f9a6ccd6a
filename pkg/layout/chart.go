package layout

import (
	"github.com/matzehuels/strata/pkg/interval"
	"github.com/matzehuels/strata/pkg/palette"
	"github.com/matzehuels/strata/pkg/scale"
)

// Chart is the complete layout of a timescale chart.
type Chart struct {
	Window interval.Window
	// Mode is the scale actually in effect; an equal-slot request without
	// anchors yields Linear.
	Mode        scale.Mode
	Requested   scale.Mode
	Scale       scale.Mapping
	TotalExtent float64
	Width       float64
	Columns     []ColumnLayout
}

// ColumnLayout is one positioned column.
type ColumnLayout struct {
	Spec  ColumnSpec
	Left  float64
	Boxes []Box // nil for time columns
	Axis  *Axis // nil unless Spec.Kind is KindTime
}

// Column returns the laid-out column with the given key.
func (c Chart) Column(key string) (ColumnLayout, bool) {
	for _, col := range c.Columns {
		if col.Spec.Key == key {
			return col, true
		}
	}
	return ColumnLayout{}, false
}

// BoxCount returns the number of boxes across all columns.
func (c Chart) BoxCount() int {
	n := 0
	for _, col := range c.Columns {
		n += len(col.Boxes)
	}
	return n
}

// Compute lays out columns for window w under mode. Collections are keyed
// by name; [ReferenceCollection] anchors equal-slot scales and supplies
// inherited colors. A column whose collection is missing is laid out empty.
func Compute(columns []ColumnSpec, collections map[string][]interval.Interval, w interval.Window, mode scale.Mode) (Chart, error) {
	if err := ValidateColumns(columns); err != nil {
		return Chart{}, err
	}
	reference := collections[ReferenceCollection]
	m, err := scale.Build(w, mode, reference)
	if err != nil {
		return Chart{}, err
	}
	colors := palette.BuildIndex(reference)

	chart := Chart{
		Window:      w,
		Mode:        m.Mode(),
		Requested:   mode,
		Scale:       m,
		TotalExtent: m.TotalExtent(),
		Columns:     make([]ColumnLayout, 0, len(columns)),
	}
	left := 0.0
	for _, spec := range columns {
		col := ColumnLayout{Spec: spec, Left: left}
		switch spec.Kind {
		case KindTime:
			axis := BuildAxis(m)
			col.Axis = &axis
		case KindICS:
			col.Boxes = Boxes(collections[spec.Source()], m, Options{Ranks: spec.Ranks})
		case KindBiozone:
			col.Boxes = Boxes(collections[spec.Source()], m, Options{
				Ranks:   spec.Ranks,
				Colors:  colors,
				Inherit: true,
			})
		}
		chart.Columns = append(chart.Columns, col)
		left += spec.Width
	}
	chart.Width = left
	return chart, nil
}
