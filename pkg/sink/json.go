package sink

import (
	"encoding/json"

	"github.com/matzehuels/strata/pkg/layout"
	"github.com/matzehuels/strata/pkg/scale"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	slots   bool
	sources []string
}

// WithJSONSlots includes the equal-slot table when the chart uses one.
func WithJSONSlots() JSONOption { return func(r *jsonRenderer) { r.slots = true } }

// WithJSONSources records the collection keys the chart was built from.
func WithJSONSources(keys []string) JSONOption {
	return func(r *jsonRenderer) { r.sources = keys }
}

// ChartJSON is the document produced by [RenderJSON].
type ChartJSON struct {
	Min           float64      `json:"min"`
	Max           float64      `json:"max"`
	Mode          string       `json:"mode"`
	RequestedMode string       `json:"requested_mode,omitempty"`
	Width         float64      `json:"width"`
	Height        float64      `json:"height"`
	HeaderHeight  float64      `json:"header_height"`
	Sources       []string     `json:"sources,omitempty"`
	Columns       []ColumnJSON `json:"columns"`
	Slots         []SlotJSON   `json:"slots,omitempty"`
}

// ColumnJSON is one column of a [ChartJSON].
type ColumnJSON struct {
	Key   string       `json:"key"`
	Label string       `json:"label"`
	Kind  string       `json:"kind"`
	Left  float64      `json:"left"`
	Width float64      `json:"width"`
	Boxes []BoxJSON    `json:"boxes,omitempty"`
	Axis  *layout.Axis `json:"axis,omitempty"`
}

// BoxJSON is one positioned box.
type BoxJSON struct {
	ID        string  `json:"id"`
	Label     string  `json:"label"`
	Rank      string  `json:"rank,omitempty"`
	Top       float64 `json:"top"`
	Height    float64 `json:"height"`
	ZIndex    int     `json:"z"`
	Fill      string  `json:"fill"`
	TextColor string  `json:"text_color"`
	Border    string  `json:"border,omitempty"`
	Young     float64 `json:"young"`
	Old       float64 `json:"old"`
	Tooltip   string  `json:"tooltip"`
}

// SlotJSON is one equal-slot anchor.
type SlotJSON struct {
	ID     string  `json:"id"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// BuildJSON converts a chart into its JSON document form.
func BuildJSON(c layout.Chart, opts ...JSONOption) ChartJSON {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := ChartJSON{
		Min:          c.Window.Min,
		Max:          c.Window.Max,
		Mode:         c.Mode.String(),
		Width:        c.Width,
		Height:       c.TotalExtent,
		HeaderHeight: HeaderHeight,
		Sources:      r.sources,
		Columns:      make([]ColumnJSON, 0, len(c.Columns)),
	}
	if c.Requested != "" && c.Requested != c.Mode {
		out.RequestedMode = c.Requested.String()
	}
	for _, col := range c.Columns {
		out.Columns = append(out.Columns, ColumnJSON{
			Key:   col.Spec.Key,
			Label: col.Spec.Label,
			Kind:  string(col.Spec.Kind),
			Left:  col.Left,
			Width: col.Spec.Width,
			Boxes: buildJSONBoxes(col.Boxes),
			Axis:  col.Axis,
		})
	}
	if r.slots && c.Scale != nil {
		for _, s := range scale.SlotsOf(c.Scale) {
			out.Slots = append(out.Slots, SlotJSON{ID: s.Interval.ID, Top: s.Top, Bottom: s.Bottom})
		}
	}
	return out
}

// RenderJSON exports the chart as a pretty-printed JSON document.
func RenderJSON(c layout.Chart, opts ...JSONOption) ([]byte, error) {
	return json.MarshalIndent(BuildJSON(c, opts...), "", "  ")
}

func buildJSONBoxes(boxes []layout.Box) []BoxJSON {
	if len(boxes) == 0 {
		return nil
	}
	out := make([]BoxJSON, len(boxes))
	for i, b := range boxes {
		out[i] = BoxJSON{
			ID:        b.ID,
			Label:     b.Label,
			Rank:      b.Rank,
			Top:       b.Top,
			Height:    b.Height,
			ZIndex:    b.ZIndex,
			Fill:      b.Fill,
			TextColor: b.TextColor,
			Border:    b.Border,
			Young:     b.Tooltip.Young,
			Old:       b.Tooltip.Old,
			Tooltip:   b.TooltipText(),
		}
	}
	return out
}
