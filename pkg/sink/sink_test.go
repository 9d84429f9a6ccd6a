package sink

import (
	"encoding/json"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/matzehuels/strata/pkg/interval"
	"github.com/matzehuels/strata/pkg/layout"
	"github.com/matzehuels/strata/pkg/scale"
)

func testChart(t *testing.T, mode scale.Mode) layout.Chart {
	t.Helper()
	collections := map[string][]interval.Interval{
		layout.ReferenceCollection: {
			{ID: "cenozoic", Label: "Cenozoic", Start: 66, End: 0, Rank: "Era", Color: "#f2f91d"},
			{ID: "paleogene", Label: "Paleogene", Start: 66, End: 23.03, Rank: "Period", Color: "#fd9a52"},
			{ID: "danian", Label: "Danian", Start: 66, End: 61.6, Rank: "Age", Color: "#fdb462"},
			{ID: "selandian", Label: "Selandian", Start: 61.6, End: 59.2, Rank: "Age", Color: "#febf65"},
		},
		"nalma": {
			{ID: "puercan", Label: "Puercan <early>", Start: 66, End: 63.3},
		},
	}
	w, err := interval.NewWindow(0, 66)
	if err != nil {
		t.Fatal(err)
	}
	c, err := layout.Compute(layout.WithBiozones(layout.DefaultColumns(), []string{"nalma"}), collections, w, mode)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	return c
}

func TestRenderSVGWellFormed(t *testing.T) {
	svg := RenderSVG(testChart(t, scale.Linear), WithTitle("Paleogene & friends"))

	dec := xml.NewDecoder(strings.NewReader(string(svg)))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("invalid XML: %v", err)
		}
	}

	s := string(svg)
	for _, want := range []string{
		`width="1090"`,
		`height="3010"`,
		`<title>Paleogene &amp; friends</title>`,
		`Puercan &lt;early&gt;`,
		`Danian&#xA;61.60 - 66.00 Ma`,
		`0 (present)`,
		`id="column-nalma"`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
}

func TestRenderSVGPaintOrder(t *testing.T) {
	// Boxes of the same column are painted by ascending z-index.
	c := testChart(t, scale.Linear)
	c.Columns = []layout.ColumnLayout{{
		Spec: layout.ColumnSpec{Key: "mixed", Label: "Mixed", Width: 100, Kind: layout.KindICS},
		Boxes: []layout.Box{
			{ID: "fine", ZIndex: 60, Height: 20, Fill: "#fff"},
			{ID: "coarse", ZIndex: 10, Height: 20, Fill: "#fff"},
		},
	}}
	s := string(RenderSVG(c))
	if strings.Index(s, `data-id="coarse"`) > strings.Index(s, `data-id="fine"`) {
		t.Errorf("coarse box painted after fine box")
	}
}

func TestRenderSVGWithoutTooltips(t *testing.T) {
	s := string(RenderSVG(testChart(t, scale.Linear), WithoutTooltips()))
	if strings.Contains(s, " Ma</title>") {
		t.Errorf("tooltips rendered despite WithoutTooltips")
	}
}

func TestRenderSVGBiozoneBorder(t *testing.T) {
	c := testChart(t, scale.Linear)
	col, _ := c.Column("nalma")
	s := string(RenderSVG(c))
	if !strings.Contains(s, "stroke:"+col.Boxes[0].Border) {
		t.Errorf("biozone border %s not drawn", col.Boxes[0].Border)
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(testChart(t, scale.Linear), WithJSONSources([]string{"ics", "nalma"}))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	var out ChartJSON
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Mode != "linear" || out.Min != 0 || out.Max != 66 {
		t.Errorf("header = %+v", out)
	}
	if out.Width != 1090 || out.Height != 2970 {
		t.Errorf("size = %vx%v, want 1090x2970", out.Width, out.Height)
	}
	if len(out.Columns) != 7 {
		t.Fatalf("Columns = %d, want 7", len(out.Columns))
	}
	if out.Columns[0].Axis == nil || len(out.Columns[0].Axis.Ticks) != 14 {
		t.Errorf("time column axis missing or wrong")
	}
	age := out.Columns[5]
	if age.Key != "age" || len(age.Boxes) != 2 {
		t.Fatalf("age column = %+v", age)
	}
	if age.Boxes[0].Tooltip != "Selandian\n59.20 - 61.60 Ma" {
		t.Errorf("tooltip = %q", age.Boxes[0].Tooltip)
	}
	if len(out.Sources) != 2 || out.Slots != nil {
		t.Errorf("Sources = %v, Slots = %v", out.Sources, out.Slots)
	}
}

func TestRenderJSONSlots(t *testing.T) {
	data, err := RenderJSON(testChart(t, scale.EqualSlot), WithJSONSlots())
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	var out ChartJSON
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Mode != "equal" || out.RequestedMode != "" {
		t.Errorf("mode = %q requested = %q", out.Mode, out.RequestedMode)
	}
	if len(out.Slots) != 2 || out.Slots[0].ID != "selandian" || out.Slots[1].Top != scale.SlotHeight {
		t.Errorf("Slots = %+v", out.Slots)
	}
}

func TestRenderJSONDegradedMode(t *testing.T) {
	c := testChart(t, scale.Linear)
	c.Requested = scale.EqualSlot
	out := BuildJSON(c)
	if out.RequestedMode != "equal" {
		t.Errorf("RequestedMode = %q, want equal", out.RequestedMode)
	}
}

func TestTruncateLabel(t *testing.T) {
	tests := []struct {
		label string
		width float64
		want  string
	}{
		{"Danian", 150, "Danian"},
		{"Äöü", 1, "Äöü"},
	}
	for _, tt := range tests {
		if got := truncateLabel(tt.label, tt.width, 8); got != tt.want {
			t.Errorf("truncateLabel(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
	// 40px at 8px font holds 9 characters.
	if got := truncateLabel("Mesoproterozoic", 40, 8); got != "Mesoprot…" {
		t.Errorf("truncateLabel = %q, want Mesoprot…", got)
	}
}
