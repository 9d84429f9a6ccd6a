package layout

import (
	"reflect"
	"testing"

	"github.com/matzehuels/strata/pkg/errors"
	"github.com/matzehuels/strata/pkg/interval"
	"github.com/matzehuels/strata/pkg/scale"
)

func testCollections() map[string][]interval.Interval {
	ics := []interval.Interval{
		{ID: "cenozoic", Label: "Cenozoic", Start: 66, End: 0, Rank: "Era", Color: "#f2f91d"},
		{ID: "paleogene", Label: "Paleogene", Start: 66, End: 23.03, Rank: "Period", Color: "#fd9a52"},
		{ID: "paleocene", Label: "Paleocene", Start: 66, End: 56, Rank: "Epoch", Color: "#fda75f"},
	}
	ics = append(ics, paleogeneAges()...)
	return map[string][]interval.Interval{
		ReferenceCollection: ics,
		"nalma": {
			{ID: "puercan", Label: "Puercan", Start: 66, End: 63.3},
			{ID: "torrejonian", Label: "Torrejonian", Start: 63.3, End: 60.2},
		},
	}
}

func mustCompute(t *testing.T, cols []ColumnSpec, min, max float64, mode scale.Mode) Chart {
	t.Helper()
	w, err := interval.NewWindow(min, max)
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	chart, err := Compute(cols, testCollections(), w, mode)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	return chart
}

func TestComputeColumnOffsets(t *testing.T) {
	cols := WithBiozones(DefaultColumns(), []string{"nalma"})
	chart := mustCompute(t, cols, 0, 66, scale.Linear)

	wantLeft := []float64{0, 90, 240, 400, 570, 740, 910}
	if len(chart.Columns) != len(wantLeft) {
		t.Fatalf("got %d columns, want %d", len(chart.Columns), len(wantLeft))
	}
	for i, col := range chart.Columns {
		if col.Left != wantLeft[i] {
			t.Errorf("column %s Left = %v, want %v", col.Spec.Key, col.Left, wantLeft[i])
		}
	}
	if chart.Width != 1090 {
		t.Errorf("Width = %v, want 1090", chart.Width)
	}
	if chart.TotalExtent != 2970 {
		t.Errorf("TotalExtent = %v, want 2970", chart.TotalExtent)
	}
}

func TestComputeColumnContents(t *testing.T) {
	cols := WithBiozones(DefaultColumns(), []string{"nalma", "salma"})
	chart := mustCompute(t, cols, 0, 66, scale.Linear)

	tests := []struct {
		key   string
		boxes int
	}{
		{"eon", 0},
		{"era", 1},
		{"period", 1},
		{"epoch", 1},
		{"age", 3},
		{"nalma", 2},
		{"salma", 0},
	}
	for _, tt := range tests {
		col, ok := chart.Column(tt.key)
		if !ok {
			t.Errorf("column %s missing", tt.key)
			continue
		}
		if len(col.Boxes) != tt.boxes {
			t.Errorf("column %s has %d boxes, want %d", tt.key, len(col.Boxes), tt.boxes)
		}
	}

	timeCol, _ := chart.Column("time")
	if timeCol.Axis == nil || len(timeCol.Axis.Ticks) == 0 {
		t.Errorf("time column has no axis")
	}
	nalma, _ := chart.Column("nalma")
	for _, b := range nalma.Boxes {
		if b.Fill != "#fdb462" {
			t.Errorf("%s fill = %q, want danian color", b.ID, b.Fill)
		}
	}
	if chart.BoxCount() != 8 {
		t.Errorf("BoxCount() = %d, want 8", chart.BoxCount())
	}
}

func TestComputeEqualSlot(t *testing.T) {
	chart := mustCompute(t, DefaultColumns(), 0, 66, scale.EqualSlot)
	if chart.Mode != scale.EqualSlot {
		t.Fatalf("Mode = %s, want equal", chart.Mode)
	}
	// Three anchors: 3*90 < 600.
	if chart.TotalExtent != scale.MinSlotExtent {
		t.Errorf("TotalExtent = %v, want %v", chart.TotalExtent, scale.MinSlotExtent)
	}
	age, _ := chart.Column("age")
	for i, b := range age.Boxes {
		if !approx(b.Top, float64(i)*scale.SlotHeight) || !approx(b.Height, scale.SlotHeight) {
			t.Errorf("age box %s = [%v +%v], want slot %d", b.ID, b.Top, b.Height, i)
		}
	}
}

func TestComputeEqualSlotDegrades(t *testing.T) {
	w, _ := interval.NewWindow(0, 66)
	chart, err := Compute(DefaultColumns(), nil, w, scale.EqualSlot)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if chart.Mode != scale.Linear || chart.Requested != scale.EqualSlot {
		t.Errorf("Mode = %s, Requested = %s; want linear, equal", chart.Mode, chart.Requested)
	}
}

func TestComputeErrors(t *testing.T) {
	good, _ := interval.NewWindow(0, 66)
	tests := []struct {
		name string
		cols []ColumnSpec
		w    interval.Window
		mode scale.Mode
		code errors.Code
	}{
		{"inverted window", DefaultColumns(), interval.Window{Min: 66, Max: 0}, scale.Linear, errors.ErrCodeInvalidWindow},
		{"unknown mode", DefaultColumns(), good, scale.Mode("spiral"), errors.ErrCodeInvalidMode},
		{"bad column", []ColumnSpec{{Key: "x", Kind: "pie", Width: 1}}, good, scale.Linear, errors.ErrCodeInvalidColumn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.cols, testCollections(), tt.w, tt.mode)
			if !errors.Is(err, tt.code) {
				t.Errorf("Compute() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	cols := WithBiozones(DefaultColumns(), []string{"nalma"})
	for _, mode := range scale.Modes {
		a := mustCompute(t, cols, 0, 66, mode)
		b := mustCompute(t, cols, 0, 66, mode)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("%s: Compute is not deterministic", mode)
		}
	}
}
