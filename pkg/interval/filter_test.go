package interval

import "testing"

func TestOverlap(t *testing.T) {
	w := Window{Min: 0, Max: 66}
	tests := []struct {
		name string
		iv   Interval
		want float64
	}{
		{"inside", Interval{Start: 23, End: 5}, 18},
		{"straddles max", Interval{Start: 100, End: 60}, 6},
		{"touches max", Interval{Start: 145, End: 66}, 0},
		{"disjoint", Interval{Start: 200, End: 150}, -84},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlap(tt.iv, w); got != tt.want {
				t.Errorf("Overlap() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVisibleEpsilon(t *testing.T) {
	w := Window{Min: 0, Max: 10}
	const delta = 0.01

	tests := []struct {
		name string
		iv   Interval
		want bool
	}{
		{"zero overlap", Interval{Start: 20, End: 10}, false},
		{"just above epsilon", Interval{Start: 20, End: 10 - (VisibilityEpsilon + delta)}, true},
		{"just below epsilon", Interval{Start: 20, End: 10 - (VisibilityEpsilon - delta)}, false},
		{"fully inside", Interval{Start: 5, End: 2}, true},
		{"disjoint", Interval{Start: 30, End: 20}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Visible(tt.iv, w); got != tt.want {
				t.Errorf("Visible() = %v, want %v (overlap %v)", got, tt.want, Overlap(tt.iv, w))
			}
		})
	}
}

func TestVisibleIgnoresBoundOrder(t *testing.T) {
	w := Window{Min: 0, Max: 10}
	a := Interval{Start: 2, End: 0}
	b := Interval{Start: 0, End: 2}
	if Visible(a, w) != Visible(b, w) || Overlap(a, w) != Overlap(b, w) {
		t.Error("reversed bounds should not change visibility")
	}
}

func TestFilterVisible(t *testing.T) {
	w := Window{Min: 0, Max: 66}
	ivs := []Interval{
		{ID: "maastrichtian", Start: 72.1, End: 66},
		{ID: "danian", Start: 66, End: 61.6},
		{ID: "holocene", Start: 0.0117, End: 0},
		{ID: "ypresian", Start: 56, End: 47.8},
	}
	got := FilterVisible(ivs, w)
	if len(got) != 2 || got[0].ID != "danian" || got[1].ID != "ypresian" {
		t.Errorf("FilterVisible() = %v", got)
	}
}

func TestTinyOverlaps(t *testing.T) {
	w := Window{Min: 0, Max: 66}
	ivs := []Interval{
		{ID: "sliver", Start: 70, End: 65.98},
		{ID: "holocene", Start: 0.0117, End: 0},
		{ID: "touching", Start: 72.1, End: 66},
		{ID: "danian", Start: 66, End: 61.6},
	}
	got := TinyOverlaps(ivs, w)
	if len(got) != 2 {
		t.Fatalf("TinyOverlaps() returned %d items, want 2: %v", len(got), got)
	}
	if got[0].Interval.ID != "sliver" || got[1].Interval.ID != "holocene" {
		t.Errorf("TinyOverlaps() ids = %s, %s", got[0].Interval.ID, got[1].Interval.ID)
	}
	for _, o := range got {
		if o.Overlap <= 0 || o.Overlap > TinyOverlapThreshold {
			t.Errorf("overlap %v outside (0, %v]", o.Overlap, TinyOverlapThreshold)
		}
		if Visible(o.Interval, w) {
			t.Errorf("%s reported as tiny but visible", o.Interval.ID)
		}
	}
}
