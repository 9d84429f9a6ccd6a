package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/matzehuels/strata/pkg/cache"
	"github.com/matzehuels/strata/pkg/errors"
	"github.com/matzehuels/strata/pkg/interval"
	"github.com/matzehuels/strata/pkg/layout"
	"github.com/matzehuels/strata/pkg/scale"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"json", false},
		{"png", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "json"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Window() != interval.DefaultWindow {
		t.Errorf("Window = %+v, want %+v", opts.Window(), interval.DefaultWindow)
	}
	if opts.ScaleMode() != scale.Linear {
		t.Errorf("ScaleMode = %q, want linear", opts.ScaleMode())
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if got, want := len(opts.ColumnSpecs()), len(layout.DefaultColumns()); got != want {
		t.Errorf("columns = %d, want %d", got, want)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}
}

func TestOptionsValidateForLayout(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"reversed window", Options{Min: 66, Max: 0}, errors.ErrCodeInvalidWindow},
		{"empty window", Options{Min: 10, Max: 10}, errors.ErrCodeInvalidWindow},
		{"unknown mode", Options{Mode: "cubic"}, errors.ErrCodeInvalidMode},
		{"bad biozone key", Options{Biozones: []string{"NALMA!"}}, errors.ErrCodeInvalidInput},
		{"duplicate columns", Options{Columns: []layout.ColumnSpec{
			{Key: "age", Label: "Age", Width: 90, Kind: layout.KindTime},
			{Key: "age", Label: "Age", Width: 90, Kind: layout.KindTime},
		}}, errors.ErrCodeInvalidColumn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForLayout()
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestOptionsBiozonesAppendColumns(t *testing.T) {
	opts := Options{Biozones: []string{"nalma"}}
	if err := opts.ValidateForLayout(); err != nil {
		t.Fatal(err)
	}
	cols := opts.ColumnSpecs()
	last := cols[len(cols)-1]
	if last.Key != "nalma" || last.Kind != layout.KindBiozone {
		t.Errorf("last column = %+v, want nalma biozone", last)
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Mode: "log", Formats: []string{"json"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	first := opts.LayoutKeyOpts()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.LayoutKeyOpts() != first {
		t.Error("second call changed options")
	}
	if opts.ScaleMode() != scale.Logarithmic {
		t.Errorf("ScaleMode = %q", opts.ScaleMode())
	}
}

func TestLayoutKeyOptsTracksColumns(t *testing.T) {
	a := Options{}
	b := Options{Biozones: []string{"nalma"}}
	for _, o := range []*Options{&a, &b} {
		if err := o.ValidateForLayout(); err != nil {
			t.Fatal(err)
		}
	}
	if a.LayoutKeyOpts().ColumnsHash == b.LayoutKeyOpts().ColumnsHash {
		t.Error("different columns should hash differently")
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Title: "Cenozoic", NoTooltips: true, Slots: true}
	got := opts.ArtifactKeyOpts(FormatJSON)
	want := cache.ArtifactKeyOpts{Format: "json", Title: "Cenozoic", Tooltips: false, Slots: true}
	if got != want {
		t.Errorf("ArtifactKeyOpts = %+v, want %+v", got, want)
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{Formats: []string{"json"}}
	opts.SetRenderDefaults()
	if len(opts.Formats) != 1 || opts.Formats[0] != "json" {
		t.Errorf("explicit formats overwritten: %v", opts.Formats)
	}
}

func TestDiagnose(t *testing.T) {
	collections := map[string][]interval.Interval{
		"nalma": {
			{ID: "sliver", Start: 70, End: 65.98, Source: "nalma"},
			{ID: "inside", Start: 30, End: 20, Source: "nalma"},
		},
		"ics": {
			{ID: "edge", Start: 0.01, End: -1, Source: "ics"},
			{ID: "outside", Start: 80, End: 70, Source: "ics"},
		},
	}
	got := Diagnose(context.Background(), collections, interval.Window{Min: 0, Max: 66})
	if len(got) != 2 {
		t.Fatalf("got %d diagnostics, want 2", len(got))
	}
	if got[0].Interval.ID != "edge" || got[1].Interval.ID != "sliver" {
		t.Errorf("order = %s, %s; want edge, sliver", got[0].Interval.ID, got[1].Interval.ID)
	}
}

func TestRunnerExecute(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil, nil)
	defer r.Close()

	opts := Options{Mode: "equal", Biozones: []string{"nalma"}, Formats: []string{"svg", "json"}}
	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}
	if res.Chart.Mode != scale.EqualSlot {
		t.Errorf("Mode = %q, want equal", res.Chart.Mode)
	}
	if res.Stats.Collections != 2 || res.Stats.Boxes == 0 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if res.InputHash == "" {
		t.Error("InputHash should be set")
	}
	if !bytes.HasPrefix(res.Artifacts["svg"], []byte("<svg")) {
		t.Error("svg artifact should start with <svg")
	}
	var doc map[string]any
	if err := json.Unmarshal(res.Artifacts["json"], &doc); err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if doc["mode"] != "equal" {
		t.Errorf("json mode = %v", doc["mode"])
	}

	again, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !again.CacheInfo.RenderHit {
		t.Error("second run should hit the cache")
	}
	if !bytes.Equal(again.Artifacts["svg"], res.Artifacts["svg"]) {
		t.Error("cached svg differs")
	}

	opts.Refresh = true
	fresh, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if fresh.CacheInfo.RenderHit {
		t.Error("refresh should bypass the cache")
	}
}

func TestRunnerUnknownCollection(t *testing.T) {
	r := NewRunner(nil, nil, nil, nil)
	_, err := r.Execute(context.Background(), Options{Biozones: []string{"zz"}})
	if !errors.Is(err, errors.ErrCodeSourceNotFound) {
		t.Errorf("error = %v, want SOURCE_NOT_FOUND", err)
	}
}

func TestRunnerLayout(t *testing.T) {
	r := NewRunner(nil, nil, nil, nil)
	chart, err := r.Layout(context.Background(), Options{Min: 0, Max: 538.8})
	if err != nil {
		t.Fatal(err)
	}
	eon, ok := chart.Column("eon")
	if !ok {
		t.Fatal("missing eon column")
	}
	if len(eon.Boxes) != 1 || eon.Boxes[0].ID != "phanerozoic" {
		t.Errorf("eon boxes = %+v", eon.Boxes)
	}
}

func TestRunnerCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewRunner(nil, nil, nil, nil)
	if _, err := r.Execute(ctx, Options{}); err == nil {
		t.Error("expected error for canceled context")
	}
}
