package source

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/strata/pkg/errors"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"ics.json", FormatJSON, false},
		{"dir/nalma.YAML", FormatYAML, false},
		{"elma.yml", FormatYAML, false},
		{"mp.toml", FormatTOML, false},
		{"chart.ttl", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestReadFile(t *testing.T) {
	ivs, err := ReadFile(filepath.Join("testdata", "regional.json"), "regional")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(ivs) != 3 {
		t.Fatalf("got %d intervals, want 3 (undated dropped)", len(ivs))
	}
	for _, iv := range ivs {
		if iv.Source != "regional" {
			t.Errorf("%s: Source = %q, want regional", iv.ID, iv.Source)
		}
	}
	if ivs[1].Color != "#aabbcc" {
		t.Errorf("zone-b color = %q", ivs[1].Color)
	}
	anon := ivs[2]
	if anon.ID != "regional-3" {
		t.Errorf("anonymous ID = %q, want regional-3", anon.ID)
	}
	if anon.Rank != "Age" {
		t.Errorf("URI rank = %q, want Age", anon.Rank)
	}
	if anon.End != 0 {
		t.Errorf("zero end age lost: %v", anon.End)
	}
}

func TestReadFileBareArray(t *testing.T) {
	ivs, err := ReadFile(filepath.Join("testdata", "bare.json"), "ics")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(ivs) != 1 || ivs[0].ID != "present" {
		t.Errorf("got %+v", ivs)
	}
}

func TestReadFileErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"missing", filepath.Join("testdata", "nope.json"), errors.ErrCodeFileNotFound},
		{"bad extension", filepath.Join("testdata", "chart.ttl"), errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadFile(tt.path, "x")
			if !errors.Is(err, tt.code) {
				t.Errorf("ReadFile() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestDecodeFormats(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"yaml", FormatYAML, "intervals:\n  - id: a\n    start: 2\n    end: 1\n    rank: Age\n"},
		{"toml", FormatTOML, "[[intervals]]\nid = \"a\"\nstart = 2.0\nend = 1.0\nrank = \"Age\"\n"},
		{"json", FormatJSON, `{"intervals":[{"id":"a","start":2,"end":1,"rank":"Age"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ivs, err := Decode(strings.NewReader(tt.input), tt.format, "k")
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if len(ivs) != 1 {
				t.Fatalf("got %d intervals, want 1", len(ivs))
			}
			iv := ivs[0]
			if iv.ID != "a" || iv.Start != 2 || iv.End != 1 || iv.Rank != "Age" || iv.Source != "k" {
				t.Errorf("got %+v", iv)
			}
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode(strings.NewReader("{not json"), FormatJSON, "k")
	if !errors.Is(err, errors.ErrCodeInvalidSource) {
		t.Errorf("Decode() error = %v, want %s", err, errors.ErrCodeInvalidSource)
	}
	_, err = Decode(strings.NewReader(""), Format("ttl"), "k")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Decode() error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestEncodeDecodeYAML(t *testing.T) {
	ivs, err := ReadFile(filepath.Join("testdata", "regional.json"), "regional")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, FormatYAML, "regional", ivs); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	back, err := Decode(&buf, FormatYAML, "regional")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(back) != len(ivs) {
		t.Fatalf("got %d intervals back, want %d", len(back), len(ivs))
	}
	for i := range ivs {
		if back[i] != ivs[i] {
			t.Errorf("interval %d: got %+v, want %+v", i, back[i], ivs[i])
		}
	}
}

func TestBuiltin(t *testing.T) {
	keys := Builtin()
	if len(keys) != 2 || keys[0] != "ics" || keys[1] != "nalma" {
		t.Fatalf("Builtin() = %v, want [ics nalma]", keys)
	}
	ics, err := ReadBuiltin("ics")
	if err != nil {
		t.Fatalf("ReadBuiltin(ics): %v", err)
	}
	if len(ics) != 65 {
		t.Errorf("ics has %d intervals, want 65", len(ics))
	}
	for _, iv := range ics {
		if iv.Color == "" || iv.Rank == "" || strings.Contains(iv.Rank, "/") {
			t.Errorf("ics interval %s incomplete: %+v", iv.ID, iv)
		}
	}
	nalma, err := ReadBuiltin("nalma")
	if err != nil {
		t.Fatalf("ReadBuiltin(nalma): %v", err)
	}
	if len(nalma) != 19 {
		t.Errorf("nalma has %d intervals, want 19", len(nalma))
	}
	if _, err := ReadBuiltin("salma"); !errors.Is(err, errors.ErrCodeSourceNotFound) {
		t.Errorf("ReadBuiltin(salma) error = %v, want %s", err, errors.ErrCodeSourceNotFound)
	}
}

func TestLoaderCaches(t *testing.T) {
	l := NewLoader(map[string]string{"regional": filepath.Join("testdata", "regional.json")})
	ctx := context.Background()

	a, err := l.Load(ctx, "regional")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	b, err := l.Load(ctx, "regional")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if &a[0] != &b[0] {
		t.Errorf("second Load decoded again")
	}

	l.Reset()
	c, _ := l.Load(ctx, "regional")
	if &a[0] == &c[0] {
		t.Errorf("Reset kept cached collection")
	}
}

func TestLoaderPathOverridesBuiltin(t *testing.T) {
	l := NewLoader(map[string]string{"ics": filepath.Join("testdata", "bare.json")})
	ivs, err := l.Load(context.Background(), "ics")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(ivs) != 1 {
		t.Errorf("got %d intervals, want the override file", len(ivs))
	}
}

func TestLoaderErrors(t *testing.T) {
	l := NewLoader(nil)
	if _, err := l.Load(context.Background(), "salma"); !errors.Is(err, errors.ErrCodeSourceNotFound) {
		t.Errorf("Load(salma) error = %v, want %s", err, errors.ErrCodeSourceNotFound)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := l.Load(ctx, "ics"); err != context.Canceled {
		t.Errorf("Load with canceled ctx = %v, want context.Canceled", err)
	}
}

func TestLoaderList(t *testing.T) {
	l := NewLoader(map[string]string{"regional": filepath.Join("testdata", "regional.json")})
	if _, err := l.LoadAll(context.Background(), []string{"nalma"}); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	infos := l.List(func(key string) string {
		if key == "nalma" {
			return "NALMA"
		}
		return ""
	})
	if len(infos) != 3 {
		t.Fatalf("List() returned %d entries, want 3", len(infos))
	}
	want := []Info{
		{Key: "ics", Label: "ics", Builtin: true},
		{Key: "nalma", Label: "NALMA", Builtin: true, Loaded: true, Count: 19},
		{Key: "regional", Label: "regional", Path: filepath.Join("testdata", "regional.json")},
	}
	for i := range want {
		if infos[i] != want[i] {
			t.Errorf("List()[%d] = %+v, want %+v", i, infos[i], want[i])
		}
	}
	if !l.Has("regional") || !l.Has("ics") || l.Has("elma") {
		t.Errorf("Has() mismatch")
	}
}
