package server

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/strata/pkg/cache"
	"github.com/matzehuels/strata/pkg/pipeline"
	"github.com/matzehuels/strata/pkg/sink"
	"github.com/matzehuels/strata/pkg/source"
)

func newTestServer(t *testing.T, c cache.Cache) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(c, nil, source.NewLoader(nil), logger)
	ts := httptest.NewServer(New(runner, logger).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return v
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, nil)
	resp := get(t, ts, "/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("missing request id header")
	}
	body := decode[HealthResponse](t, resp)
	if body.Status != "healthy" || body.Service != "strata" {
		t.Errorf("body = %+v", body)
	}
}

func TestRequestIDEchoed(t *testing.T) {
	ts := newTestServer(t, nil)
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q, want abc-123", got)
	}
}

func TestLayout(t *testing.T) {
	ts := newTestServer(t, nil)
	resp := get(t, ts, "/api/v1/layout?window=cenozoic&mode=equal&biozones=nalma&slots=true")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	doc := decode[sink.ChartJSON](t, resp)
	if doc.Mode != "equal" || doc.Min != 0 || doc.Max != 66 {
		t.Errorf("doc = mode %s window %v-%v", doc.Mode, doc.Min, doc.Max)
	}
	if len(doc.Slots) == 0 {
		t.Error("slots requested but missing")
	}
	last := doc.Columns[len(doc.Columns)-1]
	if last.Key != "nalma" || len(last.Boxes) == 0 {
		t.Errorf("last column = %s with %d boxes", last.Key, len(last.Boxes))
	}
}

func TestChartSVG(t *testing.T) {
	ts := newTestServer(t, nil)
	resp := get(t, ts, "/api/v1/chart.svg?min=0&max=23.03&title=Neogene")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.HasPrefix(string(body), "<svg") || !strings.Contains(string(body), "Neogene") {
		t.Errorf("unexpected body: %.80s", body)
	}
}

func TestChartCachedInRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rc, err := cache.NewRedisCache(context.Background(), "redis://"+mr.Addr())
	if err != nil {
		t.Fatal(err)
	}
	ts := newTestServer(t, rc)

	first := get(t, ts, "/api/v1/chart.svg?window=post-paleozoic")
	if got := first.Header.Get("X-Cache"); got != "MISS" {
		t.Errorf("first X-Cache = %q, want MISS", got)
	}
	second := get(t, ts, "/api/v1/chart.svg?window=post-paleozoic")
	if got := second.Header.Get("X-Cache"); got != "HIT" {
		t.Errorf("second X-Cache = %q, want HIT", got)
	}
	if len(mr.Keys()) == 0 {
		t.Error("expected artifacts in redis")
	}
}

func TestScale(t *testing.T) {
	ts := newTestServer(t, nil)
	resp := get(t, ts, "/api/v1/scale?window=0-66&at=0,66")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decode[ScaleResponse](t, resp)
	if body.Mode != "linear" || body.TotalExtent != 2970 {
		t.Errorf("mode %s extent %v", body.Mode, body.TotalExtent)
	}
	if len(body.Positions) != 2 || body.Positions[0].Y != 12 {
		t.Fatalf("positions = %+v", body.Positions)
	}
	if math.Abs(body.Positions[1].Y-2950) > 1e-6 {
		t.Errorf("position of 66 Ma = %v, want 2950", body.Positions[1].Y)
	}
	if len(body.Axis.Ticks) == 0 || body.Axis.Ticks[0].Label != "0 (present)" {
		t.Errorf("ticks = %+v", body.Axis.Ticks)
	}
	if len(body.Slots) != 0 {
		t.Error("linear scale has no slots")
	}
}

func TestSourcesAndPresets(t *testing.T) {
	ts := newTestServer(t, nil)

	sources := decode[[]source.Info](t, get(t, ts, "/api/v1/sources"))
	keys := make(map[string]bool)
	for _, s := range sources {
		keys[s.Key] = true
	}
	if !keys["ics"] || !keys["nalma"] {
		t.Errorf("sources = %+v", sources)
	}

	presets := decode[[]PresetResponse](t, get(t, ts, "/api/v1/presets"))
	if len(presets) == 0 || presets[0].Name != "cenozoic" {
		t.Errorf("presets = %+v", presets)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		path   string
		status int
		code   string
	}{
		{"/api/v1/layout?min=66&max=0", http.StatusBadRequest, "INVALID_WINDOW"},
		{"/api/v1/layout?min=abc", http.StatusBadRequest, "INVALID_WINDOW"},
		{"/api/v1/layout?window=jurassic", http.StatusBadRequest, "INVALID_WINDOW"},
		{"/api/v1/layout?mode=cubic", http.StatusBadRequest, "INVALID_MODE"},
		{"/api/v1/layout?slots=maybe", http.StatusBadRequest, "INVALID_INPUT"},
		{"/api/v1/scale?at=old", http.StatusBadRequest, "INVALID_INPUT"},
		{"/api/v1/chart.svg?biozones=salma", http.StatusNotFound, "SOURCE_NOT_FOUND"},
		{"/api/v1/nope", http.StatusNotFound, "NOT_FOUND"},
	}

	ts := newTestServer(t, nil)
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp := get(t, ts, tt.path)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			body := decode[ErrorResponse](t, resp)
			if body.Code != tt.code {
				t.Errorf("code = %q, want %q", body.Code, tt.code)
			}
		})
	}
}

func TestParseList(t *testing.T) {
	got := parseList([]string{"nalma, ELMA", "nalma", "", "mp"})
	want := []string{"nalma", "elma", "mp"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("parseList = %v, want %v", got, want)
	}
}
