package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/matzehuels/strata/pkg/buildinfo"
	"github.com/matzehuels/strata/pkg/errors"
	"github.com/matzehuels/strata/pkg/interval"
	"github.com/matzehuels/strata/pkg/layout"
	"github.com/matzehuels/strata/pkg/pipeline"
	"github.com/matzehuels/strata/pkg/scale"
	"github.com/matzehuels/strata/pkg/sink"
)

// =============================================================================
// Response types
// =============================================================================

// HealthResponse is returned by /healthz.
type HealthResponse struct {
	Status    string         `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Service   string         `json:"service"`
	Build     buildinfo.Info `json:"build"`
	Uptime    string         `json:"uptime"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// ScaleResponse is returned by /api/v1/scale.
type ScaleResponse struct {
	Mode        string          `json:"mode"`
	Requested   string          `json:"requested_mode,omitempty"`
	Min         float64         `json:"min"`
	Max         float64         `json:"max"`
	TotalExtent float64         `json:"total_extent"`
	Axis        layout.Axis     `json:"axis"`
	Positions   []Position      `json:"positions,omitempty"`
	Slots       []sink.SlotJSON `json:"slots,omitempty"`
}

// Position is the vertical coordinate of one requested age.
type Position struct {
	Ma float64 `json:"ma"`
	Y  float64 `json:"y"`
}

// PresetResponse describes a named window.
type PresetResponse struct {
	Name  string  `json:"name"`
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   "strata",
		Build:     buildinfo.Get(),
		Uptime:    time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	s.serveArtifact(w, r, pipeline.FormatJSON, "application/json")
}

func (s *Server) handleChartSVG(w http.ResponseWriter, r *http.Request) {
	s.serveArtifact(w, r, pipeline.FormatSVG, "image/svg+xml")
}

func (s *Server) serveArtifact(w http.ResponseWriter, r *http.Request, format, contentType string) {
	opts, err := parseOptions(r.URL.Query())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	opts.Formats = []string{format}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	cacheStatus := "MISS"
	if res.CacheInfo.RenderHit {
		cacheStatus = "HIT"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Cache", cacheStatus)
	w.Header().Set("X-Scale-Mode", string(res.Chart.Mode))
	if len(res.Diagnostics) > 0 {
		w.Header().Set("X-Tiny-Overlaps", strconv.Itoa(len(res.Diagnostics)))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) handleScale(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts, err := parseOptions(q)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var ages []float64
	for _, v := range parseList(q["at"]) {
		ma, err := parseFloat("at", v)
		if err != nil {
			s.fail(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid at: %q", v))
			return
		}
		ages = append(ages, ma)
	}

	chart, err := s.runner.Layout(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	resp := ScaleResponse{
		Mode:        string(chart.Mode),
		Min:         chart.Window.Min,
		Max:         chart.Window.Max,
		TotalExtent: chart.TotalExtent,
		Axis:        layout.BuildAxis(chart.Scale),
	}
	if chart.Requested != chart.Mode {
		resp.Requested = string(chart.Requested)
	}
	for _, ma := range ages {
		resp.Positions = append(resp.Positions, Position{Ma: ma, Y: chart.Scale.Position(ma)})
	}
	for _, slot := range scale.SlotsOf(chart.Scale) {
		resp.Slots = append(resp.Slots, sink.SlotJSON{ID: slot.Interval.ID, Top: slot.Top, Bottom: slot.Bottom})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSources(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.runner.Loader.List(layout.CollectionLabel))
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	out := make([]PresetResponse, len(interval.Presets))
	for i, p := range interval.Presets {
		out[i] = PresetResponse{Name: p.Name, Label: p.Label, Min: p.Window.Min, Max: p.Window.Max}
	}
	writeJSON(w, http.StatusOK, out)
}

// =============================================================================
// Helpers
// =============================================================================

// fail maps pipeline errors onto HTTP statuses: caller mistakes are 400,
// unknown collections 404, everything else 500.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := string(errors.GetCode(err))
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "id", GetRequestID(r.Context()), "error", err)
		msg = "internal error"
	}
	resp := ErrorResponse{Error: msg, Code: code, RequestID: GetRequestID(r.Context())}
	writeJSON(w, status, resp)
}

func statusFor(err error) int {
	switch {
	case errors.IsInvalid(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeSourceNotFound), errors.Is(err, errors.ErrCodeNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg, Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
