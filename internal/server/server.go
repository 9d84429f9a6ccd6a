// Package server exposes the chart pipeline over HTTP.
//
// Routes:
//
//	GET /healthz             liveness and build info
//	GET /api/v1/layout       chart layout as JSON
//	GET /api/v1/chart.svg    rendered SVG chart
//	GET /api/v1/scale        axis ticks, positions and equal-slot table
//	GET /api/v1/sources      known interval collections
//	GET /api/v1/presets      named windows
//
// Chart routes accept the query parameters window (preset name or
// "min-max"), min, max, mode, biozones (comma separated or repeated),
// title, slots and notooltips.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/strata/pkg/pipeline"
)

// Default timeouts for the HTTP server.
const (
	ReadHeaderTimeout = 5 * time.Second
	WriteTimeout      = 30 * time.Second
	ShutdownTimeout   = 10 * time.Second
)

// Server serves chart requests from a shared [pipeline.Runner].
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	started time.Time
	router  chi.Router
}

// New creates a server. A nil logger falls back to the runner's logger.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{
		runner:  runner,
		logger:  logger,
		started: time.Now(),
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(s.logRequests)
	r.Use(recoverer(s.logger))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/layout", s.handleLayout)
		r.Get("/chart.svg", s.handleChartSVG)
		r.Get("/scale", s.handleScale)
		r.Get("/sources", s.handleSources)
		r.Get("/presets", s.handlePresets)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "no route for "+r.URL.Path)
	})
	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: ReadHeaderTimeout,
		WriteTimeout:      WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
