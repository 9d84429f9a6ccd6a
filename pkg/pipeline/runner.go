package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/strata/pkg/cache"
	"github.com/matzehuels/strata/pkg/interval"
	"github.com/matzehuels/strata/pkg/layout"
	"github.com/matzehuels/strata/pkg/observability"
	"github.com/matzehuels/strata/pkg/source"
)

// Runner encapsulates pipeline execution with caching.
// The CLI, the server and the browser all use it to avoid duplicating
// caching logic.
//
// The Runner is stateless except for the cache, the loader and the logger.
// It doesn't store pipeline results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Loader *source.Loader
	Logger *log.Logger

	// TTL is the lifetime of cached artifacts.
	TTL time.Duration
}

// NewRunner creates a runner.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// If loader is nil, only the builtin collections are available.
func NewRunner(c cache.Cache, keyer cache.Keyer, loader *source.Loader, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if loader == nil {
		loader = source.NewLoader(nil)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Loader: loader,
		Logger: logger,
		TTL:    cache.TTLArtifact,
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	collections, err := Load(ctx, r.Loader, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.InputHash = HashCollections(collections)
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Collections = len(collections)
	result.Stats.Intervals = countIntervals(collections)

	r.Logger.Info("loaded collections",
		"collections", result.Stats.Collections,
		"intervals", result.Stats.Intervals,
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	chart, diags, err := r.ComputeLayout(ctx, collections, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Chart = chart
	result.Diagnostics = diags
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Boxes = chart.BoxCount()

	r.Logger.Info("computed layout",
		"mode", chart.Mode,
		"boxes", result.Stats.Boxes,
		"extent", chart.TotalExtent,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, chart, result.InputHash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Layout loads the collections and computes the chart without rendering.
func (r *Runner) Layout(ctx context.Context, opts Options) (layout.Chart, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Chart{}, err
	}
	r.applyLogger(&opts)

	collections, err := Load(ctx, r.Loader, opts)
	if err != nil {
		return layout.Chart{}, err
	}
	chart, _, err := r.ComputeLayout(ctx, collections, opts)
	return chart, err
}

// ComputeLayout runs diagnostics over the loaded collections and computes
// the chart. Tiny overlaps are logged as warnings and never fail the run.
func (r *Runner) ComputeLayout(ctx context.Context, collections map[string][]interval.Interval, opts Options) (layout.Chart, []interval.TinyOverlap, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Chart{}, nil, err
	}
	r.applyLogger(&opts)

	diags := Diagnose(ctx, collections, opts.window)
	for _, d := range diags {
		opts.Logger.Warn("interval barely overlaps window",
			"collection", d.Interval.Source,
			"id", d.Interval.ID,
			"overlap", d.Overlap)
	}

	chart, err := ComputeLayout(ctx, collections, opts)
	if err != nil {
		return layout.Chart{}, diags, err
	}
	if chart.Mode != chart.Requested {
		opts.Logger.Warn("scale degraded",
			"requested", chart.Requested,
			"mode", chart.Mode)
	}
	return chart, diags, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
// The cache key combines the input hash with every layout and render option,
// so a chart is never rendered from stale data.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, chart layout.Chart, inputHash string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	layoutKey := r.Keyer.LayoutKey(inputHash, opts.LayoutKeyOpts())
	layoutHash := cache.Hash([]byte(layoutKey))
	hooks := observability.Pipeline()
	cacheHooks := observability.Cache()

	// Try to get all formats from cache
	cacheable := inputHash != "" && !opts.Refresh
	if cacheable {
		artifacts := make(map[string][]byte)
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				cacheHooks.OnCacheMiss(ctx, key)
				break
			}
			cacheHooks.OnCacheHit(ctx, key)
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	// Render all formats
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(chart, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	if inputHash != "" {
		for format, data := range rendered {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
				opts.Logger.Debug("cache write failed", "key", key, "error", err)
				continue
			}
			cacheHooks.OnCacheSet(ctx, key, len(data))
		}
	}

	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
