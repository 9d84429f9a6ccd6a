// Package pkg provides the core libraries for Strata geological timescale charts.
//
// # Overview
//
// Strata lays out a window of geologic time as side-by-side columns of
// stacked interval boxes: eons, eras, periods, epochs and ages from the
// International Chronostratigraphic Chart, optionally joined by regional
// biozone columns. Time runs top to bottom, youngest first. The pkg
// directory is organized into three areas:
//
//  1. Domain logic ([interval], [scale], [palette], [layout], [sink])
//  2. Data and orchestration ([source], [pipeline])
//  3. Infrastructure ([cache], [config], [observability], [session], [errors], [buildinfo])
//
// # Architecture
//
// The typical data flow through Strata:
//
//	Builtin or file collection (JSON, YAML, TOML)
//	         ↓
//	    [source] package (decode + normalize intervals)
//	         ↓
//	    [interval] package (window filtering, tiny-overlap diagnostics)
//	         ↓
//	    [scale] package (linear, log or equal-slot time mapping)
//	         ↓
//	    [layout] package (columns, boxes, axis ticks)
//	         ↓
//	    [sink] package (SVG or JSON output)
//
// # Quick Start
//
// Load the builtin chart and render the Phanerozoic:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/strata/pkg/interval"
//	    "github.com/matzehuels/strata/pkg/layout"
//	    "github.com/matzehuels/strata/pkg/scale"
//	    "github.com/matzehuels/strata/pkg/sink"
//	    "github.com/matzehuels/strata/pkg/source"
//	)
//
//	// 1. Load collections
//	loader := source.NewLoader(nil)
//	cols, _ := loader.LoadAll(context.Background(), []string{"ics"})
//
//	// 2. Pick a window
//	w, _ := interval.NewWindow(0, 538.8)
//
//	// 3. Compute layout
//	chart, _ := layout.Compute(layout.DefaultColumns(), cols, w, scale.Linear)
//
//	// 4. Render to SVG
//	svg := sink.RenderSVG(chart, sink.WithTitle("Phanerozoic"))
//
// Most callers should use [pipeline.Runner] instead, which adds
// validation, artifact caching and hooks on top of the same steps.
//
// # Main Packages
//
// ## Domain
//
// [interval] - Interval and Window types, visibility with a small epsilon,
// named presets ("phanerozoic", "cenozoic", ...) and rank helpers.
//
// [scale] - Time-to-pixel mappings. Equal-slot mode gives every finest
// interval the same height and falls back to linear when no slots are visible.
//
// [palette] - Color parsing, contrast text color, darkening, and the
// reference color index used to paint biozones that carry no color.
//
// [layout] - Column specs, box geometry with minimum heights, axis ticks
// and the complete [layout.Chart].
//
// [sink] - Output formats. SVG is hand-written markup; JSON mirrors the chart.
//
// ## Data
//
// [source] - Builtin collections embedded in the binary plus file-backed
// collections, read through a concurrency-safe [source.Loader].
//
// [pipeline] - Complete load → layout → render pipeline used by the CLI
// and the HTTP server. Ensures consistent behavior across entry points.
//
// ## Infrastructure
//
// [cache] - Artifact cache with file, Redis and null backends, plus
// [cache.Keyer] for deterministic keys.
//
// [config] - TOML configuration (window, mode, columns, sources, cache).
//
// [observability] - Hook interfaces for pipeline, cache, diagnostics and HTTP.
//
// [session] - Persisted browse views.
//
// [errors] - Coded errors shared by every package.
//
// [buildinfo] - Version information injected at link time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...             # All tests
//	go test ./pkg/scale/...       # Specific package
//	go test -run Example ./pkg/... # Examples only
//
// [interval]: https://pkg.go.dev/github.com/matzehuels/strata/pkg/interval
// [scale]: https://pkg.go.dev/github.com/matzehuels/strata/pkg/scale
// [palette]: https://pkg.go.dev/github.com/matzehuels/strata/pkg/palette
// [layout]: https://pkg.go.dev/github.com/matzehuels/strata/pkg/layout
// [sink]: https://pkg.go.dev/github.com/matzehuels/strata/pkg/sink
// [source]: https://pkg.go.dev/github.com/matzehuels/strata/pkg/source
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/strata/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/strata/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/strata/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/strata/pkg/observability
// [session]: https://pkg.go.dev/github.com/matzehuels/strata/pkg/session
// [errors]: https://pkg.go.dev/github.com/matzehuels/strata/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/strata/pkg/buildinfo
package pkg
