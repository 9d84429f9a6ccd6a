package pipeline

import (
	"context"
	"slices"
	"time"

	"github.com/matzehuels/strata/pkg/interval"
	"github.com/matzehuels/strata/pkg/layout"
	"github.com/matzehuels/strata/pkg/observability"
)

// =============================================================================
// Layout
// =============================================================================

// Diagnose reports intervals that overlap the window by a near-zero amount
// across all collections, ordered by collection key.
func Diagnose(ctx context.Context, collections map[string][]interval.Interval, w interval.Window) []interval.TinyOverlap {
	keys := make([]string, 0, len(collections))
	for k := range collections {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var out []interval.TinyOverlap
	hooks := observability.Diagnostics()
	for _, k := range keys {
		for _, t := range interval.TinyOverlaps(collections[k], w) {
			hooks.OnTinyOverlap(ctx, k, t.Interval.ID, t.Overlap)
			out = append(out, t)
		}
	}
	return out
}

// ComputeLayout runs [layout.Compute] for validated options.
func ComputeLayout(ctx context.Context, collections map[string][]interval.Interval, opts Options) (layout.Chart, error) {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, string(opts.mode), len(opts.columns))
	start := time.Now()

	chart, err := layout.Compute(opts.columns, collections, opts.window, opts.mode)
	hooks.OnLayoutComplete(ctx, string(chart.Mode), chart.BoxCount(), time.Since(start), err)
	return chart, err
}
