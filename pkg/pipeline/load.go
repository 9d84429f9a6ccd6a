package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/strata/pkg/cache"
	"github.com/matzehuels/strata/pkg/interval"
	"github.com/matzehuels/strata/pkg/layout"
	"github.com/matzehuels/strata/pkg/observability"
	"github.com/matzehuels/strata/pkg/source"
)

// =============================================================================
// Load
// =============================================================================

// Load reads every collection the resolved columns need.
func Load(ctx context.Context, loader *source.Loader, opts Options) (map[string][]interval.Interval, error) {
	keys := layout.Collections(opts.columns)
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, keys)
	start := time.Now()

	collections, err := loader.LoadAll(ctx, keys)
	hooks.OnLoadComplete(ctx, keys, countIntervals(collections), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return collections, nil
}

// HashCollections returns a content hash of the loaded data.
func HashCollections(collections map[string][]interval.Interval) string {
	h, err := cache.HashJSON(collections)
	if err != nil {
		return ""
	}
	return h
}

func countIntervals(collections map[string][]interval.Interval) int {
	n := 0
	for _, ivs := range collections {
		n += len(ivs)
	}
	return n
}
