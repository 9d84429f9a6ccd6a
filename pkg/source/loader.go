package source

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/matzehuels/strata/pkg/errors"
	"github.com/matzehuels/strata/pkg/interval"
)

// Info describes a collection known to a [Loader].
type Info struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Path    string `json:"path,omitempty"` // empty for built-in collections
	Builtin bool   `json:"builtin"`
	Loaded  bool   `json:"loaded"`
	Count   int    `json:"count,omitempty"` // intervals, once loaded
}

// Loader resolves collection keys to intervals. Each collection is decoded
// at most once; later calls return the cached slice. A Loader is safe for
// concurrent use.
type Loader struct {
	paths map[string]string

	mu     sync.Mutex
	loaded map[string][]interval.Interval
}

// NewLoader creates a loader. Paths map collection keys to files and take
// precedence over built-in collections with the same key.
func NewLoader(paths map[string]string) *Loader {
	return &Loader{
		paths:  maps.Clone(paths),
		loaded: make(map[string][]interval.Interval),
	}
}

// Load returns the collection for key, decoding it on first use.
// The returned slice is shared and must not be modified.
func (l *Loader) Load(ctx context.Context, key string) ([]interval.Interval, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if ivs, ok := l.loaded[key]; ok {
		return ivs, nil
	}

	var (
		ivs []interval.Interval
		err error
	)
	if p, ok := l.paths[key]; ok {
		ivs, err = ReadFile(p, key)
	} else if slices.Contains(Builtin(), key) {
		ivs, err = ReadBuiltin(key)
	} else {
		return nil, errors.New(errors.ErrCodeSourceNotFound, "unknown collection %q", key)
	}
	if err != nil {
		return nil, err
	}
	l.loaded[key] = ivs
	return ivs, nil
}

// LoadAll loads every key and returns the collections by key.
func (l *Loader) LoadAll(ctx context.Context, keys []string) (map[string][]interval.Interval, error) {
	out := make(map[string][]interval.Interval, len(keys))
	for _, key := range keys {
		ivs, err := l.Load(ctx, key)
		if err != nil {
			return nil, err
		}
		out[key] = ivs
	}
	return out, nil
}

// Has reports whether key resolves to a file or built-in collection.
func (l *Loader) Has(key string) bool {
	if _, ok := l.paths[key]; ok {
		return true
	}
	return slices.Contains(Builtin(), key)
}

// Keys returns all resolvable collection keys, sorted.
func (l *Loader) Keys() []string {
	keys := slices.Collect(maps.Keys(l.paths))
	for _, k := range Builtin() {
		if !slices.Contains(keys, k) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

// List describes every resolvable collection. Labels come from labelOf;
// a nil labelOf or an empty result falls back to the key.
func (l *Loader) List(labelOf func(key string) string) []Info {
	keys := l.Keys()
	l.mu.Lock()
	defer l.mu.Unlock()
	infos := make([]Info, 0, len(keys))
	for _, key := range keys {
		info := Info{Key: key, Label: key, Path: l.paths[key]}
		info.Builtin = info.Path == ""
		if labelOf != nil {
			if s := labelOf(key); s != "" {
				info.Label = s
			}
		}
		if ivs, ok := l.loaded[key]; ok {
			info.Loaded = true
			info.Count = len(ivs)
		}
		infos = append(infos, info)
	}
	return infos
}

// Reset drops all cached collections.
func (l *Loader) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	clear(l.loaded)
}
