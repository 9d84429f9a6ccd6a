package palette

import (
	"cmp"
	"slices"

	"github.com/matzehuels/strata/pkg/interval"
)

// indexTolerance widens entry bounds for midpoint containment.
const indexTolerance = 1e-6

// Entry is one colored finest-rank range.
type Entry struct {
	RangeStart float64 // older bound, Ma
	RangeEnd   float64 // younger bound, Ma
	Color      string
}

// Index resolves fallback colors from colored finest-rank intervals.
// The zero value is an empty index.
type Index struct {
	entries []Entry
}

// BuildIndex keeps the finest-rank intervals that carry a color, sorted by
// their younger bound.
func BuildIndex(reference []interval.Interval) Index {
	var entries []Entry
	for _, iv := range reference {
		if !interval.IsFinest(iv.Rank) || !iv.HasColor() {
			continue
		}
		entries = append(entries, Entry{RangeStart: iv.Max(), RangeEnd: iv.Min(), Color: iv.Color})
	}
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Compare(a.RangeEnd, b.RangeEnd)
	})
	return Index{entries: entries}
}

// Len returns the number of entries.
func (x Index) Len() int { return len(x.entries) }

// Entries returns a copy of the entries, youngest first.
func (x Index) Entries() []Entry { return slices.Clone(x.entries) }

// Resolve returns the color for iv. It prefers the entry containing the
// interval midpoint, then the first entry overlapping the interval, then
// the oldest entry. It reports false only when the index is empty.
func (x Index) Resolve(iv interval.Interval) (string, bool) {
	if len(x.entries) == 0 {
		return "", false
	}
	mid := iv.Midpoint()
	for _, e := range x.entries {
		if mid <= e.RangeStart+indexTolerance && mid >= e.RangeEnd-indexTolerance {
			return e.Color, true
		}
	}
	lo, hi := iv.Min(), iv.Max()
	for _, e := range x.entries {
		if !(hi < e.RangeEnd || lo > e.RangeStart) {
			return e.Color, true
		}
	}
	return x.entries[len(x.entries)-1].Color, true
}
