package layout

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/strata/pkg/interval"
	"github.com/matzehuels/strata/pkg/palette"
	"github.com/matzehuels/strata/pkg/scale"
)

// Minimum box heights in pixels.
const (
	MinLinearHeight = 8.0
	MinHeight       = 2.0
)

// Options controls how [Boxes] colors a column.
type Options struct {
	// Ranks restricts the column to intervals with one of these ranks.
	// Empty keeps every rank.
	Ranks []string
	// Colors resolves fills for intervals without their own color. Only
	// consulted when Inherit is set.
	Colors palette.Index
	// Inherit enables color inheritance from Colors and a darkened border,
	// as used by biozone columns.
	Inherit bool
}

// MinBoxHeight returns the minimum height of a box under mode.
func MinBoxHeight(mode scale.Mode) float64 {
	if mode == scale.Linear {
		return MinLinearHeight
	}
	return MinHeight
}

// Boxes lays out the intervals that are visible through m's window and
// match opts.Ranks. Boxes are sorted ascending by older bound (the start
// age), then younger bound, then ID.
func Boxes(ivs []interval.Interval, m scale.Mapping, opts Options) []Box {
	w := m.Window()
	visible := interval.FilterVisible(ivs, w)
	if len(opts.Ranks) > 0 {
		visible = slices.DeleteFunc(visible, func(iv interval.Interval) bool {
			return !slices.Contains(opts.Ranks, iv.Rank)
		})
	}
	slices.SortStableFunc(visible, func(a, b interval.Interval) int {
		if c := cmp.Compare(a.Max(), b.Max()); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Min(), b.Min()); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	minHeight := MinBoxHeight(m.Mode())
	boxes := make([]Box, 0, len(visible))
	for _, iv := range visible {
		young := scale.Clamp(iv.Min(), w.Min, w.Max)
		old := scale.Clamp(iv.Max(), w.Min, w.Max)
		y0, y1 := m.Position(young), m.Position(old)
		top := min(y0, y1)
		height := max(math.Abs(y1-y0), minHeight)

		fill, border := fillFor(iv, opts)
		b := Box{
			ID:        iv.ID,
			Label:     iv.Label,
			Rank:      iv.Rank,
			Top:       top,
			Height:    height,
			ZIndex:    interval.ZIndex(iv.Rank),
			Fill:      fill,
			TextColor: palette.Contrast(fill),
			Border:    border,
		}
		b.Tooltip = Tooltip{Label: b.DisplayLabel(), Young: young, Old: old}
		boxes = append(boxes, b)
	}
	return boxes
}

func fillFor(iv interval.Interval, opts Options) (fill, border string) {
	if !opts.Inherit {
		if iv.HasColor() {
			return iv.Color, ""
		}
		return palette.DefaultICSFill, ""
	}
	fill = iv.Color
	if fill == "" {
		if c, ok := opts.Colors.Resolve(iv); ok {
			fill = c
		} else {
			fill = palette.DefaultBiozoneFill
		}
	}
	return fill, palette.Darken(fill, palette.BorderDarken)
}
