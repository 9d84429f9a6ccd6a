package interval

import "math"

// VisibilityEpsilon is the minimum overlap, in Ma, for an interval to be
// drawn inside a window.
const VisibilityEpsilon = 0.05

// TinyOverlapThreshold bounds the overlaps reported by [TinyOverlaps].
// It currently equals [VisibilityEpsilon] but is tuned independently.
const TinyOverlapThreshold = 0.05

// Overlap returns the length of the intersection between iv and w.
// Negative values mean the two are disjoint.
func Overlap(iv Interval, w Window) float64 {
	return math.Min(iv.Max(), w.Max) - math.Max(iv.Min(), w.Min)
}

// Visible reports whether iv overlaps w by more than [VisibilityEpsilon].
func Visible(iv Interval, w Window) bool {
	return Overlap(iv, w) > VisibilityEpsilon
}

// FilterVisible returns the visible intervals in input order.
func FilterVisible(ivs []Interval, w Window) []Interval {
	out := make([]Interval, 0, len(ivs))
	for _, iv := range ivs {
		if Visible(iv, w) {
			out = append(out, iv)
		}
	}
	return out
}

// TinyOverlap describes an interval touching the window by a near-zero amount.
type TinyOverlap struct {
	Interval Interval
	Overlap  float64
}

// TinyOverlaps returns intervals whose overlap with w is positive but at
// most [TinyOverlapThreshold]. Such intervals usually come from boundary
// ages rounded differently across data sets.
func TinyOverlaps(ivs []Interval, w Window) []TinyOverlap {
	var out []TinyOverlap
	for _, iv := range ivs {
		if o := Overlap(iv, w); o > 0 && o <= TinyOverlapThreshold {
			out = append(out, TinyOverlap{Interval: iv, Overlap: o})
		}
	}
	return out
}
