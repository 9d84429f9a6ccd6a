// Package interval models geological time intervals and the visible window.
//
// # Overview
//
// An [Interval] is an immutable value describing one chronostratigraphic or
// biochronological unit: an identifier, an optional label and color, a
// classification rank and two ages in millions of years (Ma). The two ages
// are an unordered pair: data sources disagree on whether "start" is the
// older or the younger bound, so every consumer works with [Interval.Min]
// and [Interval.Max] instead of the raw fields.
//
// A [Window] is the visible time range. Unlike interval bounds, a window is
// validated rather than normalized: [NewWindow] rejects min >= max with an
// INVALID_WINDOW error because a reversed window is a caller bug.
//
// # Visibility
//
// [Visible] decides whether an interval takes part in a layout. An interval
// is visible only when its overlap with the window exceeds
// [VisibilityEpsilon] (0.05 Ma), which suppresses slivers produced by
// rounded boundary ages, e.g. a Cretaceous stage ending at 66.0 when the
// window is 0–66 Ma.
//
// [TinyOverlaps] reports the intervals that were dropped for this reason so
// callers can surface them as diagnostics. It never affects geometry.
//
// # Ranks
//
// Ranks come from a fixed vocabulary with historical synonyms (Series and
// Epoch, Stage and Age). [ColumnKey] and [ZIndex] map every synonym to one
// logical column and one stacking priority.
package interval
