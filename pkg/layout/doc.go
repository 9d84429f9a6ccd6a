// Package layout computes box geometry for timescale charts.
//
// # Overview
//
// Given interval collections, a visible window and a scale mode, this
// package produces a [Chart]: one [ColumnLayout] per requested column, each
// holding its boxes in paint order. The result contains everything a
// renderer needs and nothing renderer-specific:
//
//   - Box geometry (top offset and height in pixels)
//   - Z-order, so finer ranks stack above coarser ones
//   - Fill, border and label colors
//   - Tooltip ranges clamped to the window
//   - Time-axis ticks for time columns
//
// # Building a Chart
//
// [Compute] is the single entry point used by the pipeline, the HTTP API and
// the TUI:
//
//	w, _ := interval.NewWindow(0, 66)
//	chart, err := layout.Compute(layout.DefaultColumns(), collections, w, scale.Linear)
//
// The "ics" collection ([ReferenceCollection]) is the reference set: it
// anchors equal-slot scales and provides the colors inherited by biozone
// columns through [palette.Index].
//
// Lower-level callers can build a mapping once with [scale.Build] and lay
// out individual columns with [Boxes].
//
// # Determinism
//
// Layout is a pure function of its inputs. Boxes are ordered by their older
// bound with stable tie-breaks, so calling [Compute] twice with the same
// inputs yields identical charts.
package layout
