// Package sink renders computed charts to output formats.
//
// # Overview
//
// A "sink" transforms a [layout.Chart] into bytes. This package provides:
//
//   - SVG: a standalone chart with header, columns, time axis and tooltips
//   - JSON: the full layout for external tools and the HTTP API
//
// # SVG Output
//
// [RenderSVG] draws the header row (column labels), then every column body.
// Boxes are painted in ascending z-order so finer ranks cover coarser ones.
// Each box carries a <title> element with its clamped age range, which
// browsers show on hover.
//
//	svg := sink.RenderSVG(chart,
//	    sink.WithTitle("Cenozoic"),
//	    sink.WithFont("Inter, sans-serif"),
//	)
//
// # JSON Output
//
// [RenderJSON] exports every box and tick with pixel geometry. With
// [WithJSONSlots] the equal-slot table is included as well.
//
// Both renderers are pure: they never modify the chart and are safe to call
// concurrently.
package sink
