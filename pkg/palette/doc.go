// Package palette resolves fill, border and label colors for chart boxes.
//
// Colors are CSS strings: "#rgb", "#rrggbb" (with or without the leading
// '#') or an SVG/CSS color name such as "khaki". Parsing goes through
// go-colorful for hex values and x/image/colornames for names.
//
// [Index] lets intervals without a native color, typically regional
// biozones, inherit the color of the geological age they fall in. It is
// built from the finest-rank reference intervals and queried with
// [Index.Resolve].
//
// [Contrast] picks a dark or light label color from the perceived
// luminance 0.299r + 0.587g + 0.114b, so labels stay legible on any fill.
package palette
