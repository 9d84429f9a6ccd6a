package sink

import (
	"bytes"
	"cmp"
	"encoding/xml"
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/matzehuels/strata/pkg/layout"
)

// Chart geometry in pixels.
const (
	HeaderHeight   = 40.0
	defaultFont    = "Helvetica, Arial, sans-serif"
	labelPadding   = 6.0
	maxFontSize    = 12.0
	minLabelHeight = 10.0
	fontCharWidth  = 0.55
	tickLength     = 8.0
)

const chartCSS = `
    .header { fill: #f4f4f4; stroke: #9a9a9a; stroke-width: 1; }
    .header-text { font-weight: bold; }
    .column { fill: #ffffff; stroke: #9a9a9a; stroke-width: 1; }
    .box { stroke: #ffffff; stroke-width: 0.5; }
    .box:hover { stroke: #1d1d1d; stroke-width: 1.5; }
    .tick { stroke: #1d1d1d; stroke-width: 1; }
    .axis { stroke: #1d1d1d; stroke-width: 1.5; }`

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	title    string
	font     string
	tooltips bool
}

// WithTitle sets the document <title>.
func WithTitle(s string) SVGOption { return func(r *svgRenderer) { r.title = s } }

// WithFont sets the CSS font family for all text.
func WithFont(family string) SVGOption { return func(r *svgRenderer) { r.font = family } }

// WithoutTooltips omits the per-box <title> elements.
func WithoutTooltips() SVGOption { return func(r *svgRenderer) { r.tooltips = false } }

// RenderSVG draws the chart as a standalone SVG document.
func RenderSVG(c layout.Chart, opts ...SVGOption) []byte {
	r := svgRenderer{font: defaultFont, tooltips: true}
	for _, opt := range opts {
		opt(&r)
	}

	width := c.Width
	height := HeaderHeight + c.TotalExtent

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" font-family="%s">`+"\n",
		width, height, width, height, escapeXML(r.font))
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(r.title))
	}
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", chartCSS)

	renderHeader(&buf, c)
	for _, col := range c.Columns {
		fmt.Fprintf(&buf, `  <g id="column-%s" transform="translate(%.2f,%.2f)">`+"\n", escapeXML(col.Spec.Key), col.Left, HeaderHeight)
		fmt.Fprintf(&buf, `    <rect class="column" x="0" y="0" width="%.2f" height="%.2f"/>`+"\n", col.Spec.Width, c.TotalExtent)
		if col.Axis != nil {
			renderAxis(&buf, col, *col.Axis)
		} else {
			renderBoxes(&buf, &r, col)
		}
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderHeader(buf *bytes.Buffer, c layout.Chart) {
	buf.WriteString(`  <g id="header">` + "\n")
	for _, col := range c.Columns {
		fmt.Fprintf(buf, `    <rect class="header" x="%.2f" y="0" width="%.2f" height="%.2f"/>`+"\n",
			col.Left, col.Spec.Width, HeaderHeight)
		size := fontSizeFor(col.Spec.Width-2*labelPadding, HeaderHeight, col.Spec.Label)
		fmt.Fprintf(buf, `    <text class="header-text" x="%.2f" y="%.2f" font-size="%.1f" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
			col.Left+col.Spec.Width/2, HeaderHeight/2, size,
			escapeXML(truncateLabel(col.Spec.Label, col.Spec.Width-2*labelPadding, size)))
	}
	buf.WriteString("  </g>\n")
}

func renderBoxes(buf *bytes.Buffer, r *svgRenderer, col layout.ColumnLayout) {
	boxes := slices.Clone(col.Boxes)
	slices.SortStableFunc(boxes, func(a, b layout.Box) int { return cmp.Compare(a.ZIndex, b.ZIndex) })

	w := col.Spec.Width
	for _, b := range boxes {
		fmt.Fprintf(buf, `    <g class="box-group" data-id="%s" data-rank="%s">`+"\n", escapeXML(b.ID), escapeXML(b.Rank))
		stroke := ""
		if b.Border != "" {
			stroke = fmt.Sprintf(` style="stroke:%s;stroke-width:1"`, escapeXML(b.Border))
		}
		fmt.Fprintf(buf, `      <rect class="box" x="0" y="%.2f" width="%.2f" height="%.2f" fill="%s"%s/>`+"\n",
			b.Top, w, b.Height, escapeXML(b.Fill), stroke)
		if b.Height >= minLabelHeight {
			avail := w - 2*labelPadding
			size := fontSizeFor(avail, b.Height, b.DisplayLabel())
			fmt.Fprintf(buf, `      <text x="%.2f" y="%.2f" font-size="%.1f" fill="%s" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
				w/2, b.CenterY(), size, escapeXML(b.TextColor), escapeXML(truncateLabel(b.DisplayLabel(), avail, size)))
		}
		if r.tooltips {
			fmt.Fprintf(buf, "      <title>%s</title>\n", escapeXML(b.TooltipText()))
		}
		buf.WriteString("    </g>\n")
	}
}

func renderAxis(buf *bytes.Buffer, col layout.ColumnLayout, axis layout.Axis) {
	x := col.Spec.Width
	fmt.Fprintf(buf, `    <line class="axis" x1="0" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n", axis.Top, x, axis.Top)
	fmt.Fprintf(buf, `    <line class="axis" x1="0" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n", axis.Bottom, x, axis.Bottom)
	for _, t := range axis.Ticks {
		fmt.Fprintf(buf, `    <line class="tick" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n", x-tickLength, t.Y, x, t.Y)
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-size="%.1f" text-anchor="end" dominant-baseline="middle">%s</text>`+"\n",
			x-tickLength-4, t.LabelY, maxFontSize-1, escapeXML(t.Label))
	}
}

func fontSizeFor(availWidth, availHeight float64, label string) float64 {
	n := max(1, utf8.RuneCountInString(label))
	byHeight := availHeight * 0.6
	byWidth := availWidth / (float64(n) * fontCharWidth)
	return max(8, min(maxFontSize, min(byHeight, byWidth)))
}

func truncateLabel(label string, availWidth, fontSize float64) string {
	maxChars := max(3, int(availWidth/(fontSize*fontCharWidth)))
	runes := []rune(label)
	if len(runes) <= maxChars {
		return label
	}
	return string(runes[:maxChars-1]) + "…"
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
