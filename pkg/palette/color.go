package palette

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Label colors returned by [Contrast].
const (
	DarkText  = "#1d1d1d"
	LightText = "#ffffff"
)

// Neutral fills for intervals that have no color of their own.
const (
	DefaultICSFill     = "#b9c2d0"
	DefaultBiozoneFill = "#dde6f6"
)

// ContrastThreshold is the luminance above which dark text is used.
const ContrastThreshold = 150.0

// BorderDarken is the fraction by which biozone borders darken their fill.
const BorderDarken = 0.35

// Parse converts a CSS color string into a colorful.Color.
func Parse(s string) (colorful.Color, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return colorful.Color{}, false
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		col, _ := colorful.MakeColor(c)
		return col, true
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return colorful.Color{}, false
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

// Luminance returns 0.299r + 0.587g + 0.114b on the 0–255 scale.
func Luminance(c colorful.Color) float64 {
	r, g, b := c.RGB255()
	return 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
}

// Contrast returns the label color for text drawn on fill. Unparsable
// fills get [DarkText].
func Contrast(fill string) string {
	c, ok := Parse(fill)
	if !ok {
		return DarkText
	}
	if Luminance(c) > ContrastThreshold {
		return DarkText
	}
	return LightText
}

// Darken mixes fill toward black by amount (0–1) and returns a hex string.
// Unparsable input is returned unchanged.
func Darken(fill string, amount float64) string {
	c, ok := Parse(fill)
	if !ok {
		return fill
	}
	return c.BlendRgb(colorful.Color{}, amount).Clamped().Hex()
}
