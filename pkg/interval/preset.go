package interval

import (
	"strconv"
	"strings"

	"github.com/matzehuels/strata/pkg/errors"
)

// Preset is a named window.
type Preset struct {
	Name   string
	Label  string
	Window Window
}

// Presets are the standard windows, youngest span first.
var Presets = []Preset{
	{Name: "cenozoic", Label: "Cenozoic (0-66 Ma)", Window: Window{Min: 0, Max: 66}},
	{Name: "post-paleozoic", Label: "Mesozoic-Cenozoic (0-252 Ma)", Window: Window{Min: 0, Max: 252}},
	{Name: "phanerozoic", Label: "Phanerozoic (0-541 Ma)", Window: Window{Min: 0, Max: 541}},
	{Name: "all", Label: "Earth history (0-4600 Ma)", Window: Window{Min: 0, Max: 4600}},
}

// DefaultWindow is the Cenozoic.
var DefaultWindow = Presets[0].Window

// PresetByName looks up a preset, case-insensitively.
func PresetByName(name string) (Preset, bool) {
	for _, p := range Presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}

// ParseWindow accepts a preset name or a "min-max" range such as "0-66"
// or "2.58-23.03".
func ParseWindow(s string) (Window, error) {
	s = strings.TrimSpace(s)
	if p, ok := PresetByName(s); ok {
		return p.Window, nil
	}
	lo, hi, ok := strings.Cut(s, "-")
	if !ok {
		return Window{}, errors.New(errors.ErrCodeInvalidWindow, "invalid window %q: want a preset or MIN-MAX", s)
	}
	min, err := strconv.ParseFloat(strings.TrimSpace(lo), 64)
	if err != nil {
		return Window{}, errors.Wrap(errors.ErrCodeInvalidWindow, err, "invalid window minimum %q", lo)
	}
	max, err := strconv.ParseFloat(strings.TrimSpace(hi), 64)
	if err != nil {
		return Window{}, errors.Wrap(errors.ErrCodeInvalidWindow, err, "invalid window maximum %q", hi)
	}
	return NewWindow(min, max)
}
