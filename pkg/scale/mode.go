package scale

import (
	"strings"

	"github.com/matzehuels/strata/pkg/errors"
)

// Mode selects the time-to-position strategy.
type Mode string

const (
	Linear      Mode = "linear"
	Logarithmic Mode = "logarithmic"
	EqualSlot   Mode = "equal"
)

// Modes lists the supported modes in display order.
var Modes = []Mode{Linear, Logarithmic, EqualSlot}

var modeAliases = map[string]Mode{
	"linear":       Linear,
	"proportional": Linear,
	"log":          Logarithmic,
	"logarithmic":  Logarithmic,
	"equal":        EqualSlot,
	"equal-slot":   EqualSlot,
	"slot":         EqualSlot,
}

// ParseMode resolves a mode name or alias. Matching is case-insensitive.
func ParseMode(s string) (Mode, error) {
	if m, ok := modeAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return m, nil
	}
	return "", errors.New(errors.ErrCodeInvalidMode,
		"invalid scale mode: %q (must be one of: linear, logarithmic, equal)", s)
}

// String implements fmt.Stringer.
func (m Mode) String() string { return string(m) }

// Next returns the mode following m in [Modes], wrapping around.
func (m Mode) Next() Mode {
	for i, x := range Modes {
		if x == m {
			return Modes[(i+1)%len(Modes)]
		}
	}
	return Linear
}
