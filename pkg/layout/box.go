package layout

import "fmt"

// Box is a single interval rendered in a column. Coordinates are pixels
// from the top of the chart body; Y increases downward (toward older ages).
type Box struct {
	ID        string
	Label     string
	Rank      string
	Top       float64
	Height    float64
	ZIndex    int
	Fill      string
	TextColor string
	Border    string // Empty when the column draws no border
	Tooltip   Tooltip
}

// Bottom returns the lower edge of the box.
func (b Box) Bottom() float64 { return b.Top + b.Height }

// CenterY returns the vertical center (for label placement).
func (b Box) CenterY() float64 { return b.Top + b.Height/2 }

// DisplayLabel returns the label, or an em dash when it is empty.
func (b Box) DisplayLabel() string {
	if b.Label == "" {
		return "—"
	}
	return b.Label
}

// Tooltip carries the hover label and the window-clamped bounds in Ma.
type Tooltip struct {
	Label string
	Young float64
	Old   float64
}

// TooltipText formats the hover text, e.g. "Danian\n61.60 - 66.00 Ma".
func (b Box) TooltipText() string {
	return fmt.Sprintf("%s\n%.2f - %.2f Ma", b.Tooltip.Label, b.Tooltip.Young, b.Tooltip.Old)
}
