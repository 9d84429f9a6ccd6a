package scale

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/strata/pkg/interval"
)

// Slot is the fixed-height band assigned to one anchor interval.
type Slot struct {
	Interval interval.Interval
	Top      float64
	Bottom   float64
}

// Contains reports whether t falls inside the slot's interval, widened by
// SlotTolerance on both sides.
func (s Slot) Contains(t float64) bool {
	return t <= s.Interval.Max()+SlotTolerance && t >= s.Interval.Min()-SlotTolerance
}

// slotMapping gives each visible finest-rank interval an equal band.
type slotMapping struct {
	window interval.Window
	total  float64
	slots  []Slot
}

// newEqualSlot returns nil when no finest-rank reference interval is visible.
func newEqualSlot(w interval.Window, reference []interval.Interval) *slotMapping {
	var anchors []interval.Interval
	for _, iv := range reference {
		if interval.IsFinest(iv.Rank) && interval.Visible(iv, w) {
			anchors = append(anchors, iv)
		}
	}
	if len(anchors) == 0 {
		return nil
	}

	// Youngest first; ties broken on the older bound then ID so the slot
	// order does not depend on input order.
	slices.SortStableFunc(anchors, func(a, b interval.Interval) int {
		if c := cmp.Compare(a.Min(), b.Min()); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Max(), b.Max()); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	slots := make([]Slot, len(anchors))
	for i, iv := range anchors {
		top := float64(i) * SlotHeight
		slots[i] = Slot{Interval: iv, Top: top, Bottom: top + SlotHeight}
	}
	return &slotMapping{
		window: w,
		total:  math.Max(float64(len(slots))*SlotHeight, MinSlotExtent),
		slots:  slots,
	}
}

func (m *slotMapping) Mode() Mode              { return EqualSlot }
func (m *slotMapping) Window() interval.Window { return m.window }
func (m *slotMapping) TotalExtent() float64    { return m.total }

// Slots returns a copy of the slot table, youngest first.
func (m *slotMapping) Slots() []Slot { return slices.Clone(m.slots) }

func (m *slotMapping) Position(ma float64) float64 {
	c := Clamp(ma, m.window.Min, m.window.Max)
	for _, s := range m.slots {
		if !s.Contains(c) {
			continue
		}
		ratio := 0.0
		if span := s.Interval.Duration(); span > 0 {
			ratio = (c - s.Interval.Min()) / span
		}
		return s.Top + ratio*(s.Bottom-s.Top)
	}
	return (c - m.window.Min) / nonZero(m.window.Span()) * m.total
}

// Slotted is implemented by mappings that expose their slot table.
type Slotted interface {
	Slots() []Slot
}

// SlotsOf returns the slot table of m, or nil when m is not slot-based.
func SlotsOf(m Mapping) []Slot {
	if s, ok := m.(Slotted); ok {
		return s.Slots()
	}
	return nil
}
