// Package scale maps geological time to vertical screen position.
//
// # Overview
//
// [Build] turns a visible [interval.Window], a [Mode] and the reference
// intervals of the chart into a [Mapping]. A Mapping is a small stateless
// value exposing [Mapping.Position] (Ma → pixels from the top of the chart
// body) and [Mapping.TotalExtent] (the drawable height). Mappings are cheap
// and are rebuilt whenever the window or mode changes.
//
// # Modes
//
//   - [Linear]: position proportional to age. Short windows (≤ 66 Ma) get a
//     1.4× pixel-per-Ma boost so Quaternary stages remain visible.
//   - [Logarithmic]: position proportional to ln(age + 0.05). Expands the
//     recent end and compresses deep time.
//   - [EqualSlot]: every visible finest-rank interval (Age/Stage) receives
//     a slot of [SlotHeight] pixels, youngest first, regardless of its
//     duration. Times inside a slot interpolate linearly within it; times
//     outside every slot fall back to a linear interpolation over the whole
//     extent. With no visible anchors the scale degrades to [Linear].
//
// # Clamping
//
// All modes clamp input times into the window with [Clamp]. A value equal
// to the window maximum is nudged down by [BoundaryNudge] so that boxes
// ending exactly at the lower edge of the chart keep a non-zero height.
//
// # Usage
//
//	w, _ := interval.NewWindow(0, 66)
//	m, err := scale.Build(w, scale.Linear, reference)
//	if err != nil {
//	    return err
//	}
//	y := m.Position(23.03) // base of the Neogene
package scale
