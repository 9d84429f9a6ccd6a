package interval

import "strings"

// Column keys for the standard chronostratigraphic columns.
const (
	ColumnEon    = "eon"
	ColumnEra    = "era"
	ColumnPeriod = "period"
	ColumnEpoch  = "epoch"
	ColumnAge    = "age"
)

// DefaultZIndex is used for ranks missing from the z-order table.
const DefaultZIndex = 30

// rankColumn maps every rank name, including synonyms, to its display column.
var rankColumn = map[string]string{
	"Supereon":   ColumnEon,
	"Eon":        ColumnEon,
	"Era":        ColumnEra,
	"Period":     ColumnPeriod,
	"Sub-Period": ColumnPeriod,
	"Epoch":      ColumnEpoch,
	"Series":     ColumnEpoch,
	"Subseries":  ColumnEpoch,
	"Age":        ColumnAge,
	"Stage":      ColumnAge,
}

// rankZIndex orders ranks so finer units stack above coarser ones.
var rankZIndex = map[string]int{
	"Supereon":   10,
	"Eon":        10,
	"Era":        20,
	"Period":     30,
	"Sub-Period": 35,
	"Epoch":      40,
	"Series":     40,
	"Subseries":  45,
	"Age":        60,
	"Stage":      60,
}

// ColumnKey returns the display column for rank and whether it is known.
func ColumnKey(rank string) (string, bool) {
	c, ok := rankColumn[rank]
	return c, ok
}

// ZIndex returns the stacking priority for rank, or [DefaultZIndex].
func ZIndex(rank string) int {
	if z, ok := rankZIndex[rank]; ok {
		return z
	}
	return DefaultZIndex
}

// IsFinest reports whether rank is the most granular level (Age or Stage).
// Finest-rank intervals anchor equal-slot scales and color indexes.
func IsFinest(rank string) bool {
	return rankColumn[rank] == ColumnAge
}

// RanksFor returns the rank names that map to column, in a stable order.
func RanksFor(column string) []string {
	var out []string
	for _, r := range knownRanks {
		if rankColumn[r] == column {
			out = append(out, r)
		}
	}
	return out
}

var knownRanks = []string{
	"Supereon", "Eon", "Era", "Period", "Sub-Period",
	"Epoch", "Series", "Subseries", "Age", "Stage",
}

// NormalizeRank reduces a rank reference to its bare name. Sources often
// carry the rank as a URI (".../ischart/Age"); only the last path segment
// is kept.
func NormalizeRank(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.LastIndex(raw, "/"); i >= 0 {
		return raw[i+1:]
	}
	return raw
}
