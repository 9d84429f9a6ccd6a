package layout

import (
	"slices"

	"github.com/matzehuels/strata/pkg/errors"
	"github.com/matzehuels/strata/pkg/interval"
)

// Kind identifies how a column is drawn.
type Kind string

const (
	KindTime    Kind = "time"    // age axis with ticks
	KindICS     Kind = "ics"     // standard chronostratigraphic units filtered by rank
	KindBiozone Kind = "biozone" // regional scheme, colors inherited from the reference set
)

// ReferenceCollection is the collection holding the standard timescale.
const ReferenceCollection = "ics"

// Default column widths in pixels.
const (
	TimeColumnWidth    = 90.0
	BiozoneColumnWidth = 180.0
)

// ColumnSpec describes one chart column.
type ColumnSpec struct {
	Key        string   `json:"key" toml:"key"`
	Label      string   `json:"label" toml:"label"`
	Width      float64  `json:"width" toml:"width"`
	Kind       Kind     `json:"kind" toml:"kind"`
	Ranks      []string `json:"ranks,omitempty" toml:"ranks"`
	Collection string   `json:"collection,omitempty" toml:"collection"`
}

// Source returns the collection the column reads from. Time columns read
// nothing but report the reference collection.
func (c ColumnSpec) Source() string {
	if c.Collection != "" {
		return c.Collection
	}
	if c.Kind == KindBiozone {
		return c.Key
	}
	return ReferenceCollection
}

// Validate checks a single column spec.
func (c ColumnSpec) Validate() error {
	if err := errors.ValidateKey(c.Key); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidColumn, err, "column key")
	}
	if c.Width <= 0 {
		return errors.New(errors.ErrCodeInvalidColumn, "column %q: width must be positive", c.Key)
	}
	switch c.Kind {
	case KindTime, KindBiozone:
	case KindICS:
		if len(c.Ranks) == 0 {
			return errors.New(errors.ErrCodeInvalidColumn, "column %q: ics columns need at least one rank", c.Key)
		}
	default:
		return errors.New(errors.ErrCodeInvalidColumn, "column %q: unknown kind %q", c.Key, c.Kind)
	}
	return nil
}

// ValidateColumns checks every spec and rejects duplicate keys.
func ValidateColumns(cols []ColumnSpec) error {
	if len(cols) == 0 {
		return errors.New(errors.ErrCodeInvalidColumn, "at least one column is required")
	}
	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		if err := c.Validate(); err != nil {
			return err
		}
		if seen[c.Key] {
			return errors.New(errors.ErrCodeInvalidColumn, "duplicate column key %q", c.Key)
		}
		seen[c.Key] = true
	}
	return nil
}

// DefaultColumns returns the time axis followed by the five standard columns.
func DefaultColumns() []ColumnSpec {
	return []ColumnSpec{
		{Key: "time", Label: "Age (Ma)", Width: TimeColumnWidth, Kind: KindTime},
		{Key: interval.ColumnEon, Label: "Eonothem / Eon", Width: 150, Kind: KindICS, Ranks: []string{"Supereon", "Eon"}},
		{Key: interval.ColumnEra, Label: "Erathem / Era", Width: 160, Kind: KindICS, Ranks: []string{"Era"}},
		{Key: interval.ColumnPeriod, Label: "System / Period", Width: 170, Kind: KindICS, Ranks: []string{"Period", "Sub-Period"}},
		{Key: interval.ColumnEpoch, Label: "Series / Epoch", Width: 170, Kind: KindICS, Ranks: []string{"Epoch", "Subseries", "Series"}},
		{Key: interval.ColumnAge, Label: "Stage / Age", Width: 170, Kind: KindICS, Ranks: []string{"Age", "Stage"}},
	}
}

// Biozone collection keys.
const (
	BiozoneNALMA = "nalma"
	BiozoneSALMA = "salma"
	BiozoneELMA  = "elma"
	BiozoneALMA  = "alma"
	BiozoneMP    = "mp"
)

// BiozoneOrder is the column order for biozones; the two European schemes
// (ELMA and MP zones) sit next to each other.
var BiozoneOrder = []string{BiozoneNALMA, BiozoneSALMA, BiozoneELMA, BiozoneMP, BiozoneALMA}

// BiozoneLabels are the column headers of the known biozone schemes.
var BiozoneLabels = map[string]string{
	BiozoneNALMA: "NALMA (North America)",
	BiozoneSALMA: "SALMA (South America)",
	BiozoneELMA:  "ELMA (Europe)",
	BiozoneALMA:  "ALMA (Asia)",
	BiozoneMP:    "MP Zones (Europe)",
}

// IsBiozone reports whether key names a known biozone scheme.
func IsBiozone(key string) bool {
	_, ok := BiozoneLabels[key]
	return ok
}

// CollectionLabel returns a display name for a collection key, or "" when
// the key is not a known scheme.
func CollectionLabel(key string) string {
	if key == ReferenceCollection {
		return "ICS International Chronostratigraphic Chart"
	}
	return BiozoneLabels[key]
}

// WithBiozones returns cols followed by one column per selected biozone, in
// [BiozoneOrder]. Unknown keys are appended afterwards in the given order
// with their key as label. Keys already present in cols are skipped.
func WithBiozones(cols []ColumnSpec, selected []string) []ColumnSpec {
	out := slices.Clone(cols)
	present := func(key string) bool {
		return slices.ContainsFunc(out, func(c ColumnSpec) bool { return c.Key == key })
	}
	for _, key := range BiozoneOrder {
		if slices.Contains(selected, key) && !present(key) {
			out = append(out, ColumnSpec{Key: key, Label: BiozoneLabels[key], Width: BiozoneColumnWidth, Kind: KindBiozone})
		}
	}
	for _, key := range selected {
		if IsBiozone(key) || present(key) {
			continue
		}
		out = append(out, ColumnSpec{Key: key, Label: key, Width: BiozoneColumnWidth, Kind: KindBiozone})
	}
	return out
}

// Collections returns the distinct collections read by cols, in column order.
func Collections(cols []ColumnSpec) []string {
	var out []string
	for _, c := range cols {
		if c.Kind == KindTime {
			continue
		}
		if key := c.Source(); !slices.Contains(out, key) {
			out = append(out, key)
		}
	}
	if !slices.Contains(out, ReferenceCollection) {
		out = append([]string{ReferenceCollection}, out...)
	}
	return out
}
