package cache

// Keyer builds cache keys for pipeline stages.
type Keyer interface {
	// LayoutKey identifies a computed chart for a set of collections.
	LayoutKey(inputHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies a rendered output of a chart.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the layout inputs that affect the result.
type LayoutKeyOpts struct {
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Mode        string  `json:"mode"`
	ColumnsHash string  `json:"columns"`
}

// ArtifactKeyOpts are the render inputs that affect the output bytes.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Title    string `json:"title,omitempty"`
	Tooltips bool   `json:"tooltips"`
	Slots    bool   `json:"slots,omitempty"`
}

// DefaultKeyer hashes every option into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(inputHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", inputHash, opts)
}

// ArtifactKey returns "artifact:<format>:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, layoutHash, opts)
}
