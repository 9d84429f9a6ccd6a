// Package pipeline provides the chart pipeline shared by the CLI, the HTTP
// server and the terminal browser.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read the interval collections the columns need
//  2. Layout: run diagnostics and compute box geometry ([layout.Compute])
//  3. Render: produce the requested output formats (SVG, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
// Rendered artifacts are cached by a content hash of the loaded collections
// plus every option that affects the output.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, source.NewLoader(paths), logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Min:      0,
//	    Max:      66,
//	    Mode:     "equal",
//	    Biozones: []string{"nalma"},
//	    Formats:  []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/strata/pkg/cache"
	"github.com/matzehuels/strata/pkg/errors"
	"github.com/matzehuels/strata/pkg/interval"
	"github.com/matzehuels/strata/pkg/layout"
	"github.com/matzehuels/strata/pkg/scale"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the chart pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options. A zero Min and Max select the default window.
	Min      float64             `json:"min"`
	Max      float64             `json:"max"`
	Mode     string              `json:"mode,omitempty"`
	Biozones []string            `json:"biozones,omitempty"`
	Columns  []layout.ColumnSpec `json:"columns,omitempty"` // replaces the default columns; biozones are still appended

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Title      string   `json:"title,omitempty"`
	NoTooltips bool     `json:"no_tooltips,omitempty"`
	Slots      bool     `json:"slots,omitempty"` // include the equal-slot table in JSON
	Refresh    bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	window    interval.Window
	mode      scale.Mode
	columns   []layout.ColumnSpec
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Chart is the computed layout.
	Chart layout.Chart

	// InputHash is the content hash of the loaded collections.
	InputHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Diagnostics lists intervals that barely touch the window.
	Diagnostics []interval.TinyOverlap

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Collections int
	Intervals   int
	Boxes       int
	LoadTime    time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLayout resolves the window, mode and columns.
func (o *Options) ValidateForLayout() error {
	if o.Min == 0 && o.Max == 0 {
		o.Min, o.Max = interval.DefaultWindow.Min, interval.DefaultWindow.Max
	}
	w, err := interval.NewWindow(o.Min, o.Max)
	if err != nil {
		return err
	}
	o.window = w

	if o.Mode == "" {
		o.Mode = string(scale.Linear)
	}
	mode, err := scale.ParseMode(o.Mode)
	if err != nil {
		return err
	}
	o.mode = mode

	for _, key := range o.Biozones {
		if err := errors.ValidateKey(key); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "biozone")
		}
	}
	base := o.Columns
	if len(base) == 0 {
		base = layout.DefaultColumns()
	}
	o.columns = layout.WithBiozones(base, o.Biozones)
	if err := layout.ValidateColumns(o.columns); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// Window returns the validated window.
func (o *Options) Window() interval.Window { return o.window }

// ScaleMode returns the validated scale mode.
func (o *Options) ScaleMode() scale.Mode { return o.mode }

// ColumnSpecs returns the resolved columns.
func (o *Options) ColumnSpecs() []layout.ColumnSpec { return o.columns }

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	columnsHash, _ := cache.HashJSON(o.columns)
	return cache.LayoutKeyOpts{
		Min:         o.window.Min,
		Max:         o.window.Max,
		Mode:        string(o.mode),
		ColumnsHash: columnsHash,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Title:    o.Title,
		Tooltips: !o.NoTooltips,
		Slots:    o.Slots,
	}
}
