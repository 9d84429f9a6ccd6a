package pipeline

import (
	"github.com/matzehuels/strata/pkg/layout"
	"github.com/matzehuels/strata/pkg/sink"
)

// Render generates output artifacts in the requested formats.
func Render(c layout.Chart, opts Options) (map[string][]byte, error) {
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			out[format] = sink.RenderSVG(c, buildSVGOptions(opts)...)
		case FormatJSON:
			data, err := sink.RenderJSON(c, buildJSONOptions(c, opts)...)
			if err != nil {
				return nil, err
			}
			out[format] = data
		}
	}
	return out, nil
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}
	if opts.NoTooltips {
		svgOpts = append(svgOpts, sink.WithoutTooltips())
	}
	return svgOpts
}

func buildJSONOptions(c layout.Chart, opts Options) []sink.JSONOption {
	jsonOpts := []sink.JSONOption{sink.WithJSONSources(layout.Collections(specsOf(c)))}
	if opts.Slots {
		jsonOpts = append(jsonOpts, sink.WithJSONSlots())
	}
	return jsonOpts
}

func specsOf(c layout.Chart) []layout.ColumnSpec {
	specs := make([]layout.ColumnSpec, len(c.Columns))
	for i, col := range c.Columns {
		specs[i] = col.Spec
	}
	return specs
}
