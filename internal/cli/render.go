package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/strata/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	chart      chartFlags
	output     string // output file (single format) or base path
	formats    string // comma-separated formats
	title      string
	noTooltips bool
	slots      bool
	noCache    bool
	refresh    bool
}

// renderCommand creates the render command for writing chart files.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a timescale chart to SVG and/or JSON",
		Long: `Render a timescale chart to SVG and/or JSON.

The window is a preset name or a MIN-MAX range in Ma. The scale mode is
linear (proportional), log or equal (one fixed-height slot per finest
interval). Biozone columns are appended after the ICS columns.

Rendered charts are cached locally; use --refresh to bypass the cache.`,
		Example: `  strata render -w cenozoic -m equal -b nalma -o cenozoic.svg
  strata render -w 0-23.03 -f svg,json -o neogene`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), &opts)
		},
	}

	opts.chart.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (default: strata-<window>)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), json (comma-separated)")
	cmd.Flags().StringVar(&opts.title, "title", "", "document title")
	cmd.Flags().BoolVar(&opts.noTooltips, "no-tooltips", false, "omit hover tooltips")
	cmd.Flags().BoolVar(&opts.slots, "slots", false, "include the equal-slot table in JSON output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if cached")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, ro *renderOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	opts, err := ro.chart.options(cfg)
	if err != nil {
		return err
	}
	opts.Formats = parseFormats(ro.formats)
	opts.NoTooltips = ro.noTooltips
	opts.Slots = ro.slots
	opts.Refresh = ro.refresh
	if ro.title != "" {
		opts.Title = ro.title
	}
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, ro.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Rendering chart...")
	spinner.Start()
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			return ctx.Err()
		}
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %g-%g Ma chart", res.Chart.Window.Min, res.Chart.Window.Max))

	paths, err := writeArtifacts(res.Artifacts, opts.Formats, ro.output, defaultBase(res))
	if err != nil {
		return err
	}

	printSuccess("Chart rendered")
	for _, p := range paths {
		printFile(p)
	}
	printStats(res)
	printNewline()
	printNextStep("Explore interactively", appName+" browse")
	return nil
}

// defaultBase names output files after the window, e.g. "strata-0-66".
func defaultBase(res *pipeline.Result) string {
	return fmt.Sprintf("%s-%g-%g", appName, res.Chart.Window.Min, res.Chart.Window.Max)
}

// basePath derives the base output path. Known format extensions on output
// are stripped so "-o chart.svg -f svg,json" writes chart.svg and chart.json.
func basePath(output, fallback string) string {
	if output == "" {
		return fallback
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifacts writes each format to disk. A single format with an
// explicit output path is written to that path verbatim.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, fallback string) ([]string, error) {
	if len(formats) == 1 && output != "" {
		if err := os.WriteFile(output, artifacts[formats[0]], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", output, err)
		}
		return []string{output}, nil
	}

	base := basePath(output, fallback)
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := base + "." + format
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
