package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/strata/pkg/pipeline"
)

// layoutCommand creates the layout command for computing chart geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		chart   chartFlags
		output  string
		slots   bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute the chart layout as JSON",
		Long: `Compute the chart layout as JSON.

The output lists every column with its left offset and boxes (top, height,
z-order, fill, text color and tooltip) plus the time axis ticks. It is the
same document as 'render -f json' and is written to stdout unless -o is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), chart, output, slots, noCache)
		},
	}

	chart.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&slots, "slots", false, "include the equal-slot table")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, chart chartFlags, output string, slots, noCache bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	opts, err := chart.options(cfg)
	if err != nil {
		return err
	}
	opts.Formats = []string{pipeline.FormatJSON}
	opts.Slots = slots

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	data := res.Artifacts[pipeline.FormatJSON]

	if output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Layout complete")
	printFile(output)
	printStats(res)
	return nil
}
