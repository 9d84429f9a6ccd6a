package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/strata/pkg/errors"
	"github.com/matzehuels/strata/pkg/layout"
	"github.com/matzehuels/strata/pkg/scale"
)

// scaleCommand prints the time axis and the pixel position of given ages.
func (c *CLI) scaleCommand() *cobra.Command {
	var (
		chart chartFlags
		at    []string
		slots bool
	)

	cmd := &cobra.Command{
		Use:   "scale",
		Short: "Print axis ticks and age positions for a window",
		Example: `  strata scale -w phanerozoic -m log
  strata scale -w cenozoic -m equal --at 23.03,2.58 --slots`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScale(cmd.Context(), chart, at, slots)
		},
	}

	chart.register(cmd)
	cmd.Flags().StringSliceVar(&at, "at", nil, "ages in Ma to position (comma-separated)")
	cmd.Flags().BoolVar(&slots, "slots", false, "print the equal-slot table")

	return cmd
}

func (c *CLI) runScale(ctx context.Context, chart chartFlags, at []string, slots bool) error {
	ages := make([]float64, 0, len(at))
	for _, s := range at {
		ma, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidInput, "invalid age %q", s)
		}
		ages = append(ages, ma)
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	opts, err := chart.options(cfg)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return err
	}
	defer runner.Close()

	ch, err := runner.Layout(ctx, opts)
	if err != nil {
		return err
	}

	fmt.Println(StyleTitle.Render(fmt.Sprintf("%g-%g Ma", ch.Window.Min, ch.Window.Max)))
	printKeyValue("Mode", string(ch.Mode))
	printKeyValue("Extent", fmt.Sprintf("%.1f px", ch.TotalExtent))
	printKeyValue("Columns", fmt.Sprintf("%d (%.0f px wide)", len(ch.Columns), ch.Width))
	printNewline()

	fmt.Println(scaleTable(ch.Scale, ages))
	if slots {
		if table := slotTable(ch.Scale); table != "" {
			printNewline()
			fmt.Println(table)
		} else {
			printInfo("No slots: %s scale", ch.Mode)
		}
	}
	return nil
}

// scaleTable lists axis ticks followed by the requested ages.
func scaleTable(m scale.Mapping, ages []float64) string {
	axis := layout.BuildAxis(m)
	rows := make([][]string, 0, len(axis.Ticks)+len(ages))
	for _, t := range axis.Ticks {
		rows = append(rows, []string{t.Label, fmt.Sprintf("%.1f", t.Y), "tick"})
	}
	for _, ma := range ages {
		rows = append(rows, []string{strconv.FormatFloat(ma, 'f', -1, 64), fmt.Sprintf("%.1f", m.Position(ma)), "age"})
	}
	return newTable([]string{"Ma", "Y (px)", ""}, rows).Render()
}

// slotTable lists equal-slot anchors, or "" for other scales.
func slotTable(m scale.Mapping) string {
	slots := scale.SlotsOf(m)
	if len(slots) == 0 {
		return ""
	}
	rows := make([][]string, len(slots))
	for i, s := range slots {
		rows[i] = []string{
			s.Interval.Label,
			fmt.Sprintf("%g-%g", s.Interval.Min(), s.Interval.Max()),
			fmt.Sprintf("%.0f-%.0f", s.Top, s.Bottom),
		}
	}
	return newTable([]string{"Anchor", "Ma", "Y (px)"}, rows).Render()
}
