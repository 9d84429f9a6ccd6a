package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/strata/pkg/errors"
	"github.com/matzehuels/strata/pkg/layout"
	"github.com/matzehuels/strata/pkg/source"
)

// sourcesCommand lists and exports interval collections.
func (c *CLI) sourcesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "List interval collections",
		Long: `List interval collections.

Built-in collections ship with strata. Additional collections are mapped to
JSON, YAML or TOML files in the [sources] section of the config file; a file
mapped to a built-in key replaces it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSources(cmd.Context())
		},
	}

	cmd.AddCommand(c.sourcesExportCommand())
	return cmd
}

func (c *CLI) runSources(ctx context.Context) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	loader := source.NewLoader(cfg.Sources)
	if _, err := loader.LoadAll(ctx, loader.Keys()); err != nil {
		return err
	}

	var rows [][]string
	for _, info := range loader.List(layout.CollectionLabel) {
		origin := "builtin"
		if !info.Builtin {
			origin = info.Path
		}
		rows = append(rows, []string{info.Key, info.Label, strconv.Itoa(info.Count), origin})
	}
	fmt.Println(newTable([]string{"Key", "Name", "Intervals", "Source"}, rows).Render())
	return nil
}

// sourcesExportCommand writes a collection in another format.
func (c *CLI) sourcesExportCommand() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export <key>",
		Short: "Export a collection as JSON, YAML or TOML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSourcesExport(cmd.Context(), args[0], format, output)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: json, yaml, toml (default: from -o, else yaml)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

func (c *CLI) runSourcesExport(ctx context.Context, key, format, output string) error {
	f, err := exportFormat(format, output)
	if err != nil {
		return err
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	ivs, err := source.NewLoader(cfg.Sources).Load(ctx, key)
	if err != nil {
		return err
	}

	name := layout.CollectionLabel(key)
	if name == "" {
		name = key
	}
	if output == "" {
		return source.Encode(os.Stdout, f, name, ivs)
	}

	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	defer file.Close()
	if err := source.Encode(file, f, name, ivs); err != nil {
		return err
	}
	printSuccess("Exported %d intervals", len(ivs))
	printFile(output)
	return nil
}

// exportFormat resolves --format, falling back to the output extension.
func exportFormat(format, output string) (source.Format, error) {
	switch {
	case format != "":
		f := source.Format(format)
		if f != source.FormatJSON && f != source.FormatYAML && f != source.FormatTOML {
			return "", errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, yaml, toml)", format)
		}
		return f, nil
	case output != "":
		return source.FormatFromPath(output)
	}
	return source.FormatYAML, nil
}
