// Package cli implements the strata command-line interface.
//
// The CLI renders geological timescale charts, prints scale tables, serves
// the HTTP API and runs an interactive terminal browser. It is built on
// cobra with charmbracelet/log for logging and lipgloss for output styling.
//
// # Commands
//
//   - render: Write SVG and/or JSON charts
//   - layout: Write the chart layout as JSON
//   - scale: Print axis ticks and age positions
//   - browse: Explore windows and scale modes interactively
//   - serve: Run the HTTP API
//   - sources: List and export interval collections
//   - cache: Manage the local artifact cache
//
// All commands accept --config to load a TOML configuration file and
// --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/strata/pkg/buildinfo"
	"github.com/matzehuels/strata/pkg/cache"
	"github.com/matzehuels/strata/pkg/config"
	"github.com/matzehuels/strata/pkg/interval"
	"github.com/matzehuels/strata/pkg/pipeline"
	"github.com/matzehuels/strata/pkg/source"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "strata"

	// configEnv names an environment variable holding the config file path.
	configEnv = "STRATA_CONFIG"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogError = log.ErrorLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath is set by the --config flag.
	ConfigPath string

	config *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Strata lays out geological timescale charts",
		Long:          `Strata renders the geological timescale as stacked, time-proportional interval columns (eon, era, period, epoch, age) with optional regional biozones, using linear, logarithmic or equal-slot scales.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default: $"+configEnv+")")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.scaleCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.sourcesCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig reads the configuration once. Without --config or
// STRATA_CONFIG the built-in defaults apply.
func (c *CLI) loadConfig() (config.Config, error) {
	if c.config != nil {
		return *c.config, nil
	}
	path := c.ConfigPath
	if path == "" {
		path = os.Getenv(configEnv)
	}
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return config.Config{}, err
		}
		c.Logger.Debug("loaded config", "path", path)
	}
	c.config = &cfg
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	ch, keyer, err := c.newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(ch, keyer, source.NewLoader(cfg.Sources), c.Logger)
	if cfg.Cache.TTL.Duration > 0 {
		runner.TTL = cfg.Cache.TTL.Duration
	}
	return runner, nil
}

// newCache picks the cache backend: Redis when configured, otherwise the
// file cache. A file cache that cannot be created disables caching.
func (c *CLI) newCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, cache.Keyer, error) {
	if noCache || cfg.Cache.Disabled {
		return cache.NewNullCache(), nil, nil
	}
	if cfg.Cache.RedisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return rc, cache.NewScopedKeyer(cache.NewDefaultKeyer(), cfg.Server.KeyPrefix), nil
	}
	dir := cfg.Cache.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			return cache.NewNullCache(), nil, nil
		}
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("cache disabled", "dir", dir, "error", err)
		return cache.NewNullCache(), nil, nil
	}
	return fc, nil, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/strata/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Chart Flags
// =============================================================================

// chartFlags are the window, scale and column flags shared by the chart
// commands. Unset flags fall back to the config file.
type chartFlags struct {
	window   string
	mode     string
	biozones []string
}

func (f *chartFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.window, "window", "w", "", "preset (cenozoic, post-paleozoic, phanerozoic, all) or MIN-MAX in Ma")
	cmd.Flags().StringVarP(&f.mode, "mode", "m", "", "scale mode: linear, log, equal")
	cmd.Flags().StringSliceVarP(&f.biozones, "biozones", "b", nil, "biozone columns (nalma, salma, elma, mp, alma)")
}

// options resolves flags over config values into pipeline options.
func (f *chartFlags) options(cfg config.Config) (pipeline.Options, error) {
	opts := pipeline.Options{
		Min:      cfg.Chart.Min,
		Max:      cfg.Chart.Max,
		Mode:     cfg.Chart.Mode,
		Biozones: cfg.Chart.Biozones,
		Columns:  cfg.Columns,
		Title:    cfg.Chart.Title,
	}
	if f.window != "" {
		w, err := interval.ParseWindow(f.window)
		if err != nil {
			return opts, err
		}
		opts.Min, opts.Max = w.Min, w.Max
	}
	if f.mode != "" {
		opts.Mode = f.mode
	}
	if len(f.biozones) > 0 {
		opts.Biozones = normalizeList(f.biozones)
	}
	return opts, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return normalizeList(strings.Split(s, ","))
}

func normalizeList(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			out = append(out, v)
		}
	}
	return out
}
