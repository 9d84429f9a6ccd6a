// Package config loads strata's optional TOML configuration file.
//
// A configuration sets chart defaults, maps collection keys to data files,
// overrides the column set, and configures caching and the HTTP server:
//
//	[chart]
//	min = 0
//	max = 66
//	mode = "equal"
//	biozones = ["nalma"]
//
//	[sources]
//	ics = "data/ics-2023.json"
//	salma = "data/salma.yaml"
//
//	[cache]
//	ttl = "72h"
//	redis_url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
//
// Command-line flags take precedence over file values.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/strata/pkg/cache"
	"github.com/matzehuels/strata/pkg/errors"
	"github.com/matzehuels/strata/pkg/interval"
	"github.com/matzehuels/strata/pkg/layout"
	"github.com/matzehuels/strata/pkg/scale"
)

// Config is the root configuration.
type Config struct {
	Chart   Chart               `toml:"chart"`
	Sources map[string]string   `toml:"sources"`
	Columns []layout.ColumnSpec `toml:"columns"`
	Cache   Cache               `toml:"cache"`
	Server  Server              `toml:"server"`
}

// Chart holds the default window, mode and biozone selection.
type Chart struct {
	Min      float64  `toml:"min"`
	Max      float64  `toml:"max"`
	Mode     string   `toml:"mode"`
	Biozones []string `toml:"biozones"`
	Title    string   `toml:"title"`
}

// Cache configures the artifact cache.
type Cache struct {
	Disabled bool     `toml:"disabled"`
	Dir      string   `toml:"dir"`
	TTL      Duration `toml:"ttl"`
	RedisURL string   `toml:"redis_url"`
}

// Server configures "strata serve".
type Server struct {
	Addr      string `toml:"addr"`
	KeyPrefix string `toml:"key_prefix"`
}

// Duration is a time.Duration that decodes from strings like "72h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Chart: Chart{
			Min:  interval.DefaultWindow.Min,
			Max:  interval.DefaultWindow.Max,
			Mode: string(scale.Linear),
		},
		Sources: map[string]string{},
		Cache:   Cache{TTL: Duration{cache.TTLArtifact}},
		Server:  Server{Addr: ":8080", KeyPrefix: "strata:"},
	}
}

// Load reads the file at path on top of [Default] and validates it.
// Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if cfg.Sources == nil {
		cfg.Sources = map[string]string{}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if _, err := c.Window(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "[chart]")
	}
	if _, err := c.Mode(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "[chart]")
	}
	for _, key := range c.Chart.Biozones {
		if err := errors.ValidateKey(key); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "[chart] biozones")
		}
	}
	for key, path := range c.Sources {
		if err := errors.ValidateKey(key); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "[sources]")
		}
		if err := errors.ValidatePath(path); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "[sources] %s", key)
		}
	}
	if len(c.Columns) > 0 {
		if err := layout.ValidateColumns(c.Columns); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "[[columns]]")
		}
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "[cache] ttl must not be negative")
	}
	return nil
}

// Window returns the configured window.
func (c Config) Window() (interval.Window, error) {
	return interval.NewWindow(c.Chart.Min, c.Chart.Max)
}

// Mode returns the configured scale mode.
func (c Config) Mode() (scale.Mode, error) {
	return scale.ParseMode(c.Chart.Mode)
}

// ColumnSpecs returns the explicit [[columns]] when present, otherwise the
// default columns, followed by the selected biozones.
func (c Config) ColumnSpecs(biozones []string) []layout.ColumnSpec {
	base := c.Columns
	if len(base) == 0 {
		base = layout.DefaultColumns()
	}
	return layout.WithBiozones(base, biozones)
}
