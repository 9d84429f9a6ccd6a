package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/strata/pkg/errors"
	"github.com/matzehuels/strata/pkg/interval"
)

// Format is an on-disk encoding for collections.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported collection file: %s", path)
	}
}

// Record is the serialized form of an interval. Start and End are pointers
// so that missing ages can be told apart from zero.
type Record struct {
	ID    string   `json:"id" yaml:"id" toml:"id"`
	Label string   `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	Start *float64 `json:"start" yaml:"start" toml:"start"`
	End   *float64 `json:"end" yaml:"end" toml:"end"`
	Color string   `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	Rank  string   `json:"rank,omitempty" yaml:"rank,omitempty" toml:"rank,omitempty"`
}

type document struct {
	Name      string   `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Intervals []Record `json:"intervals" yaml:"intervals" toml:"intervals"`
}

// Decode reads a collection from r. Every returned interval has its Source
// set to key. Records with a missing ID get "<key>-<n>".
func Decode(r io.Reader, format Format, key string) ([]interval.Interval, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "read %s", key)
	}
	var doc document
	switch format {
	case FormatJSON:
		if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
			err = json.Unmarshal(trimmed, &doc.Intervals)
		} else {
			err = json.Unmarshal(data, &doc)
		}
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown collection format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "decode %s as %s", key, format)
	}
	return toIntervals(doc.Intervals, key), nil
}

func toIntervals(records []Record, key string) []interval.Interval {
	out := make([]interval.Interval, 0, len(records))
	for i, rec := range records {
		if rec.Start == nil || rec.End == nil {
			continue
		}
		id := rec.ID
		if id == "" {
			id = fmt.Sprintf("%s-%d", key, i)
		}
		out = append(out, interval.Interval{
			ID:     id,
			Label:  strings.TrimSpace(rec.Label),
			Start:  *rec.Start,
			End:    *rec.End,
			Color:  strings.TrimSpace(rec.Color),
			Rank:   interval.NormalizeRank(rec.Rank),
			Source: key,
		})
	}
	return out
}

// ReadFile decodes the collection stored at path.
func ReadFile(path, key string) ([]interval.Interval, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "collection %s", key)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f, format, key)
}

// Encode writes ivs to w as a collection document.
func Encode(w io.Writer, format Format, name string, ivs []interval.Interval) error {
	doc := document{Name: name, Intervals: make([]Record, len(ivs))}
	for i, iv := range ivs {
		start, end := iv.Start, iv.End
		doc.Intervals[i] = Record{ID: iv.ID, Label: iv.Label, Start: &start, End: &end, Color: iv.Color, Rank: iv.Rank}
	}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(doc)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown collection format %q", format)
	}
}
