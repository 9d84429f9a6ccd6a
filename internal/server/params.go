package server

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/matzehuels/strata/pkg/errors"
	"github.com/matzehuels/strata/pkg/interval"
	"github.com/matzehuels/strata/pkg/pipeline"
)

// parseOptions builds pipeline options from query parameters. window takes
// precedence over min and max; omitting all three selects the default
// window.
func parseOptions(q url.Values) (pipeline.Options, error) {
	var opts pipeline.Options

	switch {
	case q.Get("window") != "":
		w, err := interval.ParseWindow(q.Get("window"))
		if err != nil {
			return opts, err
		}
		opts.Min, opts.Max = w.Min, w.Max
	case q.Has("min") || q.Has("max"):
		w := interval.DefaultWindow
		var err error
		if q.Has("min") {
			if w.Min, err = parseFloat("min", q.Get("min")); err != nil {
				return opts, err
			}
		}
		if q.Has("max") {
			if w.Max, err = parseFloat("max", q.Get("max")); err != nil {
				return opts, err
			}
		}
		if _, err := interval.NewWindow(w.Min, w.Max); err != nil {
			return opts, err
		}
		opts.Min, opts.Max = w.Min, w.Max
	}

	opts.Mode = q.Get("mode")
	opts.Biozones = parseList(q["biozones"])
	opts.Title = q.Get("title")

	var err error
	if opts.Slots, err = parseBool("slots", q.Get("slots")); err != nil {
		return opts, err
	}
	if opts.NoTooltips, err = parseBool("notooltips", q.Get("notooltips")); err != nil {
		return opts, err
	}
	return opts, nil
}

func parseFloat(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidWindow, "invalid %s: %q", name, s)
	}
	return v, nil
}

func parseBool(name, s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", name, s)
	}
	return v, nil
}

// parseList splits repeated and comma-separated values, dropping blanks
// and duplicates.
func parseList(values []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.ToLower(strings.TrimSpace(part))
			if part == "" || seen[part] {
				continue
			}
			seen[part] = true
			out = append(out, part)
		}
	}
	return out
}
