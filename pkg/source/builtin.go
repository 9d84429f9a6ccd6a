package source

import (
	"embed"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/matzehuels/strata/pkg/errors"
	"github.com/matzehuels/strata/pkg/interval"
)

//go:embed data/*
var builtinFS embed.FS

// Builtin lists the keys of the collections shipped with the binary.
func Builtin() []string {
	entries, _ := fs.ReadDir(builtinFS, "data")
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		keys = append(keys, strings.TrimSuffix(name, path.Ext(name)))
	}
	slices.Sort(keys)
	return keys
}

// ReadBuiltin decodes the embedded collection for key.
func ReadBuiltin(key string) ([]interval.Interval, error) {
	entries, err := fs.ReadDir(builtinFS, "data")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read embedded collections")
	}
	for _, e := range entries {
		name := e.Name()
		if strings.TrimSuffix(name, path.Ext(name)) != key {
			continue
		}
		format, err := FormatFromPath(name)
		if err != nil {
			return nil, err
		}
		f, err := builtinFS.Open(path.Join("data", name))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "open embedded %s", name)
		}
		defer f.Close()
		return Decode(f, format, key)
	}
	return nil, errors.New(errors.ErrCodeSourceNotFound, "no built-in collection %q", key)
}
