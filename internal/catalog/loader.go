package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format identifies a catalog serialization.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

var errUnknownFormat = errors.New("catalog: unknown format")

// Parse decodes catalog bytes in the given format.
func Parse(data []byte, format Format) (Catalog, error) {
	var catalog Catalog
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &catalog); err != nil {
			return Catalog{}, fmt.Errorf("catalog: decode yaml: %w", err)
		}
	case FormatJSON:
		if err := gojson.Unmarshal(data, &catalog); err != nil {
			return Catalog{}, fmt.Errorf("catalog: decode json: %w", err)
		}
	default:
		return Catalog{}, fmt.Errorf("%w: %q", errUnknownFormat, format)
	}
	return catalog, nil
}

// Load reads a catalog file from the filesystem, picking the format from the
// file extension. Works with embedded filesystems via fs.FS.
func Load(fsys fs.FS, name string) (Catalog, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Catalog{}, fmt.Errorf("catalog: read %q: %w", name, err)
	}
	format, err := formatForPath(name)
	if err != nil {
		return Catalog{}, err
	}
	return Parse(data, format)
}

func formatForPath(name string) (Format, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: file %q", errUnknownFormat, name)
	}
}
