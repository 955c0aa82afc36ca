// File: settei/loader.go
package settei

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FromFile reads a configuration document from r and wraps it in a
// Configuration. The format is detected from the content: JSON, then YAML,
// then TOML.
func FromFile(r io.Reader, opts ...Option) (*Configuration, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}
	format := detectFormatFromContent(data)
	if format == "" {
		return nil, fmt.Errorf("unable to determine configuration format")
	}
	document, err := parseDocument(data, format)
	if err != nil {
		return nil, err
	}
	return New(document, opts...), nil
}

// FromPath reads a configuration document from a file and wraps it in a
// Configuration. The format is detected from the file extension first, then
// from the content. A missing file returns ErrConfigNotFound.
func FromPath(path string, opts ...Option) (*Configuration, error) {
	document, err := loadDocument(path)
	if err != nil {
		return nil, err
	}
	return New(document, opts...), nil
}

// loadDocument reads and parses a document file into a nested mapping.
func loadDocument(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read configuration file '%s': %w", path, err)
	}

	format := detectFileFormat(path)
	if format == "" {
		format = detectFormatFromContent(data)
		if format == "" {
			return nil, fmt.Errorf("unable to determine configuration format for file '%s'", path)
		}
	}

	document, err := parseDocument(data, format)
	if err != nil {
		return nil, fmt.Errorf("file '%s': %w", path, err)
	}
	return document, nil
}

// parseDocument parses raw document bytes in the given format into a nested
// mapping of primitives.
func parseDocument(data []byte, format string) (map[string]any, error) {
	document := make(map[string]any)
	switch format {
	case "toml":
		if err := toml.Unmarshal(data, &document); err != nil {
			return nil, fmt.Errorf("failed to parse TOML configuration: %w", err)
		}
	case "json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // Preserve number precision
		if err := decoder.Decode(&document); err != nil {
			return nil, fmt.Errorf("failed to parse JSON configuration: %w", err)
		}
		for k, v := range document {
			document[k] = normalizeNumbers(v)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &document); err != nil {
			return nil, fmt.Errorf("failed to parse YAML configuration: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported configuration format %q", format)
	}
	return document, nil
}

// normalizeNumbers rewrites json.Number leaves into int64 or float64 so a
// JSON-loaded document carries the same numeric kinds the TOML and YAML
// parsers produce. UseNumber keeps full int64 precision during decoding;
// the narrowing here is what the type checks see.
func normalizeNumbers(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case map[string]any:
		for k, val := range x {
			x[k] = normalizeNumbers(val)
		}
		return x
	case []any:
		for i, val := range x {
			x[i] = normalizeNumbers(val)
		}
		return x
	default:
		return v
	}
}

// detectFileFormat determines format from file extension
func detectFileFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml", ".tml":
		return "toml"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}

// detectFormatFromContent attempts to detect format by parsing
func detectFormatFromContent(data []byte) string {
	// Try JSON first (strict format)
	var jsonTest any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return "json"
	}

	// Try YAML (superset of JSON, so check after JSON)
	var yamlTest any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return "yaml"
	}

	// Try TOML last
	var tomlTest any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return "toml"
	}

	return ""
}
