package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format %q: must be 'json' or 'yaml'", s)
	}
}

// FormatForPath derives the format from a package path's extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("the output path %s should end with \".json\", \".yaml\" or \".yml\"", path)
	}
}

// Marshal encodes a document. Map keys are emitted in sorted order by both
// encoders, so equal documents encode to identical bytes.
func Marshal(v any, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode JSON: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

func (c CustomJobSpec) jobMap() map[string]any {
	if c.CustomJob == nil {
		return map[string]any{}
	}
	return c.CustomJob.AsMap()
}

// MarshalJSON renders the opaque descriptor as a plain JSON object.
func (c CustomJobSpec) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{"customJob": c.jobMap()})
}

// MarshalYAML renders the opaque descriptor as a plain YAML mapping.
func (c CustomJobSpec) MarshalYAML() (any, error) {
	return map[string]any{"customJob": c.jobMap()}, nil
}
