package input

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nao1215/itemreport/internal/model"
)

// Format is an input document format.
type Format string

const (
	// FormatJSON reads JSON documents.
	FormatJSON Format = "json"

	// FormatYAML reads YAML documents.
	FormatYAML Format = "yaml"
)

// ErrUnsupportedFormat is returned for file extensions other than
// .json, .yaml and .yml.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// document is the wrapped form {"items": [...]}.
type document struct {
	Items []model.Item `json:"items" yaml:"items"`
}

// DetectFormat returns the format implied by the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// LoadItems reads the items stored in the file at path.
func LoadItems(path string) ([]model.Item, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open items file: %w", err)
	}
	defer f.Close()

	items, err := ReadItems(f, format)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return items, nil
}

// ReadItems decodes items from r in the given format.
// An empty document yields no items.
func ReadItems(r io.Reader, format Format) ([]model.Item, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []model.Item{}, nil
	}

	switch format {
	case FormatJSON:
		return decodeJSON(data)
	case FormatYAML:
		return decodeYAML(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func decodeJSON(data []byte) ([]model.Item, error) {
	if data[0] == '[' {
		var items []model.Item
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, err
		}
		return items, nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Items, nil
}

func decodeYAML(data []byte) ([]model.Item, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}

	if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
		var items []model.Item
		if err := node.Content[0].Decode(&items); err != nil {
			return nil, err
		}
		return items, nil
	}

	var doc document
	if err := node.Decode(&doc); err != nil {
		return nil, err
	}
	return doc.Items, nil
}
