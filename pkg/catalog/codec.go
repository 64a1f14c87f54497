package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/tagduke/tagduke-cli/pkg/models"
	"github.com/tagduke/tagduke-cli/pkg/storage"
)

// Format is a serialization format for exported collections
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// document is the on-disk export shape; TOML needs a top-level table
type document struct {
	Version    int               `json:"version" yaml:"version" toml:"version"`
	Categories []models.Category `json:"categories" yaml:"categories" toml:"categories"`
}

// ParseFormat validates a user supplied format name
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// FormatFromPath guesses the format from a file extension, defaulting to JSON
func FormatFromPath(path string) Format {
	if f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), ".")); err == nil {
		return f
	}
	return FormatJSON
}

// Encode writes cats to w in the given format
func Encode(w io.Writer, cats []models.Category, format Format) error {
	doc := document{Version: storage.SchemaVersion, Categories: cats}
	if doc.Categories == nil {
		doc.Categories = []models.Category{}
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return enc.Close()
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(doc); err != nil {
			return fmt.Errorf("failed to marshal TOML: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// Decode reads a collection from r. JSON input accepts every shape the
// storage layer can migrate, so raw storage dumps import directly.
func Decode(r io.Reader, format Format) ([]models.Category, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	var doc document
	switch format {
	case FormatJSON:
		cats, _, err := storage.MigrateCategories(data)
		if err != nil {
			return nil, err
		}
		return cats, nil
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case FormatTOML:
		if err := toml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	cats := make([]models.Category, 0, len(doc.Categories))
	for _, c := range doc.Categories {
		cats = append(cats, c.Clone())
	}
	return cats, nil
}
