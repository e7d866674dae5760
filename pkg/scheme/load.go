package scheme

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

//go:embed structure.json
var embedded embed.FS

// DefaultFile is the name of the embedded scheme.
const DefaultFile = "structure.json"

// Format identifies the encoding of a scheme file
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the decoder from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported scheme file extension %q", filepath.Ext(path))
	}
}

// Parse decodes and validates a scheme. JSON input may carry // and /* */
// comments and trailing commas. Unknown fields are ignored.
func Parse(data []byte, format Format) (*Node, error) {
	var root Node
	var err error

	switch format {
	case FormatJSON:
		err = json.Unmarshal(jsonc.ToJSON(data), &root)
	case FormatYAML:
		err = yaml.Unmarshal(data, &root)
	case FormatTOML:
		err = toml.Unmarshal(data, &root)
	default:
		return nil, fmt.Errorf("unsupported scheme format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s scheme: %w", format, err)
	}

	if err := root.Validate(); err != nil {
		return nil, fmt.Errorf("validate scheme: %w", err)
	}
	return &root, nil
}

// Load reads a scheme file from disk.
func Load(path string) (*Node, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scheme: %w", err)
	}

	root, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}

// Default returns the scheme compiled into the binary.
func Default() (*Node, error) {
	data, err := embedded.ReadFile(DefaultFile)
	if err != nil {
		return nil, fmt.Errorf("read embedded scheme: %w", err)
	}
	return Parse(data, FormatJSON)
}
