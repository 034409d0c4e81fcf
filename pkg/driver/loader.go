package driver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"minicode/interpreter-go/pkg/ast"
)

// TreeFormat names the encoding of a serialized syntax tree.
type TreeFormat string

const (
	FormatJSON TreeFormat = "json"
	FormatYAML TreeFormat = "yaml"
)

// FormatForPath picks the format from the file extension. Unknown
// extensions are sniffed from the content.
func FormatForPath(path string, data []byte) TreeFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yml", ".yaml":
		return FormatYAML
	}
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}
	return FormatYAML
}

// LoadProgram reads a syntax tree produced by the external parser.
func LoadProgram(path string) (*ast.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	program, err := DecodeProgram(data, FormatForPath(path, data))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return program, nil
}

// DecodeProgram decodes a serialized tree into typed nodes.
func DecodeProgram(data []byte, format TreeFormat) (*ast.Program, error) {
	var doc any
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported tree format %q", format)
	}
	return ast.DecodeProgram(doc)
}
