package production

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/comalice/turingx/internal/primitives"
)

// Format is a program file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the encoding from the file extension. Unknown
// extensions are treated as YAML, which also accepts JSON documents.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	}
	return FormatYAML
}

// LoadProgramFile reads, decodes and validates a program file.
func LoadProgramFile(path string) (primitives.ProgramConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return primitives.ProgramConfig{}, fmt.Errorf("read %s: %w", path, err)
	}
	p, err := DecodeProgram(data, FormatFromPath(path))
	if err != nil {
		return primitives.ProgramConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// DecodeProgram decodes and validates a program. Unknown fields are errors.
func DecodeProgram(data []byte, format Format) (primitives.ProgramConfig, error) {
	var p primitives.ProgramConfig
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&p); err != nil {
			return primitives.ProgramConfig{}, fmt.Errorf("json decode: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&p); err != nil {
			return primitives.ProgramConfig{}, fmt.Errorf("yaml decode: %w", err)
		}
	default:
		return primitives.ProgramConfig{}, fmt.Errorf("unknown program format %q", format)
	}

	p.Normalize()
	if err := p.Validate(); err != nil {
		return primitives.ProgramConfig{}, fmt.Errorf("program validation: %w", err)
	}
	return p, nil
}

// EncodeProgram renders a program in the given format.
func EncodeProgram(p primitives.ProgramConfig, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(p, "", "  ")
	case FormatYAML:
		return yaml.Marshal(p)
	}
	return nil, fmt.Errorf("unknown program format %q", format)
}
