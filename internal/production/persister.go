// Package production provides production integrations: persistence, program
// files, step publishing and visualization.

package production

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/comalice/turingx/internal/core"
)

// ErrInvalidMachineID is returned for IDs that cannot be used as file names.
var ErrInvalidMachineID = errors.New("invalid machine ID")

// filePersister stores one snapshot file per machine in dir.
type filePersister struct {
	dir       string
	ext       string
	marshal   func(any) ([]byte, error)
	unmarshal func([]byte, any) error
}

func newFilePersister(dir, ext string, marshal func(any) ([]byte, error), unmarshal func([]byte, any) error) (filePersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return filePersister{}, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return filePersister{dir: dir, ext: ext, marshal: marshal, unmarshal: unmarshal}, nil
}

func (p filePersister) path(machineID string) (string, error) {
	if machineID == "" || machineID == "." || machineID == ".." || strings.ContainsAny(machineID, `/\`) {
		return "", fmt.Errorf("%q: %w", machineID, ErrInvalidMachineID)
	}
	return filepath.Join(p.dir, machineID+p.ext), nil
}

func (p filePersister) Save(ctx context.Context, snapshot core.MachineSnapshot) error {
	fn, err := p.path(snapshot.MachineID)
	if err != nil {
		return err
	}
	data, err := p.marshal(snapshot)
	if err != nil {
		return fmt.Errorf("%s marshal: %w", strings.TrimPrefix(p.ext, "."), err)
	}
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}
	return nil
}

func (p filePersister) Load(ctx context.Context, machineID string) (core.MachineSnapshot, error) {
	fn, err := p.path(machineID)
	if err != nil {
		return core.MachineSnapshot{}, err
	}
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return core.MachineSnapshot{}, fmt.Errorf("machine %q: %w", machineID, os.ErrNotExist)
		}
		return core.MachineSnapshot{}, fmt.Errorf("read %s: %w", fn, err)
	}

	var snapshot core.MachineSnapshot
	if err := p.unmarshal(data, &snapshot); err != nil {
		return core.MachineSnapshot{}, fmt.Errorf("%s unmarshal: %w", strings.TrimPrefix(p.ext, "."), err)
	}
	snapshot.MachineID = machineID // Ensure ID
	snapshot.Program.Normalize()
	if err := snapshot.Program.Validate(); err != nil {
		return core.MachineSnapshot{}, fmt.Errorf("program validation after load: %w", err)
	}

	return snapshot, nil
}

// JSONPersister is a stdlib-only file-based persister using JSON serialization.
type JSONPersister struct {
	filePersister
}

// NewJSONPersister creates a JSONPersister, ensuring the directory exists.
func NewJSONPersister(dir string) (*JSONPersister, error) {
	fp, err := newFilePersister(dir, ".json", func(v any) ([]byte, error) {
		return json.MarshalIndent(v, "", "  ")
	}, json.Unmarshal)
	if err != nil {
		return nil, err
	}
	return &JSONPersister{fp}, nil
}

// YAMLPersister is a file-based persister using YAML serialization.
type YAMLPersister struct {
	filePersister
}

// NewYAMLPersister creates a YAMLPersister, ensuring the directory exists.
func NewYAMLPersister(dir string) (*YAMLPersister, error) {
	fp, err := newFilePersister(dir, ".yaml", yaml.Marshal, yaml.Unmarshal)
	if err != nil {
		return nil, err
	}
	return &YAMLPersister{fp}, nil
}

// NewPersister returns a persister for format ("json" or "yaml").
func NewPersister(dir, format string) (core.Persister, error) {
	switch strings.ToLower(format) {
	case "json":
		p, err := NewJSONPersister(dir)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "yaml", "yml", "":
		p, err := NewYAMLPersister(dir)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
	return nil, fmt.Errorf("unknown snapshot format %q", format)
}
