// Package config loads the CLI settings file (TOML).
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	DefaultMaxSteps = 1_000_000
	DefaultRadius   = 20
	DefaultFormat   = "yaml"
	DefaultLevel    = "info"
)

type Settings struct {
	Run      RunSettings      `toml:"run"`
	Snapshot SnapshotSettings `toml:"snapshot"`
	Log      LogSettings      `toml:"log"`
	Display  DisplaySettings  `toml:"display"`
}

type RunSettings struct {
	MaxSteps        int `toml:"max-steps"`
	CheckpointEvery int `toml:"checkpoint-every"`
}

type SnapshotSettings struct {
	Dir    string `toml:"dir"` // empty disables snapshots
	Format string `toml:"format"`
}

type LogSettings struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

type DisplaySettings struct {
	Radius int `toml:"radius"`
}

// Default returns the settings used when no file is present.
func Default() Settings {
	var s Settings
	s.applyDefaults()
	return s
}

// Load reads settings from path. A missing file, or an empty path, yields
// Default. Keys absent from the file keep their default values.
func Load(path string) (Settings, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Settings{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var s Settings
	if err := toml.NewDecoder(f).Decode(&s); err != nil {
		return Settings{}, fmt.Errorf("decode %s: %w", path, err)
	}
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func (s *Settings) applyDefaults() {
	if s.Run.MaxSteps == 0 {
		s.Run.MaxSteps = DefaultMaxSteps
	}
	if s.Snapshot.Format == "" {
		s.Snapshot.Format = DefaultFormat
	}
	if s.Log.Level == "" {
		s.Log.Level = DefaultLevel
	}
	if s.Display.Radius == 0 {
		s.Display.Radius = DefaultRadius
	}
}

// Validate checks value ranges and enumerations.
func (s *Settings) Validate() error {
	if s.Run.MaxSteps < 0 {
		return errors.New("run.max-steps must be non-negative")
	}
	if s.Run.CheckpointEvery < 0 {
		return errors.New("run.checkpoint-every must be non-negative")
	}
	switch strings.ToLower(s.Snapshot.Format) {
	case "json", "yaml", "yml":
	default:
		return fmt.Errorf("snapshot.format %q must be json or yaml", s.Snapshot.Format)
	}
	if _, err := s.Log.ZapLevel(); err != nil {
		return err
	}
	if s.Display.Radius < 0 {
		return errors.New("display.radius must be non-negative")
	}
	return nil
}

// ZapLevel parses Level.
func (l LogSettings) ZapLevel() (zapcore.Level, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return lvl, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}

// Build constructs a zap logger writing to stderr.
func (l LogSettings) Build() (*zap.Logger, error) {
	lvl, err := l.ZapLevel()
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	if l.Development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

// Sample returns a commented settings file showing every key.
func Sample() string {
	return `# Sample turing settings file
[run]
# Upper bound on steps for one run. 0 falls back to the default.
#max-steps=1000000

# Save a snapshot every N steps in addition to the one taken on halt.
#checkpoint-every=0

[snapshot]
# Directory for machine snapshots. Empty disables snapshots.
#dir=""

# json or yaml
#format="yaml"

[log]
# debug, info, warn or error
#level="info"
#development=false

[display]
# Cells shown on each side of the head
#radius=20
`
}
