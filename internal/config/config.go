// Package config loads symtab.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"symtab/internal/symbols"
)

// FileName is the configuration file looked up from the working directory upwards.
const FileName = "symtab.toml"

type Config struct {
	Table  TableConfig  `toml:"table"`
	Trace  TraceConfig  `toml:"trace"`
	Output OutputConfig `toml:"output"`
}

type TableConfig struct {
	Buckets  int `toml:"buckets"`
	MaxName  int `toml:"max_name"`
	MaxType  int `toml:"max_type"`
	MaxValue int `toml:"max_value"`
}

type TraceConfig struct {
	Level  string `toml:"level"`
	Mode   string `toml:"mode"`
	Output string `toml:"output"`
	Format string `toml:"format"`
}

type OutputConfig struct {
	Format         string `toml:"format"`
	Color          string `toml:"color"`
	Width          int    `toml:"width"`
	Stats          bool   `toml:"stats"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
}

// Default returns the built-in configuration.
func Default() Config {
	lim := symbols.DefaultLimits()
	return Config{
		Table: TableConfig{
			Buckets:  symbols.DefaultBuckets,
			MaxName:  lim.MaxName,
			MaxType:  lim.MaxType,
			MaxValue: lim.MaxValue,
		},
		Trace:  TraceConfig{Level: "off", Mode: "stream", Format: "auto"},
		Output: OutputConfig{Format: "pretty", Color: "auto", MaxDiagnostics: 100},
	}
}

// TableOptions converts the [table] section.
func (c Config) TableOptions() symbols.Options {
	return symbols.Options{
		Buckets: c.Table.Buckets,
		Limits: symbols.Limits{
			MaxName:  c.Table.MaxName,
			MaxType:  c.Table.MaxType,
			MaxValue: c.Table.MaxValue,
		},
	}
}

// Find walks from startDir to the filesystem root looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads path over the defaults. Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover loads the nearest symtab.toml, or the defaults when there is none.
// The returned path is empty when no file was found.
func Discover(startDir string) (Config, string, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, "", err
	}
	if !ok {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// Validate rejects values no table or renderer can honour.
func (c Config) Validate() error {
	if c.Table.Buckets <= 0 {
		return fmt.Errorf("[table].buckets must be positive, got %d", c.Table.Buckets)
	}
	for key, v := range map[string]int{"max_name": c.Table.MaxName, "max_type": c.Table.MaxType, "max_value": c.Table.MaxValue} {
		if v <= 0 {
			return fmt.Errorf("[table].%s must be positive, got %d", key, v)
		}
	}
	if c.Output.Width < 0 {
		return fmt.Errorf("[output].width must not be negative")
	}
	if c.Output.MaxDiagnostics <= 0 {
		return fmt.Errorf("[output].max_diagnostics must be positive")
	}
	switch strings.ToLower(c.Output.Color) {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("[output].color must be auto, on or off, got %q", c.Output.Color)
	}
	return nil
}
