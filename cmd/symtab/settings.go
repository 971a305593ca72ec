package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"symtab/internal/config"
)

// loadSettings reads symtab.toml (explicit or discovered) and applies any
// flags the user set on top of it.
func loadSettings(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()
	path, err := flags.GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg config.Config
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, _, err = config.Discover(".")
	}
	if err != nil {
		return config.Config{}, err
	}

	overrides := []struct {
		flag string
		dst  *string
	}{
		{"color", &cfg.Output.Color},
		{"trace", &cfg.Trace.Output},
		{"trace-level", &cfg.Trace.Level},
		{"trace-mode", &cfg.Trace.Mode},
		{"format", &cfg.Output.Format},
	}
	for _, o := range overrides {
		if flags.Lookup(o.flag) == nil || !flags.Changed(o.flag) {
			continue
		}
		if *o.dst, err = flags.GetString(o.flag); err != nil {
			return config.Config{}, fmt.Errorf("failed to get %s flag: %w", o.flag, err)
		}
	}
	intOverrides := []struct {
		flag string
		dst  *int
	}{
		{"max-diagnostics", &cfg.Output.MaxDiagnostics},
		{"width", &cfg.Output.Width},
		{"buckets", &cfg.Table.Buckets},
	}
	for _, o := range intOverrides {
		if flags.Lookup(o.flag) == nil || !flags.Changed(o.flag) {
			continue
		}
		if *o.dst, err = flags.GetInt(o.flag); err != nil {
			return config.Config{}, fmt.Errorf("failed to get %s flag: %w", o.flag, err)
		}
	}
	if flags.Lookup("stats") != nil && flags.Changed("stats") {
		if cfg.Output.Stats, err = flags.GetBool("stats"); err != nil {
			return config.Config{}, fmt.Errorf("failed to get stats flag: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// useColor resolves auto|on|off for the given output file.
func useColor(mode string, f *os.File) bool {
	switch strings.ToLower(mode) {
	case "on":
		return true
	case "off":
		return false
	default:
		return os.Getenv("NO_COLOR") == "" && isTerminal(f)
	}
}
