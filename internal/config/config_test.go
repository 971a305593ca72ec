package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"symtab/internal/symbols"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[table]\nbuckets = 13\n\n[output]\nformat = \"json\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	cfg, path, err := Discover(nested)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if path != filepath.Join(root, FileName) {
		t.Fatalf("found %q", path)
	}
	if cfg.Table.Buckets != 13 || cfg.Output.Format != "json" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Table.MaxName != 64 || cfg.Output.MaxDiagnostics != 100 {
		t.Fatalf("defaults lost for unset keys: %+v", cfg)
	}
	opts := cfg.TableOptions()
	if opts.Buckets != 13 || opts.Limits != symbols.DefaultLimits() {
		t.Fatalf("unexpected table options %+v", opts)
	}
}

func TestDiscoverWithoutFile(t *testing.T) {
	cfg, path, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if path != "" && !strings.HasSuffix(path, FileName) {
		t.Fatalf("unexpected path %q", path)
	}
	if path == "" && cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadRejectsBadFiles(t *testing.T) {
	tests := map[string]string{
		"unknown key":    "[table]\nbukets = 3\n",
		"zero buckets":   "[table]\nbuckets = 0\n",
		"bad color":      "[output]\ncolor = \"sometimes\"\n",
		"syntax":         "[table\n",
		"negative width": "[output]\nwidth = -1\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), body)
			if _, err := Load(path); err == nil {
				t.Fatalf("expected error for %s", name)
			}
		})
	}
}
