package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestVersionDefault(t *testing.T) {
	if Version == "" {
		t.Fatal("Version should have a default value")
	}
}

func TestColoredKeepsText(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	for _, v := range []string{"0.1.0-dev", "1.2.3", "2.0.0-rc.1", "dev"} {
		if got := Colored(v); got != v {
			t.Errorf("Colored(%q) = %q without colour", v, got)
		}
	}
}
