package version

import (
	"strings"

	"github.com/fatih/color"
)

// Build metadata for the symtab CLI, overridable via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var partColors = []*color.Color{
	color.New(color.FgYellow, color.Bold),
	color.New(color.FgGreen, color.Bold),
	color.New(color.FgBlue, color.Bold),
}

// Colored renders v with each of major, minor and patch in its own colour.
// A pre-release suffix is left plain.
func Colored(v string) string {
	core, suffix, hasSuffix := strings.Cut(v, "-")
	parts := strings.SplitN(core, ".", len(partColors))
	for i, p := range parts {
		parts[i] = partColors[i].Sprint(p)
	}
	out := strings.Join(parts, ".")
	if hasSuffix {
		out += "-" + suffix
	}
	return out
}
