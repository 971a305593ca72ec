package diag

import (
	"fmt"
	"strings"
)

// Severity ranks diagnostics; higher is worse.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// ParseSeverity reads info|warning|error, case-insensitively.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(s) {
	case "info":
		return SevInfo, nil
	case "warning", "warn":
		return SevWarning, nil
	case "error":
		return SevError, nil
	}
	return SevInfo, fmt.Errorf("invalid severity %q (expected: info|warning|error)", s)
}

// Filter returns the diagnostics at or above atLeast.
func Filter(diags []Diagnostic, atLeast Severity) []Diagnostic {
	out := make([]Diagnostic, 0, len(diags))
	for _, d := range diags {
		if d.Severity >= atLeast {
			out = append(out, d)
		}
	}
	return out
}
