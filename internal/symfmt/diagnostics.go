package symfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"symtab/internal/diag"
)

// Diagnostics prints each diagnostic on one line with a coloured severity.
func Diagnostics(w io.Writer, diags []diag.Diagnostic, useColor bool) error {
	for _, d := range diags {
		sev := painter(useColor, severityColor(d.Severity)...).Sprint(d.Severity.String())
		if _, err := fmt.Fprintf(w, "%s: %s %s: %s\n", d.Primary, sev, d.Code.ID(), d.Message); err != nil {
			return err
		}
	}
	return nil
}

func severityColor(s diag.Severity) []color.Attribute {
	switch s {
	case diag.SevError:
		return []color.Attribute{color.FgRed, color.Bold}
	case diag.SevWarning:
		return []color.Attribute{color.FgYellow}
	default:
		return []color.Attribute{color.FgCyan}
	}
}
