package diag

import (
	"fmt"
	"strings"
)

// FormatShort renders one line per diagnostic:
//
//	path:line: SEVERITY ID: message
func FormatShort(diags []Diagnostic) string {
	var sb strings.Builder
	for _, d := range diags {
		fmt.Fprintf(&sb, "%s: %s %s: %s\n", d.Primary, d.Severity, d.Code.ID(), d.Message)
	}
	return sb.String()
}
