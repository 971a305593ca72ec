package symfmt

import (
	"encoding/json"
	"io"

	"symtab/internal/diag"
)

// LocationJSON is a diagnostic position in JSON output.
type LocationJSON struct {
	File string `json:"file"`
	Line int    `json:"line,omitempty"`
}

// DiagnosticJSON is one diagnostic in JSON output.
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Title    string       `json:"title"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// DiagnosticsOutput is the root of the JSON diagnostics document.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

// DiagnosticsJSON writes diags as a single indented JSON document.
func DiagnosticsJSON(w io.Writer, diags []diag.Diagnostic) error {
	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, 0, len(diags)), Count: len(diags)}
	for _, d := range diags {
		out.Diagnostics = append(out.Diagnostics, DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Message:  d.Message,
			Location: LocationJSON{File: d.Primary.File, Line: d.Primary.Line},
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
