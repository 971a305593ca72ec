package diag

// Reporter receives diagnostics from producers.
type Reporter interface {
	Report(code Code, sev Severity, primary Pos, msg string)
}

// ReportError is a shortcut for SevError diagnostics.
func ReportError(r Reporter, code Code, primary Pos, msg string) {
	if r != nil {
		r.Report(code, SevError, primary, msg)
	}
}

// ReportWarning is a shortcut for SevWarning diagnostics.
func ReportWarning(r Reporter, code Code, primary Pos, msg string) {
	if r != nil {
		r.Report(code, SevWarning, primary, msg)
	}
}

// ReportInfo is a shortcut for SevInfo diagnostics.
func ReportInfo(r Reporter, code Code, primary Pos, msg string) {
	if r != nil {
		r.Report(code, SevInfo, primary, msg)
	}
}

// BagReporter stores reports in a Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary Pos, msg string) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary})
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, Pos, string) {}
