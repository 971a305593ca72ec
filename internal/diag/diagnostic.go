package diag

import "fmt"

// Pos points at a line of a script. Line 0 means the whole file.
type Pos struct {
	File string
	Line int
}

func (p Pos) String() string {
	if p.Line == 0 {
		return p.File
	}
	return fmt.Sprintf("%s:%d", p.File, p.Line)
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  Pos
}
