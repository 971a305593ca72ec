package symbols

import "symtab/internal/values"

// Entry is one binding of a name at one scope level.
// Tables hand out copies; mutating a copy never changes the table.
type Entry struct {
	ID            EntryID
	Name          string
	Type          string
	Value         string // canonical text, empty while uninitialized
	IsConst       bool
	IsInitialized bool
	ScopeLevel    int
}

// Tag resolves the declared type to a value tag, if it is a known one.
func (e Entry) Tag() (values.TypeTag, bool) {
	return values.ParseTypeTag(e.Type)
}

// Flags returns textual labels for the entry's boolean attributes.
func (e Entry) Flags() []string {
	labels := make([]string, 0, 2)
	if e.IsConst {
		labels = append(labels, "const")
	}
	if e.IsInitialized {
		labels = append(labels, "init")
	}
	return labels
}
