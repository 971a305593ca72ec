package symbols

import "strconv"

// EntryID identifies a binding for the lifetime of its table.
// IDs start at 0 and are never reused, even after deletion or Clear.
type EntryID uint32

func (id EntryID) String() string { return strconv.FormatUint(uint64(id), 10) }
