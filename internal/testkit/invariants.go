// Package testkit holds structural checks shared by table-driving tests.
package testkit

import (
	"fmt"
	"unicode/utf8"

	"symtab/internal/symbols"
)

// CheckTableInvariants verifies, through the public API only, that:
// 1) ids are unique and below NextID
// 2) every listed entry is reachable by id and by name at its own scope
// 3) Len, Stats and ListAll agree
// 4) names and types respect the table limits
func CheckTableInvariants(t *symbols.Table) error {
	if t == nil {
		return fmt.Errorf("nil table")
	}
	entries := t.ListAll()
	if len(entries) != t.Len() {
		return fmt.Errorf("ListAll has %d entries, Len reports %d", len(entries), t.Len())
	}

	lim := t.Limits()
	seen := make(map[symbols.EntryID]bool, len(entries))
	for _, e := range entries {
		if seen[e.ID] {
			return fmt.Errorf("duplicate id %d", e.ID)
		}
		seen[e.ID] = true
		if uint64(e.ID) >= t.NextID() {
			return fmt.Errorf("id %d not below NextID %d", e.ID, t.NextID())
		}
		if e.ScopeLevel < 0 {
			return fmt.Errorf("%s: negative scope %d", e.Name, e.ScopeLevel)
		}
		if n := utf8.RuneCountInString(e.Name); n == 0 || n > lim.MaxName {
			return fmt.Errorf("id %d: name length %d outside 1..%d", e.ID, n, lim.MaxName)
		}
		if n := utf8.RuneCountInString(e.Type); n > lim.MaxType {
			return fmt.Errorf("%s: type length %d over %d", e.Name, n, lim.MaxType)
		}

		got, ok := t.LookupByID(e.ID, e.ScopeLevel)
		if !ok || got != e {
			return fmt.Errorf("id %d: lookup by id returned %+v, listed %+v", e.ID, got, e)
		}
		if !t.ExistsByName(e.Name, e.ScopeLevel) {
			return fmt.Errorf("%s: not visible at its own scope %d", e.Name, e.ScopeLevel)
		}
	}

	st := t.Stats()
	if st.Entries != len(entries) {
		return fmt.Errorf("Stats counts %d entries, ListAll %d", st.Entries, len(entries))
	}
	if st.Used > st.Buckets || st.Longest > len(entries) {
		return fmt.Errorf("inconsistent stats %+v", st)
	}
	if len(entries) > 0 && st.Used == 0 {
		return fmt.Errorf("entries present but no bucket in use")
	}
	if st.MaxID+1 < int64(len(entries)) {
		return fmt.Errorf("MaxID %d too small for %d entries", st.MaxID, len(entries))
	}
	return nil
}
