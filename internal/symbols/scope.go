package symbols

import "fmt"

// visibleIndex finds the binding of name visible from scopeLevel in chain:
// the greatest ScopeLevel not above scopeLevel, and among equal levels the
// most recently inserted. It returns -1 when nothing is visible.
func visibleIndex(chain []Entry, name string, scopeLevel int) int {
	best := -1
	for i := range chain {
		e := &chain[i]
		if e.Name != name || e.ScopeLevel > scopeLevel {
			continue
		}
		if best < 0 || e.ScopeLevel >= chain[best].ScopeLevel {
			best = i
		}
	}
	return best
}

// DiscardScope removes every entry declared at level or deeper and returns
// how many were removed. Callers use it when leaving a scope; the table does
// not track scope entry and exit itself.
func (t *Table) DiscardScope(level int) int {
	t.mustLive()
	removed := 0
	for b, chain := range t.buckets {
		kept := chain[:0]
		for _, e := range chain {
			if e.ScopeLevel >= level {
				delete(t.byID, e.ID)
				removed++
				continue
			}
			kept = append(kept, e)
		}
		clear(chain[len(kept):])
		t.buckets[b] = kept
	}
	if removed > 0 {
		t.note("discard", fmt.Sprintf("scope>=%d removed=%d", level, removed))
	}
	return removed
}

// Stats summarizes bucket occupancy.
type Stats struct {
	Entries int
	Buckets int
	Used    int   // non-empty buckets
	Longest int   // longest chain
	MaxID   int64 // highest id ever issued, -1 before the first insert
}

// Stats reports bucket occupancy for diagnostics.
func (t *Table) Stats() Stats {
	t.mustLive()
	st := Stats{Entries: len(t.byID), Buckets: len(t.buckets), MaxID: int64(t.nextID) - 1}
	for _, chain := range t.buckets {
		if len(chain) > 0 {
			st.Used++
		}
		st.Longest = max(st.Longest, len(chain))
	}
	return st
}
