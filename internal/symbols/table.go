package symbols

import (
	"fmt"
	"math"
	"slices"
	"unicode/utf8"

	"fortio.org/safecast"

	"symtab/internal/trace"
	"symtab/internal/values"
)

// Limits bound the length, in characters, of stored text.
type Limits struct{ MaxName, MaxType, MaxValue int }

// DefaultLimits returns the limits used for each zero field of Options.Limits.
func DefaultLimits() Limits {
	return Limits{MaxName: 64, MaxType: 32, MaxValue: 100}
}

// withDefaults fills every zero limit from DefaultLimits.
func (l Limits) withDefaults() Limits {
	def := DefaultLimits()
	if l.MaxName == 0 {
		l.MaxName = def.MaxName
	}
	if l.MaxType == 0 {
		l.MaxType = def.MaxType
	}
	if l.MaxValue == 0 {
		l.MaxValue = def.MaxValue
	}
	return l
}

// Options configure a new table. The zero value is usable.
type Options struct {
	Buckets int
	Limits  Limits
	Tracer  trace.Tracer
}

// Table is a hash-bucketed, scope-aware symbol table.
// It is not safe for concurrent use.
type Table struct {
	buckets   [][]Entry       // chain per bucket, insertion order
	byID      map[EntryID]int // live id -> bucket index
	nextID    uint64
	limits    Limits
	tracer    trace.Tracer
	destroyed bool
}

// NewTable builds an empty table.
func NewTable(opts Options) (*Table, error) {
	if opts.Buckets == 0 {
		opts.Buckets = DefaultBuckets
	}
	n, err := safecast.Conv[uint32](opts.Buckets)
	if err != nil || n == 0 {
		return nil, fmt.Errorf("%w: bucket count %d", ErrAllocation, opts.Buckets)
	}
	opts.Limits = opts.Limits.withDefaults()
	if opts.Tracer == nil {
		opts.Tracer = trace.Nop
	}
	return &Table{
		buckets: make([][]Entry, n),
		byID:    make(map[EntryID]int),
		limits:  opts.Limits,
		tracer:  opts.Tracer,
	}, nil
}

func (t *Table) mustLive() {
	if t == nil || t.destroyed {
		panic("symbols: table used after Destroy")
	}
}

func (t *Table) note(op, detail string) {
	trace.Point(t.tracer, trace.ScopeTable, op, detail)
}

// Insert declares name at scopeLevel and returns the assigned id.
// The value is normalized for known types; duplicates are not rejected.
// On error the table is unchanged.
func (t *Table) Insert(name, typ, value string, scopeLevel int, isConst, isInitialized bool) (EntryID, error) {
	t.mustLive()
	name, err := t.checkName(name)
	if err != nil {
		return 0, err
	}
	if scopeLevel < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidScope, scopeLevel)
	}
	if n := utf8.RuneCountInString(typ); n > t.limits.MaxType {
		return 0, tooLong(ErrTypeTooLong, typ, n, t.limits.MaxType)
	}
	stored, err := t.prepareValue(typ, value, isInitialized)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	raw, err := safecast.Conv[uint32](t.nextID)
	if err != nil {
		return 0, fmt.Errorf("%w: id space exhausted", ErrAllocation)
	}
	id := EntryID(raw)

	b := bucketIndex(name, len(t.buckets))
	t.buckets[b] = append(t.buckets[b], Entry{
		ID:            id,
		Name:          name,
		Type:          typ,
		Value:         stored,
		IsConst:       isConst,
		IsInitialized: isInitialized,
		ScopeLevel:    scopeLevel,
	})
	t.byID[id] = b
	t.nextID++
	t.note("insert", fmt.Sprintf("%s@%d id=%d", name, scopeLevel, id))
	return id, nil
}

func (t *Table) checkName(name string) (string, error) {
	name = canonicalName(name)
	if name == "" {
		return "", fmt.Errorf("%w: empty identifier", ErrInvalidName)
	}
	if n := utf8.RuneCountInString(name); n > t.limits.MaxName {
		return "", tooLong(ErrNameTooLong, name, n, t.limits.MaxName)
	}
	return name, nil
}

// prepareValue encodes raw for typ and enforces the value limit.
// Unknown types are stored verbatim; the checker owns their meaning.
func (t *Table) prepareValue(typ, raw string, initialized bool) (string, error) {
	if raw == "" && !initialized {
		return "", nil
	}
	stored := raw
	if tag, ok := values.ParseTypeTag(typ); ok {
		enc, err := values.Encode(tag, raw)
		if err != nil {
			return "", err
		}
		stored = enc
	}
	if n := utf8.RuneCountInString(stored); n > t.limits.MaxValue {
		return "", tooLong(ErrValueTooLong, stored, n, t.limits.MaxValue)
	}
	return stored, nil
}

// LookupByName returns the binding of name visible from scopeLevel.
func (t *Table) LookupByName(name string, scopeLevel int) (Entry, bool) {
	t.mustLive()
	name = canonicalName(name)
	chain := t.buckets[bucketIndex(name, len(t.buckets))]
	if i := visibleIndex(chain, name, scopeLevel); i >= 0 {
		return chain[i], true
	}
	return Entry{}, false
}

// LookupByID returns the entry with id, provided it lives at scopeLevel.
func (t *Table) LookupByID(id EntryID, scopeLevel int) (Entry, bool) {
	t.mustLive()
	b, i := t.locate(id)
	if i < 0 || t.buckets[b][i].ScopeLevel != scopeLevel {
		return Entry{}, false
	}
	return t.buckets[b][i], true
}

// ExistsByName reports whether LookupByName would find a binding.
func (t *Table) ExistsByName(name string, scopeLevel int) bool {
	_, ok := t.LookupByName(name, scopeLevel)
	return ok
}

// ExistsByID reports whether LookupByID would find a binding.
func (t *Table) ExistsByID(id EntryID, scopeLevel int) bool {
	_, ok := t.LookupByID(id, scopeLevel)
	return ok
}

// UpdateValue stores newValue in the entry with id at scopeLevel and marks
// it initialized. A missing entry is not an error: nothing happens.
func (t *Table) UpdateValue(id EntryID, newValue string, scopeLevel int) error {
	t.mustLive()
	b, i := t.locate(id)
	if i < 0 || t.buckets[b][i].ScopeLevel != scopeLevel {
		return nil
	}
	e := &t.buckets[b][i]
	stored, err := t.prepareValue(e.Type, newValue, true)
	if err != nil {
		return fmt.Errorf("%s: %w", e.Name, err)
	}
	e.Value = stored
	e.IsInitialized = true
	t.note("update", fmt.Sprintf("id=%d value=%s", id, stored))
	return nil
}

// DeleteByID removes the entry with id, if any.
func (t *Table) DeleteByID(id EntryID) {
	t.mustLive()
	b, i := t.locate(id)
	if i < 0 {
		return
	}
	t.removeAt(b, i)
	t.note("delete", "id="+id.String())
}

// DeleteByName removes the innermost binding of name, the one a lookup from
// the deepest scope would return. Outer shadows stay in place.
func (t *Table) DeleteByName(name string) {
	t.mustLive()
	name = canonicalName(name)
	b := bucketIndex(name, len(t.buckets))
	i := visibleIndex(t.buckets[b], name, math.MaxInt)
	if i < 0 {
		return
	}
	id := t.buckets[b][i].ID
	t.removeAt(b, i)
	t.note("delete", fmt.Sprintf("%s id=%d", name, id))
}

func (t *Table) locate(id EntryID) (bucket, index int) {
	b, ok := t.byID[id]
	if !ok {
		return 0, -1
	}
	return b, slices.IndexFunc(t.buckets[b], func(e Entry) bool { return e.ID == id })
}

func (t *Table) removeAt(b, i int) {
	delete(t.byID, t.buckets[b][i].ID)
	t.buckets[b] = slices.Delete(t.buckets[b], i, i+1)
}

// Clear removes every entry. Ids keep increasing across a Clear.
func (t *Table) Clear() {
	t.mustLive()
	for b := range t.buckets {
		t.buckets[b] = nil
	}
	clear(t.byID)
	t.note("clear", "")
}

// Destroy releases all storage. Any later call on t panics.
func (t *Table) Destroy() {
	t.mustLive()
	t.note("destroy", "")
	t.buckets = nil
	t.byID = nil
	t.destroyed = true
}

// ListAll returns a copy of every live entry, grouped by bucket,
// in chain order within a bucket.
func (t *Table) ListAll() []Entry {
	t.mustLive()
	out := make([]Entry, 0, len(t.byID))
	for _, chain := range t.buckets {
		out = append(out, chain...)
	}
	return out
}

// Len reports the number of live entries.
func (t *Table) Len() int {
	t.mustLive()
	return len(t.byID)
}

// Buckets reports the fixed bucket count.
func (t *Table) Buckets() int {
	t.mustLive()
	return len(t.buckets)
}

// NextID reports the id the next successful Insert will assign.
func (t *Table) NextID() uint64 {
	t.mustLive()
	return t.nextID
}

// Limits reports the table's length limits.
func (t *Table) Limits() Limits {
	t.mustLive()
	return t.limits
}
