package symfmt

import "symtab/internal/symbols"

// EntryRecord is the serialized form of one entry.
type EntryRecord struct {
	ID          uint32 `json:"id" msgpack:"id"`
	Name        string `json:"name" msgpack:"name"`
	Type        string `json:"type" msgpack:"type"`
	Value       string `json:"value" msgpack:"value"`
	Const       bool   `json:"const" msgpack:"const"`
	Initialized bool   `json:"initialized" msgpack:"initialized"`
	Scope       int    `json:"scope" msgpack:"scope"`
}

// StatsRecord is the serialized form of table statistics.
type StatsRecord struct {
	Entries int   `json:"entries" msgpack:"entries"`
	Buckets int   `json:"buckets" msgpack:"buckets"`
	Used    int   `json:"used_buckets" msgpack:"used_buckets"`
	Longest int   `json:"longest_chain" msgpack:"longest_chain"`
	MaxID   int64 `json:"max_id" msgpack:"max_id"`
}

// ListingRecord is a whole listing as written by the JSON and msgpack encoders.
type ListingRecord struct {
	Label   string        `json:"label,omitempty" msgpack:"label,omitempty"`
	Entries []EntryRecord `json:"entries" msgpack:"entries"`
	Stats   *StatsRecord  `json:"stats,omitempty" msgpack:"stats,omitempty"`
}

// Listing is what a `list` command captures from a table.
type Listing struct {
	Label   string
	Entries []symbols.Entry
	Stats   symbols.Stats
}

// Snapshot captures a table's entries and statistics.
func Snapshot(label string, t *symbols.Table) Listing {
	return Listing{Label: label, Entries: t.ListAll(), Stats: t.Stats()}
}

func toRecord(l Listing, withStats bool) ListingRecord {
	rec := ListingRecord{Label: l.Label, Entries: make([]EntryRecord, 0, len(l.Entries))}
	for _, e := range l.Entries {
		rec.Entries = append(rec.Entries, EntryRecord{
			ID:          uint32(e.ID),
			Name:        e.Name,
			Type:        e.Type,
			Value:       e.Value,
			Const:       e.IsConst,
			Initialized: e.IsInitialized,
			Scope:       e.ScopeLevel,
		})
	}
	if withStats {
		rec.Stats = &StatsRecord{
			Entries: l.Stats.Entries,
			Buckets: l.Stats.Buckets,
			Used:    l.Stats.Used,
			Longest: l.Stats.Longest,
			MaxID:   l.Stats.MaxID,
		}
	}
	return rec
}
