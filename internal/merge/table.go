package merge

import "github.com/albapepper/cbb-data/internal/provider"

// Table is the keyed set of unified records for one run. It remembers
// insertion order so the emitter can break rank ties stably.
type Table struct {
	rows  map[string]*provider.TeamSeason
	order []string
}

func NewTable() *Table {
	return &Table{rows: make(map[string]*provider.TeamSeason)}
}

// Get returns the record for slug.
func (t *Table) Get(slug string) (*provider.TeamSeason, bool) {
	rec, ok := t.rows[slug]
	return rec, ok
}

// Put stores rec under rec.TeamID. Replacing an existing key keeps its
// original position; it reports whether a record was replaced.
func (t *Table) Put(rec *provider.TeamSeason) bool {
	_, exists := t.rows[rec.TeamID]
	if !exists {
		t.order = append(t.order, rec.TeamID)
	}
	t.rows[rec.TeamID] = rec
	return exists
}

// Len is the number of distinct teams.
func (t *Table) Len() int {
	return len(t.order)
}

// Records returns the records in insertion order.
func (t *Table) Records() []*provider.TeamSeason {
	out := make([]*provider.TeamSeason, 0, len(t.order))
	for _, slug := range t.order {
		out = append(out, t.rows[slug])
	}
	return out
}
