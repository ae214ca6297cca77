package t2048

import "github.com/vovakirdan/tui-2048/internal/config"

// TypeTable maps tile values to their style tokens.
// It carries no game logic; the resolver only relies on it being closed under merging,
// which session validation checks up front.
type TypeTable struct {
	entries []config.TypeEntry
	index   map[int]int
}

// NewTypeTable builds a table from ordered entries. Values must be positive and unique.
func NewTypeTable(entries []config.TypeEntry) (TypeTable, error) {
	if len(entries) == 0 {
		return TypeTable{}, errorf(KindConfig, "type table is empty")
	}
	t := TypeTable{
		entries: append([]config.TypeEntry(nil), entries...),
		index:   make(map[int]int, len(entries)),
	}
	for i, e := range entries {
		if e.Value <= 0 {
			return TypeTable{}, errorf(KindConfig, "type value must be positive, got %d", e.Value)
		}
		if _, dup := t.index[e.Value]; dup {
			return TypeTable{}, errorf(KindConfig, "duplicate type value %d", e.Value)
		}
		t.index[e.Value] = i
	}
	return t, nil
}

// Lookup returns the entry for a value.
func (t TypeTable) Lookup(value int) (config.TypeEntry, bool) {
	i, ok := t.index[value]
	if !ok {
		return config.TypeEntry{}, false
	}
	return t.entries[i], true
}

// Has reports whether the value is known.
func (t TypeTable) Has(value int) bool {
	_, ok := t.index[value]
	return ok
}

// Style returns the style token for a value, or "" if unknown.
func (t TypeTable) Style(value int) string {
	e, _ := t.Lookup(value)
	return e.Style
}

// Entries returns a copy of the entries in declaration order.
func (t TypeTable) Entries() []config.TypeEntry {
	return append([]config.TypeEntry(nil), t.entries...)
}

// Len returns the number of entries.
func (t TypeTable) Len() int {
	return len(t.entries)
}
