package routes

import "strings"

// RouteEntry maps a path prefix to the page rendered for it
type RouteEntry struct {
	PathPrefix string `json:"path_prefix"`
	Page       PageID `json:"page"`
}

// NavLink is one entry of the navigation bar
type NavLink struct {
	TargetPath string `json:"target_path"`
	Label      string `json:"label"`
}

// Table is an ordered route table with a catch-all fallback.
// A Table is immutable once built and safe for concurrent use.
type Table struct {
	entries  []RouteEntry
	fallback PageID
}

// NewTable builds a table evaluated in the given order. Entries are copied
// so later changes to the caller's slice do not affect the table.
func NewTable(fallback PageID, entries ...RouteEntry) *Table {
	copied := make([]RouteEntry, len(entries))
	copy(copied, entries)
	return &Table{entries: copied, fallback: fallback}
}

// Resolve returns the page of the first entry whose prefix matches path,
// or the fallback page when nothing matches. It never fails.
func (t *Table) Resolve(path string) PageID {
	if entry, ok := t.Match(path); ok {
		return entry.Page
	}
	return t.Fallback()
}

// Match returns the first entry matching path
func (t *Table) Match(path string) (RouteEntry, bool) {
	if t == nil {
		return RouteEntry{}, false
	}
	for _, entry := range t.entries {
		if Matches(entry.PathPrefix, path) {
			return entry, true
		}
	}
	return RouteEntry{}, false
}

// Fallback returns the page used for unmatched paths
func (t *Table) Fallback() PageID {
	if t == nil {
		return NotFound
	}
	return t.fallback
}

// Entries returns a copy of the entries in declaration order
func (t *Table) Entries() []RouteEntry {
	if t == nil {
		return nil
	}
	out := make([]RouteEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Duplicates lists prefixes declared more than once. Later declarations of
// a prefix are unreachable since the first one always wins.
func (t *Table) Duplicates() []string {
	if t == nil {
		return nil
	}
	seen := make(map[string]int, len(t.entries))
	var dups []string
	for _, entry := range t.entries {
		key := strings.ToLower(normalizePrefix(entry.PathPrefix))
		seen[key]++
		if seen[key] == 2 {
			dups = append(dups, entry.PathPrefix)
		}
	}
	return dups
}
