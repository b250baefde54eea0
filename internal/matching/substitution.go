package matching

import (
	"sort"
	"strings"
)

// SubstitutionIndex maps a normalized ingredient name to acceptable alternates.
// It is immutable once built.
type SubstitutionIndex struct {
	entries map[string][]string
}

// NewSubstitutionIndex copies m, normalizing keys and dropping blank alternates.
// Keys that normalize to the same name are merged in sorted key order.
func NewSubstitutionIndex(m map[string][]string) SubstitutionIndex {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make(map[string][]string, len(m))
	for _, name := range names {
		alts := m[name]
		key := Normalize(name)
		if key == "" {
			continue
		}
		for _, alt := range alts {
			if alt = strings.TrimSpace(alt); alt != "" {
				entries[key] = append(entries[key], alt)
			}
		}
	}
	return SubstitutionIndex{entries: entries}
}

// Lookup returns the alternates for name, or nil.
func (i SubstitutionIndex) Lookup(name string) []string {
	alts := i.entries[Normalize(name)]
	if len(alts) == 0 {
		return nil
	}
	return append([]string(nil), alts...)
}

// Len is the number of indexed ingredients.
func (i SubstitutionIndex) Len() int {
	return len(i.entries)
}

// Entries returns a copy of the index.
func (i SubstitutionIndex) Entries() map[string][]string {
	out := make(map[string][]string, len(i.entries))
	for k, v := range i.entries {
		out[k] = append([]string(nil), v...)
	}
	return out
}
