package domain

import (
	"slices"
)

// NameSet is a set of entity names.
type NameSet map[InternedString]struct{}

// Add inserts a name into the set.
func (s NameSet) Add(name InternedString) {
	s[name] = struct{}{}
}

// Has reports whether the set contains name.
func (s NameSet) Has(name InternedString) bool {
	_, ok := s[name]
	return ok
}

// Names returns the members as sorted strings.
func (s NameSet) Names() []string {
	out := make([]string, 0, len(s))
	for name := range s {
		out = append(out, name.String())
	}
	slices.Sort(out)
	return out
}
