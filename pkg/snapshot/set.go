package snapshot

import "sort"

// Identifier is a username exactly as the API returns it. No case folding is applied.
// Snapshot files hold one identifier per line, so identifiers must be non-empty
// and free of whitespace to be persisted (see Valid).
type Identifier = string

// Set is an unordered collection of unique identifiers
type Set struct {
	items map[Identifier]struct{}
}

// NewSet creates a set holding ids
func NewSet(ids ...Identifier) *Set {
	s := &Set{items: make(map[Identifier]struct{}, len(ids))}
	for _, id := range ids {
		s.items[id] = struct{}{}
	}
	return s
}

// Add inserts ids and returns how many were not already present
func (s *Set) Add(ids ...Identifier) int {
	if s.items == nil {
		s.items = make(map[Identifier]struct{}, len(ids))
	}
	added := 0
	for _, id := range ids {
		if _, ok := s.items[id]; !ok {
			s.items[id] = struct{}{}
			added++
		}
	}
	return added
}

// Merge adds every member of other and returns how many were new
func (s *Set) Merge(other *Set) int {
	if other == nil {
		return 0
	}
	if s.items == nil {
		s.items = make(map[Identifier]struct{}, other.Len())
	}
	added := 0
	for id := range other.items {
		if _, ok := s.items[id]; !ok {
			s.items[id] = struct{}{}
			added++
		}
	}
	return added
}

// Contains reports whether id is a member
func (s *Set) Contains(id Identifier) bool {
	if s == nil {
		return false
	}
	_, ok := s.items[id]
	return ok
}

// Len returns the number of members
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Sorted returns the members in ascending order
func (s *Set) Sorted() []Identifier {
	if s == nil {
		return nil
	}
	out := make([]Identifier, 0, len(s.items))
	for id := range s.items {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Difference returns the members of s that are not in other, sorted
func (s *Set) Difference(other *Set) []Identifier {
	var out []Identifier
	for _, id := range s.Sorted() {
		if !other.Contains(id) {
			out = append(out, id)
		}
	}
	return out
}

// Clone returns an independent copy
func (s *Set) Clone() *Set {
	c := NewSet()
	c.Merge(s)
	return c
}
