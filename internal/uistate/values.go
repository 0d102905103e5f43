// Package uistate holds per-client presentational state: expanded items,
// selected feeder, settings toggles and the notifications query.
//
// Set and Toggles are immutable values; every update returns a new value
// and never mutates the receiver.
package uistate

import "sort"

// Set is an immutable set of ids.
type Set struct {
	m map[string]struct{}
}

// NewSet creates a set containing ids.
func NewSet(ids ...string) Set {
	m := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return Set{m: m}
}

// Has reports membership.
func (s Set) Has(id string) bool {
	_, ok := s.m[id]
	return ok
}

// Len returns the number of members.
func (s Set) Len() int {
	return len(s.m)
}

// Toggle returns a new set with id's membership flipped.
func (s Set) Toggle(id string) Set {
	m := make(map[string]struct{}, len(s.m)+1)
	for k := range s.m {
		m[k] = struct{}{}
	}
	if _, ok := m[id]; ok {
		delete(m, id)
	} else {
		m[id] = struct{}{}
	}
	return Set{m: m}
}

// IDs returns the members in sorted order.
func (s Set) IDs() []string {
	out := make([]string, 0, len(s.m))
	for k := range s.m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Toggles is an immutable mapping from setting name to boolean.
type Toggles struct {
	m map[string]bool
}

// NewToggles copies initial into a Toggles value.
func NewToggles(initial map[string]bool) Toggles {
	m := make(map[string]bool, len(initial))
	for k, v := range initial {
		m[k] = v
	}
	return Toggles{m: m}
}

// Get returns the value for key; unknown keys are false.
func (t Toggles) Get(key string) bool {
	return t.m[key]
}

// Has reports whether key is present.
func (t Toggles) Has(key string) bool {
	_, ok := t.m[key]
	return ok
}

// Toggle returns new Toggles with key flipped.
func (t Toggles) Toggle(key string) Toggles {
	m := make(map[string]bool, len(t.m))
	for k, v := range t.m {
		m[k] = v
	}
	m[key] = !m[key]
	return Toggles{m: m}
}

// Map returns a copy of the underlying values.
func (t Toggles) Map() map[string]bool {
	m := make(map[string]bool, len(t.m))
	for k, v := range t.m {
		m[k] = v
	}
	return m
}
