// Package ds provides small generic data structures shared by the map engine.
package ds

import (
	"encoding/json"
	"fmt"
)

// Set is an ordered set with O(1) membership tests that preserves insertion
// order for deterministic iteration. The map engine returns key snapshots as
// a Set ordered by entry creation.
//
// # Mutation Semantics
//
// Add and Remove mutate the receiver. Filter, Copy and Values return new
// values without modifying it.
type Set[T comparable] struct {
	items map[T]struct{}
	order []T // preserves insertion order
}

func (s *Set[T]) String() string {
	return fmt.Sprintf("%v", s.order)
}

// Add adds v to the set. No-op if already present. (mutates)
func (s *Set[T]) Add(v T) {
	if s.Contains(v) {
		return
	}
	s.items[v] = struct{}{}
	s.order = append(s.order, v)
}

// Remove removes the given values from the set. (mutates)
// This operation is O(n) where n is the set size.
func (s *Set[T]) Remove(vs ...T) {
	removed := 0
	for _, v := range vs {
		if _, ok := s.items[v]; ok {
			delete(s.items, v)
			removed++
		}
	}
	if removed == 0 {
		return
	}

	order := make([]T, 0, len(s.order)-removed)
	for _, v := range s.order {
		if _, ok := s.items[v]; ok {
			order = append(order, v)
		}
	}
	s.order = order
}

// Len returns the number of elements in the set.
func (s *Set[T]) Len() int { return len(s.items) }

// IsEmpty returns true if the set contains no elements.
func (s *Set[T]) IsEmpty() bool { return len(s.items) == 0 }

// Contains returns true if v is present in the set.
func (s *Set[T]) Contains(v T) bool {
	_, ok := s.items[v]
	return ok
}

// ContainsAll returns true if all elements of other are present in s.
func (s *Set[T]) ContainsAll(other *Set[T]) bool {
	for v := range other.items {
		if !s.Contains(v) {
			return false
		}
	}
	return true
}

// ForEach iterates over all elements in insertion order.
func (s *Set[T]) ForEach(fn func(T)) {
	for _, v := range s.order {
		fn(v)
	}
}

// Filter returns a new set containing only elements for which fn returns true.
func (s *Set[T]) Filter(fn func(T) bool) *Set[T] {
	filtered := NewSet[T]()
	for _, v := range s.order {
		if fn(v) {
			filtered.Add(v)
		}
	}
	return filtered
}

// Copy returns a new set with the same elements and order.
func (s *Set[T]) Copy() *Set[T] {
	return NewSet(s.order...)
}

// Values returns a copy of the elements in insertion order.
func (s *Set[T]) Values() []T {
	out := make([]T, len(s.order))
	copy(out, s.order)
	return out
}

// Eq returns true if both sets contain the same elements (order is ignored).
func (s *Set[T]) Eq(other *Set[T]) bool {
	return s.Len() == other.Len() && s.ContainsAll(other)
}

// EqValues returns true if the set contains exactly the given values.
func (s *Set[T]) EqValues(vs ...T) bool {
	return s.Eq(NewSet(vs...))
}

// MarshalJSON serializes the set as an ordered JSON array.
func (s Set[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

// NewSet creates a new set with the given items.
func NewSet[T comparable](items ...T) *Set[T] {
	set := &Set[T]{items: make(map[T]struct{}, len(items)), order: make([]T, 0, len(items))}
	for _, item := range items {
		set.Add(item)
	}
	return set
}
