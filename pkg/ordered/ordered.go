// Package ordered provides insertion-ordered set and map helpers for modpatch.
package ordered

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Set is a generic set that preserves the order of first insertion.
// Option values rendered from a Set are therefore reproducible across runs.
type Set[T comparable] struct {
	m *orderedmap.OrderedMap[T, struct{}]
}

// NewSet creates a Set containing the given values, in order.
func NewSet[T comparable](values ...T) *Set[T] {
	s := &Set[T]{m: orderedmap.New[T, struct{}]()}
	for _, v := range values {
		s.Add(v)
	}

	return s
}

// Add inserts v and reports whether it was not already present.
func (s *Set[T]) Add(v T) bool {
	_, present := s.m.Set(v, struct{}{})

	return !present
}

// Remove deletes v and reports whether it was present.
func (s *Set[T]) Remove(v T) bool {
	_, present := s.m.Delete(v)

	return present
}

// Contains reports whether v is in the set.
func (s *Set[T]) Contains(v T) bool {
	_, present := s.m.Get(v)

	return present
}

// Len returns the number of elements.
func (s *Set[T]) Len() int {
	return s.m.Len()
}

// Values returns the elements in insertion order.
func (s *Set[T]) Values() []T {
	values := make([]T, 0, s.m.Len())
	for pair := s.m.Oldest(); pair != nil; pair = pair.Next() {
		values = append(values, pair.Key)
	}

	return values
}

// Clear removes all elements.
func (s *Set[T]) Clear() {
	for s.m.Len() > 0 {
		s.m.Delete(s.m.Oldest().Key)
	}
}

// Map is a generic map that preserves the order of first key insertion.
type Map[K comparable, V any] struct {
	m *orderedmap.OrderedMap[K, V]
}

// NewMap creates an empty Map.
func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{m: orderedmap.New[K, V]()}
}

// Get returns the value stored under k, if any.
func (m *Map[K, V]) Get(k K) (V, bool) {
	return m.m.Get(k)
}

// Set stores v under k, keeping the key's original position if it exists.
func (m *Map[K, V]) Set(k K, v V) {
	m.m.Set(k, v)
}

// GetOrCreate returns the value stored under k, creating it with create
// when the key is absent.
func (m *Map[K, V]) GetOrCreate(k K, create func() V) V {
	if v, ok := m.m.Get(k); ok {
		return v
	}

	v := create()
	m.m.Set(k, v)

	return v
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	return m.m.Len()
}

// Keys returns the keys in insertion order.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, 0, m.m.Len())
	for pair := m.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}

	return keys
}

// Range calls fn for each entry in insertion order, stopping at the first error.
func (m *Map[K, V]) Range(fn func(k K, v V) error) error {
	for pair := m.m.Oldest(); pair != nil; pair = pair.Next() {
		if err := fn(pair.Key, pair.Value); err != nil {
			return err
		}
	}

	return nil
}
