// Package orderedmap provides a string-keyed map that remembers the order
// in which keys were first inserted.
package orderedmap

// OrderedMap is a map from string keys to values of type T. Iteration
// helpers (Keys, Values) walk entries in insertion order, which makes
// serialization of the map deterministic. It is not safe for concurrent use.
type OrderedMap[T any] struct {
	inner map[string]T
	keys  []string
}

func New[T any]() *OrderedMap[T] {
	return &OrderedMap[T]{
		inner: make(map[string]T),
		keys:  make([]string, 0),
	}
}

func NewWithCapacity[T any](capacity int) *OrderedMap[T] {
	return &OrderedMap[T]{
		inner: make(map[string]T, capacity),
		keys:  make([]string, 0, capacity),
	}
}

// Set stores value under key. Overwriting an existing key keeps its
// original position in the iteration order.
func (m *OrderedMap[T]) Set(key string, value T) {
	if _, ok := m.inner[key]; !ok {
		m.keys = append(m.keys, key)
	}

	m.inner[key] = value
}

func (m *OrderedMap[T]) Get(key string) (T, bool) {
	value, ok := m.inner[key]

	return value, ok
}

func (m *OrderedMap[T]) Has(key string) bool {
	_, ok := m.inner[key]

	return ok
}

// Delete removes key and reports whether it was present.
func (m *OrderedMap[T]) Delete(key string) bool {
	if _, ok := m.inner[key]; !ok {
		return false
	}

	delete(m.inner, key)

	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}

	return true
}

// Clear removes every entry, re-creating the underlying storage.
func (m *OrderedMap[T]) Clear() {
	m.inner = make(map[string]T)
	m.keys = m.keys[:0]
}

// Keys returns the keys in insertion order. The returned slice is shared
// with the map and must not be modified by the caller.
func (m *OrderedMap[T]) Keys() []string {
	return m.keys
}

// Values returns the values in key insertion order.
func (m *OrderedMap[T]) Values() []T {
	values := make([]T, 0, len(m.keys))

	for _, key := range m.keys {
		values = append(values, m.inner[key])
	}

	return values
}

func (m *OrderedMap[T]) Len() int {
	return len(m.keys)
}
