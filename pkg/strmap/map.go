// Package strmap implements a string-keyed map that stores every value as
// text and converts entries to and from typed Go values on demand. Maps
// serialize to a flat "key=value;key=value" blob whose joiner and delimiter
// tokens are chosen at construction time.
//
// A Map is not safe for concurrent use; callers sharing one across
// goroutines must provide their own synchronization.
package strmap

import (
	"fmt"
	"strings"

	"github.com/UTD-JLA/strmap/pkg/orderedmap"
)

// Default tokens used by the serialized form when the caller has no
// preference of its own.
const (
	DefaultJoiner    = "="
	DefaultDelimiter = ";"
)

// Map is a string-keyed map of textual values. Keys are case-sensitive,
// never empty, and never contain the joiner or delimiter tokens; the same
// holds for stored values. Entries keep insertion order so serialization is
// deterministic.
type Map struct {
	entries   *orderedmap.OrderedMap[string]
	joiner    string
	delimiter string
}

// New returns an empty map using the given joiner and delimiter tokens.
// Both tokens may be longer than one character but must not be empty.
func New(joiner, delimiter string) (*Map, error) {
	if joiner == "" {
		return nil, ErrEmptyJoiner
	}

	if delimiter == "" {
		return nil, ErrEmptyDelimiter
	}

	return &Map{
		entries:   orderedmap.New[string](),
		joiner:    joiner,
		delimiter: delimiter,
	}, nil
}

func (m *Map) Joiner() string {
	return m.joiner
}

func (m *Map) Delimiter() string {
	return m.delimiter
}

// Remove deletes the entry for key and reports whether it existed.
func (m *Map) Remove(key string) bool {
	return m.entries.Delete(key)
}

// RemoveRange removes each of the given keys and returns the number of
// entries actually removed. Absent keys are skipped silently.
func (m *Map) RemoveRange(keys []string) int {
	removed := 0

	for _, key := range keys {
		if m.entries.Delete(key) {
			removed++
		}
	}

	return removed
}

// Clear removes every entry.
func (m *Map) Clear() {
	m.entries.Clear()
}

func (m *Map) ContainsKey(key string) bool {
	return m.entries.Has(key)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	keys := make([]string, len(m.entries.Keys()))
	copy(keys, m.entries.Keys())

	return keys
}

// Values returns the raw stored text of every entry, unconverted, in key
// insertion order.
func (m *Map) Values() []string {
	return m.entries.Values()
}

func (m *Map) Len() int {
	return m.entries.Len()
}

// GetRaw returns the stored text for key without any conversion.
func (m *Map) GetRaw(key string) (string, bool) {
	return m.entries.Get(key)
}

// String serializes the map as key{joiner}value pairs separated by the
// delimiter, with no trailing delimiter, in insertion order. For content
// free of whitespace and duplicate keys, Parse(m.String(), ...) reproduces
// the same entries.
func (m *Map) String() string {
	var sb strings.Builder

	for i, key := range m.entries.Keys() {
		if i > 0 {
			sb.WriteString(m.delimiter)
		}

		value, _ := m.entries.Get(key)

		sb.WriteString(key)
		sb.WriteString(m.joiner)
		sb.WriteString(value)
	}

	return sb.String()
}

func (m *Map) validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: %q", ErrEmptyKey, key)
	}

	if strings.Contains(key, m.joiner) || strings.Contains(key, m.delimiter) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	return nil
}

func (m *Map) validateValue(value string) error {
	if strings.Contains(value, m.joiner) || strings.Contains(value, m.delimiter) {
		return fmt.Errorf("%w: %q", ErrInvalidValue, value)
	}

	return nil
}
