package strmap

import (
	"fmt"
	"strings"
	"unicode"
)

// Parse builds a map from a serialized blob. All whitespace is stripped
// before tokenizing, so whitespace around keys, joiners, values, and
// delimiters is insignificant. This is a known limitation as well: a value
// such as "New York" loses its interior space.
//
// Empty fragments produced by splitting (repeated or trailing delimiters)
// are discarded. A fragment may be a bare key with no joiner, which stores
// an empty value. Later occurrences of a key overwrite earlier ones. A
// malformed blob yields no map at all.
func Parse(data, joiner, delimiter string) (*Map, error) {
	m, err := New(joiner, delimiter)

	if err != nil {
		return nil, err
	}

	data = stripWhitespace(data)

	if data == "" {
		return m, nil
	}

	for _, fragment := range strings.Split(data, delimiter) {
		if fragment == "" {
			continue
		}

		if strings.HasPrefix(fragment, joiner) || strings.HasPrefix(fragment, delimiter) {
			return nil, fmt.Errorf("%w: %q", ErrMalformedPair, fragment)
		}

		parts := splitNonEmpty(fragment, joiner)

		var key, value string

		switch len(parts) {
		case 1:
			key = parts[0]
		case 2:
			key, value = parts[0], parts[1]
		default:
			return nil, fmt.Errorf("%w: %q", ErrMalformedPair, fragment)
		}

		if strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("%w: %q", ErrEmptyKey, fragment)
		}

		m.entries.Set(key, value)
	}

	return m, nil
}

// TryParse is like Parse but reports failure as a boolean instead of an
// error.
func TryParse(data, joiner, delimiter string) (*Map, bool) {
	m, err := Parse(data, joiner, delimiter)

	if err != nil {
		return nil, false
	}

	return m, true
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}

		return r
	}, s)
}

func splitNonEmpty(s, sep string) []string {
	parts := strings.Split(s, sep)
	result := parts[:0]

	for _, part := range parts {
		if part != "" {
			result = append(result, part)
		}
	}

	return result
}
