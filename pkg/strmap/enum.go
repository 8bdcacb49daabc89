package strmap

import (
	"fmt"
	"strings"
)

// RegisterEnum installs a conversion for the enumeration type E from a
// table of member names to values. Lookup by name is case-insensitive;
// formatting uses the registered spelling of the member name. Like
// Register, it is meant to run during program initialization.
func RegisterEnum[E comparable](members map[string]E) {
	byName := make(map[string]E, len(members))
	byValue := make(map[E]string, len(members))

	for name, value := range members {
		byName[strings.ToLower(name)] = value
		byValue[value] = name
	}

	register(func(s string) (E, error) {
		value, ok := byName[strings.ToLower(s)]

		if !ok {
			var zero E

			return zero, fmt.Errorf("no member named %q", s)
		}

		return value, nil
	}, func(v E) string {
		if name, ok := byValue[v]; ok {
			return name
		}

		return fmt.Sprint(v)
	})
}
