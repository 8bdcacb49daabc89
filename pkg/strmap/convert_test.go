package strmap_test

import (
	"math/big"
	"net/netip"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/UTD-JLA/strmap/pkg/ref"
	"github.com/UTD-JLA/strmap/pkg/strmap"
	"github.com/golang-module/carbon/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

type color int

const (
	colorNone color = iota
	colorOne
	colorTwo
)

func init() {
	strmap.RegisterEnum(map[string]color{
		"None": colorNone,
		"One":  colorOne,
		"Two":  colorTwo,
	})
}

// shout implements encoding.TextUnmarshaler for testing the generic
// fallback conversion.
type shout struct {
	Text string
}

func (s *shout) UnmarshalText(text []byte) error {
	s.Text = strings.ToUpper(string(text))
	return nil
}

type opaque struct {
	N int
}

func TestGet(t *testing.T) {
	m := newMap(t)

	require.NoError(t, strmap.Add(m, "str", "hello"))
	require.NoError(t, strmap.Add(m, "int", 42))
	require.NoError(t, strmap.Add(m, "bool", true))
	require.NoError(t, strmap.Add(m, "float", 1.25))

	t.Run("Built-in conversions", func(t *testing.T) {
		s, err := strmap.Get[string](m, "str")
		require.NoError(t, err)
		assert.Equal(t, "hello", s)

		i, err := strmap.Get[int](m, "int")
		require.NoError(t, err)
		assert.Equal(t, 42, i)

		i64, err := strmap.Get[int64](m, "int")
		require.NoError(t, err)
		assert.Equal(t, int64(42), i64)

		b, err := strmap.Get[bool](m, "bool")
		require.NoError(t, err)
		assert.True(t, b)

		f, err := strmap.Get[float64](m, "float")
		require.NoError(t, err)
		assert.Equal(t, 1.25, f)
	})

	t.Run("Absent key", func(t *testing.T) {
		_, err := strmap.Get[string](m, "missing")
		assert.ErrorIs(t, err, strmap.ErrKeyNotFound)
	})

	t.Run("Invalid lexical form", func(t *testing.T) {
		_, err := strmap.Get[int](m, "str")

		var convErr *strmap.ConversionError
		require.ErrorAs(t, err, &convErr)
		assert.Equal(t, "str", convErr.Key)
	})

	t.Run("Unsupported type", func(t *testing.T) {
		_, err := strmap.Get[opaque](m, "str")

		var unsupported *strmap.UnsupportedTypeError
		assert.ErrorAs(t, err, &unsupported)
	})
}

func TestTryGet(t *testing.T) {
	m := newMap(t)

	require.NoError(t, strmap.Add(m, "n", 7))

	v, ok := strmap.TryGet[int](m, "n")
	assert.True(t, ok)
	assert.Equal(t, 7, v)

	_, ok = strmap.TryGet[int](m, "missing")
	assert.False(t, ok)

	require.NoError(t, strmap.Add(m, "s", "not a number"))

	_, ok = strmap.TryGet[int](m, "s")
	assert.False(t, ok)

	_, ok = strmap.TryGet[opaque](m, "s")
	assert.False(t, ok)
}

func TestStructuredConversions(t *testing.T) {
	m := newMap(t)

	t.Run("UUID", func(t *testing.T) {
		id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

		require.NoError(t, strmap.Add(m, "id", id))

		got, err := strmap.Get[uuid.UUID](m, "id")
		require.NoError(t, err)
		assert.Equal(t, id, got)
	})

	t.Run("Duration", func(t *testing.T) {
		require.NoError(t, strmap.Add(m, "d", 90*time.Minute))

		raw, _ := m.GetRaw("d")
		assert.Equal(t, "1h30m0s", raw)

		got, err := strmap.Get[time.Duration](m, "d")
		require.NoError(t, err)
		assert.Equal(t, 90*time.Minute, got)
	})

	t.Run("Big integer", func(t *testing.T) {
		n, ok := new(big.Int).SetString("123456789012345678901234567890", 10)
		require.True(t, ok)

		require.NoError(t, strmap.Add(m, "big", n))

		got, err := strmap.Get[*big.Int](m, "big")
		require.NoError(t, err)
		assert.Zero(t, n.Cmp(got))
	})

	t.Run("Decimal", func(t *testing.T) {
		d := decimal.RequireFromString("123.456")

		require.NoError(t, strmap.Add(m, "dec", d))

		got, err := strmap.Get[decimal.Decimal](m, "dec")
		require.NoError(t, err)
		assert.True(t, d.Equal(got))
	})

	t.Run("Semantic version", func(t *testing.T) {
		v := semver.MustParse("1.2.3-beta.1")

		require.NoError(t, strmap.Add(m, "ver", v))

		got, err := strmap.Get[*semver.Version](m, "ver")
		require.NoError(t, err)
		assert.True(t, v.Equal(got))
	})

	t.Run("URL", func(t *testing.T) {
		u, err := url.Parse("https://example.com/some/path")
		require.NoError(t, err)

		require.NoError(t, strmap.Add(m, "url", u))

		got, err := strmap.Get[*url.URL](m, "url")
		require.NoError(t, err)
		assert.Equal(t, u.String(), got.String())
	})

	t.Run("IP address", func(t *testing.T) {
		for _, addr := range []string{"192.0.2.1", "2001:db8::1"} {
			ip := netip.MustParseAddr(addr)

			require.NoError(t, strmap.Add(m, "ip", ip))

			got, err := strmap.Get[netip.Addr](m, "ip")
			require.NoError(t, err)
			assert.Equal(t, ip, got)
		}
	})

	t.Run("Language tag", func(t *testing.T) {
		require.NoError(t, strmap.Add(m, "lang", language.AmericanEnglish))

		got, err := strmap.Get[language.Tag](m, "lang")
		require.NoError(t, err)
		assert.Equal(t, language.AmericanEnglish, got)
	})

	t.Run("Single character", func(t *testing.T) {
		require.NoError(t, strmap.Add(m, "ch", strmap.Rune('語')))

		got, err := strmap.Get[strmap.Rune](m, "ch")
		require.NoError(t, err)
		assert.Equal(t, strmap.Rune('語'), got)

		require.NoError(t, strmap.Add(m, "ch2", "ab"))

		_, err = strmap.Get[strmap.Rune](m, "ch2")

		var convErr *strmap.ConversionError
		assert.ErrorAs(t, err, &convErr)
	})
}

func TestTimestampConversions(t *testing.T) {
	t.Run("Add normalizes to UTC but preserves the instant", func(t *testing.T) {
		m := newMap(t)

		original := time.Date(2024, 3, 1, 10, 30, 0, 0, time.FixedZone("ICT", 7*3600))
		require.NoError(t, strmap.Add(m, "t", original))

		raw, _ := m.GetRaw("t")
		assert.Equal(t, "2024-03-01T03:30:00.0000000Z", raw)

		got, err := strmap.Get[time.Time](m, "t")
		require.NoError(t, err)
		assert.True(t, got.Equal(original))
	})

	t.Run("Parsed offsets are preserved", func(t *testing.T) {
		m, err := strmap.Parse("t=2024-03-01T10:30:00+07:00", "=", ";")
		require.NoError(t, err)

		got, err := strmap.Get[time.Time](m, "t")
		require.NoError(t, err)

		_, offset := got.Zone()
		assert.Equal(t, 7*3600, offset)
	})

	t.Run("Unzoned forms are taken as UTC", func(t *testing.T) {
		m, err := strmap.Parse("t=2024-03-01T10:30:00", "=", ";")
		require.NoError(t, err)

		got, err := strmap.Get[time.Time](m, "t")
		require.NoError(t, err)
		assert.True(t, got.Equal(time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)))
	})

	t.Run("Carbon round-trips", func(t *testing.T) {
		m := newMap(t)

		c := carbon.CreateFromStdTime(time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC))
		require.NoError(t, strmap.Add(m, "c", c))

		got, err := strmap.Get[carbon.Carbon](m, "c")
		require.NoError(t, err)
		assert.True(t, got.ToStdTime().Equal(c.ToStdTime()))
	})

	t.Run("Invalid timestamp text", func(t *testing.T) {
		m := newMap(t)

		require.NoError(t, strmap.Add(m, "t", "definitely-not-a-time"))

		_, err := strmap.Get[time.Time](m, "t")

		var convErr *strmap.ConversionError
		assert.ErrorAs(t, err, &convErr)
	})
}

func TestEnumConversions(t *testing.T) {
	m := newMap(t)

	t.Run("Name match is case-insensitive", func(t *testing.T) {
		for _, spelling := range []string{"Two", "two", "TWO"} {
			require.NoError(t, strmap.Add(m, "color", spelling))

			got, err := strmap.Get[color](m, "color")
			require.NoError(t, err)
			assert.Equal(t, colorTwo, got)
		}
	})

	t.Run("Formats with the registered spelling", func(t *testing.T) {
		require.NoError(t, strmap.Add(m, "color", colorOne))

		raw, _ := m.GetRaw("color")
		assert.Equal(t, "One", raw)
	})

	t.Run("Unknown member name", func(t *testing.T) {
		require.NoError(t, strmap.Add(m, "color", "Three"))

		_, err := strmap.Get[color](m, "color")

		var convErr *strmap.ConversionError
		assert.ErrorAs(t, err, &convErr)

		_, ok := strmap.TryGet[color](m, "color")
		assert.False(t, ok)
	})
}

func TestTextUnmarshalerFallback(t *testing.T) {
	m := newMap(t)

	require.NoError(t, strmap.Add(m, "s", "hello"))

	got, err := strmap.Get[shout](m, "s")
	require.NoError(t, err)
	assert.Equal(t, "HELLO", got.Text)

	ptr, err := strmap.Get[*shout](m, "s")
	require.NoError(t, err)
	assert.Equal(t, "HELLO", ptr.Text)
}

func TestAddFormatting(t *testing.T) {
	m := newMap(t)

	t.Run("Nil values store empty text", func(t *testing.T) {
		require.NoError(t, strmap.Add[*big.Int](m, "nil", nil))

		raw, ok := m.GetRaw("nil")
		assert.True(t, ok)
		assert.Equal(t, "", raw)
	})

	t.Run("Non-nil pointers format as their pointee", func(t *testing.T) {
		require.NoError(t, strmap.Add(m, "ptr", ref.New(42)))

		raw, _ := m.GetRaw("ptr")
		assert.Equal(t, "42", raw)
	})

	t.Run("Unregistered types use default formatting", func(t *testing.T) {
		require.NoError(t, strmap.Add(m, "opaque", opaque{N: 3}))

		raw, _ := m.GetRaw("opaque")
		assert.Equal(t, "{3}", raw)
	})
}
