package strmap

import (
	"encoding"
	"errors"
	"fmt"
	"math/big"
	"net/netip"
	"net/url"
	"reflect"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/Masterminds/semver/v3"
	"github.com/golang-module/carbon/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"golang.org/x/text/language"
)

// TimeLayout is the fixed, sortable UTC layout used to store timestamps.
// Timestamps are always normalized to UTC before storage, so retrieving one
// yields an equal instant but not necessarily the original offset.
const TimeLayout = "2006-01-02T15:04:05.0000000Z"

// Rune holds a single character. It is a distinct type because rune itself
// is an alias of int32, which converts numerically.
type Rune rune

type converter struct {
	parse  func(string) (any, error)
	format func(any) string
}

// converters is the catalog of textual conversions, keyed by the concrete
// Go type they serve. It is populated at init time and extended through
// Register and RegisterEnum; it is not written to after initialization.
var converters = make(map[reflect.Type]converter)

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func register[T any](parse func(string) (T, error), format func(T) string) {
	c := converter{
		parse: func(s string) (any, error) {
			return parse(s)
		},
	}

	if format != nil {
		c.format = func(v any) string {
			return format(v.(T))
		}
	}

	converters[typeOf[T]()] = c
}

// Register installs a conversion for T, replacing any existing one. parse
// converts stored text to T; format renders T as text and may be nil to use
// the default textual representation. Register is meant to run during
// program initialization and must not be called concurrently with Get or
// Add.
func Register[T any](parse func(string) (T, error), format func(T) string) {
	register(parse, format)
}

// lexical adapts a cast conversion, which takes any value, to the
// text-only signature the catalog uses.
func lexical[T any](f func(any) (T, error)) func(string) (T, error) {
	return func(s string) (T, error) {
		return f(s)
	}
}

func init() {
	register(func(s string) (string, error) { return s, nil }, nil)
	register(lexical(cast.ToBoolE), strconv.FormatBool)

	register(lexical(cast.ToIntE), strconv.Itoa)
	register(lexical(cast.ToInt8E), func(v int8) string { return strconv.FormatInt(int64(v), 10) })
	register(lexical(cast.ToInt16E), func(v int16) string { return strconv.FormatInt(int64(v), 10) })
	register(lexical(cast.ToInt32E), func(v int32) string { return strconv.FormatInt(int64(v), 10) })
	register(lexical(cast.ToInt64E), func(v int64) string { return strconv.FormatInt(v, 10) })

	register(lexical(cast.ToUintE), func(v uint) string { return strconv.FormatUint(uint64(v), 10) })
	register(lexical(cast.ToUint8E), func(v uint8) string { return strconv.FormatUint(uint64(v), 10) })
	register(lexical(cast.ToUint16E), func(v uint16) string { return strconv.FormatUint(uint64(v), 10) })
	register(lexical(cast.ToUint32E), func(v uint32) string { return strconv.FormatUint(uint64(v), 10) })
	register(lexical(cast.ToUint64E), func(v uint64) string { return strconv.FormatUint(v, 10) })

	register(lexical(cast.ToFloat32E), func(v float32) string { return strconv.FormatFloat(float64(v), 'g', -1, 32) })
	register(lexical(cast.ToFloat64E), func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) })

	register(parseRune, func(v Rune) string { return string(rune(v)) })

	register(parseBigInt, (*big.Int).String)
	register(decimal.NewFromString, decimal.Decimal.String)

	register(uuid.Parse, uuid.UUID.String)
	register(parseTime, formatTime)
	register(parseCarbon, formatCarbon)
	register(time.ParseDuration, time.Duration.String)
	register(semver.NewVersion, (*semver.Version).String)
	register(url.Parse, (*url.URL).String)
	register(netip.ParseAddr, netip.Addr.String)
	register(language.Parse, language.Tag.String)
}

func parseRune(s string) (Rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("expected a single character, got %q", s)
	}

	r, _ := utf8.DecodeRuneInString(s)

	return Rune(r), nil
}

func parseBigInt(s string) (*big.Int, error) {
	i, ok := new(big.Int).SetString(s, 10)

	if !ok {
		return nil, fmt.Errorf("invalid integer: %q", s)
	}

	return i, nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseTime accepts the storage layout and RFC 3339 forms directly, which
// preserves any explicit offset for round-tripping, and falls back to
// carbon for looser inputs. Forms without a zone are taken as UTC.
func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	c := carbon.Parse(s, carbon.UTC)

	if c.Error != nil {
		return time.Time{}, c.Error
	}

	return c.ToStdTime(), nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

func parseCarbon(s string) (carbon.Carbon, error) {
	t, err := parseTime(s)

	if err != nil {
		return carbon.Carbon{}, err
	}

	return carbon.CreateFromStdTime(t), nil
}

func formatCarbon(c carbon.Carbon) string {
	return formatTime(c.ToStdTime())
}

// Get looks up key and converts the stored text to T. Conversions resolve
// against the built-in catalog first and fall back to T implementing
// encoding.TextUnmarshaler. An absent key yields ErrKeyNotFound, text that
// is not a valid lexical form of T a *ConversionError, and a type with no
// conversion path a *UnsupportedTypeError.
func Get[T any](m *Map, key string) (T, error) {
	var zero T

	text, ok := m.entries.Get(key)

	if !ok {
		return zero, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}

	v, err := convertTo[T](text)

	if err != nil {
		var unsupported *UnsupportedTypeError

		if errors.As(err, &unsupported) {
			return zero, err
		}

		return zero, &ConversionError{Key: key, Type: typeOf[T](), Cause: err}
	}

	return v, nil
}

// TryGet is like Get but reports any failure, including an absent key, as a
// boolean instead of an error.
func TryGet[T any](m *Map, key string) (T, bool) {
	v, err := Get[T](m, key)

	if err != nil {
		var zero T

		return zero, false
	}

	return v, true
}

func convertTo[T any](text string) (T, error) {
	var zero T

	if c, ok := converters[typeOf[T]()]; ok {
		v, err := c.parse(text)

		if err != nil {
			return zero, err
		}

		return v.(T), nil
	}

	return unmarshalText[T](text)
}

// unmarshalText is the generic fallback for types outside the catalog that
// implement encoding.TextUnmarshaler, either on *T or, when T is itself a
// pointer, on T.
func unmarshalText[T any](text string) (T, error) {
	var zero T

	rt := typeOf[T]()
	target := rt

	if rt.Kind() == reflect.Pointer {
		target = rt.Elem()
	}

	pv := reflect.New(target)
	u, ok := pv.Interface().(encoding.TextUnmarshaler)

	if !ok {
		return zero, &UnsupportedTypeError{Type: rt}
	}

	if err := u.UnmarshalText([]byte(text)); err != nil {
		return zero, err
	}

	if rt.Kind() == reflect.Pointer {
		return pv.Interface().(T), nil
	}

	return pv.Elem().Interface().(T), nil
}

// Add stores value under key, overwriting any existing entry. The key must
// be non-empty and neither it nor the stringified value may contain the
// joiner or delimiter tokens. Timestamps are normalized to UTC before
// storage; types outside the catalog use encoding.TextMarshaler,
// fmt.Stringer, or the default formatting, in that order, and nil values
// store empty text. A failed Add leaves the map unchanged.
func Add[T any](m *Map, key string, value T) error {
	if err := m.validateKey(key); err != nil {
		return err
	}

	text, err := formatValue(value)

	if err != nil {
		return err
	}

	if err := m.validateValue(text); err != nil {
		return err
	}

	m.entries.Set(key, text)

	return nil
}

// Pair is a single key/value argument to AddRange.
type Pair[T any] struct {
	Key   string
	Value T
}

// AddRange applies Add to each pair in order and returns the number of
// entries applied. The first failure aborts the batch immediately;
// already-applied entries remain in the map.
func AddRange[T any](m *Map, pairs []Pair[T]) (int, error) {
	for i, pair := range pairs {
		if err := Add(m, pair.Key, pair.Value); err != nil {
			return i, err
		}
	}

	return len(pairs), nil
}

func formatValue[T any](value T) (string, error) {
	rv := reflect.ValueOf(value)

	if !rv.IsValid() {
		return "", nil
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return "", nil
		}
	}

	rt := typeOf[T]()

	if rt.Kind() == reflect.Interface {
		rt = rv.Type()
	}

	if c, ok := converters[rt]; ok && c.format != nil {
		return c.format(value), nil
	}

	// A non-nil pointer to a catalog type formats as its pointee, so
	// pointers can act as nullable values.
	if rt.Kind() == reflect.Pointer {
		if c, ok := converters[rt.Elem()]; ok && c.format != nil {
			return c.format(rv.Elem().Interface()), nil
		}
	}

	if tm, ok := any(value).(encoding.TextMarshaler); ok {
		b, err := tm.MarshalText()

		if err != nil {
			return "", fmt.Errorf("marshal value: %w", err)
		}

		return string(b), nil
	}

	if s, ok := any(value).(fmt.Stringer); ok {
		return s.String(), nil
	}

	return fmt.Sprint(value), nil
}
