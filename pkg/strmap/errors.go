package strmap

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrEmptyJoiner    = errors.New("joiner must not be empty")
	ErrEmptyDelimiter = errors.New("delimiter must not be empty")
	ErrMalformedPair  = errors.New("malformed pair")
	ErrEmptyKey       = errors.New("key must not be empty or whitespace")
	ErrInvalidKey     = errors.New("key must not contain the joiner or delimiter")
	ErrInvalidValue   = errors.New("value must not contain the joiner or delimiter")
	ErrKeyNotFound    = errors.New("key not found")
)

// ConversionError occurs when a stored value is not a valid lexical form of
// the requested type.
type ConversionError struct {
	Key   string
	Type  reflect.Type
	Cause error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert value of %q to %s: %s", e.Key, e.Type, e.Cause)
}

func (e *ConversionError) Unwrap() error {
	return e.Cause
}

// UnsupportedTypeError occurs when the requested type has no registered
// conversion and does not implement encoding.TextUnmarshaler.
type UnsupportedTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("no conversion available for type %s", e.Type)
}
