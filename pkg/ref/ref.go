// Package ref contains small helpers for working with pointers to values.
package ref

func New[T any](v T) *T {
	return &v
}
