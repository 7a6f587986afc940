package livechat

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// NonEmpty is an immutable sequence holding at least one element.
//
// The zero value is not usable. Values come from NewNonEmpty, NonEmptyOf or
// from decoding.
type NonEmpty[T any] struct {
	items []T
}

// NewNonEmpty copies items into a NonEmpty, failing with ErrEmptySequence when
// items is empty.
func NewNonEmpty[T any](items []T) (NonEmpty[T], error) {
	if len(items) == 0 {
		return NonEmpty[T]{}, ErrEmptySequence
	}
	cp := make([]T, len(items))
	copy(cp, items)
	return NonEmpty[T]{items: cp}, nil
}

// NonEmptyOf builds a NonEmpty from its first element and any others.
func NonEmptyOf[T any](first T, rest ...T) NonEmpty[T] {
	items := make([]T, 0, len(rest)+1)
	items = append(items, first)
	items = append(items, rest...)
	return NonEmpty[T]{items: items}
}

// First returns the first element in source order.
func (n NonEmpty[T]) First() T {
	return n.items[0]
}

// Rest returns a copy of every element after the first.
func (n NonEmpty[T]) Rest() []T {
	rest := make([]T, len(n.items)-1)
	copy(rest, n.items[1:])
	return rest
}

// At returns the i-th element.
func (n NonEmpty[T]) At(i int) T {
	return n.items[i]
}

// Len is always at least 1.
func (n NonEmpty[T]) Len() int {
	return len(n.items)
}

// All returns a copy of all elements.
func (n NonEmpty[T]) All() []T {
	cp := make([]T, len(n.items))
	copy(cp, n.items)
	return cp
}

// MarshalJSON encodes the elements as a JSON array.
func (n NonEmpty[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.items)
}
