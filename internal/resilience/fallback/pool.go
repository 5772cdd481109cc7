package fallback

import (
	"errors"
	"math/rand/v2"
)

// ErrEmptyPool means a feature was configured without fallback data.
var ErrEmptyPool = errors.New("fallback: empty fallback pool")

// Pool is an immutable, non-empty list of fallback values.
type Pool[T any] struct {
	items []T
}

// NewPool copies items into a Pool. It fails with ErrEmptyPool when items is empty.
func NewPool[T any](items []T) (Pool[T], error) {
	if len(items) == 0 {
		return Pool[T]{}, ErrEmptyPool
	}
	cp := make([]T, len(items))
	copy(cp, items)
	return Pool[T]{items: cp}, nil
}

// Len returns the number of values in the pool.
func (p Pool[T]) Len() int {
	return len(p.items)
}

// At returns the i-th value.
func (p Pool[T]) At(i int) T {
	return p.items[i]
}

// Random returns a uniformly chosen value. intn must return a value in [0, n);
// nil means math/rand/v2.IntN.
func (p Pool[T]) Random(intn func(int) int) (T, error) {
	if len(p.items) == 0 {
		var zero T
		return zero, ErrEmptyPool
	}
	if intn == nil {
		intn = rand.IntN
	}
	return p.items[intn(len(p.items))], nil
}
