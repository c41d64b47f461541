package superime

import (
	"fmt"
	"iter"
)

// Range is a read-through view over an ordered collection of owned elements.
// The segment list of Segments and the candidate lists of Segment hold
// stable pointers rather than contiguous values; Range hides that
// indirection so callers address elements directly.
//
// A Range is a value. Slicing operations return new views over the same
// backing collection and never copy or move elements. Views are invalidated
// by any structural change (insert, erase, clear) to the collection they
// were taken from.
type Range[T any] struct {
	items []*T
}

// NewRange builds a view over items. The slice header is captured as-is;
// the elements stay shared with the caller.
func NewRange[T any](items []*T) Range[T] {
	return Range[T]{items: items}
}

// Size returns the number of elements in view.
func (r Range[T]) Size() int {
	return len(r.items)
}

// Empty reports whether the view has no elements.
func (r Range[T]) Empty() bool {
	return len(r.items) == 0
}

// At returns the element at position i. It panics when i is out of range.
func (r Range[T]) At(i int) *T {
	if i < 0 || i >= len(r.items) {
		panic(fmt.Sprintf("superime: range index %d out of range [0, %d)", i, len(r.items)))
	}
	return r.items[i]
}

// Front returns the first element in view. It panics on an empty view.
func (r Range[T]) Front() *T {
	if len(r.items) == 0 {
		panic("superime: Front of empty range")
	}
	return r.items[0]
}

// Back returns the last element in view. It panics on an empty view.
func (r Range[T]) Back() *T {
	if len(r.items) == 0 {
		panic("superime: Back of empty range")
	}
	return r.items[len(r.items)-1]
}

// Drop returns the view without its first n elements. n is clamped to the
// view size; a negative n panics.
func (r Range[T]) Drop(n int) Range[T] {
	if n < 0 {
		panic(fmt.Sprintf("superime: Drop of negative count %d", n))
	}
	return Range[T]{items: r.items[min(n, len(r.items)):]}
}

// Take returns the view of the first n elements. n is clamped to the view
// size; a negative n panics.
func (r Range[T]) Take(n int) Range[T] {
	if n < 0 {
		panic(fmt.Sprintf("superime: Take of negative count %d", n))
	}
	return Range[T]{items: r.items[:min(n, len(r.items))]}
}

// TakeLast returns the view of the last n elements. n is clamped to the
// view size; a negative n panics.
func (r Range[T]) TakeLast(n int) Range[T] {
	if n < 0 {
		panic(fmt.Sprintf("superime: TakeLast of negative count %d", n))
	}
	return r.Drop(max(0, len(r.items)-n))
}

// Subrange returns the view of n elements starting at position i,
// equivalent to Drop(i).Take(n) including the clamping behavior of both.
func (r Range[T]) Subrange(i, n int) Range[T] {
	return r.Drop(i).Take(n)
}

// All iterates the view front to back, yielding positions within the view
// alongside the elements.
func (r Range[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i, x := range r.items {
			if !yield(i, x) {
				return
			}
		}
	}
}

// Backward iterates the view back to front.
func (r Range[T]) Backward() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := len(r.items) - 1; i >= 0; i-- {
			if !yield(i, r.items[i]) {
				return
			}
		}
	}
}
