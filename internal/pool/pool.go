// Package pool provides a fixed-capacity object pool with transparent heap
// fallback, used to recycle the small structs the conversion loop churns
// through (segments, candidates, lattice nodes).
//
// # Memory Model
//
// A pool owns one slab: a single []T allocated up front. Get hands out slab
// slots while any are free and falls back to plain heap allocations once the
// slab is exhausted, so callers never observe a capacity limit. Slab
// addresses are stable for the lifetime of the pool; the slab never grows or
// moves.
//
// # Concurrency Model
//
// Pool is not safe for concurrent use. Every owner in this module confines
// its pool to a single goroutine.
package pool

import (
	"fmt"
	"unsafe"

	"github.com/bits-and-blooms/bitset"
)

// DefaultCapacity is used when New is given a non-positive capacity.
const DefaultCapacity = 16

// Stats tracks pool usage counters.
//
// Note on semantics:
//   - Gets/Puts: cumulative call counts
//   - PoolHits: Gets served from the slab
//   - HeapFallbacks: Gets served by the heap because the slab was full
//   - Live: slab slots currently handed out
type Stats struct {
	Gets          uint64
	PoolHits      uint64
	HeapFallbacks uint64
	Puts          uint64
	Live          int
}

// Option is a configuration option for Pool.
type Option[T any] func(*Pool[T])

// WithReset sets the function that returns an object to its pristine state.
// It runs when a slot is released, so Get always hands out reset objects.
// The default assigns the zero value.
func WithReset[T any](reset func(*T)) Option[T] {
	return func(p *Pool[T]) {
		p.reset = reset
	}
}

// Pool hands out *T values, preferring recycled slab slots over fresh heap
// allocations.
type Pool[T any] struct {
	slab  []T
	free  []int32 // free slab slots, used LIFO
	live  *bitset.BitSet
	reset func(*T)
	stats Stats
}

// New creates a pool with the given slab capacity.
func New[T any](capacity int, opts ...Option[T]) *Pool[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	p := &Pool[T]{
		slab: make([]T, capacity),
		free: make([]int32, 0, capacity),
		live: bitset.New(uint(capacity)),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.reset == nil {
		p.reset = func(x *T) {
			var zero T
			*x = zero
		}
	}

	// LIFO order: slot 0 is handed out first.
	for i := capacity - 1; i >= 0; i-- {
		p.free = append(p.free, int32(i))
	}

	return p
}

// Get returns a reset object. Slab slots are preferred; once the slab is
// exhausted the object is heap-allocated instead and the garbage collector
// reclaims it after release.
func (p *Pool[T]) Get() *T {
	p.stats.Gets++

	if n := len(p.free); n > 0 {
		i := p.free[n-1]
		p.free = p.free[:n-1]
		p.live.Set(uint(i))
		p.stats.PoolHits++
		p.stats.Live++
		return &p.slab[i]
	}

	p.stats.HeapFallbacks++
	return new(T)
}

// Put releases an object obtained from Get. Slab objects are reset and go
// back on the free list; heap-allocated objects are simply dropped. Putting
// a slab object twice panics, because the slot may already belong to another
// caller.
func (p *Pool[T]) Put(x *T) {
	p.stats.Puts++

	i, ok := p.slot(x)
	if !ok {
		return
	}
	if !p.live.Test(i) {
		panic(fmt.Sprintf("pool: double release of slot %d", i))
	}

	p.reset(x)
	p.live.Clear(i)
	p.free = append(p.free, int32(i))
	p.stats.Live--
}

// Reset releases every live slab slot at once, without individual Puts.
// Outstanding heap-allocated objects are unaffected. The free list is
// rebuilt in creation order, so a reset pool hands out slot 0 first again.
func (p *Pool[T]) Reset() {
	for i, ok := p.live.NextSet(0); ok; i, ok = p.live.NextSet(i + 1) {
		p.reset(&p.slab[i])
	}
	p.live.ClearAll()

	p.free = p.free[:0]
	for i := len(p.slab) - 1; i >= 0; i-- {
		p.free = append(p.free, int32(i))
	}
	p.stats.Live = 0
}

// Capacity returns the slab capacity.
func (p *Pool[T]) Capacity() int {
	return len(p.slab)
}

// Stats returns a snapshot of the usage counters.
func (p *Pool[T]) Stats() Stats {
	return p.stats
}

// String summarizes pool usage.
func (p *Pool[T]) String() string {
	return fmt.Sprintf("Pool{capacity: %d, live: %d, gets: %d, hits: %d, fallbacks: %d}",
		len(p.slab), p.stats.Live, p.stats.Gets, p.stats.PoolHits, p.stats.HeapFallbacks)
}

// slot maps x back to its slab index. It reports false for heap-allocated
// objects. The slab is a single allocation, so a pointer belongs to it
// exactly when it sits at a T-sized offset from the slab base.
func (p *Pool[T]) slot(x *T) (uint, bool) {
	base := uintptr(unsafe.Pointer(&p.slab[0]))
	addr := uintptr(unsafe.Pointer(x))
	size := unsafe.Sizeof(p.slab[0])

	if addr < base || addr >= base+size*uintptr(len(p.slab)) {
		return 0, false
	}
	return uint((addr - base) / size), true
}
