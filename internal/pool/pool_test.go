package pool

import "testing"

type record struct {
	id    int
	label string
}

func TestPool_New(t *testing.T) {
	t.Run("default capacity", func(t *testing.T) {
		p := New[record](0)

		if p.Capacity() != DefaultCapacity {
			t.Errorf("expected capacity=%d, got %d", DefaultCapacity, p.Capacity())
		}
		if len(p.free) != DefaultCapacity {
			t.Errorf("expected %d free slots, got %d", DefaultCapacity, len(p.free))
		}
	})

	t.Run("custom capacity", func(t *testing.T) {
		p := New[record](4)

		if p.Capacity() != 4 {
			t.Errorf("expected capacity=4, got %d", p.Capacity())
		}
	})
}

func TestPool_Get(t *testing.T) {
	t.Run("distinct slab slots", func(t *testing.T) {
		p := New[record](4)

		seen := make(map[*record]bool)
		for i := 0; i < 4; i++ {
			x := p.Get()
			if seen[x] {
				t.Fatalf("slot %d handed out twice", i)
			}
			seen[x] = true
		}

		stats := p.Stats()
		if stats.PoolHits != 4 {
			t.Errorf("expected 4 pool hits, got %d", stats.PoolHits)
		}
		if stats.HeapFallbacks != 0 {
			t.Errorf("expected 0 heap fallbacks, got %d", stats.HeapFallbacks)
		}
	})

	t.Run("heap fallback past capacity", func(t *testing.T) {
		p := New[record](2)

		for i := 0; i < 2; i++ {
			p.Get()
		}
		x := p.Get()
		if x == nil {
			t.Fatal("fallback allocation returned nil")
		}
		if x.id != 0 || x.label != "" {
			t.Error("fallback object not zeroed")
		}

		stats := p.Stats()
		if stats.HeapFallbacks != 1 {
			t.Errorf("expected 1 heap fallback, got %d", stats.HeapFallbacks)
		}
		if stats.Live != 2 {
			t.Errorf("expected 2 live slots, got %d", stats.Live)
		}
	})

	t.Run("reset state on reuse", func(t *testing.T) {
		p := New[record](2)

		x := p.Get()
		x.id = 42
		x.label = "dirty"
		p.Put(x)

		y := p.Get()
		if y != x {
			t.Fatal("expected LIFO reuse of the released slot")
		}
		if y.id != 0 || y.label != "" {
			t.Errorf("slot not reset: %+v", *y)
		}
	})
}

func TestPool_Put(t *testing.T) {
	t.Run("recycles lifo", func(t *testing.T) {
		p := New[record](4)

		a := p.Get()
		b := p.Get()
		p.Put(a)
		p.Put(b)

		if got := p.Get(); got != b {
			t.Error("expected most recently released slot first")
		}
		if got := p.Get(); got != a {
			t.Error("expected earlier released slot second")
		}
	})

	t.Run("double release panics", func(t *testing.T) {
		p := New[record](2)

		x := p.Get()
		p.Put(x)

		defer func() {
			if recover() == nil {
				t.Error("expected panic on double release")
			}
		}()
		p.Put(x)
	})

	t.Run("heap object dropped silently", func(t *testing.T) {
		p := New[record](1)

		p.Get()
		heap := p.Get() // fallback
		p.Put(heap)
		p.Put(heap) // no slot bookkeeping, no panic

		stats := p.Stats()
		if stats.Puts != 2 {
			t.Errorf("expected 2 puts, got %d", stats.Puts)
		}
		if stats.Live != 1 {
			t.Errorf("expected 1 live slot, got %d", stats.Live)
		}
	})

	t.Run("foreign pointer dropped silently", func(t *testing.T) {
		p := New[record](2)

		p.Put(&record{id: 7})

		if len(p.free) != 2 {
			t.Errorf("free list corrupted: %d slots", len(p.free))
		}
	})
}

func TestPool_Reset(t *testing.T) {
	t.Run("releases all live slots", func(t *testing.T) {
		p := New[record](4)

		for i := 0; i < 4; i++ {
			x := p.Get()
			x.id = i + 1
		}
		p.Reset()

		stats := p.Stats()
		if stats.Live != 0 {
			t.Errorf("expected 0 live slots after reset, got %d", stats.Live)
		}
		if len(p.free) != 4 {
			t.Errorf("expected 4 free slots after reset, got %d", len(p.free))
		}

		for i := 0; i < 4; i++ {
			x := p.Get()
			if x.id != 0 {
				t.Errorf("slot %d not reset: id=%d", i, x.id)
			}
		}
	})

	t.Run("put after reset panics", func(t *testing.T) {
		p := New[record](2)

		x := p.Get()
		p.Reset()

		defer func() {
			if recover() == nil {
				t.Error("expected panic: slot was already released by Reset")
			}
		}()
		p.Put(x)
	})
}

func TestPool_WithReset(t *testing.T) {
	type holder struct {
		buf []int
	}

	p := New[holder](2, WithReset[holder](func(h *holder) {
		h.buf = h.buf[:0] // keep capacity across recycling
	}))

	x := p.Get()
	x.buf = append(x.buf, 1, 2, 3)
	kept := cap(x.buf)
	p.Put(x)

	y := p.Get()
	if y != x {
		t.Fatal("expected slot reuse")
	}
	if len(y.buf) != 0 {
		t.Errorf("expected empty buffer, got len=%d", len(y.buf))
	}
	if cap(y.buf) != kept {
		t.Errorf("expected capacity %d preserved, got %d", kept, cap(y.buf))
	}
}

func TestPool_Stats(t *testing.T) {
	p := New[record](2)

	a := p.Get()
	p.Get()
	p.Get() // fallback
	p.Put(a)

	stats := p.Stats()
	if stats.Gets != 3 {
		t.Errorf("expected 3 gets, got %d", stats.Gets)
	}
	if stats.PoolHits != 2 {
		t.Errorf("expected 2 hits, got %d", stats.PoolHits)
	}
	if stats.HeapFallbacks != 1 {
		t.Errorf("expected 1 fallback, got %d", stats.HeapFallbacks)
	}
	if stats.Puts != 1 {
		t.Errorf("expected 1 put, got %d", stats.Puts)
	}
	if stats.Live != 1 {
		t.Errorf("expected 1 live, got %d", stats.Live)
	}
}
