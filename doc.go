// Package superime provides the conversion session model for a
// lattice-based Japanese input method engine.
//
// A session is a Segments collection: a history prefix of segments the user
// already committed, followed by the conversion segments currently being
// edited. Each Segment covers one span of reading (the key) and owns an
// ordered, cost-ranked list of Candidate records — the engine's proposed
// surface forms for that span — plus a small side list of meta candidates
// (the standard transliterations), addressed by negative indices.
//
// The package is deliberately passive: the converter fills the model from
// its lattice search, ranking and learning passes mutate it in place, and
// the rendering layer reads it back out. No search, scoring or IO happens
// here.
//
// # Quick Start
//
//	segments := superime.NewSegments()
//
//	seg := segments.AddSegment()
//	seg.SetKey("きょうは")
//
//	c := seg.AddCandidate()
//	c.Key = "きょうは"
//	c.Value = "今日は"
//
//	for _, seg := range segments.ConversionSegments().All() {
//	    fmt.Println(seg.Key())
//	}
//
// # Memory Model
//
// Segments and ordinary candidates are recycled through fixed slab pools
// with transparent heap fallback, keeping the conversion hot path free of
// per-element allocations. Every *Segment and *Candidate handed out stays
// at a stable address until it is erased or its container cleared; erasing
// one element never moves another.
//
// # Concurrency Model
//
// All types assume single-goroutine access; there is no internal locking.
// Clone returns a fully independent deep copy that another goroutine may
// own (speculative conversion runs on clones for exactly this reason).
//
// # Compound Candidates
//
// A candidate built from several lexical units records the split in its
// InnerSegmentBoundary: one packed word of four byte lengths per unit (see
// EncodeLengths). InnerSegmentIterator walks the units without copying:
//
//	for it := superime.NewInnerSegmentIterator(c); !it.Done(); it.Next() {
//	    fmt.Println(it.Key(), it.Value())
//	}
package superime
