package superime

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/Team-Hmm/superIME/internal/pool"
	"github.com/Team-Hmm/superIME/lattice"
)

// defaultSegmentPoolCapacity sizes the collection's segment slab. A session
// cycles through segments much faster than an individual segment cycles
// through candidates, hence the larger default.
const defaultSegmentPoolCapacity = 32

// Segments is the ordered segment collection of one conversion session: a
// history prefix of already committed context followed by the conversion
// suffix currently being edited.
//
//	{h_0, ..., h_n-1, c_0, ..., c_m-1}
//
// The partition is not stored. It is recomputed on demand by scanning from
// the front for contiguous History or Submitted segments, so the collection
// can never hold a stale boundary. The flip side is a construction rule:
// appending a history-typed segment after a non-history one leaves the
// history accessors meaningless until the types are fixed up. Callers build
// history first.
//
// Segments is not safe for concurrent use. Clone produces a fully
// independent copy that other goroutines may own.
//
// The zero value is an empty collection with default configuration.
type Segments struct {
	maxHistorySegmentsSize int
	resized                bool

	segments      []*Segment
	segmentPool   *pool.Pool[Segment]
	poolCapacity  int
	revertEntries []*RevertEntry
	cachedLattice lattice.Lattice
	logger        *slog.Logger
}

// NewSegments returns an empty collection configured by opts.
func NewSegments(opts ...Option) *Segments {
	s := &Segments{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Segments) pool() *pool.Pool[Segment] {
	if s.segmentPool == nil {
		capacity := s.poolCapacity
		if capacity <= 0 {
			capacity = defaultSegmentPoolCapacity
		}
		// Clear instead of zeroing: a recycled segment keeps its candidate
		// slab, which is the point of pooling segments at all.
		s.segmentPool = pool.New(capacity, pool.WithReset(func(seg *Segment) {
			seg.Clear()
		}))
	}
	return s.segmentPool
}

// Size returns the total segment count, history and conversion together.
func (s *Segments) Size() int {
	return len(s.segments)
}

// Segment returns segment i in absolute position, ignoring the partition.
// It panics when i is out of range.
func (s *Segments) Segment(i int) *Segment {
	if i < 0 || i >= len(s.segments) {
		panic(fmt.Sprintf("superime: segment index %d out of range [0, %d)", i, len(s.segments)))
	}
	return s.segments[i]
}

// HistorySegmentsSize counts the leading History and Submitted segments.
func (s *Segments) HistorySegmentsSize() int {
	n := 0
	for _, seg := range s.segments {
		if !seg.segmentType.isHistory() {
			break
		}
		n++
	}
	return n
}

// ConversionSegmentsSize counts the segments open for conversion.
func (s *Segments) ConversionSegmentsSize() int {
	return s.Size() - s.HistorySegmentsSize()
}

// HistorySegment returns history segment i. History segments sit at the
// front, so this is Segment(i) with the history-relative name.
func (s *Segments) HistorySegment(i int) *Segment {
	return s.Segment(i)
}

// ConversionSegment returns conversion segment i, counted from the
// partition point: ConversionSegment(0) is Segment(HistorySegmentsSize()).
// It panics when the absolute position is out of range.
func (s *Segments) ConversionSegment(i int) *Segment {
	return s.Segment(i + s.HistorySegmentsSize())
}

// All returns a view over every segment in order.
func (s *Segments) All() Range[Segment] {
	return NewRange(s.segments)
}

// HistorySegments returns the view over the history prefix.
func (s *Segments) HistorySegments() Range[Segment] {
	return s.All().Take(s.HistorySegmentsSize())
}

// ConversionSegments returns the view over the conversion suffix.
func (s *Segments) ConversionSegments() Range[Segment] {
	return s.All().Drop(s.HistorySegmentsSize())
}

// PushBackSegment appends a cleared segment and returns it.
func (s *Segments) PushBackSegment() *Segment {
	seg := s.pool().Get()
	s.segments = append(s.segments, seg)
	return seg
}

// AddSegment appends a cleared segment and returns it.
func (s *Segments) AddSegment() *Segment {
	return s.PushBackSegment()
}

// PushFrontSegment prepends a cleared segment and returns it.
func (s *Segments) PushFrontSegment() *Segment {
	return s.InsertSegment(0)
}

// InsertSegment places a cleared segment at position i, shifting later
// segments back, and returns it. It panics when i is outside [0, Size()].
func (s *Segments) InsertSegment(i int) *Segment {
	if i < 0 || i > len(s.segments) {
		panic(fmt.Sprintf("superime: segment insert position %d out of range [0, %d]", i, len(s.segments)))
	}
	seg := s.pool().Get()
	s.segments = slices.Insert(s.segments, i, seg)
	return seg
}

// PopFrontSegment erases the first segment. It panics on an empty
// collection.
func (s *Segments) PopFrontSegment() {
	s.EraseSegment(0)
}

// PopBackSegment erases the last segment. It panics on an empty collection.
func (s *Segments) PopBackSegment() {
	s.EraseSegment(len(s.segments) - 1)
}

// EraseSegment removes and destroys segment i. Candidates owned by the
// segment die with it; following segments keep their identity and shift one
// position forward. It panics when i is out of range.
func (s *Segments) EraseSegment(i int) {
	if i < 0 || i >= len(s.segments) {
		panic(fmt.Sprintf("superime: segment index %d out of range [0, %d)", i, len(s.segments)))
	}
	s.pool().Put(s.segments[i])
	s.segments = slices.Delete(s.segments, i, i+1)
}

// EraseSegments removes and destroys the n segments starting at i. It
// panics when [i, i+n) does not lie fully inside the collection.
func (s *Segments) EraseSegments(i, n int) {
	if i < 0 || n < 0 || i+n > len(s.segments) {
		panic(fmt.Sprintf("superime: segment range [%d, %d) out of range [0, %d)", i, i+n, len(s.segments)))
	}
	p := s.pool()
	for _, seg := range s.segments[i : i+n] {
		p.Put(seg)
	}
	s.segments = slices.Delete(s.segments, i, i+n)
}

// ClearHistorySegments destroys the history prefix. The remaining
// conversion segments keep their identity; only their absolute positions
// renumber.
func (s *Segments) ClearHistorySegments() {
	s.EraseSegments(0, s.HistorySegmentsSize())
}

// ClearConversionSegments destroys the conversion suffix and drops the
// resized flag, since the segmentation it described is gone.
func (s *Segments) ClearConversionSegments() {
	h := s.HistorySegmentsSize()
	s.EraseSegments(h, len(s.segments)-h)
	s.resized = false
}

// ClearSegments destroys every segment, releasing the whole slab at once.
func (s *Segments) ClearSegments() {
	if s.segmentPool != nil {
		s.segmentPool.Reset()
	}
	clear(s.segments)
	s.segments = s.segments[:0]
	s.resized = false
}

// Clear resets the collection for a fresh session: segments, revert log and
// the cached lattice. Configuration (logger, capacities, history cap) is
// kept.
func (s *Segments) Clear() {
	s.ClearSegments()
	s.ClearRevertEntries()
	s.cachedLattice.Clear()
	if s.logger != nil {
		s.logger.Debug("segments cleared")
	}
}

// HistoryKey concatenates, in segment order, the keys of the last n history
// segments. A negative n means all of them; n larger than the prefix is
// clamped.
func (s *Segments) HistoryKey(n int) string {
	var b strings.Builder
	for _, seg := range s.historyTail(n) {
		b.WriteString(seg.key)
	}
	return b.String()
}

// HistoryValue concatenates, in segment order, the committed values of the
// last n history segments: for each segment the value of its top candidate.
// Segments without candidates contribute nothing. A negative n means all of
// them.
func (s *Segments) HistoryValue(n int) string {
	var b strings.Builder
	for _, seg := range s.historyTail(n) {
		if len(seg.candidates) > 0 {
			b.WriteString(seg.candidates[0].Value)
		}
	}
	return b.String()
}

// historyTail returns the last n history segments, all of them when n is
// negative or exceeds the prefix.
func (s *Segments) historyTail(n int) []*Segment {
	h := s.HistorySegmentsSize()
	start := 0
	if n >= 0 && n < h {
		start = h - n
	}
	return s.segments[start:h]
}

// MaxHistorySegmentsSize returns the history retention cap. The collection
// stores the cap; enforcing it is the trimming policy of the caller.
func (s *Segments) MaxHistorySegmentsSize() int {
	return s.maxHistorySegmentsSize
}

// SetMaxHistorySegmentsSize replaces the history retention cap. No trimming
// happens here.
func (s *Segments) SetMaxHistorySegmentsSize(n int) {
	s.maxHistorySegmentsSize = n
}

// Resized reports whether the user manually adjusted segment boundaries in
// the current conversion. While set, automatic resegmentation is suppressed
// by convention.
func (s *Segments) Resized() bool {
	return s.resized
}

// SetResized records or clears the manual-resegmentation mark.
func (s *Segments) SetResized(resized bool) {
	s.resized = resized
}

// PushBackRevertEntry appends a zero revert entry and returns it for the
// caller to fill. The log is append-only: entries are never reordered and
// only ever cleared as a whole.
func (s *Segments) PushBackRevertEntry() *RevertEntry {
	e := &RevertEntry{}
	s.revertEntries = append(s.revertEntries, e)
	if s.logger != nil {
		s.logger.Debug("revert entry appended", "entries", len(s.revertEntries))
	}
	return e
}

// RevertEntriesSize returns the number of logged revert entries.
func (s *Segments) RevertEntriesSize() int {
	return len(s.revertEntries)
}

// RevertEntry returns revert entry i in log order. It panics when i is out
// of range.
func (s *Segments) RevertEntry(i int) *RevertEntry {
	if i < 0 || i >= len(s.revertEntries) {
		panic(fmt.Sprintf("superime: revert entry index %d out of range [0, %d)", i, len(s.revertEntries)))
	}
	return s.revertEntries[i]
}

// ClearRevertEntries drops the whole revert log.
func (s *Segments) ClearRevertEntries() {
	clear(s.revertEntries)
	s.revertEntries = s.revertEntries[:0]
}

// CachedLattice returns the lattice owned by the collection. The converter
// reuses it across the conversions of one session to amortize node
// allocation; its contents are scratch state, stale by convention once the
// segments change.
func (s *Segments) CachedLattice() *lattice.Lattice {
	return &s.cachedLattice
}

// PoolStats reports segment slab usage for capacity tuning.
type PoolStats struct {
	Gets          uint64
	PoolHits      uint64
	HeapFallbacks uint64
	Puts          uint64
	Live          int
}

// PoolStats returns a snapshot of the segment pool counters.
func (s *Segments) PoolStats() PoolStats {
	if s.segmentPool == nil {
		return PoolStats{}
	}
	st := s.segmentPool.Stats()
	return PoolStats{
		Gets:          st.Gets,
		PoolHits:      st.PoolHits,
		HeapFallbacks: st.HeapFallbacks,
		Puts:          st.Puts,
		Live:          st.Live,
	}
}

// Clone returns a deep copy of the collection: segments with all their
// candidates, the revert log, flags and configuration. The clone's cached
// lattice starts empty; lattice contents are scratch state bound to the
// original's conversion in flight.
func (s *Segments) Clone() *Segments {
	clone := &Segments{
		maxHistorySegmentsSize: s.maxHistorySegmentsSize,
		resized:                s.resized,
		poolCapacity:           s.poolCapacity,
		logger:                 s.logger,
	}
	for _, seg := range s.segments {
		clone.PushBackSegment().CopyFrom(seg)
	}
	if len(s.revertEntries) > 0 {
		clone.revertEntries = make([]*RevertEntry, 0, len(s.revertEntries))
		for _, e := range s.revertEntries {
			entry := *e
			clone.revertEntries = append(clone.revertEntries, &entry)
		}
	}
	return clone
}
