package superime

import (
	"fmt"
	"slices"

	"github.com/Team-Hmm/superIME/internal/pool"
	"github.com/Team-Hmm/superIME/kana"
)

// candidatePoolCapacity sizes the per-segment candidate slab. Conversion
// rarely keeps more candidates per segment than this; the rest falls back
// to the heap.
const candidatePoolCapacity = 16

// SegmentType classifies how a segment participates in conversion.
type SegmentType int32

const (
	// Free segments are fully open to automatic (re)segmentation and
	// (re)conversion.
	Free SegmentType = iota
	// FixedBoundary segments keep their key span; the value may still
	// change.
	FixedBoundary
	// FixedValue segments keep both their key span and their chosen value.
	FixedValue
	// Submitted segments were already submitted to the application.
	Submitted
	// History segments carry previously committed context. They are hidden
	// from the user-facing candidate list.
	History
)

// String returns the classification name used in debug dumps.
func (t SegmentType) String() string {
	switch t {
	case Free:
		return "FREE"
	case FixedBoundary:
		return "FIXED_BOUNDARY"
	case FixedValue:
		return "FIXED_VALUE"
	case Submitted:
		return "SUBMITTED"
	case History:
		return "HISTORY"
	default:
		return fmt.Sprintf("SegmentType(%d)", int32(t))
	}
}

// isHistory reports whether the segment belongs to the history prefix of a
// collection.
func (t SegmentType) isHistory() bool {
	return t == History || t == Submitted
}

// Segment is one contiguous span of reading together with its ranked
// candidate interpretations.
//
// Ordinary candidates form an ordered list addressed by indices >= 0,
// conventionally sorted by ascending Cost. A separate side list of meta
// candidates (transliterations of the key) is addressed through the same
// accessor by negative indices: -1 is the first meta candidate, -2 the
// second, and so on.
//
// The segment exclusively owns every candidate it holds. A *Candidate
// handed out by an accessor stays valid, at a stable address, until that
// candidate is erased or the list is cleared; erasing one candidate never
// moves another. Ordinary candidates are recycled through a per-segment
// slab pool, so the hot conversion loop allocates only when a segment
// outgrows the slab.
//
// The zero value is an empty Free segment ready for use.
type Segment struct {
	// RemovedCandidates collects candidates dropped by ranking passes so
	// debug tooling can show why something disappeared. The model never
	// reads it; callers own the contents.
	RemovedCandidates []*Candidate

	segmentType    SegmentType
	key            string
	candidates     []*Candidate
	metaCandidates []*Candidate
	pool           *pool.Pool[Candidate]
}

func (s *Segment) candidatePool() *pool.Pool[Candidate] {
	if s.pool == nil {
		s.pool = pool.New[Candidate](candidatePoolCapacity)
	}
	return s.pool
}

// Type returns the segment classification.
func (s *Segment) Type() SegmentType {
	return s.segmentType
}

// SetType reclassifies the segment.
func (s *Segment) SetType(t SegmentType) {
	s.segmentType = t
}

// Key returns the reading this segment covers. While a partial suggestion
// is in flight the key may be shorter than the composed span; the segment
// itself cannot tell, only the surrounding composer state can.
func (s *Segment) Key() string {
	return s.key
}

// SetKey replaces the reading this segment covers.
func (s *Segment) SetKey(key string) {
	s.key = key
}

// CandidatesSize returns the number of ordinary candidates.
func (s *Segment) CandidatesSize() int {
	return len(s.candidates)
}

// MetaCandidatesSize returns the number of meta candidates.
func (s *Segment) MetaCandidatesSize() int {
	return len(s.metaCandidates)
}

// IsValidIndex reports whether i addresses an existing candidate in the
// signed index space: ordinary candidates for i >= 0, meta candidates for
// i < 0 where -1 maps to meta candidate 0.
func (s *Segment) IsValidIndex(i int) bool {
	if i < 0 {
		return -i-1 < len(s.metaCandidates)
	}
	return i < len(s.candidates)
}

// Candidate returns the candidate addressed by the signed index i (see
// IsValidIndex). It panics on an out-of-range index; gate untrusted indices
// with IsValidIndex.
func (s *Segment) Candidate(i int) *Candidate {
	if i < 0 {
		return s.MetaCandidate(-i - 1)
	}
	if i >= len(s.candidates) {
		panic(fmt.Sprintf("superime: candidate index %d out of range [0, %d)", i, len(s.candidates)))
	}
	return s.candidates[i]
}

// Candidates returns a view over the ordinary candidate list. The view is
// invalidated by any insert, erase or clear on the segment.
func (s *Segment) Candidates() Range[Candidate] {
	return NewRange(s.candidates)
}

// MetaCandidate returns meta candidate i, counted from 0 in storage order.
// It panics on an out-of-range index.
func (s *Segment) MetaCandidate(i int) *Candidate {
	if i < 0 || i >= len(s.metaCandidates) {
		panic(fmt.Sprintf("superime: meta candidate index %d out of range [0, %d)", i, len(s.metaCandidates)))
	}
	return s.metaCandidates[i]
}

// MetaCandidates returns a view over the meta candidate list.
func (s *Segment) MetaCandidates() Range[Candidate] {
	return NewRange(s.metaCandidates)
}

// PushBackCandidate appends a cleared ordinary candidate and returns it.
func (s *Segment) PushBackCandidate() *Candidate {
	c := s.candidatePool().Get()
	s.candidates = append(s.candidates, c)
	return c
}

// AddCandidate appends a cleared ordinary candidate and returns it. It is
// PushBackCandidate under the name the converter code reads best with.
func (s *Segment) AddCandidate() *Candidate {
	return s.PushBackCandidate()
}

// PushFrontCandidate prepends a cleared ordinary candidate and returns it.
func (s *Segment) PushFrontCandidate() *Candidate {
	return s.InsertCandidate(0)
}

// InsertCandidate places a cleared ordinary candidate at position i,
// shifting later candidates one position back, and returns it. It panics
// when i is outside [0, CandidatesSize()].
func (s *Segment) InsertCandidate(i int) *Candidate {
	s.checkInsertPosition(i)
	c := s.candidatePool().Get()
	s.candidates = slices.Insert(s.candidates, i, c)
	return c
}

// InsertCandidates transfers ownership of externally built candidates into
// the list at position i, preserving their relative order. The segment owns
// them from here on; callers must not keep using the passed pointers for
// their own bookkeeping. It panics when i is outside [0, CandidatesSize()].
func (s *Segment) InsertCandidates(i int, candidates ...*Candidate) {
	s.checkInsertPosition(i)
	s.candidates = slices.Insert(s.candidates, i, candidates...)
}

func (s *Segment) checkInsertPosition(i int) {
	if i < 0 || i > len(s.candidates) {
		panic(fmt.Sprintf("superime: candidate insert position %d out of range [0, %d]", i, len(s.candidates)))
	}
}

// PopFrontCandidate erases the first ordinary candidate. It panics on an
// empty list.
func (s *Segment) PopFrontCandidate() {
	s.EraseCandidate(0)
}

// PopBackCandidate erases the last ordinary candidate. It panics on an
// empty list.
func (s *Segment) PopBackCandidate() {
	s.EraseCandidate(len(s.candidates) - 1)
}

// EraseCandidate removes and destroys ordinary candidate i. The remaining
// candidates keep their addresses; the destroyed record may be recycled by
// a later insertion. It panics when i is out of range.
func (s *Segment) EraseCandidate(i int) {
	if i < 0 || i >= len(s.candidates) {
		panic(fmt.Sprintf("superime: candidate index %d out of range [0, %d)", i, len(s.candidates)))
	}
	s.candidatePool().Put(s.candidates[i])
	s.candidates = slices.Delete(s.candidates, i, i+1)
}

// EraseCandidates removes and destroys the n ordinary candidates starting
// at i. It panics when [i, i+n) does not lie fully inside the list.
func (s *Segment) EraseCandidates(i, n int) {
	if i < 0 || n < 0 || i+n > len(s.candidates) {
		panic(fmt.Sprintf("superime: candidate range [%d, %d) out of range [0, %d)", i, i+n, len(s.candidates)))
	}
	p := s.candidatePool()
	for _, c := range s.candidates[i : i+n] {
		p.Put(c)
	}
	s.candidates = slices.Delete(s.candidates, i, i+n)
}

// ClearCandidates removes and destroys every ordinary candidate, releasing
// the whole slab at once. Meta candidates are unaffected.
func (s *Segment) ClearCandidates() {
	if s.pool != nil {
		s.pool.Reset()
	}
	clear(s.candidates)
	s.candidates = s.candidates[:0]
}

// MoveCandidate moves the ordinary candidate at oldIndex to newIndex,
// shifting the candidates in between. The move preserves the identity of
// every record: nothing is allocated, destroyed or copied, so held
// *Candidate pointers stay valid. oldIndex == newIndex is a no-op.
//
// A negative oldIndex instead promotes the addressed meta candidate: a copy
// of it is inserted into the ordinary list at newIndex, leaving the meta
// list unchanged.
//
// Indices outside the signed candidate space panic.
func (s *Segment) MoveCandidate(oldIndex, newIndex int) {
	if oldIndex < 0 {
		meta := s.Candidate(oldIndex)
		s.InsertCandidate(newIndex).CopyFrom(meta)
		return
	}
	if oldIndex >= len(s.candidates) {
		panic(fmt.Sprintf("superime: candidate index %d out of range [0, %d)", oldIndex, len(s.candidates)))
	}
	if newIndex < 0 || newIndex >= len(s.candidates) {
		panic(fmt.Sprintf("superime: candidate index %d out of range [0, %d)", newIndex, len(s.candidates)))
	}
	if oldIndex == newIndex {
		return
	}

	c := s.candidates[oldIndex]
	s.candidates = slices.Delete(s.candidates, oldIndex, oldIndex+1)
	s.candidates = slices.Insert(s.candidates, newIndex, c)
}

// AddMetaCandidate appends a cleared meta candidate and returns it. Meta
// candidates are few and long-lived, so they are allocated directly rather
// than through the slab.
func (s *Segment) AddMetaCandidate() *Candidate {
	c := &Candidate{}
	s.metaCandidates = append(s.metaCandidates, c)
	return c
}

// ClearMetaCandidates destroys every meta candidate.
func (s *Segment) ClearMetaCandidates() {
	clear(s.metaCandidates)
	s.metaCandidates = s.metaCandidates[:0]
}

// FillMetaCandidates rebuilds the standard transliteration candidates for
// the current key: hiragana, katakana, half-width, full-width and
// half-width katakana, in that order, so index -1 always addresses the
// hiragana form. The transliterations are derived from the reading text
// alone; costs and connection ids are left for the ranking pass to fill.
func (s *Segment) FillMetaCandidates() {
	s.ClearMetaCandidates()

	key := s.key
	katakana := kana.HiraganaToKatakana(key)
	values := [...]string{
		key,
		katakana,
		kana.ToHalfWidth(key),
		kana.ToFullWidth(key),
		kana.ToHalfWidth(katakana),
	}

	for _, v := range values {
		c := s.AddMetaCandidate()
		c.Key = key
		c.Value = v
		c.ContentKey = key
		c.ContentValue = v
		c.Attributes |= NoVariantsExpansion | NoExtraDescription
	}
}

// Clear resets the segment to an empty Free segment: both candidate lists
// are destroyed, the key is dropped and the debug trail emptied. The
// candidate slab is kept for reuse.
func (s *Segment) Clear() {
	s.ClearCandidates()
	s.ClearMetaCandidates()
	s.key = ""
	s.segmentType = Free
	s.RemovedCandidates = nil
}

// Clone returns a deep copy of the segment. Every candidate, ordinary and
// meta, is copied into storage owned by the clone; the two segments share
// nothing afterwards.
func (s *Segment) Clone() *Segment {
	clone := &Segment{}
	clone.CopyFrom(s)
	return clone
}

// CopyFrom replaces the contents of s with a deep copy of src.
func (s *Segment) CopyFrom(src *Segment) {
	if s == src {
		return
	}

	s.Clear()
	s.segmentType = src.segmentType
	s.key = src.key

	for _, c := range src.candidates {
		s.PushBackCandidate().CopyFrom(c)
	}
	for _, c := range src.metaCandidates {
		s.AddMetaCandidate().CopyFrom(c)
	}
	if len(src.RemovedCandidates) > 0 {
		s.RemovedCandidates = make([]*Candidate, 0, len(src.RemovedCandidates))
		for _, c := range src.RemovedCandidates {
			s.RemovedCandidates = append(s.RemovedCandidates, c.Clone())
		}
	}
}
