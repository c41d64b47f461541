package superime

import (
	"fmt"
	"runtime"
	"strings"
)

// Dlog appends one line to the candidate's diagnostic trail, prefixed with
// the caller's file and line. Ranking and rewriting passes use it to leave
// a trace of why they touched a candidate; the trail travels with the
// candidate through copies and clones.
func (c *Candidate) Dlog(message string) {
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		file, line = "???", 0
	}
	if i := strings.LastIndexByte(file, '/'); i >= 0 {
		file = file[i+1:]
	}
	c.log += fmt.Sprintf("%s:%d %s\n", file, line, message)
}

// DebugLog returns the diagnostic trail collected by Dlog.
func (c *Candidate) DebugLog() string {
	return c.log
}

// String summarizes the candidate for debug dumps and test failures.
func (c *Candidate) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%q/%q", c.Key, c.Value)
	if c.ContentKey != c.Key || c.ContentValue != c.Value {
		fmt.Fprintf(&b, " content=%q/%q", c.ContentKey, c.ContentValue)
	}
	fmt.Fprintf(&b, " cost=%d wcost=%d scost=%d lid=%d rid=%d", c.Cost, c.WCost, c.StructureCost, c.Lid, c.Rid)
	if c.Attributes != 0 {
		fmt.Fprintf(&b, " attributes=%#x", uint32(c.Attributes))
	}
	if c.SourceInfo != SourceInfoNone {
		fmt.Fprintf(&b, " source=%#x", uint32(c.SourceInfo))
	}
	if len(c.InnerSegmentBoundary) > 0 {
		b.WriteString(" inner=")
		if c.IsValid() {
			for it := NewInnerSegmentIterator(c); !it.Done(); it.Next() {
				fmt.Fprintf(&b, "<%s,%s>", it.Key(), it.Value())
			}
		} else {
			b.WriteString("<inconsistent>")
		}
	}
	return b.String()
}

// String summarizes the segment and its candidates, one per line, meta
// candidates with their negative indices.
func (s *Segment) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "segment %q type=%s candidates=%d meta=%d",
		s.key, s.segmentType, len(s.candidates), len(s.metaCandidates))
	for i, c := range s.candidates {
		fmt.Fprintf(&b, "\n  %d: %s", i, c)
	}
	for i, c := range s.metaCandidates {
		fmt.Fprintf(&b, "\n  %d: %s", -i-1, c)
	}
	return b.String()
}

// String summarizes the collection: the partition sizes followed by every
// segment dump.
func (s *Segments) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "segments size=%d history=%d conversion=%d resized=%t reverts=%d",
		s.Size(), s.HistorySegmentsSize(), s.ConversionSegmentsSize(), s.resized, len(s.revertEntries))
	for i, seg := range s.segments {
		fmt.Fprintf(&b, "\n[%d] %s", i, strings.ReplaceAll(seg.String(), "\n", "\n  "))
	}
	return b.String()
}
