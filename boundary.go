package superime

import "fmt"

// maxInnerSegmentLen is the largest byte length one packed boundary field
// can carry.
const maxInnerSegmentLen = 255

// EncodeLengths packs the four byte lengths of one inner segment into a
// single word:
//
//	key<<24 | value<<16 | contentKey<<8 | contentValue
//
// The packed layout is shared with stored learning entries; it must not
// change. Encoding fails when any length is outside [0, 255], and the
// returned word is then meaningless.
func EncodeLengths(keyLen, valueLen, contentKeyLen, contentValueLen int) (uint32, bool) {
	if keyLen < 0 || keyLen > maxInnerSegmentLen ||
		valueLen < 0 || valueLen > maxInnerSegmentLen ||
		contentKeyLen < 0 || contentKeyLen > maxInnerSegmentLen ||
		contentValueLen < 0 || contentValueLen > maxInnerSegmentLen {
		return 0, false
	}
	encoded := uint32(keyLen)<<24 | uint32(valueLen)<<16 |
		uint32(contentKeyLen)<<8 | uint32(contentValueLen)
	return encoded, true
}

// EncodeLengthsUnchecked is EncodeLengths for callers that have already
// bounded the lengths; a failed encode is silently discarded.
func EncodeLengthsUnchecked(keyLen, valueLen, contentKeyLen, contentValueLen int) uint32 {
	encoded, _ := EncodeLengths(keyLen, valueLen, contentKeyLen, contentValueLen)
	return encoded
}

// DecodeLengths unpacks a word produced by EncodeLengths.
func DecodeLengths(encoded uint32) (keyLen, valueLen, contentKeyLen, contentValueLen int) {
	keyLen = int(encoded >> 24)
	valueLen = int(encoded >> 16 & 0xff)
	contentKeyLen = int(encoded >> 8 & 0xff)
	contentValueLen = int(encoded & 0xff)
	return
}

// PushBackInnerSegmentBoundary appends one encoded inner segment to the
// candidate's boundary list. When any length is outside [0, 255] nothing is
// appended and the call reports false.
func (c *Candidate) PushBackInnerSegmentBoundary(keyLen, valueLen, contentKeyLen, contentValueLen int) bool {
	encoded, ok := EncodeLengths(keyLen, valueLen, contentKeyLen, contentValueLen)
	if !ok {
		return false
	}
	c.InnerSegmentBoundary = append(c.InnerSegmentBoundary, encoded)
	return true
}

// IsValid reports whether the boundary list is consistent with Key and
// Value: decoded key lengths must sum to len(Key) and decoded value lengths
// to len(Value). An empty list is always valid.
//
// Content lengths are deliberately unchecked. ContentKey and ContentValue
// describe the whole candidate and need not equal any combination of inner
// content spans.
func (c *Candidate) IsValid() bool {
	if len(c.InnerSegmentBoundary) == 0 {
		return true
	}
	var keySum, valueSum int
	for _, encoded := range c.InnerSegmentBoundary {
		keyLen, valueLen, _, _ := DecodeLengths(encoded)
		keySum += keyLen
		valueSum += valueLen
	}
	return keySum == len(c.Key) && valueSum == len(c.Value)
}

// InnerSegmentIterator walks the inner segments of a compound candidate
// front to back, exposing each unit's sub-spans of Key and Value without
// copying. It is forward-only; build a fresh iterator to walk again.
//
//	for it := NewInnerSegmentIterator(c); !it.Done(); it.Next() {
//		fmt.Println(it.Key(), it.Value())
//	}
//
// The iterator trusts the candidate: walking an inconsistent boundary list
// (see IsValid) panics once a sub-span leaves the string.
type InnerSegmentIterator struct {
	c           *Candidate
	keyOffset   int
	valueOffset int
	index       int
}

// NewInnerSegmentIterator positions a fresh iterator on the first inner
// segment of c. A candidate without boundary entries yields a Done
// iterator.
func NewInnerSegmentIterator(c *Candidate) *InnerSegmentIterator {
	return &InnerSegmentIterator{c: c}
}

// Done reports whether the iterator has moved past the last inner segment.
func (it *InnerSegmentIterator) Done() bool {
	return it.index >= len(it.c.InnerSegmentBoundary)
}

// Next advances past the current inner segment. Calling Next on a finished
// iterator panics.
func (it *InnerSegmentIterator) Next() {
	if it.Done() {
		panic("superime: Next on finished InnerSegmentIterator")
	}
	keyLen, valueLen, _, _ := DecodeLengths(it.c.InnerSegmentBoundary[it.index])
	it.keyOffset += keyLen
	it.valueOffset += valueLen
	it.index++
}

// Index returns the position of the current inner segment, starting at 0.
func (it *InnerSegmentIterator) Index() int {
	return it.index
}

// Key returns the current inner key span.
func (it *InnerSegmentIterator) Key() string {
	keyLen, _, _, _ := DecodeLengths(it.current())
	return it.c.Key[it.keyOffset : it.keyOffset+keyLen]
}

// Value returns the current inner value span.
func (it *InnerSegmentIterator) Value() string {
	_, valueLen, _, _ := DecodeLengths(it.current())
	return it.c.Value[it.valueOffset : it.valueOffset+valueLen]
}

// ContentKey returns the content part of the current inner key span.
func (it *InnerSegmentIterator) ContentKey() string {
	_, _, contentKeyLen, _ := DecodeLengths(it.current())
	return it.c.Key[it.keyOffset : it.keyOffset+contentKeyLen]
}

// ContentValue returns the content part of the current inner value span.
func (it *InnerSegmentIterator) ContentValue() string {
	_, _, _, contentValueLen := DecodeLengths(it.current())
	return it.c.Value[it.valueOffset : it.valueOffset+contentValueLen]
}

// FunctionalKey returns the functional part of the current inner key span,
// the bytes between the content key and the end of the inner key.
func (it *InnerSegmentIterator) FunctionalKey() string {
	keyLen, _, contentKeyLen, _ := DecodeLengths(it.current())
	return it.c.Key[it.keyOffset+contentKeyLen : it.keyOffset+keyLen]
}

// FunctionalValue returns the functional part of the current inner value
// span.
func (it *InnerSegmentIterator) FunctionalValue() string {
	_, valueLen, _, contentValueLen := DecodeLengths(it.current())
	return it.c.Value[it.valueOffset+contentValueLen : it.valueOffset+valueLen]
}

func (it *InnerSegmentIterator) current() uint32 {
	if it.Done() {
		panic(fmt.Sprintf("superime: InnerSegmentIterator read past entry %d", len(it.c.InnerSegmentBoundary)))
	}
	return it.c.InnerSegmentBoundary[it.index]
}
