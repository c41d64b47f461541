package superime

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeLengths(t *testing.T) {
	tests := []struct {
		name                   string
		key, value, cKey, cVal int
		want                   uint32
		ok                     bool
	}{
		{"zeros", 0, 0, 0, 0, 0, true},
		{"distinct fields", 1, 2, 3, 4, 0x01020304, true},
		{"max", 255, 255, 255, 255, 0xffffffff, true},
		{"key too long", 256, 0, 0, 0, 0, false},
		{"value too long", 0, 256, 0, 0, 0, false},
		{"content key too long", 0, 0, 300, 0, 0, false},
		{"content value too long", 0, 0, 0, 1000, 0, false},
		{"negative length", -1, 0, 0, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := EncodeLengths(tt.key, tt.value, tt.cKey, tt.cVal)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)

				k, v, ck, cv := DecodeLengths(got)
				assert.Equal(t, tt.key, k)
				assert.Equal(t, tt.value, v)
				assert.Equal(t, tt.cKey, ck)
				assert.Equal(t, tt.cVal, cv)
			}
		})
	}
}

func TestEncodeLengthsUnchecked(t *testing.T) {
	want, ok := EncodeLengths(9, 12, 9, 12)
	require.True(t, ok)
	assert.Equal(t, want, EncodeLengthsUnchecked(9, 12, 9, 12))
}

func TestPushBackInnerSegmentBoundary(t *testing.T) {
	c := &Candidate{}

	assert.True(t, c.PushBackInnerSegmentBoundary(1, 2, 1, 2))
	assert.True(t, c.PushBackInnerSegmentBoundary(3, 4, 3, 4))
	assert.Len(t, c.InnerSegmentBoundary, 2)

	// A failed encode appends nothing.
	assert.False(t, c.PushBackInnerSegmentBoundary(256, 1, 1, 1))
	assert.Len(t, c.InnerSegmentBoundary, 2)
}

func TestCandidateIsValid(t *testing.T) {
	t.Run("empty boundary always valid", func(t *testing.T) {
		c := &Candidate{Key: "whatever", Value: "anything"}
		assert.True(t, c.IsValid())
	})

	t.Run("consistent sums", func(t *testing.T) {
		c := &Candidate{Key: "abcde", Value: "xyz"}
		require.True(t, c.PushBackInnerSegmentBoundary(2, 1, 2, 1))
		require.True(t, c.PushBackInnerSegmentBoundary(3, 2, 3, 2))
		assert.True(t, c.IsValid())
	})

	t.Run("key mismatch", func(t *testing.T) {
		c := &Candidate{Key: "abcdef", Value: "xyz"}
		require.True(t, c.PushBackInnerSegmentBoundary(2, 1, 2, 1))
		require.True(t, c.PushBackInnerSegmentBoundary(3, 2, 3, 2))
		assert.False(t, c.IsValid())
	})

	t.Run("value mismatch", func(t *testing.T) {
		c := &Candidate{Key: "abcde", Value: "xyzw"}
		require.True(t, c.PushBackInnerSegmentBoundary(2, 1, 2, 1))
		require.True(t, c.PushBackInnerSegmentBoundary(3, 2, 3, 2))
		assert.False(t, c.IsValid())
	})

	t.Run("content lengths unchecked", func(t *testing.T) {
		c := &Candidate{Key: "ab", Value: "xy"}
		require.True(t, c.PushBackInnerSegmentBoundary(2, 2, 255, 255))
		assert.True(t, c.IsValid())
	})
}

// compoundCandidate builds 車のほうがあとだ from its two lexical units, the
// canonical example of an agglutinated candidate: 車のほうが (content 車)
// plus あとだ (no functional part).
func compoundCandidate(t *testing.T) *Candidate {
	t.Helper()

	c := &Candidate{
		Key:          "くるまのほうがあとだ",
		Value:        "車のほうがあとだ",
		ContentKey:   "くるまのほうがあとだ",
		ContentValue: "車のほうがあとだ",
	}
	require.True(t, c.PushBackInnerSegmentBoundary(
		len("くるまのほうが"), len("車のほうが"), len("くるま"), len("車")))
	require.True(t, c.PushBackInnerSegmentBoundary(
		len("あとだ"), len("あとだ"), len("あとだ"), len("あとだ")))
	require.True(t, c.IsValid())
	return c
}

func TestInnerSegmentIterator(t *testing.T) {
	c := compoundCandidate(t)

	type unit struct {
		key, value, contentKey, contentValue string
		functionalKey, functionalValue       string
	}
	want := []unit{
		{"くるまのほうが", "車のほうが", "くるま", "車", "のほうが", "のほうが"},
		{"あとだ", "あとだ", "あとだ", "あとだ", "", ""},
	}

	var got []unit
	var keyParts, valueParts []string
	for it := NewInnerSegmentIterator(c); !it.Done(); it.Next() {
		assert.Equal(t, len(got), it.Index())
		got = append(got, unit{
			key:             it.Key(),
			value:           it.Value(),
			contentKey:      it.ContentKey(),
			contentValue:    it.ContentValue(),
			functionalKey:   it.FunctionalKey(),
			functionalValue: it.FunctionalValue(),
		})
		keyParts = append(keyParts, it.Key())
		valueParts = append(valueParts, it.Value())
	}

	assert.Equal(t, want, got)

	// Concatenating the spans reproduces the candidate.
	assert.Equal(t, c.Key, strings.Join(keyParts, ""))
	assert.Equal(t, c.Value, strings.Join(valueParts, ""))
}

func TestInnerSegmentIterator_Empty(t *testing.T) {
	it := NewInnerSegmentIterator(&Candidate{Key: "き", Value: "木"})
	assert.True(t, it.Done())
	assert.Panics(t, func() { it.Next() })
	assert.Panics(t, func() { it.Key() })
}

func TestInnerSegmentIterator_SingleUnit(t *testing.T) {
	c := &Candidate{Key: "はしった", Value: "走った", ContentKey: "はしっ", ContentValue: "走っ"}
	require.True(t, c.PushBackInnerSegmentBoundary(
		len(c.Key), len(c.Value), len(c.ContentKey), len(c.ContentValue)))

	it := NewInnerSegmentIterator(c)
	require.False(t, it.Done())
	assert.Equal(t, "はしった", it.Key())
	assert.Equal(t, "走った", it.Value())
	assert.Equal(t, "はしっ", it.ContentKey())
	assert.Equal(t, "走っ", it.ContentValue())
	assert.Equal(t, "た", it.FunctionalKey())
	assert.Equal(t, "た", it.FunctionalValue())

	it.Next()
	assert.True(t, it.Done())
}
