package superime

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidate_ZeroValue(t *testing.T) {
	var c Candidate

	assert.Equal(t, Attribute(0), c.Attributes)
	assert.Equal(t, SourceInfoNone, c.SourceInfo)
	assert.Equal(t, CategoryDefault, c.Category)
	assert.Equal(t, NumberStyleDefault, c.Style)
	assert.Equal(t, CommandDefault, c.Command)
	assert.Empty(t, c.InnerSegmentBoundary)
	assert.True(t, c.IsValid())
}

func TestCandidate_Clear(t *testing.T) {
	c := &Candidate{}
	c.Key = "きょう"
	c.Value = "今日"
	c.Cost = 500
	c.Attributes = Reranked | ContextSensitive
	c.PushBackInnerSegmentBoundary(9, 6, 9, 6)
	c.Dlog("touched")

	c.Clear()

	assert.Equal(t, Candidate{}, *c)
}

func TestCandidate_Attributes(t *testing.T) {
	var c Candidate

	c.Attributes |= BestCandidate | UserDictionary
	assert.NotZero(t, c.Attributes&BestCandidate)
	assert.NotZero(t, c.Attributes&UserDictionary)
	assert.Zero(t, c.Attributes&Reranked)

	c.Attributes &^= BestCandidate
	assert.Zero(t, c.Attributes&BestCandidate)
	assert.NotZero(t, c.Attributes&UserDictionary)
}

func TestCandidate_NoLearning(t *testing.T) {
	// NoLearning is the union of the two learning exclusions, not its own
	// bit: setting it sets both, and both together mean NoLearning.
	assert.Equal(t, NoHistoryLearning|NoSuggestLearning, NoLearning)

	var c Candidate
	c.Attributes |= NoLearning
	assert.NotZero(t, c.Attributes&NoHistoryLearning)
	assert.NotZero(t, c.Attributes&NoSuggestLearning)

	c.Attributes = NoHistoryLearning
	assert.NotEqual(t, NoLearning, c.Attributes&NoLearning)
}

func TestCandidate_FunctionalParts(t *testing.T) {
	tests := []struct {
		name      string
		c         Candidate
		wantKey   string
		wantValue string
	}{
		{
			name:      "with functional suffix",
			c:         Candidate{Key: "はしった", Value: "走った", ContentKey: "はしっ", ContentValue: "走っ"},
			wantKey:   "た",
			wantValue: "た",
		},
		{
			name:      "content equals whole",
			c:         Candidate{Key: "き", Value: "木", ContentKey: "き", ContentValue: "木"},
			wantKey:   "",
			wantValue: "",
		},
		{
			name:      "content longer than key",
			c:         Candidate{Key: "き", Value: "木", ContentKey: "きのう", ContentValue: "昨日は"},
			wantKey:   "",
			wantValue: "",
		},
		{
			name:      "empty content",
			c:         Candidate{Key: "のだ", Value: "のだ"},
			wantKey:   "のだ",
			wantValue: "のだ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantKey, tt.c.FunctionalKey())
			assert.Equal(t, tt.wantValue, tt.c.FunctionalValue())
		})
	}
}

func TestCandidate_Clone(t *testing.T) {
	orig := &Candidate{
		Key:        "くるま",
		Value:      "車",
		ContentKey: "くるま",
		Cost:       1234,
		Lid:        10,
		Rid:        20,
		Attributes: BestCandidate,
	}
	require.True(t, orig.PushBackInnerSegmentBoundary(9, 3, 9, 3))

	clone := orig.Clone()
	require.Equal(t, *orig, *clone)

	// The boundary list must not be shared.
	clone.InnerSegmentBoundary[0] = 0
	clone.Cost = 1
	assert.Equal(t, int32(1234), orig.Cost)
	k, _, _, _ := DecodeLengths(orig.InnerSegmentBoundary[0])
	assert.Equal(t, 9, k)
}

func TestCandidate_CopyFrom(t *testing.T) {
	src := &Candidate{Key: "a", Value: "b", Cost: 7}
	dst := &Candidate{Key: "old", Attributes: Reranked}

	dst.CopyFrom(src)
	assert.Equal(t, *src, *dst)

	// Self copy is a no-op.
	src.CopyFrom(src)
	assert.Equal(t, "a", src.Key)
}

func TestCandidate_Dlog(t *testing.T) {
	c := &Candidate{}
	assert.Empty(t, c.DebugLog())

	c.Dlog("demoted by history")
	c.Dlog("then promoted")

	log := c.DebugLog()
	assert.Contains(t, log, "candidate_test.go:")
	assert.Contains(t, log, "demoted by history")
	assert.Contains(t, log, "then promoted")
	assert.Equal(t, 2, strings.Count(log, "\n"))

	// The trail travels with copies.
	clone := c.Clone()
	assert.Equal(t, log, clone.DebugLog())
}

func TestCandidate_String(t *testing.T) {
	c := compoundCandidate(t)
	c.Cost = 42
	c.Attributes = BestCandidate

	s := c.String()
	assert.Contains(t, s, `"くるまのほうがあとだ"`)
	assert.Contains(t, s, "cost=42")
	assert.Contains(t, s, "attributes=0x1")
	assert.Contains(t, s, "<くるまのほうが,車のほうが>")

	bad := &Candidate{Key: "x", Value: "y", InnerSegmentBoundary: []uint32{0x05050505}}
	assert.Contains(t, bad.String(), "inner=<inconsistent>")
}
