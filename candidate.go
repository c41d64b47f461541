package superime

import "slices"

// Attribute is a bitset of independent candidate properties. Attributes
// combine freely with bitwise or; the model stores them without acting on
// them.
type Attribute uint32

const (
	// BestCandidate marks the candidate ranked best before any user-history
	// reranking.
	BestCandidate Attribute = 1 << iota
	// Reranked marks a candidate the user moved within the list.
	Reranked
	// NoHistoryLearning excludes the candidate from history learning.
	NoHistoryLearning
	// NoSuggestLearning excludes the candidate from suggestion learning.
	NoSuggestLearning
	// ContextSensitive forces re-conversion when surrounding context
	// changes; such candidates must not be committed from cache.
	ContextSensitive
	// SpellingCorrection marks a candidate whose key fixes a misspelled
	// reading.
	SpellingCorrection
	// NoVariantsExpansion suppresses character form expansion.
	NoVariantsExpansion
	// NoExtraDescription keeps the description exactly as produced.
	NoExtraDescription
	// RealtimeConversion marks output of the realtime (as-you-type)
	// conversion path.
	RealtimeConversion
	// UserDictionary marks a candidate sourced from the user dictionary.
	UserDictionary
	// CommandCandidate marks a candidate that triggers a command instead of
	// inserting text (see Command).
	CommandCandidate
	// PartiallyKeyConsumed marks a candidate that converts only a prefix of
	// the key (see ConsumedKeySize).
	PartiallyKeyConsumed
	// TypingCorrection marks a candidate whose key fixes a mistyped
	// reading.
	TypingCorrection
	// AutoPartialSuggestion marks a partial suggestion produced without an
	// explicit user request.
	AutoPartialSuggestion
	// UserHistoryPrediction marks a candidate sourced from the user
	// prediction history.
	UserHistoryPrediction
	// SuffixDictionary marks a candidate sourced from the suffix
	// dictionary.
	SuffixDictionary
	// NoModification protects the candidate from rewriter modification.
	NoModification

	// NoLearning excludes the candidate from learning entirely. It is the
	// union of NoHistoryLearning and NoSuggestLearning, not a separate bit.
	NoLearning = NoHistoryLearning | NoSuggestLearning
)

// SourceInfo is a second attribute namespace recording which subsystem
// produced the candidate, kept separate from Attribute so usage statistics
// can evolve without burning attribute bits.
type SourceInfo uint32

const (
	// DictionaryPredictorZeroQueryNone marks a zero-query suggestion of no
	// particular sub-kind.
	DictionaryPredictorZeroQueryNone SourceInfo = 1 << iota
	// DictionaryPredictorZeroQueryNumberSuffix marks a zero-query number
	// suffix suggestion (counter words).
	DictionaryPredictorZeroQueryNumberSuffix
	// DictionaryPredictorZeroQueryEmoticon marks a zero-query emoticon
	// suggestion.
	DictionaryPredictorZeroQueryEmoticon
	// DictionaryPredictorZeroQueryEmoji marks a zero-query emoji
	// suggestion.
	DictionaryPredictorZeroQueryEmoji
	// DictionaryPredictorZeroQueryBigram marks a zero-query bigram
	// suggestion.
	DictionaryPredictorZeroQueryBigram
	// DictionaryPredictorZeroQuerySuffix marks a zero-query suffix
	// suggestion.
	DictionaryPredictorZeroQuerySuffix
	// UserHistoryPredictor marks output of the user history predictor.
	UserHistoryPredictor

	// SourceInfoNone is the default: no source recorded.
	SourceInfoNone SourceInfo = 0
)

// Category classifies what kind of result a candidate is.
type Category int32

const (
	// CategoryDefault is a regular conversion result.
	CategoryDefault Category = iota
	// CategorySymbol is a symbol or punctuation result.
	CategorySymbol
	// CategoryOther covers results that are neither (dates, calculator
	// output and the like).
	CategoryOther
)

// Command identifies the engine command a CommandCandidate triggers when
// committed.
type Command int32

const (
	// CommandDefault means no command; the candidate inserts text.
	CommandDefault Command = iota
	// CommandEnableIncognitoMode switches learning off.
	CommandEnableIncognitoMode
	// CommandDisableIncognitoMode switches learning back on.
	CommandDisableIncognitoMode
	// CommandEnablePresentationMode suppresses suggestions.
	CommandEnablePresentationMode
	// CommandDisablePresentationMode restores suggestions.
	CommandDisablePresentationMode
)

// NumberStyle tags the numeric formatting of a candidate value. Styles are
// mutually exclusive.
type NumberStyle int32

const (
	// NumberStyleDefault is plain notation.
	NumberStyleDefault NumberStyle = iota
	// NumberStyleSeparatedArabicHalfWidth is "1,000".
	NumberStyleSeparatedArabicHalfWidth
	// NumberStyleSeparatedArabicFullWidth is "１，０００".
	NumberStyleSeparatedArabicFullWidth
	// NumberStyleKanji is "千".
	NumberStyleKanji
	// NumberStyleOldKanji is "阡".
	NumberStyleOldKanji
	// NumberStyleRomanCapital is "M".
	NumberStyleRomanCapital
	// NumberStyleRomanSmall is "m".
	NumberStyleRomanSmall
	// NumberStyleCircled is "①".
	NumberStyleCircled
	// NumberStyleKanjiArabic is "一〇〇〇".
	NumberStyleKanjiArabic
	// NumberStyleHex is "0x3e8".
	NumberStyleHex
	// NumberStyleOct is "01750".
	NumberStyleOct
	// NumberStyleBin is "0b1111101000".
	NumberStyleBin
)

// Candidate is one proposed conversion of a reading span: the surface form
// to commit, the costs the search assigned to it, and the metadata the
// surrounding passes hang off it. The model stores costs and attributes
// verbatim; ranking and learning interpret them elsewhere.
//
// The zero value is a fully defaulted candidate.
type Candidate struct {
	// Key is the reading this candidate converts; Value is the surface form
	// it produces.
	Key   string
	Value string

	// ContentKey and ContentValue are the core word sub-spans of Key and
	// Value, excluding a trailing functional affix. For the value 走った
	// with key はしった, the content spans are 走っ and はしっ.
	ContentKey   string
	ContentValue string

	// ConsumedKeySize is the length of the key prefix actually consumed
	// when PartiallyKeyConsumed is set.
	ConsumedKeySize int

	// Presentation strings, opaque to the model.
	Prefix          string
	Suffix          string
	Description     string
	A11yDescription string

	// Usage dictionary cross-reference.
	UsageID          int32
	UsageTitle       string
	UsageDescription string

	// Cost is the context-sensitive path cost the candidate list is sorted
	// by. WCost is the context-free word cost, StructureCost the cost of
	// the transitions inside the candidate, and CostBeforeRescoring keeps
	// the pre-rescoring Cost for diagnostics.
	Cost                int32
	WCost               int32
	StructureCost       int32
	CostBeforeRescoring int32

	// Lid and Rid are the left and right connection ids the candidate
	// exposes to its neighbors in the lattice.
	Lid uint16
	Rid uint16

	Attributes Attribute
	SourceInfo SourceInfo
	Category   Category
	Style      NumberStyle
	Command    Command

	// InnerSegmentBoundary records how a compound candidate splits into the
	// lexical units it was agglutinated from. Each element packs the four
	// byte lengths of one unit; see EncodeLengths. Empty means the
	// candidate is a single unit.
	InnerSegmentBoundary []uint32

	// log accumulates Dlog diagnostics.
	log string
}

// Clear resets the candidate to its zero state.
func (c *Candidate) Clear() {
	*c = Candidate{}
}

// Clone returns a deep copy of the candidate.
func (c *Candidate) Clone() *Candidate {
	clone := &Candidate{}
	clone.CopyFrom(c)
	return clone
}

// CopyFrom deep-copies src into c. The inner segment boundary is cloned so
// the two candidates never share backing storage.
func (c *Candidate) CopyFrom(src *Candidate) {
	if c == src {
		return
	}
	*c = *src
	c.InnerSegmentBoundary = slices.Clone(src.InnerSegmentBoundary)
}

// FunctionalKey returns the functional part of the key, the suffix left
// after removing the ContentKey prefix. It is empty whenever ContentKey is
// not shorter than Key.
func (c *Candidate) FunctionalKey() string {
	if len(c.ContentKey) >= len(c.Key) {
		return ""
	}
	return c.Key[len(c.ContentKey):]
}

// FunctionalValue returns the functional part of the value, the suffix left
// after removing the ContentValue prefix. It is empty whenever ContentValue
// is not shorter than Value.
func (c *Candidate) FunctionalValue() string {
	if len(c.ContentValue) >= len(c.Value) {
		return ""
	}
	return c.Value[len(c.ContentValue):]
}
