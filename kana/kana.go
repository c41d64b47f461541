// Package kana converts Japanese text between the kana scripts and between
// half-width and full-width character forms. It backs the standard
// transliteration candidates of a segment.
//
// All conversions operate on the text alone. Transliterations that need the
// original keystrokes (romaji reconstruction of a kana reading) live with
// the composer, not here.
package kana

import (
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// kanaOffset is the distance between corresponding runes of the hiragana
// and katakana blocks (ぁ U+3041 ... ァ U+30A1).
const kanaOffset = 'ァ' - 'ぁ'

// HiraganaToKatakana converts every hiragana rune to its katakana
// counterpart, including the iteration marks ゝ and ゞ. Other runes pass
// through unchanged.
func HiraganaToKatakana(s string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'ぁ' && r <= 'ゖ') || r == 'ゝ' || r == 'ゞ' {
			return r + kanaOffset
		}
		return r
	}, s)
}

// KatakanaToHiragana converts every katakana rune that has a hiragana
// counterpart back to hiragana. Katakana-only runes (ヷ through ヺ, the
// prolonged sound mark ー) pass through unchanged.
func KatakanaToHiragana(s string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'ァ' && r <= 'ヶ') || r == 'ヽ' || r == 'ヾ' {
			return r - kanaOffset
		}
		return r
	}, s)
}

// ToFullWidth widens half-width forms to their full-width counterparts:
// ASCII to full-width ASCII, half-width katakana to katakana.
func ToFullWidth(s string) string {
	return width.Widen.String(s)
}

// ToHalfWidth narrows full-width forms to their half-width counterparts
// where one exists: full-width ASCII to ASCII, katakana to half-width
// katakana. Hiragana has no half-width form and passes through.
func ToHalfWidth(s string) string {
	return width.Narrow.String(s)
}

// Normalize applies NFKC normalization: width variants fold together and
// separate voicing marks compose into the voiced rune (ｶ + ﾞ becomes ガ).
// Keys should be normalized once at the composer boundary so the model only
// ever sees one spelling of a reading.
func Normalize(s string) string {
	return norm.NFKC.String(s)
}
