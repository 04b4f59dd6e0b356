package embedding

import (
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/hyperjump/vekta/internal/vector"
)

const (
	textCharScale      = 120
	textWordScale      = 18
	textLetterScale    = 60
	textBalanceScale   = 80
	latinVowels        = "aeiou"
	cyrillicVowels     = "аеёиоуыэюя"
	latinConsonants    = "bcdfghjklmnpqrstvwxyz"
	cyrillicConsonants = "бвгґджзклмнпрстфхцчшщ"
)

var (
	vowelSet     = foldSet(latinVowels + cyrillicVowels)
	consonantSet = foldSet(latinConsonants + cyrillicConsonants)
)

// TextEmbedding returns
// [chars/120, words/18, vowels/60, consonants/60, (vowels-consonants)/80]
// for the whitespace-normalized text, or the zero vector when nothing remains.
func TextEmbedding(text string) vector.Vector {
	words := strings.FieldsFunc(text, isSpace)
	if len(words) == 0 {
		return vector.Zero(Dimensions)
	}
	normalized := strings.Join(words, " ")

	var chars, vowels, consonants int
	for _, r := range normalized {
		chars += utf16Len(r)
		c := fold(r)
		if _, ok := vowelSet[c]; ok {
			vowels++
		} else if _, ok := consonantSet[c]; ok {
			consonants++
		}
	}

	return vector.Vector{
		float64(chars) / textCharScale,
		float64(len(words)) / textWordScale,
		float64(vowels) / textLetterScale,
		float64(consonants) / textLetterScale,
		float64(vowels-consonants) / textBalanceScale,
	}
}

// isSpace matches the ECMAScript whitespace and line terminator set: Unicode
// White_Space minus U+0085, plus U+FEFF.
func isSpace(r rune) bool {
	if r == '\uFEFF' {
		return true
	}
	return r != '\u0085' && unicode.IsSpace(r)
}

// utf16Len counts r in UTF-16 code units so that character counts agree with
// clients that measure strings that way.
func utf16Len(r rune) int {
	if n := utf16.RuneLen(r); n > 0 {
		return n
	}
	return 1
}

// fold is a simple upper-case fold that never maps a non-ASCII rune onto ASCII,
// so the long s (U+017F) does not count as an s.
func fold(r rune) rune {
	u := unicode.ToUpper(r)
	if r >= 128 && u < 128 {
		return r
	}
	return u
}

func foldSet(letters string) map[rune]struct{} {
	set := make(map[rune]struct{}, len(letters))
	for _, r := range letters {
		set[fold(r)] = struct{}{}
	}
	return set
}
