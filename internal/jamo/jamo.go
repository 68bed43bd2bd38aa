// Package jamo decomposes and composes Korean Hangul syllables into their
// constituent chosung/jungsung/jongsung jamos.
package jamo

const (
	hangulBase = 0xAC00
	hangulEnd  = 0xD7A3
)

// Chosung holds the 19 initial consonants in canonical index order.
var Chosung = []rune{
	'ㄱ', 'ㄲ', 'ㄴ', 'ㄷ', 'ㄸ', 'ㄹ', 'ㅁ', 'ㅂ', 'ㅃ',
	'ㅅ', 'ㅆ', 'ㅇ', 'ㅈ', 'ㅉ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ',
}

// Jungsung holds the 21 medial vowels in canonical index order.
var Jungsung = []rune{
	'ㅏ', 'ㅐ', 'ㅑ', 'ㅒ', 'ㅓ', 'ㅔ', 'ㅕ', 'ㅖ', 'ㅗ', 'ㅘ',
	'ㅙ', 'ㅚ', 'ㅛ', 'ㅜ', 'ㅝ', 'ㅞ', 'ㅟ', 'ㅠ', 'ㅡ', 'ㅢ', 'ㅣ',
}

// Jongsung holds the 28 final consonants in canonical index order; index 0
// is "no final consonant" and has no rune representation.
var Jongsung = []rune{
	0, 'ㄱ', 'ㄲ', 'ㄳ', 'ㄴ', 'ㄵ', 'ㄶ', 'ㄷ', 'ㄹ', 'ㄺ', 'ㄻ',
	'ㄼ', 'ㄽ', 'ㄾ', 'ㄿ', 'ㅀ', 'ㅁ', 'ㅂ', 'ㅄ', 'ㅅ', 'ㅆ', 'ㅇ',
	'ㅈ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ',
}

var (
	chosungIndex  = indexOf(Chosung)
	jungsungIndex = indexOf(Jungsung)
	jongsungIndex = indexOf(Jongsung[1:])
)

func indexOf(rs []rune) map[rune]int {
	m := make(map[rune]int, len(rs))
	for i, r := range rs {
		m[r] = i
	}
	return m
}

// IsSyllable reports whether r is a complete precomposed Hangul syllable.
func IsSyllable(r rune) bool {
	return r >= hangulBase && r <= hangulEnd
}

// IsChosung, IsJungsung and IsJongsung report whether r belongs to that jamo class.
func IsChosung(r rune) bool  { _, ok := chosungIndex[r]; return ok }
func IsJungsung(r rune) bool { _, ok := jungsungIndex[r]; return ok }
func IsJongsung(r rune) bool { _, ok := jongsungIndex[r]; return ok }

// Decompose splits a single Hangul syllable into (cho, jung, jong). jong is
// 0 when the syllable has no final consonant. Non-syllable runes are
// returned unchanged as cho, with jung and jong zero.
func Decompose(r rune) (cho, jung, jong rune) {
	if !IsSyllable(r) {
		return r, 0, 0
	}
	code := int(r) - hangulBase
	jongIdx := code % 28
	jungIdx := (code / 28) % 21
	choIdx := code / 28 / 21
	jong = Jongsung[jongIdx]
	return Chosung[choIdx], Jungsung[jungIdx], jong
}

// Compose builds a Hangul syllable from its jamos. jong may be 0 for none.
// If cho/jung are not valid jamos, the runes are returned concatenated
// verbatim as a fallback (mirrors the permissive original behavior).
func Compose(cho, jung, jong rune) string {
	choIdx, ok1 := chosungIndex[cho]
	jungIdx, ok2 := jungsungIndex[jung]
	if !ok1 || !ok2 {
		out := []rune{cho, jung}
		if jong != 0 {
			out = append(out, jong)
		}
		return string(out)
	}
	jongIdx := 0
	if jong != 0 {
		if idx, ok := jongsungIndex[jong]; ok {
			jongIdx = idx + 1
		}
	}
	return string(rune(hangulBase + choIdx*21*28 + jungIdx*28 + jongIdx))
}

// DecomposeWord expands every Hangul syllable in word into its jamo runes;
// non-Hangul runes pass through unchanged.
func DecomposeWord(word string) []rune {
	out := make([]rune, 0, len([]rune(word))*3)
	for _, r := range word {
		if IsSyllable(r) {
			cho, jung, jong := Decompose(r)
			out = append(out, cho, jung)
			if jong != 0 {
				out = append(out, jong)
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

// ComposeWord rebuilds syllables from a jamo run, using one-jamo lookahead
// to decide whether a trailing consonant is this syllable's jongsung or the
// next syllable's chosung.
func ComposeWord(jamos []rune) string {
	var b []rune
	i := 0
	for i < len(jamos) {
		if !IsChosung(jamos[i]) {
			b = append(b, jamos[i])
			i++
			continue
		}
		cho := jamos[i]
		i++
		if i >= len(jamos) || !IsJungsung(jamos[i]) {
			b = append(b, cho)
			continue
		}
		jung := jamos[i]
		i++
		var jong rune
		if i < len(jamos) && IsJongsung(jamos[i]) {
			if i+1 < len(jamos) && IsJungsung(jamos[i+1]) {
				// next jamo is a vowel: this consonant starts the next syllable
			} else {
				jong = jamos[i]
				i++
			}
		}
		b = append(b, []rune(Compose(cho, jung, jong))...)
	}
	return string(b)
}

// IsValidSyllablePattern reports whether jamos forms one or more complete
// (chosung jungsung jongsung?) syllable patterns with nothing left over.
func IsValidSyllablePattern(jamos []rune) bool {
	if len(jamos) == 0 {
		return false
	}
	i, syllables := 0, 0
	for i < len(jamos) {
		if !IsChosung(jamos[i]) {
			return false
		}
		i++
		if i >= len(jamos) || !IsJungsung(jamos[i]) {
			return false
		}
		i++
		if i < len(jamos) && IsJongsung(jamos[i]) {
			if i+1 < len(jamos) && IsJungsung(jamos[i+1]) {
				// belongs to next syllable as its chosung
			} else {
				i++
			}
		}
		syllables++
	}
	return syllables > 0
}
