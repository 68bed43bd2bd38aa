package tilebag

// englishWeights mirrors standard Scrabble-adjacent English letter
// frequency, used to generate weighted refill batches.
var englishWeights = map[rune]float64{
	'E': 12.02, 'T': 9.10, 'A': 8.12, 'O': 7.68, 'I': 7.31, 'N': 6.95,
	'S': 6.28, 'R': 6.02, 'H': 5.92, 'D': 4.32, 'L': 3.98, 'U': 2.88,
	'C': 2.71, 'M': 2.61, 'F': 2.30, 'Y': 2.11, 'W': 2.09, 'G': 2.03,
	'P': 1.82, 'B': 1.49, 'V': 1.11, 'K': 0.69, 'X': 0.17, 'Q': 0.11,
	'J': 0.10, 'Z': 0.07,
}

// korean jongsung has an explicit empty-final-consonant slot, weighted
// like the original's "no jongsung" bucket.
const koreanNoJongsungWeight = 1.0

// koreanJamoWeights is the baked-in fallback used when no JSON sidecar is
// configured or it fails to load. Chosung/jungsung/jongsung are weighted
// within their own class; draw ratios across classes are fixed separately
// (CHO/JUNG/JONG = 42/46/12), matching the original generator.
var koreanJamoWeights = struct {
	cho  map[rune]float64
	jung map[rune]float64
	jong map[rune]float64
}{
	cho: map[rune]float64{
		'ㅇ': 18, 'ㄱ': 12, 'ㄴ': 10, 'ㅎ': 9, 'ㄷ': 8, 'ㅈ': 8, 'ㅅ': 8,
		'ㅁ': 7, 'ㄹ': 6, 'ㅂ': 6, 'ㅊ': 3, 'ㅋ': 2, 'ㅌ': 2, 'ㅍ': 2,
		'ㄲ': 1, 'ㄸ': 1, 'ㅃ': 1, 'ㅆ': 1, 'ㅉ': 1,
	},
	jung: map[rune]float64{
		'ㅏ': 18, 'ㅣ': 12, 'ㅓ': 10, 'ㅡ': 9, 'ㅜ': 8, 'ㅗ': 8, 'ㅐ': 6,
		'ㅔ': 5, 'ㅕ': 5, 'ㅑ': 3, 'ㅛ': 2, 'ㅠ': 2, 'ㅘ': 2, 'ㅝ': 2,
		'ㅟ': 2, 'ㅢ': 2, 'ㅚ': 2, 'ㅒ': 1, 'ㅖ': 1, 'ㅙ': 1, 'ㅞ': 1,
	},
	jong: map[rune]float64{
		0: koreanNoJongsungWeight * 40,
		'ㄴ': 12, 'ㄹ': 10, 'ㅇ': 10, 'ㄱ': 8, 'ㅁ': 6, 'ㅂ': 4, 'ㅅ': 3,
		'ㄷ': 2, 'ㅈ': 1, 'ㅊ': 1, 'ㅌ': 1, 'ㅍ': 1, 'ㅎ': 1,
	},
}
