package jamo

import "testing"

func TestDecomposeCompose(t *testing.T) {
	cases := []struct {
		syllable       rune
		cho, jung, jong rune
	}{
		{'한', 'ㅎ', 'ㅏ', 'ㄴ'},
		{'가', 'ㄱ', 'ㅏ', 0},
	}
	for _, c := range cases {
		cho, jung, jong := Decompose(c.syllable)
		if cho != c.cho || jung != c.jung || jong != c.jong {
			t.Fatalf("Decompose(%q) = (%q,%q,%q), want (%q,%q,%q)", c.syllable, cho, jung, jong, c.cho, c.jung, c.jong)
		}
		got := Compose(cho, jung, jong)
		if got != string(c.syllable) {
			t.Fatalf("Compose(%q,%q,%q) = %q, want %q", cho, jung, jong, got, c.syllable)
		}
	}
}

func TestDecomposeComposeWordRoundTrip(t *testing.T) {
	words := []string{"사과", "한글", "닭"}
	for _, w := range words {
		jamos := DecomposeWord(w)
		got := ComposeWord(jamos)
		if got != w {
			t.Fatalf("round trip %q -> %q -> %q", w, string(jamos), got)
		}
	}
}

func TestIsValidSyllablePattern(t *testing.T) {
	cases := []struct {
		jamos []rune
		want  bool
	}{
		{[]rune("ㅅㅏ"), true},
		{[]rune("ㅅㅏㄱ"), true},
		{[]rune("ㅅㅏㄱㅘ"), true},
		{[]rune("ㅅㄱ"), false},
		{[]rune("ㅏㅏ"), false},
		{nil, false},
	}
	for _, c := range cases {
		if got := IsValidSyllablePattern(c.jamos); got != c.want {
			t.Fatalf("IsValidSyllablePattern(%q) = %v, want %v", string(c.jamos), got, c.want)
		}
	}
}
