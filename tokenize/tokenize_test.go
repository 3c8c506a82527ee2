package tokenize

import (
	"reflect"
	"testing"
)

func sliceRunes(text string, start, end int) string {
	rr := []rune(text)
	if start < 0 || end > len(rr) || start > end {
		return ""
	}
	return string(rr[start:end])
}

func TestTokenize_Basic(t *testing.T) {
	got := Tokenize("Ths is a tst")
	want := []Token{
		{Word: "Ths", Offset: 0},
		{Word: "is", Offset: 4},
		{Word: "a", Offset: 7},
		{Word: "tst", Offset: 9},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tokens: got %v, want %v", got, want)
	}
}

func TestTokenize_SeparatorsProduceNoTokens(t *testing.T) {
	cases := []string{"", "   ", "123 456", "!?.,;", "\n\t"}
	for _, text := range cases {
		if got := Tokenize(text); len(got) != 0 {
			t.Fatalf("Tokenize(%q): got %v, want none", text, got)
		}
	}
}

func TestTokenize_DigitsAndPunctuationSplitWords(t *testing.T) {
	got := Tokenize("abc1def, don't")
	want := []Token{
		{Word: "abc", Offset: 0},
		{Word: "def", Offset: 4},
		{Word: "don", Offset: 9},
		{Word: "t", Offset: 13},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tokens: got %v, want %v", got, want)
	}
}

func TestTokenize_OffsetsAreRuneIndices(t *testing.T) {
	text := "héllo wörld 日本語 naïve"
	got := Tokenize(text)
	if len(got) != 4 {
		t.Fatalf("token count: got %d, want %d (%v)", len(got), 4, got)
	}
	if got[1].Offset != 6 {
		t.Fatalf("second offset: got %d, want %d", got[1].Offset, 6)
	}
	if got[2].Word != "日本語" || got[2].Offset != 12 {
		t.Fatalf("cjk token: got %v", got[2])
	}
}

func TestTokenize_CombiningMarksStayInWord(t *testing.T) {
	text := "cafe\u0301 ok"
	got := Tokenize(text)
	if len(got) != 2 {
		t.Fatalf("token count: got %d, want %d", len(got), 2)
	}
	if got[0].Word != "cafe\u0301" {
		t.Fatalf("first word: got %q", got[0].Word)
	}
	if got[1].Offset != 6 {
		t.Fatalf("second offset: got %d, want %d", got[1].Offset, 6)
	}
}

func TestTokenize_OffsetsReproduceWords(t *testing.T) {
	texts := []string{
		"Ths is a tst",
		"  leading and trailing  ",
		"mixed: ÅngstrÖm, ελληνικά; русский—текст",
		"emoji 👍 between words",
		"cafe\u0301 and re\u0301sume\u0301",
		"line one\nline two\r\nline three",
	}
	for _, text := range texts {
		for _, tok := range Tokenize(text) {
			if got := sliceRunes(text, tok.Offset, tok.End()); got != tok.Word {
				t.Fatalf("slice %q[%d:%d]: got %q, want %q", text, tok.Offset, tok.End(), got, tok.Word)
			}
		}
	}
}

func TestTokenize_DuplicatesKeepEachOccurrence(t *testing.T) {
	got := Tokenize("tst tst tst")
	if len(got) != 3 {
		t.Fatalf("token count: got %d, want %d", len(got), 3)
	}
	if got[2].Offset != 8 {
		t.Fatalf("third offset: got %d, want %d", got[2].Offset, 8)
	}
}

func TestUnique_FirstOccurrenceOrder(t *testing.T) {
	got := Unique(Tokenize("b a b c a"))
	want := []string{"b", "a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unique: got %v, want %v", got, want)
	}
	if Unique(nil) != nil {
		t.Fatalf("unique(nil) should be nil")
	}
}

func TestUnique_CaseSensitive(t *testing.T) {
	got := Unique(Tokenize("Word word WORD"))
	if len(got) != 3 {
		t.Fatalf("unique: got %v, want 3 distinct words", got)
	}
}

func TestCount(t *testing.T) {
	got := Count("héllo  wörld\nagain")
	if got.Chars != 18 {
		t.Fatalf("chars: got %d, want %d", got.Chars, 18)
	}
	if got.Words != 3 {
		t.Fatalf("words: got %d, want %d", got.Words, 3)
	}
	if got := Count("   "); got.Words != 0 {
		t.Fatalf("blank words: got %d, want 0", got.Words)
	}
}
