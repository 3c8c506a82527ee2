// Package tokenize splits free text into words with codepoint offsets.
//
// A word is a maximal run of letter (Unicode category L) or combining mark
// (category M) codepoints. Everything else, including digits, whitespace and
// punctuation, separates words. Offsets are rune indices into the input string.
package tokenize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is one word occurrence and its rune offset in the source text.
type Token struct {
	Word   string
	Offset int
}

// End returns the rune offset just past the token.
func (t Token) End() int {
	return t.Offset + utf8.RuneCountInString(t.Word)
}

// IsWordRune reports whether r can be part of a word.
func IsWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.Is(unicode.M, r)
}

// Tokenize returns every word occurrence in text in scan order.
// Repeated words produce one token per occurrence.
func Tokenize(text string) []Token {
	var tokens []Token

	runeIdx := 0
	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !IsWordRune(r) {
			i += size
			runeIdx++
			continue
		}

		start := i
		startRune := runeIdx
		for i < len(text) {
			r, size = utf8.DecodeRuneInString(text[i:])
			if !IsWordRune(r) {
				break
			}
			i += size
			runeIdx++
		}

		tokens = append(tokens, Token{
			Word:   text[start:i],
			Offset: startRune,
		})
	}

	return tokens
}

// Unique returns the distinct words of tokens in first-occurrence order.
func Unique(tokens []Token) []string {
	if len(tokens) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, ok := seen[tok.Word]; ok {
			continue
		}
		seen[tok.Word] = struct{}{}
		out = append(out, tok.Word)
	}
	return out
}

// Stats holds the character and word counts shown next to the editor.
type Stats struct {
	Chars int
	Words int
}

// Count returns rune and whitespace-delimited word counts for text.
func Count(text string) Stats {
	return Stats{
		Chars: utf8.RuneCountInString(text),
		Words: len(strings.Fields(text)),
	}
}
