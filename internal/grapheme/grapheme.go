package grapheme

import (
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Cluster is one user-perceived character. Start and End are rune offsets
// into the text the cluster was split from.
type Cluster struct {
	Text  string
	Start int
	End   int
	Width int
}

// Split returns grapheme clusters for text in visual order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	g := uniseg.NewGraphemes(text)
	n := 0
	for g.Next() {
		n++
	}
	return n
}

// Clusters splits text and annotates every cluster with its rune range and
// terminal cell width.
func Clusters(text string) []Cluster {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]Cluster, 0, len(text))
	off := 0
	for g.Next() {
		s := g.Str()
		n := len(g.Runes())
		out = append(out, Cluster{Text: s, Start: off, End: off + n, Width: Width(s)})
		off += n
	}
	return out
}

// Width returns the cell width of a single cluster. Zero-width results from
// runewidth fall back to uniseg so emoji sequences still occupy cells.
func Width(cluster string) int {
	w := runewidth.StringWidth(cluster)
	if w <= 0 {
		w = uniseg.StringWidth(cluster)
	}
	if w < 0 {
		w = 0
	}
	return w
}

// PrevBoundary returns the rune offset of the cluster boundary strictly before
// off in runes, or 0.
func PrevBoundary(runes []rune, off int) int {
	if off <= 0 {
		return 0
	}
	prev := 0
	for _, c := range Clusters(string(runes)) {
		if c.End >= off {
			return c.Start
		}
		prev = c.End
	}
	return prev
}

// NextBoundary returns the rune offset of the cluster boundary strictly after
// off in runes, or len(runes).
func NextBoundary(runes []rune, off int) int {
	if off >= len(runes) {
		return len(runes)
	}
	for _, c := range Clusters(string(runes)) {
		if c.End > off {
			return c.End
		}
	}
	return len(runes)
}

// IsSpace reports whether all runes in cluster are Unicode whitespace.
func IsSpace(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
