package annotate

import "sort"

// Result is one confirmed misspelling. Index and Length are in runes.
type Result struct {
	Word   string
	Index  int
	Length int
}

func (r Result) End() int { return r.Index + r.Length }

// Contains reports whether rune offset off lies inside the result.
func (r Result) Contains(off int) bool {
	return off >= r.Index && off < r.End()
}

// ChangeRecord is one accepted replacement, enough to reverse it.
type ChangeRecord struct {
	Original    string
	Replacement string
	Position    int
	Result      Result
}

// Segment is a run of the rendered document. Decorated segments carry the
// identity of the Result they render.
type Segment struct {
	Text      string
	Start     int
	Decorated bool
	Word      string
	Index     int
}

// Render slices text into plain and decorated segments. Results are sorted by
// Index (stable); spans that fall outside text, overlap an earlier span or do
// not match their word are left undecorated. Concatenating the segment texts
// reproduces text exactly.
func Render(text string, results []Result) []Segment {
	runes := []rune(text)
	spans := normalizeResults(runes, results)

	out := make([]Segment, 0, 2*len(spans)+1)
	last := 0
	for _, r := range spans {
		if r.Index > last {
			out = append(out, Segment{Text: string(runes[last:r.Index]), Start: last})
		}
		out = append(out, Segment{
			Text:      string(runes[r.Index:r.End()]),
			Start:     r.Index,
			Decorated: true,
			Word:      r.Word,
			Index:     r.Index,
		})
		last = r.End()
	}
	if last < len(runes) || len(out) == 0 {
		out = append(out, Segment{Text: string(runes[last:]), Start: last})
	}
	return out
}

func normalizeResults(runes []rune, results []Result) []Result {
	if len(results) == 0 {
		return nil
	}
	sorted := make([]Result, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Index < sorted[j].Index })

	out := sorted[:0]
	lastEnd := 0
	for _, r := range sorted {
		if r.Length <= 0 || r.Index < 0 || r.End() > len(runes) {
			continue
		}
		if r.Index < lastEnd {
			continue
		}
		if string(runes[r.Index:r.End()]) != r.Word {
			continue
		}
		out = append(out, r)
		lastEnd = r.End()
	}
	return out
}

// insertResult adds r keeping results ordered by Index.
func insertResult(results []Result, r Result) []Result {
	i := sort.Search(len(results), func(i int) bool { return results[i].Index > r.Index })
	results = append(results, Result{})
	copy(results[i+1:], results[i:])
	results[i] = r
	return results
}
