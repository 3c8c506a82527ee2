package annotate

import (
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/iw2rmb/spellbound/tokenize"
)

// ErrEmptyText is returned by BeginCheck when the document has no
// non-whitespace content.
var ErrEmptyText = errors.New("annotate: text is empty")

type Options struct {
	// HistoryLimit caps the replacement stack. Zero uses DefaultHistoryLimit.
	HistoryLimit int
	Logger       *slog.Logger
}

// Session is the engine state for one editing session.
type Session struct {
	text     []rune
	language string

	results []Result
	hist    *history

	fold    cases.Caser
	ignored map[string]struct{}
	dict    map[string]struct{}

	// generation changes whenever text changes; seq whenever a check begins.
	generation uint64
	seq        uint64

	logger *slog.Logger
}

func NewSession(lang string, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		language: lang,
		hist:     newHistory(opts.HistoryLimit),
		fold:     cases.Fold(),
		ignored:  make(map[string]struct{}),
		dict:     make(map[string]struct{}),
		logger:   logger,
	}
}

func (s *Session) Text() string { return string(s.text) }

func (s *Session) Language() string { return s.language }

func (s *Session) Generation() uint64 { return s.generation }

// Results returns the active misspellings ordered by Index.
func (s *Session) Results() []Result {
	out := make([]Result, len(s.results))
	copy(out, s.results)
	return out
}

func (s *Session) ErrorCount() int { return len(s.results) }

// ResultAt returns the misspelling covering rune offset off.
func (s *Session) ResultAt(off int) (Result, bool) {
	for _, r := range s.results {
		if r.Contains(off) {
			return r, true
		}
		if r.Index > off {
			break
		}
	}
	return Result{}, false
}

// Segments renders the current document.
func (s *Session) Segments() []Segment {
	return Render(string(s.text), s.results)
}

// SetLanguage switches language and tears down the document, results,
// history and dictionary words. Ignored words survive.
func (s *Session) SetLanguage(lang string) {
	s.language = lang
	s.dict = make(map[string]struct{})
	s.Clear()
}

// Clear empties the document, results and history.
func (s *Session) Clear() {
	s.text = nil
	s.results = nil
	s.hist.clear()
	s.generation++
}

// SetDictionary replaces the set of words the user marked as correct for the
// current language.
func (s *Session) SetDictionary(words []string) {
	s.dict = make(map[string]struct{}, len(words))
	for _, w := range words {
		s.dict[w] = struct{}{}
	}
}

func (s *Session) InDictionary(word string) bool {
	_, ok := s.dict[word]
	return ok
}

// CheckRequest captures the document a check was started against.
type CheckRequest struct {
	Generation uint64
	Seq        uint64
	Text       string
	Tokens     []tokenize.Token
	Words      []string
	Language   string
}

// BeginCheck tokenizes the document and returns the request to send.
// Starting a new check supersedes any check still in flight.
func (s *Session) BeginCheck() (CheckRequest, error) {
	text := string(s.text)
	if strings.TrimSpace(text) == "" {
		return CheckRequest{}, ErrEmptyText
	}
	s.seq++
	tokens := tokenize.Tokenize(text)
	return CheckRequest{
		Generation: s.generation,
		Seq:        s.seq,
		Text:       text,
		Tokens:     tokens,
		Words:      tokenize.Unique(tokens),
		Language:   s.language,
	}, nil
}

// IsCurrent reports whether req is the latest check started against the
// current document and language.
func (s *Session) IsCurrent(req CheckRequest) bool {
	return req.Generation == s.generation && req.Seq == s.seq && req.Language == s.language
}

// ApplyCheck installs the outcome of req. correct maps words to the service's
// verdict; words it does not mention are treated as correct. Responses for an
// older document or a superseded check are discarded and ok is false.
func (s *Session) ApplyCheck(req CheckRequest, correct map[string]bool) (results []Result, ok bool) {
	if !s.IsCurrent(req) {
		s.logger.Debug("stale check response discarded",
			"generation", req.Generation, "current_generation", s.generation,
			"seq", req.Seq, "current_seq", s.seq)
		return nil, false
	}

	out := make([]Result, 0)
	for _, tok := range req.Tokens {
		isCorrect, known := correct[tok.Word]
		if !known || isCorrect {
			continue
		}
		if s.IsIgnored(tok.Word) || s.InDictionary(tok.Word) {
			continue
		}
		out = append(out, Result{Word: tok.Word, Index: tok.Offset, Length: utf8.RuneCountInString(tok.Word)})
	}
	s.results = out
	return s.Results(), true
}

// Replace swaps the flagged occurrence (word, index) for replacement. It is a
// no-op returning false when no such occurrence is flagged.
func (s *Session) Replace(word string, index int, replacement string) (ChangeRecord, bool) {
	i := s.findResult(word, index)
	if i < 0 {
		s.logger.Debug("replace target not found", "word", word, "index", index)
		return ChangeRecord{}, false
	}
	r := s.results[i]
	if !s.matchesAt(r.Index, r.Word) {
		return ChangeRecord{}, false
	}

	s.results = append(s.results[:i], s.results[i+1:]...)
	s.splice(r.Index, r.Length, replacement)

	rec := ChangeRecord{Original: word, Replacement: replacement, Position: index, Result: r}
	s.hist.push(rec)
	return rec, true
}

// Undo reverses the most recent replacement. The record is popped even when
// the document no longer holds the replacement at its position; ok is false
// in that case and nothing else changes.
func (s *Session) Undo() (ChangeRecord, bool) {
	rec, ok := s.hist.pop()
	if !ok {
		return ChangeRecord{}, false
	}
	if !s.matchesAt(rec.Position, rec.Replacement) {
		s.logger.Debug("undo target is stale", "replacement", rec.Replacement, "position", rec.Position)
		return rec, false
	}

	s.splice(rec.Position, utf8.RuneCountInString(rec.Replacement), rec.Original)
	if s.overlapsResult(rec.Result) {
		return rec, true
	}
	s.results = insertResult(s.results, rec.Result)
	return rec, true
}

func (s *Session) CanUndo() bool { return s.hist.len() > 0 }

func (s *Session) UndoDepth() int { return s.hist.len() }

// Ignore drops the flagged occurrence (word, index) and ignores the word,
// compared case-insensitively, for the rest of the session. It is a no-op
// returning false when no such occurrence is flagged.
func (s *Session) Ignore(word string, index int) bool {
	if word == "" {
		return false
	}
	i := s.findResult(word, index)
	if i < 0 {
		s.logger.Debug("ignore target not found", "word", word, "index", index)
		return false
	}
	s.ignored[s.fold.String(word)] = struct{}{}
	s.results = append(s.results[:i], s.results[i+1:]...)
	return true
}

func (s *Session) IsIgnored(word string) bool {
	_, ok := s.ignored[s.fold.String(word)]
	return ok
}

func (s *Session) IgnoredCount() int { return len(s.ignored) }

// WordAdded records that word was accepted into one of the user's lists and
// drops every result for it. It returns the number of results removed.
func (s *Session) WordAdded(word string) int {
	s.dict[word] = struct{}{}
	kept := s.results[:0]
	removed := 0
	for _, r := range s.results {
		if r.Word == word {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	s.results = kept
	return removed
}

func (s *Session) findResult(word string, index int) int {
	for i, r := range s.results {
		if r.Word == word && r.Index == index {
			return i
		}
	}
	return -1
}

func (s *Session) matchesAt(pos int, word string) bool {
	n := utf8.RuneCountInString(word)
	if pos < 0 || pos+n > len(s.text) {
		return false
	}
	return string(s.text[pos:pos+n]) == word
}

func (s *Session) overlapsResult(r Result) bool {
	for _, o := range s.results {
		if r.Index < o.End() && o.Index < r.End() {
			return true
		}
	}
	return false
}

// splice replaces n runes at pos with repl and shifts later results.
func (s *Session) splice(pos, n int, repl string) {
	rr := []rune(repl)
	next := make([]rune, 0, len(s.text)-n+len(rr))
	next = append(next, s.text[:pos]...)
	next = append(next, rr...)
	next = append(next, s.text[pos+n:]...)
	s.text = next

	delta := len(rr) - n
	if delta != 0 {
		for i := range s.results {
			if s.results[i].Index >= pos+n {
				s.results[i].Index += delta
			}
		}
	}
	s.generation++
}
