package editor

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/spellbound/annotate"
	"github.com/iw2rmb/spellbound/internal/draft"
	"github.com/iw2rmb/spellbound/service"
	"github.com/iw2rmb/spellbound/suggest"
)

type checkDoneMsg struct {
	req     annotate.CheckRequest
	correct map[string]bool
	err     error

	dict       []string
	dictLoaded bool
	dictErr    error
}

type suggestionsMsg struct {
	seq   int
	word  string
	items []string
	err   error
}

type wordAddedMsg struct {
	word string
	list service.List
	lang string
	err  error
}

type replacementLoggedMsg struct {
	original    string
	replacement string
	err         error
}

type prefetchDoneMsg struct {
	words int
	err   error
}

type autosaveMsg struct{ seq int }

type draftSavedMsg struct {
	seq int
	err error
}

type draftLoadedMsg struct {
	draft draft.Draft
	ok    bool
	err   error
}

type draftClearedMsg struct{ err error }

// checkCmd loads the user's dictionary words when authenticated, then asks
// the service for a verdict on every unique word of req.
func checkCmd(svc Service, req annotate.CheckRequest) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		msg := checkDoneMsg{req: req}
		if svc.Authenticated() {
			words, err := svc.DictionaryWords(ctx, req.Language)
			if err != nil {
				msg.dictErr = err
			} else {
				msg.dict = words
				msg.dictLoaded = true
			}
		}
		if len(req.Words) == 0 {
			msg.correct = map[string]bool{}
			return msg
		}
		msg.correct, msg.err = svc.Check(ctx, req.Words, req.Language)
		return msg
	}
}

func lookupCmd(p *suggest.Provider, seq int, word, lang string) tea.Cmd {
	return func() tea.Msg {
		items, err := p.Lookup(context.Background(), word, lang)
		return suggestionsMsg{seq: seq, word: word, items: items, err: err}
	}
}

func prefetchCmd(p *suggest.Provider, words []string, lang string) tea.Cmd {
	return func() tea.Msg {
		err := p.Prefetch(context.Background(), words, lang)
		return prefetchDoneMsg{words: len(words), err: err}
	}
}

func addWordCmd(svc Service, word string, list service.List, lang string) tea.Cmd {
	return func() tea.Msg {
		err := svc.AddWord(context.Background(), word, list, lang)
		return wordAddedMsg{word: word, list: list, lang: lang, err: err}
	}
}

func recordReplacementCmd(svc Service, original, replacement, lang string) tea.Cmd {
	return func() tea.Msg {
		err := svc.RecordReplacement(context.Background(), original, replacement, lang)
		return replacementLoggedMsg{original: original, replacement: replacement, err: err}
	}
}

func loadDraftCmd(store DraftStore) tea.Cmd {
	return func() tea.Msg {
		d, ok, err := store.Load(context.Background())
		return draftLoadedMsg{draft: d, ok: ok, err: err}
	}
}

func saveDraftCmd(store DraftStore, seq int, d draft.Draft) tea.Cmd {
	return func() tea.Msg {
		return draftSavedMsg{seq: seq, err: store.Save(context.Background(), d)}
	}
}

func clearDraftCmd(store DraftStore) tea.Cmd {
	return func() tea.Msg {
		return draftClearedMsg{err: store.Clear(context.Background())}
	}
}

// scheduleSave debounces a draft save after a text change.
func (m *Model) scheduleSave() tea.Cmd {
	if m.cfg.Drafts == nil {
		return nil
	}
	m.saveSeq++
	m.saveStatus = savePending
	seq := m.saveSeq
	if d := m.cfg.AutosaveDelay; d > 0 {
		return tea.Tick(d, func(time.Time) tea.Msg { return autosaveMsg{seq: seq} })
	}
	return func() tea.Msg { return autosaveMsg{seq: seq} }
}
