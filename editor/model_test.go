package editor

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/spellbound/buffer"
	"github.com/iw2rmb/spellbound/internal/draft"
	"github.com/iw2rmb/spellbound/service"
)

type addedWord struct {
	word string
	list service.List
	lang string
}

type stubService struct {
	mu sync.Mutex

	verdicts    map[string]bool
	suggestions map[string][]string
	dictionary  []string
	authed      bool
	checkErr    error
	addErr      error

	checks       [][]string
	added        []addedWord
	replacements [][2]string
}

func (s *stubService) Check(_ context.Context, words []string, _ string) (map[string]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checks = append(s.checks, append([]string(nil), words...))
	if s.checkErr != nil {
		return nil, s.checkErr
	}
	out := make(map[string]bool, len(words))
	for _, w := range words {
		ok, known := s.verdicts[w]
		out[w] = ok || !known
	}
	return out, nil
}

func (s *stubService) Suggest(_ context.Context, words []string, _ string) (map[string][]string, error) {
	out := make(map[string][]string, len(words))
	for _, w := range words {
		out[w] = s.suggestions[w]
	}
	return out, nil
}

func (s *stubService) AddWord(_ context.Context, word string, list service.List, lang string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.addErr != nil {
		return s.addErr
	}
	s.added = append(s.added, addedWord{word: word, list: list, lang: lang})
	return nil
}

func (s *stubService) RecordReplacement(_ context.Context, original, replacement, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replacements = append(s.replacements, [2]string{original, replacement})
	return nil
}

func (s *stubService) DictionaryWords(context.Context, string) ([]string, error) {
	return s.dictionary, nil
}

func (s *stubService) Authenticated() bool { return s.authed }

type stubClipboard struct {
	text string
	err  error
}

func (c *stubClipboard) ReadText() (string, error) {
	if c.err != nil {
		return "", c.err
	}
	return c.text, nil
}

func (c *stubClipboard) WriteText(s string) error {
	if c.err != nil {
		return c.err
	}
	c.text = s
	return nil
}

type memDrafts struct {
	d     draft.Draft
	ok    bool
	saves int
}

func (s *memDrafts) Load(context.Context) (draft.Draft, bool, error) { return s.d, s.ok, nil }

func (s *memDrafts) Save(_ context.Context, d draft.Draft) error {
	s.d, s.ok = d, true
	s.saves++
	return nil
}

func (s *memDrafts) Clear(context.Context) error {
	s.d, s.ok = draft.Draft{}, false
	return nil
}

func newSpellService() *stubService {
	return &stubService{
		verdicts: map[string]bool{"Ths": false, "is": true, "a": true, "tst": false},
		suggestions: map[string][]string{
			"Ths": {"This", "The"},
			"tst": {"test", "tat"},
		},
	}
}

// testConfig disables timers so drained commands never sleep.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.NoticeDuration = 0
	cfg.AutosaveDelay = 0
	return cfg
}

func newTestModel(text string, svc Service) Model {
	cfg := testConfig()
	cfg.Text = text
	cfg.Service = svc
	m := New(cfg)
	return m.SetSize(60, 12)
}

// drain runs cmd and every command produced by the messages it yields.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 200 {
			t.Fatalf("commands did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil, spinner.TickMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			var next tea.Cmd
			m, next = m.Update(msg)
			queue = append(queue, next)
		}
	}
	return m
}

func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	m, cmd := m.Update(msg)
	return drain(t, m, cmd)
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	return press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func checked(t *testing.T, m Model) Model {
	t.Helper()
	m, cmd := m.Check()
	return drain(t, m, cmd)
}

func noticeText(m Model) string {
	n, _ := m.Notice()
	return n.Text
}

func TestNew_ResolvesLanguageAndDirection(t *testing.T) {
	cfg := testConfig()
	cfg.Language = "he"
	m := New(cfg)
	if m.Language() != "he_IL" {
		t.Fatalf("language: got %q, want %q", m.Language(), "he_IL")
	}
	if m.Direction() != service.RTL {
		t.Fatalf("direction: got %v, want rtl", m.Direction())
	}

	m = New(Config{Language: "klingon"})
	if m.Language() != service.DefaultLanguage {
		t.Fatalf("unsupported language should fall back, got %q", m.Language())
	}
}

func TestCheck_FlagsMisspellings(t *testing.T) {
	svc := newSpellService()
	m := checked(t, newTestModel("Ths is a tst", svc))

	if got := m.ErrorCount(); got != 2 {
		t.Fatalf("error count: got %d, want 2", got)
	}
	rs := m.Results()
	if rs[0].Word != "Ths" || rs[0].Index != 0 || rs[1].Word != "tst" || rs[1].Index != 9 {
		t.Fatalf("unexpected results: %+v", rs)
	}
	if got := noticeText(m); got != "Found 2 spelling error(s)" {
		t.Fatalf("notice: got %q", got)
	}
	if m.Checking() {
		t.Fatalf("check should be finished")
	}
}

func TestCheck_NoErrors(t *testing.T) {
	m := checked(t, newTestModel("is a", newSpellService()))
	if m.ErrorCount() != 0 {
		t.Fatalf("expected no errors, got %d", m.ErrorCount())
	}
	if got := noticeText(m); got != "No spelling errors found!" {
		t.Fatalf("notice: got %q", got)
	}
}

func TestCheck_BlankTextWarnsWithoutRequest(t *testing.T) {
	svc := newSpellService()
	m := checked(t, newTestModel("  \n ", svc))

	n, ok := m.Notice()
	if !ok || n.Level != NoticeWarning || n.Text != "Please enter some text to check spelling" {
		t.Fatalf("unexpected notice: %+v", n)
	}
	if len(svc.checks) != 0 {
		t.Fatalf("expected no service call, got %d", len(svc.checks))
	}
}

func TestCheck_ServiceFailure(t *testing.T) {
	svc := newSpellService()
	svc.checkErr = errors.New("boom")
	m := checked(t, newTestModel("Ths is a tst", svc))

	n, _ := m.Notice()
	if n.Level != NoticeError || n.Text != "Failed to check spelling. Please try again." {
		t.Fatalf("unexpected notice: %+v", n)
	}
	if m.ErrorCount() != 0 {
		t.Fatalf("failed check should leave no results")
	}
}

func TestCheck_StaleResponseDiscarded(t *testing.T) {
	svc := newSpellService()
	m := newTestModel("Ths is a tst", svc)

	m, cmd := m.Check()
	if !m.Checking() {
		t.Fatalf("expected check in flight")
	}
	m = typeText(t, m, "!")
	m = drain(t, m, cmd)

	if m.ErrorCount() != 0 {
		t.Fatalf("stale response should be discarded, got %d results", m.ErrorCount())
	}
	if m.Checking() {
		t.Fatalf("in-flight counter should return to zero")
	}
}

func TestCheck_StaleFailureIsQuiet(t *testing.T) {
	svc := newSpellService()
	svc.checkErr = errors.New("boom")
	m := newTestModel("Ths is a tst", svc)

	m, cmd := m.Check()
	m = typeText(t, m, "!")
	m = drain(t, m, cmd)

	if got := noticeText(m); got != "" {
		t.Fatalf("failure of a superseded check should not be reported, got %q", got)
	}
	if m.Checking() {
		t.Fatalf("in-flight counter should return to zero")
	}
}

func TestCheck_DictionaryWordsFiltered(t *testing.T) {
	svc := newSpellService()
	svc.authed = true
	svc.dictionary = []string{"tst"}
	m := checked(t, newTestModel("Ths is a tst", svc))

	if m.ErrorCount() != 1 || m.Results()[0].Word != "Ths" {
		t.Fatalf("dictionary word should be filtered: %+v", m.Results())
	}
}

func TestEdit_ClearsResults(t *testing.T) {
	m := checked(t, newTestModel("Ths is a tst", newSpellService()))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnd})
	m = typeText(t, m, "s")

	if m.Text() != "Ths is a tsts" {
		t.Fatalf("text: got %q", m.Text())
	}
	if m.ErrorCount() != 0 {
		t.Fatalf("raw edit should clear results, got %d", m.ErrorCount())
	}
	if m.CanUndo() {
		t.Fatalf("raw edit should clear history")
	}
}

func TestOnChange_ReportsSource(t *testing.T) {
	var events []ChangeEvent
	cfg := testConfig()
	cfg.Text = "ab"
	cfg.OnChange = func(ev ChangeEvent) { events = append(events, ev) }
	m := New(cfg)

	m = typeText(t, m, "x")
	if len(events) != 1 || events[0].Source != buffer.ChangeSourceUser || events[0].Text != "xab" {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestClipboard_CopyCutPaste(t *testing.T) {
	clip := &stubClipboard{}
	cfg := testConfig()
	cfg.Text = "hello"
	cfg.Clipboard = clip
	m := New(cfg)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if clip.text != "hello" || noticeText(m) != "Text copied to clipboard" {
		t.Fatalf("copy: clip=%q notice=%q", clip.text, noticeText(m))
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	if m.Text() != "" || noticeText(m) != "Text cut to clipboard" {
		t.Fatalf("cut: text=%q notice=%q", m.Text(), noticeText(m))
	}

	clip.text = "pasted"
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlV})
	if m.Text() != "pasted" || noticeText(m) != "Text pasted successfully" {
		t.Fatalf("paste: text=%q notice=%q", m.Text(), noticeText(m))
	}
}

func TestClipboard_ErrorsLeaveTextUnchanged(t *testing.T) {
	clip := &stubClipboard{err: errors.New("no clipboard")}
	cfg := testConfig()
	cfg.Text = "hello"
	cfg.Clipboard = clip
	m := New(cfg)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	n, _ := m.Notice()
	if m.Text() != "hello" || n.Level != NoticeError || n.Text != "Failed to cut text" {
		t.Fatalf("cut failure: text=%q notice=%+v", m.Text(), n)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlV})
	if m.Text() != "hello" || noticeText(m) != "Unable to access clipboard" {
		t.Fatalf("paste failure: text=%q notice=%q", m.Text(), noticeText(m))
	}

	m = New(Config{Text: "x"})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if n, _ := m.Notice(); n.Level != NoticeError {
		t.Fatalf("missing clipboard should report an error, got %+v", n)
	}
}

func TestClear(t *testing.T) {
	m := checked(t, newTestModel("Ths is a tst", newSpellService()))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})

	if m.Text() != "" || m.ErrorCount() != 0 {
		t.Fatalf("clear: text=%q errors=%d", m.Text(), m.ErrorCount())
	}
	if got := noticeText(m); got != "Text cleared successfully." {
		t.Fatalf("notice: got %q", got)
	}
}

func TestSetLanguage_TearsDownDocument(t *testing.T) {
	m := checked(t, newTestModel("Ths is a tst", newSpellService()))
	m, cmd := m.SetLanguage("he-IL")
	m = drain(t, m, cmd)

	if m.Language() != "he_IL" || m.Direction() != service.RTL {
		t.Fatalf("language=%q direction=%v", m.Language(), m.Direction())
	}
	if m.Text() != "" || m.ErrorCount() != 0 || m.CanUndo() {
		t.Fatalf("language switch should reset the document")
	}
}

func TestNextLanguage_Cycles(t *testing.T) {
	cfg := testConfig()
	cfg.Languages = []string{"en_US", "de_DE", "fr_FR"}
	m := New(cfg)

	for _, want := range []string{"de_DE", "fr_FR", "en_US"} {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyF8})
		if m.Language() != want {
			t.Fatalf("language: got %q, want %q", m.Language(), want)
		}
	}
}

func TestDraft_RestoreAndAutosave(t *testing.T) {
	store := &memDrafts{d: draft.Draft{Text: "saved text", Language: "de_DE"}, ok: true}
	cfg := testConfig()
	cfg.Drafts = store
	m := New(cfg)
	m = drain(t, m, m.Init())

	if m.Text() != "saved text" || m.Language() != "de_DE" {
		t.Fatalf("restore: text=%q lang=%q", m.Text(), m.Language())
	}

	m = typeText(t, m, "x")
	if store.saves != 1 || store.d.Text != m.Text() || store.d.Language != "de_DE" {
		t.Fatalf("autosave: saves=%d draft=%+v", store.saves, store.d)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	if store.ok {
		t.Fatalf("clear should remove the draft")
	}
}

func TestInit_SkipsDraftWhenTextGiven(t *testing.T) {
	cfg := testConfig()
	cfg.Text = "given"
	cfg.Drafts = &memDrafts{}
	if cmd := New(cfg).Init(); cmd != nil {
		t.Fatalf("expected no init command")
	}
}
