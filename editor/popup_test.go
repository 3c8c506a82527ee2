package editor

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/spellbound/buffer"
	"github.com/iw2rmb/spellbound/service"
)

// openOnTst checks "Ths is a tst" and opens the popup for "tst" with the
// caret at the end of the line.
func openOnTst(t *testing.T, svc *stubService) Model {
	t.Helper()
	m := checked(t, newTestModel("Ths is a tst", svc))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnd})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	p := m.Popup()
	if !p.Open || p.Word != "tst" || p.Index != 9 {
		t.Fatalf("expected popup for tst@9, got %+v", p)
	}
	return m
}

func TestPopup_LoadsSuggestions(t *testing.T) {
	m := openOnTst(t, newSpellService())
	p := m.Popup()
	if p.Loading {
		t.Fatalf("suggestions should be loaded")
	}
	if strings.Join(p.Suggestions, ",") != "test,tat" {
		t.Fatalf("suggestions: got %v", p.Suggestions)
	}
	if p.Selected != rowFirst {
		t.Fatalf("first suggestion should be selected, got %d", p.Selected)
	}
}

func TestPopup_AcceptReplacesAndUndo(t *testing.T) {
	svc := newSpellService()
	m := openOnTst(t, svc)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Text() != "Ths is a test" {
		t.Fatalf("text after replace: %q", m.Text())
	}
	if m.Popup().Open {
		t.Fatalf("popup should close after replace")
	}
	if m.ErrorCount() != 1 || m.Results()[0].Word != "Ths" {
		t.Fatalf("remaining results: %+v", m.Results())
	}
	if got := m.Cursor(); got != (buffer.Pos{Row: 0, Col: 13}) {
		t.Fatalf("caret should shift with the replacement, got %+v", got)
	}
	if len(svc.replacements) != 1 || svc.replacements[0] != [2]string{"tst", "test"} {
		t.Fatalf("replacement not recorded: %+v", svc.replacements)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlZ})
	if m.Text() != "Ths is a tst" {
		t.Fatalf("text after undo: %q", m.Text())
	}
	if m.ErrorCount() != 2 {
		t.Fatalf("undo should restore the result, got %d", m.ErrorCount())
	}
	if got := m.Cursor(); got != (buffer.Pos{Row: 0, Col: 12}) {
		t.Fatalf("caret after undo: %+v", got)
	}
	if got := noticeText(m); got != "Last change undone" {
		t.Fatalf("notice: %q", got)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlZ})
	if m.Text() != "Ths is a tst" {
		t.Fatalf("undo with empty history should be a no-op")
	}
}

func TestPopup_SelectSecondSuggestion(t *testing.T) {
	m := openOnTst(t, newSpellService())
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.Popup().Selected != rowFirst+1 {
		t.Fatalf("selection should clamp at the last row, got %d", m.Popup().Selected)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Text() != "Ths is a tat" {
		t.Fatalf("text: %q", m.Text())
	}
}

func TestPopup_Ignore(t *testing.T) {
	svc := newSpellService()
	m := openOnTst(t, svc)
	m = typeText(t, m, "i")

	if m.Popup().Open || m.ErrorCount() != 1 {
		t.Fatalf("ignore: open=%v errors=%d", m.Popup().Open, m.ErrorCount())
	}
	if m.Text() != "Ths is a tst" {
		t.Fatalf("ignore must not type into the document: %q", m.Text())
	}

	m = checked(t, m)
	for _, r := range m.Results() {
		if r.Word == "tst" {
			t.Fatalf("ignored word flagged again")
		}
	}
}

func TestPopup_AddToDictionaryRequiresLogin(t *testing.T) {
	svc := newSpellService()
	m := openOnTst(t, svc)
	m = typeText(t, m, "d")

	n, _ := m.Notice()
	if n.Level != NoticeWarning || n.Text != "Please login to add words to dictionary" {
		t.Fatalf("unexpected notice: %+v", n)
	}
	if len(svc.added) != 0 || m.ErrorCount() != 2 {
		t.Fatalf("nothing should change without login")
	}
}

func TestPopup_AddToDictionary(t *testing.T) {
	svc := newSpellService()
	svc.authed = true
	m := openOnTst(t, svc)
	m = typeText(t, m, "d")

	if len(svc.added) != 1 || svc.added[0] != (addedWord{word: "tst", list: service.ListDictionary, lang: "en_US"}) {
		t.Fatalf("unexpected add: %+v", svc.added)
	}
	if m.ErrorCount() != 1 {
		t.Fatalf("added word should be unflagged, got %d", m.ErrorCount())
	}
	if got := noticeText(m); got != "Word added to dictionary successfully" {
		t.Fatalf("notice: %q", got)
	}
}

func TestPopup_AddedWordsLeaveSuggestionCache(t *testing.T) {
	svc := newSpellService()
	svc.authed = true
	m := openOnTst(t, svc)
	cache := m.provider.Cache()
	if _, ok := cache.Get("tst"); !ok {
		t.Fatalf("opening the popup should cache suggestions for tst")
	}

	cache.Put("test", []string{"tests"})
	m = typeText(t, m, "s")
	if _, ok := cache.Get("test"); ok {
		t.Fatalf("starred suggestion should be dropped from the cache")
	}
	if _, ok := cache.Get("tst"); !ok {
		t.Fatalf("starring must not drop the flagged word's entry")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	m = typeText(t, m, "d")
	if len(svc.added) != 2 || svc.added[1].word != "tst" {
		t.Fatalf("unexpected adds: %+v", svc.added)
	}
	if _, ok := cache.Get("tst"); ok {
		t.Fatalf("word added to the dictionary should be dropped from the cache")
	}
}

func TestPopup_AddFailure(t *testing.T) {
	svc := newSpellService()
	svc.authed = true
	svc.addErr = errors.New("nope")
	m := openOnTst(t, svc)
	m = typeText(t, m, "d")

	if m.ErrorCount() != 2 || noticeText(m) != "Failed to add word to dictionary" {
		t.Fatalf("failure: errors=%d notice=%q", m.ErrorCount(), noticeText(m))
	}
}

func TestPopup_StarSuggestion(t *testing.T) {
	svc := newSpellService()
	svc.authed = true
	m := openOnTst(t, svc)
	m = typeText(t, m, "s")

	if len(svc.added) != 1 || svc.added[0].word != "test" || svc.added[0].list != service.ListStarList {
		t.Fatalf("unexpected add: %+v", svc.added)
	}
	if m.Text() != "Ths is a tst" {
		t.Fatalf("starring must not replace: %q", m.Text())
	}
	if got := noticeText(m); got != "Word added to star list successfully" {
		t.Fatalf("notice: %q", got)
	}
}

func TestPopup_EscAndTypingClose(t *testing.T) {
	m := openOnTst(t, newSpellService())
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Popup().Open {
		t.Fatalf("esc should close the popup")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	m = typeText(t, m, "x")
	if m.Popup().Open {
		t.Fatalf("typing should close the popup")
	}
	if m.Text() != "Ths is a tstx" || m.ErrorCount() != 0 {
		t.Fatalf("typing: text=%q errors=%d", m.Text(), m.ErrorCount())
	}
}

func TestPopup_EmptySuggestions(t *testing.T) {
	svc := newSpellService()
	delete(svc.suggestions, "tst")
	m := openOnTst(t, svc)

	p := m.Popup()
	if p.Loading || len(p.Suggestions) != 0 || p.Selected != rowIgnore {
		t.Fatalf("unexpected popup: %+v", p)
	}
	if !strings.Contains(m.View(), "No suggestions") {
		t.Fatalf("empty state not rendered:\n%s", m.View())
	}
}

func TestMouse_ClickOpensAndDismissesPopup(t *testing.T) {
	m := checked(t, newTestModel("Ths is a tst", newSpellService()))

	m, cmd := m.Update(tea.MouseMsg{X: 10, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = drain(t, m, cmd)
	p := m.Popup()
	if !p.Open || p.Word != "tst" || p.Index != 9 {
		t.Fatalf("click should open popup for tst, got %+v", p)
	}

	m, cmd = m.Update(tea.MouseMsg{X: 40, Y: 8, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = drain(t, m, cmd)
	if m.Popup().Open {
		t.Fatalf("click outside should dismiss the popup")
	}

	m, cmd = m.Update(tea.MouseMsg{X: 4, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = drain(t, m, cmd)
	if m.Popup().Open {
		t.Fatalf("click on a correct word should not open the popup")
	}
	if got := m.Cursor(); got != (buffer.Pos{Row: 0, Col: 4}) {
		t.Fatalf("click should move the caret, got %+v", got)
	}
}

func TestMouse_ClickPopupRowAccepts(t *testing.T) {
	m := checked(t, newTestModel("Ths is a tst", newSpellService()))
	m, cmd := m.Update(tea.MouseMsg{X: 10, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = drain(t, m, cmd)

	box, ok := m.popupGeometry()
	if !ok {
		t.Fatalf("popup should be placed")
	}
	if box.y != 1 || box.x != 9 {
		t.Fatalf("popup should sit below the word, got %+v", box)
	}

	m, cmd = m.Update(tea.MouseMsg{X: box.x + 1, Y: box.y + rowFirst, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = drain(t, m, cmd)
	if m.Text() != "Ths is a test" {
		t.Fatalf("clicking a suggestion should replace, got %q", m.Text())
	}
}
