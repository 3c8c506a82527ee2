package editor

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/spellbound/annotate"
	"github.com/iw2rmb/spellbound/buffer"
	"github.com/iw2rmb/spellbound/internal/draft"
	"github.com/iw2rmb/spellbound/service"
)

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.MouseMsg:
		return m.updateMouse(msg)

	case spinner.TickMsg:
		if m.inflight == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case checkDoneMsg:
		return m.handleCheckDone(msg)
	case suggestionsMsg:
		return m.handleSuggestions(msg)
	case wordAddedMsg:
		return m.handleWordAdded(msg)
	case replacementLoggedMsg:
		if msg.err != nil {
			m.logger.Warn("record replacement failed", "original", msg.original, "replacement", msg.replacement, "err", msg.err)
		}
		return m, nil
	case prefetchDoneMsg:
		if msg.err != nil {
			m.logger.Warn("prefetch suggestions failed", "words", msg.words, "err", msg.err)
		}
		return m, nil
	case noticeExpiredMsg:
		m.expireNotice(msg)
		return m, nil

	case autosaveMsg:
		if msg.seq != m.saveSeq || m.cfg.Drafts == nil {
			return m, nil
		}
		d := draft.Draft{Text: m.buf.Text(), Language: m.session.Language()}
		return m, saveDraftCmd(m.cfg.Drafts, msg.seq, d)
	case draftSavedMsg:
		if msg.seq != m.saveSeq {
			return m, nil
		}
		if msg.err != nil {
			m.logger.Warn("save draft failed", "err", msg.err)
			m.saveStatus = saveFailed
			return m, nil
		}
		m.saveStatus = saveSaved
		return m, nil
	case draftLoadedMsg:
		return m.handleDraftLoaded(msg)
	case draftClearedMsg:
		if msg.err != nil {
			m.logger.Warn("clear draft failed", "err", msg.err)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}
	km := m.cfg.KeyMap

	// Paste events insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		m.closePopup()
		if m.buf.InsertText(string(msg.Runes)) {
			return m, m.afterUserEdit()
		}
		return m, nil
	}

	if m.popup.open {
		if handled, cmd := m.updatePopupKey(msg); handled {
			return m, cmd
		}
		m.closePopup()
	}

	var cmd tea.Cmd
	moved := false
	edited := false
	switch {
	case key.Matches(msg, km.Left):
		moved = m.move(buffer.MoveGrapheme, buffer.DirLeft)
	case key.Matches(msg, km.Right):
		moved = m.move(buffer.MoveGrapheme, buffer.DirRight)
	case key.Matches(msg, km.Up):
		moved = m.move(buffer.MoveLine, buffer.DirUp)
	case key.Matches(msg, km.Down):
		moved = m.move(buffer.MoveLine, buffer.DirDown)
	case key.Matches(msg, km.WordLeft):
		moved = m.move(buffer.MoveWord, buffer.DirLeft)
	case key.Matches(msg, km.WordRight):
		moved = m.move(buffer.MoveWord, buffer.DirRight)
	case key.Matches(msg, km.Home):
		moved = m.move(buffer.MoveLine, buffer.DirHome)
	case key.Matches(msg, km.End):
		moved = m.move(buffer.MoveLine, buffer.DirEnd)
	case key.Matches(msg, km.DocStart):
		moved = m.move(buffer.MoveDoc, buffer.DirHome)
	case key.Matches(msg, km.DocEnd):
		moved = m.move(buffer.MoveDoc, buffer.DirEnd)

	case key.Matches(msg, km.Backspace):
		edited = m.buf.DeleteBackward()
	case key.Matches(msg, km.Delete):
		edited = m.buf.DeleteForward()
	case key.Matches(msg, km.DeleteWord):
		edited = m.buf.DeleteWordBackward()
	case key.Matches(msg, km.Enter):
		edited = m.buf.InsertNewline()

	case key.Matches(msg, km.Check):
		cmd = m.startCheck()
	case key.Matches(msg, km.Suggest):
		cmd = m.suggestAtCursor()
	case key.Matches(msg, km.Undo):
		cmd = m.undo()
	case key.Matches(msg, km.Clear):
		cmd = m.clear()
	case key.Matches(msg, km.NextLanguage):
		cmd = m.nextLanguage()

	case key.Matches(msg, km.Copy):
		cmd = m.copyText()
	case key.Matches(msg, km.Cut):
		cmd = m.cutText()
	case key.Matches(msg, km.Paste):
		cmd = m.pasteClipboard()

	default:
		switch {
		case msg.Type == tea.KeyTab:
			edited = m.buf.InsertText("\t")
		case msg.Type == tea.KeySpace:
			edited = m.buf.InsertText(" ")
		case msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt:
			edited = m.buf.InsertText(string(msg.Runes))
		}
	}

	if edited {
		return m, m.afterUserEdit()
	}
	if moved {
		m.rebuildContent()
		m.followCursor()
	}
	return m, cmd
}

// updatePopupKey handles keys while the popup is open. Unhandled keys close
// the popup and fall through to normal editing.
func (m *Model) updatePopupKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	km := m.cfg.KeyMap
	switch {
	case key.Matches(msg, km.Dismiss):
		m.closePopup()
		return true, nil
	case key.Matches(msg, km.PopupUp):
		m.popup.move(-1)
		return true, nil
	case key.Matches(msg, km.PopupDown):
		m.popup.move(1)
		return true, nil
	case key.Matches(msg, km.Accept):
		return true, m.activatePopupRow(m.popup.selected, false)
	case key.Matches(msg, km.Star):
		if _, ok := m.popup.suggestion(m.popup.selected); ok {
			return true, m.activatePopupRow(m.popup.selected, true)
		}
		return true, nil
	case key.Matches(msg, km.Ignore):
		return true, m.activatePopupRow(rowIgnore, false)
	case key.Matches(msg, km.AddToDictionary):
		return true, m.activatePopupRow(rowAdd, false)
	}
	return false, nil
}

func (m *Model) move(unit buffer.MoveUnit, dir buffer.MoveDir) bool {
	before := m.buf.Cursor()
	m.buf.Move(buffer.Move{Unit: unit, Dir: dir})
	return m.buf.Cursor() != before
}

// afterUserEdit feeds the buffer's last change through the reconciler. Any
// raw edit invalidates the spelling results.
func (m *Model) afterUserEdit() tea.Cmd {
	m.reconcileUserEdit()
	return m.textChanged(buffer.ChangeSourceUser)
}

func (m *Model) reconcileUserEdit() {
	var edits []annotate.Edit
	if ch, ok := m.buf.LastChange(); ok {
		for _, e := range ch.AppliedEdits {
			edits = append(edits, annotate.Edit{Start: e.Start, OldEnd: e.OldEnd, NewEnd: e.NewEnd})
		}
	}
	rec := m.session.Reconcile(m.buf.Text(), edits)
	if len(rec.Collapsed) > 0 {
		m.logger.Debug("edit collapsed decorations", "collapsed", len(rec.Collapsed), "dropped", rec.Dropped)
	}
	m.closePopup()
}

// textChanged redraws, notifies the host and schedules a draft save.
func (m *Model) textChanged(source buffer.ChangeSource) tea.Cmd {
	m.redraw(source)
	return m.scheduleSave()
}

func (m *Model) redraw(source buffer.ChangeSource) {
	m.rebuildContent()
	m.followCursor()
	if m.cfg.OnChange != nil {
		m.cfg.OnChange(buildChangeEvent(m.buf, source))
	}
}

func (m *Model) startCheck() tea.Cmd {
	if m.cfg.Service == nil {
		return m.notify(NoticeWarning, "Spelling service is not configured")
	}
	req, err := m.session.BeginCheck()
	if errors.Is(err, annotate.ErrEmptyText) {
		return m.notify(NoticeWarning, "Please enter some text to check spelling")
	}
	if err != nil {
		return m.notify(NoticeError, "Failed to check spelling. Please try again.")
	}
	m.inflight++
	m.logger.Debug("check started", "words", len(req.Words), "language", req.Language, "seq", req.Seq)
	cmds := []tea.Cmd{checkCmd(m.cfg.Service, req)}
	if m.inflight == 1 {
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

func (m Model) handleCheckDone(msg checkDoneMsg) (Model, tea.Cmd) {
	m.inflight = max(m.inflight-1, 0)

	var dictNotice tea.Cmd
	if msg.dictErr != nil {
		m.logger.Warn("load dictionary words failed", "language", msg.req.Language, "err", msg.dictErr)
		dictNotice = m.notify(NoticeError, "Failed to load dictionary words")
	} else if msg.dictLoaded && msg.req.Language == m.session.Language() {
		m.session.SetDictionary(msg.dict)
	}

	if msg.err != nil {
		m.logger.Warn("spell check failed", "language", msg.req.Language, "err", msg.err)
		if !m.session.IsCurrent(msg.req) {
			return m, dictNotice
		}
		return m, m.notify(NoticeError, "Failed to check spelling. Please try again.")
	}

	results, ok := m.session.ApplyCheck(msg.req, msg.correct)
	if !ok {
		return m, dictNotice
	}
	m.syncPopup()
	m.rebuildContent()

	var cmds []tea.Cmd
	switch {
	case dictNotice != nil:
		cmds = append(cmds, dictNotice)
	case len(results) == 0:
		cmds = append(cmds, m.notify(NoticeSuccess, "No spelling errors found!"))
	default:
		cmds = append(cmds, m.notify(NoticeInfo, fmt.Sprintf("Found %d spelling error(s)", len(results))))
	}

	if m.cfg.PrefetchSuggestions && m.provider != nil && len(results) > 0 {
		words := make([]string, 0, len(results))
		for _, r := range results {
			words = append(words, r.Word)
		}
		cmds = append(cmds, prefetchCmd(m.provider, words, msg.req.Language))
	}
	return m, tea.Batch(cmds...)
}

// suggestAtCursor opens the popup for the misspelling under or just before
// the caret.
func (m *Model) suggestAtCursor() tea.Cmd {
	off := m.buf.CursorOffset()
	r, ok := m.session.ResultAt(off)
	if !ok && off > 0 {
		r, ok = m.session.ResultAt(off - 1)
	}
	if !ok {
		return nil
	}
	return m.showSuggestions(r)
}

func (m *Model) showSuggestions(r annotate.Result) tea.Cmd {
	m.openPopup(r)
	if m.provider == nil {
		return nil
	}
	return lookupCmd(m.provider, m.popup.seq, r.Word, m.session.Language())
}

func (m Model) handleSuggestions(msg suggestionsMsg) (Model, tea.Cmd) {
	if !m.popup.open || msg.seq != m.popup.seq {
		return m, nil
	}
	m.popup.loading = false
	if msg.err != nil {
		m.logger.Warn("load suggestions failed", "word", msg.word, "err", msg.err)
		return m, m.notify(NoticeError, "Failed to load suggestions")
	}
	m.popup.items = msg.items
	if len(msg.items) > 0 {
		m.popup.selected = rowFirst
	}
	return m, nil
}

// activatePopupRow runs the action for row. star adds the row's suggestion
// to the star list instead of applying it.
func (m *Model) activatePopupRow(row int, star bool) tea.Cmd {
	p := m.popup
	if !p.open {
		return nil
	}
	switch {
	case row == rowIgnore:
		m.closePopup()
		if m.session.Ignore(p.word, p.index) {
			m.rebuildContent()
		}
		return nil
	case row == rowAdd:
		m.closePopup()
		return m.addWord(p.word, service.ListDictionary)
	}

	s, ok := p.suggestion(row)
	if !ok {
		return nil
	}
	m.closePopup()
	if star {
		return m.addWord(s, service.ListStarList)
	}
	return m.replace(p.word, p.index, s)
}

func (m *Model) addWord(word string, list service.List) tea.Cmd {
	if m.cfg.Service == nil || !m.cfg.Service.Authenticated() {
		return m.notify(NoticeWarning, "Please login to add words to "+list.String())
	}
	return addWordCmd(m.cfg.Service, word, list, m.session.Language())
}

func (m Model) handleWordAdded(msg wordAddedMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Warn("add word failed", "word", msg.word, "list", msg.list.String(), "err", msg.err)
		return m, m.notify(NoticeError, "Failed to add word to "+msg.list.String())
	}
	if m.provider != nil {
		m.provider.Invalidate(msg.word)
	}
	if msg.lang == m.session.Language() {
		m.session.WordAdded(msg.word)
		m.syncPopup()
		m.rebuildContent()
	}
	return m, m.notify(NoticeSuccess, "Word added to "+msg.list.String()+" successfully")
}

// replace applies a suggestion to the flagged occurrence (word, index).
func (m *Model) replace(word string, index int, replacement string) tea.Cmd {
	rec, ok := m.session.Replace(word, index, replacement)
	if !ok {
		return nil
	}
	m.buf.ReplaceRunes(rec.Position, rec.Position+rec.Result.Length, rec.Replacement, buffer.ChangeSourceEngine)
	m.syncPopup()

	cmds := []tea.Cmd{m.textChanged(buffer.ChangeSourceEngine)}
	if m.cfg.Service != nil {
		cmds = append(cmds, recordReplacementCmd(m.cfg.Service, rec.Original, rec.Replacement, m.session.Language()))
	}
	return tea.Batch(cmds...)
}

func (m *Model) undo() tea.Cmd {
	rec, ok := m.session.Undo()
	if !ok {
		return nil
	}
	n := len([]rune(rec.Replacement))
	m.buf.ReplaceRunes(rec.Position, rec.Position+n, rec.Original, buffer.ChangeSourceEngine)
	m.syncPopup()
	return tea.Batch(
		m.textChanged(buffer.ChangeSourceEngine),
		m.notify(NoticeSuccess, "Last change undone"),
	)
}

// clear empties the document. The saved draft is removed rather than
// overwritten.
func (m *Model) clear() tea.Cmd {
	if m.cfg.Drafts == nil {
		var cmd tea.Cmd
		if m.buf.Clear() {
			cmd = m.afterUserEdit()
		}
		return tea.Batch(cmd, m.notify(NoticeSuccess, "Text cleared successfully."))
	}

	if m.buf.Clear() {
		m.reconcileUserEdit()
		m.redraw(buffer.ChangeSourceUser)
	}
	m.saveSeq++
	m.saveStatus = saveIdle
	return tea.Batch(clearDraftCmd(m.cfg.Drafts), m.notify(NoticeSuccess, "Text cleared successfully."))
}

func (m *Model) nextLanguage() tea.Cmd {
	langs := m.cfg.Languages
	if len(langs) == 0 {
		return nil
	}
	cur := m.session.Language()
	next := service.ResolveLanguage(langs[0])
	for i, l := range langs {
		if service.ResolveLanguage(l) == cur {
			next = service.ResolveLanguage(langs[(i+1)%len(langs)])
			break
		}
	}
	return m.switchLanguage(next)
}

func (m *Model) switchLanguage(lang string) tea.Cmd {
	if lang == m.session.Language() {
		return nil
	}
	m.closePopup()
	m.session.SetLanguage(lang)
	m.buf.SetText("", buffer.ChangeSourceEngine)
	if m.provider != nil {
		m.provider.Reset()
	}
	m.direction = service.TextDirection(lang)
	m.logger.Info("language changed", "language", lang, "direction", m.direction.String())
	return tea.Batch(
		m.textChanged(buffer.ChangeSourceEngine),
		m.notify(NoticeInfo, "Language: "+service.LanguageName(lang)),
	)
}

func (m Model) handleDraftLoaded(msg draftLoadedMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Warn("load draft failed", "err", msg.err)
		return m, nil
	}
	if !msg.ok || m.buf.Len() > 0 {
		return m, nil
	}
	if lang := service.ResolveLanguage(msg.draft.Language); msg.draft.Language != "" && lang != m.session.Language() {
		m.session.SetLanguage(lang)
		m.direction = service.TextDirection(lang)
	}
	m.buf.SetText(msg.draft.Text, buffer.ChangeSourceEngine)
	m.session.Reconcile(m.buf.Text(), nil)
	m.saveStatus = saveSaved
	m.redraw(buffer.ChangeSourceEngine)
	m.logger.Info("draft restored", "chars", m.buf.Len(), "language", m.session.Language())
	return m, nil
}

func (m *Model) copyText() tea.Cmd {
	if m.cfg.Clipboard == nil {
		return m.notify(NoticeError, "Clipboard is not available")
	}
	if err := m.cfg.Clipboard.WriteText(m.buf.Text()); err != nil {
		m.logger.Warn("copy failed", "err", err)
		return m.notify(NoticeError, "Failed to copy text")
	}
	return m.notify(NoticeSuccess, "Text copied to clipboard")
}

func (m *Model) cutText() tea.Cmd {
	if m.cfg.Clipboard == nil {
		return m.notify(NoticeError, "Clipboard is not available")
	}
	if err := m.cfg.Clipboard.WriteText(m.buf.Text()); err != nil {
		m.logger.Warn("cut failed", "err", err)
		return m.notify(NoticeError, "Failed to cut text")
	}
	var cmd tea.Cmd
	if m.buf.Clear() {
		cmd = m.afterUserEdit()
	}
	return tea.Batch(cmd, m.notify(NoticeSuccess, "Text cut to clipboard"))
}

func (m *Model) pasteClipboard() tea.Cmd {
	if m.cfg.Clipboard == nil {
		return m.notify(NoticeError, "Clipboard is not available")
	}
	s, err := m.cfg.Clipboard.ReadText()
	if err != nil {
		m.logger.Warn("paste failed", "err", err)
		return m.notify(NoticeError, "Unable to access clipboard")
	}
	if s == "" || !m.buf.InsertText(s) {
		return nil
	}
	return tea.Batch(m.afterUserEdit(), m.notify(NoticeSuccess, "Text pasted successfully"))
}
