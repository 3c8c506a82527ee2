package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/iw2rmb/spellbound/buffer"
	"github.com/iw2rmb/spellbound/service"
	"github.com/iw2rmb/spellbound/tokenize"
)

func (m Model) View() string {
	view := m.renderPopup(m.viewport.View())
	parts := []string{view, m.renderStatus()}
	if m.cfg.ShowHelp {
		parts = append(parts, m.help.View(helpKeys{km: m.cfg.KeyMap, popup: m.popup.open}))
	}
	return strings.Join(parts, "\n")
}

// decorations marks every document rune offset covered by a rendered
// misspelling.
func (m *Model) decorations() []bool {
	marks := make([]bool, m.buf.Len())
	for _, seg := range m.session.Segments() {
		if !seg.Decorated {
			continue
		}
		n := len([]rune(seg.Text))
		for off := seg.Start; off < seg.Start+n && off < len(marks); off++ {
			marks[off] = true
		}
	}
	return marks
}

func (m *Model) renderContent() string {
	st := m.cfg.Style
	marks := m.decorations()
	cursor := m.buf.Cursor()
	cursorRow := m.layout.visualRowFor(cursor)

	out := make([]string, 0, len(m.layout.rows))
	for vr, row := range m.layout.rows {
		lineStart := m.buf.OffsetOf(buffer.Pos{Row: row.logicalRow})

		var sb strings.Builder
		if pad := m.rowPad(row); pad > 0 {
			sb.WriteString(strings.Repeat(" ", pad))
		}
		for _, c := range row.cells {
			s := st.Text
			if off := lineStart + c.startCol; off < len(marks) && marks[off] {
				s = st.Misspelled
			}
			if m.focused && vr == cursorRow && cursor.Col >= c.startCol && cursor.Col < c.endCol {
				s = st.Cursor
			}
			sb.WriteString(s.Render(c.text))
		}
		if m.focused && vr == cursorRow && cursor.Col >= row.endCol {
			sb.WriteString(st.Cursor.Render(" "))
		}
		out = append(out, sb.String())
	}
	return strings.Join(out, "\n")
}

// rowPad right-aligns rows for right-to-left languages.
func (m Model) rowPad(row layoutRow) int {
	if m.direction != service.RTL || m.viewport.Width <= 0 {
		return 0
	}
	return max(m.viewport.Width-row.width-1, 0)
}

// docToScreen maps a document rune offset to viewport-local cells. ok is
// false when the offset is scrolled out of view.
func (m Model) docToScreen(off int) (x, y int, ok bool) {
	if len(m.layout.rows) == 0 {
		return 0, 0, false
	}
	p := m.buf.PosAt(off)
	vr := m.layout.visualRowFor(p)
	y = vr - m.viewport.YOffset
	if y < 0 || y >= m.viewport.Height {
		return 0, 0, false
	}
	row := m.layout.rows[vr]
	return m.rowPad(row) + row.xForCol(p.Col), y, true
}

// screenToDocPos maps viewport-local cells to a document position. inCell
// reports whether the point is on a character rather than past a row's end.
func (m Model) screenToDocPos(x, y int) (p buffer.Pos, inCell bool) {
	if len(m.layout.rows) == 0 {
		return buffer.Pos{}, false
	}
	vr := clampInt(m.viewport.YOffset+y, 0, len(m.layout.rows)-1)
	row := m.layout.rows[vr]
	x -= m.rowPad(row)
	if x < 0 {
		return buffer.Pos{Row: row.logicalRow, Col: row.startCol}, false
	}
	col, inCell := row.colAt(x)
	return buffer.Pos{Row: row.logicalRow, Col: col}, inCell
}

func (m Model) renderStatus() string {
	st := m.cfg.Style

	stats := tokenize.Count(m.buf.Text())
	right := []string{service.LanguageName(m.session.Language())}
	right = append(right, pluralize(m.session.ErrorCount(), "error", "errors"))
	right = append(right, fmt.Sprintf("%d chars", stats.Chars), pluralize(stats.Words, "word", "words"))
	if s := m.saveStatus.String(); s != "" {
		right = append(right, s)
	}
	rightText := st.StatusMuted.Render(strings.Join(right, " · "))

	var left string
	switch {
	case m.inflight > 0:
		left = m.spinner.View() + " " + st.Status.Render("Checking…")
	case m.notice.Text != "":
		avail := max(m.width-lipgloss.Width(rightText)-1, 0)
		left = st.notice(m.notice.Level).Render(runewidth.Truncate(m.notice.Text, avail, "…"))
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(rightText)
	if gap < 1 {
		if m.width > 0 && lipgloss.Width(rightText) >= m.width {
			return left
		}
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + rightText
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
