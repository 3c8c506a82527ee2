package editor

import (
	"strings"

	"github.com/mattn/go-runewidth"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/iw2rmb/spellbound/annotate"
)

const (
	popupMaxRows   = 10
	popupMinWidth  = 18
	popupMaxWidth  = 40
	popupStarCells = 3
	popupStar      = "☆"

	rowIgnore = 0
	rowAdd    = 1
	rowFirst  = 2
)

// popupState is the suggestion popup for one flagged occurrence, keyed by
// (word, index).
type popupState struct {
	open    bool
	seq     int
	word    string
	index   int
	length  int
	loading bool
	items   []string

	selected int
}

// PopupState is a snapshot of the suggestion popup.
type PopupState struct {
	Open        bool
	Word        string
	Index       int
	Loading     bool
	Suggestions []string
	Selected    int
}

func (m Model) Popup() PopupState {
	p := m.popup
	if !p.open {
		return PopupState{}
	}
	return PopupState{
		Open:        true,
		Word:        p.word,
		Index:       p.index,
		Loading:     p.loading,
		Suggestions: append([]string(nil), p.items...),
		Selected:    p.selected,
	}
}

// selectable is the number of rows that can be activated.
func (p popupState) selectable() int { return rowFirst + len(p.items) }

// rowCount includes the loading or empty placeholder row.
func (p popupState) rowCount() int {
	if len(p.items) == 0 {
		return rowFirst + 1
	}
	return rowFirst + len(p.items)
}

func (p popupState) rowText(i int) string {
	switch {
	case i == rowIgnore:
		return "Ignore"
	case i == rowAdd:
		return "Add to dictionary"
	case len(p.items) == 0 && p.loading:
		return "Loading suggestions…"
	case len(p.items) == 0:
		return "No suggestions"
	default:
		return p.items[i-rowFirst]
	}
}

func (p popupState) suggestion(i int) (string, bool) {
	if i < rowFirst || i-rowFirst >= len(p.items) {
		return "", false
	}
	return p.items[i-rowFirst], true
}

func (p *popupState) move(delta int) {
	n := p.selectable()
	if n == 0 {
		return
	}
	p.selected = clampInt(p.selected+delta, 0, n-1)
}

// popupBox is the popup's placement in viewport-local cells.
type popupBox struct {
	x, y   int
	width  int
	height int
	top    int
}

func (b popupBox) contains(x, y int) bool {
	return x >= b.x && x < b.x+b.width && y >= b.y && y < b.y+b.height
}

// popupGeometry places the popup below its word, or above when there is no
// room. Rendering and mouse handling share it.
func (m Model) popupGeometry() (popupBox, bool) {
	p := m.popup
	vw, vh := m.viewport.Width, m.viewport.Height
	if !p.open || vw <= 0 || vh <= 0 {
		return popupBox{}, false
	}
	ax, ay, ok := m.docToScreen(p.index)
	if !ok {
		return popupBox{}, false
	}

	width := popupMinWidth
	for i := 0; i < p.rowCount(); i++ {
		w := runewidth.StringWidth(p.rowText(i)) + 2
		if i >= rowFirst {
			w += popupStarCells
		}
		width = max(width, w)
	}
	width = min(width, popupMaxWidth, vw)

	height := min(p.rowCount(), popupMaxRows, vh)
	below := vh - (ay + 1)
	y := ay + 1
	if height > below {
		if ay >= height {
			y = ay - height
		} else if ay > below {
			height = ay
			y = 0
		} else {
			height = max(below, 1)
		}
	}
	y = clampInt(y, 0, max(vh-height, 0))
	x := clampInt(ax, 0, max(vw-width, 0))

	top := clampInt(p.selected-height+1, 0, max(p.rowCount()-height, 0))

	return popupBox{x: x, y: y, width: width, height: height, top: top}, true
}

func (m Model) renderPopup(base string) string {
	box, ok := m.popupGeometry()
	if !ok {
		return base
	}
	rows := make([]string, 0, box.height)
	for i := box.top; i < box.top+box.height && i < m.popup.rowCount(); i++ {
		rows = append(rows, m.renderPopupRow(i, box.width))
	}
	return overlay.Composite(strings.Join(rows, "\n"), base, overlay.Left, overlay.Top, box.x, box.y)
}

func (m Model) renderPopupRow(i, width int) string {
	p := m.popup
	st := m.cfg.Style
	base := st.Popup
	switch {
	case i == p.selected && i < p.selectable():
		base = st.PopupSelected
	case i < rowFirst:
		base = st.PopupAction
	case len(p.items) == 0:
		base = st.PopupMuted
	}

	textWidth := width - 2
	_, isSuggestion := p.suggestion(i)
	if isSuggestion {
		textWidth -= popupStarCells
	}
	text := runewidth.Truncate(p.rowText(i), max(textWidth, 0), "…")
	text = " " + runewidth.FillRight(text, max(textWidth, 0)) + " "
	if isSuggestion {
		text += " " + popupStar + " "
	}
	return base.Render(text)
}

// popupRowAt maps a click inside box to a row index. star reports whether the
// click landed on a suggestion's star marker.
func (m Model) popupRowAt(box popupBox, x, y int) (row int, star bool) {
	row = box.top + (y - box.y)
	_, isSuggestion := m.popup.suggestion(row)
	star = isSuggestion && x >= box.x+box.width-popupStarCells
	return row, star
}

// syncPopup closes the popup once its decoration is gone.
func (m *Model) syncPopup() {
	if !m.popup.open {
		return
	}
	for _, r := range m.session.Results() {
		if r.Word == m.popup.word && r.Index == m.popup.index {
			return
		}
	}
	m.closePopup()
}

func (m *Model) closePopup() {
	m.popup = popupState{}
}

func (m *Model) openPopup(r annotate.Result) {
	m.popupSeq++
	m.popup = popupState{
		open:    true,
		seq:     m.popupSeq,
		word:    r.Word,
		index:   r.Index,
		length:  r.Length,
		loading: m.provider != nil,
	}
}
