package editor

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if isWheelMouse(msg) {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if !m.focused || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if !m.mouseInBounds(msg.X, msg.Y) {
		if m.popup.open {
			m.closePopup()
		}
		return m, nil
	}

	if m.popup.open {
		if box, ok := m.popupGeometry(); ok && box.contains(msg.X, msg.Y) {
			row, star := m.popupRowAt(box, msg.X, msg.Y)
			if row >= m.popup.selectable() {
				return m, nil
			}
			cmd := m.activatePopupRow(row, star)
			return m, cmd
		}
		m.closePopup()
	}

	p, inCell := m.screenToDocPos(msg.X, msg.Y)
	m.buf.SetCursor(p)
	var cmd tea.Cmd
	if inCell {
		if r, ok := m.session.ResultAt(m.buf.OffsetOf(p)); ok {
			cmd = m.showSuggestions(r)
		}
	}
	m.rebuildContent()
	return m, cmd
}

func isWheelMouse(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress &&
		(msg.Button == tea.MouseButtonWheelUp ||
			msg.Button == tea.MouseButtonWheelDown ||
			msg.Button == tea.MouseButtonWheelLeft ||
			msg.Button == tea.MouseButtonWheelRight)
}

func (m Model) mouseInBounds(x, y int) bool {
	if m.viewport.Width <= 0 || m.viewport.Height <= 0 {
		return false
	}
	return x >= 0 && x < m.viewport.Width && y >= 0 && y < m.viewport.Height
}
