package editor

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the editor key bindings.
//
// Bindings must be portable across terminals (ctrl/alt fallbacks).
type KeyMap struct {
	Left, Right, Up, Down key.Binding
	WordLeft, WordRight   key.Binding
	Home, End             key.Binding
	DocStart, DocEnd      key.Binding

	Backspace, Delete, DeleteWord key.Binding
	Enter                         key.Binding

	Check        key.Binding
	Suggest      key.Binding
	Undo         key.Binding
	Clear        key.Binding
	NextLanguage key.Binding

	Copy, Cut, Paste key.Binding

	// Popup bindings apply while the suggestion popup is open.
	PopupUp, PopupDown key.Binding
	Accept             key.Binding
	Star               key.Binding
	Ignore             key.Binding
	AddToDictionary    key.Binding
	Dismiss            key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),

		// Portable word movement: terminals vary between alt+arrows and ctrl+arrows.
		WordLeft:  key.NewBinding(key.WithKeys("alt+left", "ctrl+left"), key.WithHelp("alt/ctrl+←", "word left")),
		WordRight: key.NewBinding(key.WithKeys("alt+right", "ctrl+right"), key.WithHelp("alt/ctrl+→", "word right")),

		Home:     key.NewBinding(key.WithKeys("home", "ctrl+a"), key.WithHelp("home", "line start")),
		End:      key.NewBinding(key.WithKeys("end", "ctrl+e"), key.WithHelp("end", "line end")),
		DocStart: key.NewBinding(key.WithKeys("ctrl+home"), key.WithHelp("ctrl+home", "doc start")),
		DocEnd:   key.NewBinding(key.WithKeys("ctrl+end"), key.WithHelp("ctrl+end", "doc end")),

		Backspace:  key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("backspace", "delete left")),
		Delete:     key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "delete right")),
		DeleteWord: key.NewBinding(key.WithKeys("ctrl+w", "alt+backspace"), key.WithHelp("ctrl+w", "delete word")),
		Enter:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "newline")),

		Check:        key.NewBinding(key.WithKeys("f7", "ctrl+k"), key.WithHelp("f7", "check")),
		Suggest:      key.NewBinding(key.WithKeys("ctrl+o", "ctrl+@"), key.WithHelp("ctrl+o", "suggest")),
		Undo:         key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "undo")),
		Clear:        key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
		NextLanguage: key.NewBinding(key.WithKeys("f8", "ctrl+t"), key.WithHelp("f8", "language")),

		Copy:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "copy")),
		Cut:   key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "cut")),
		Paste: key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),

		PopupUp:         key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "prev")),
		PopupDown:       key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "next")),
		Accept:          key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
		Star:            key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "star")),
		Ignore:          key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "ignore")),
		AddToDictionary: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "add to dictionary")),
		Dismiss:         key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}

// helpKeys adapts the key map to bubbles/help, switching to popup bindings
// while the popup is open.
type helpKeys struct {
	km    KeyMap
	popup bool
}

func (h helpKeys) ShortHelp() []key.Binding {
	if h.popup {
		return []key.Binding{h.km.Accept, h.km.Star, h.km.Ignore, h.km.AddToDictionary, h.km.Dismiss}
	}
	return []key.Binding{h.km.Check, h.km.Suggest, h.km.Undo, h.km.NextLanguage, h.km.Copy, h.km.Cut, h.km.Paste, h.km.Clear}
}

func (h helpKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		h.ShortHelp(),
		{h.km.WordLeft, h.km.WordRight, h.km.Home, h.km.End, h.km.DeleteWord},
	}
}
