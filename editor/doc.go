// Package editor provides a Bubble Tea spell-checking editor component.
//
// The Model owns the text buffer and the annotation session. Misspelled words
// are rendered as decorated spans; clicking one (or pressing the suggest key
// with the caret on it) opens a popup with suggestions and ignore/dictionary
// actions. Service calls run as tea.Cmds and report back as messages, so
// hosts only need to route messages through Update.
package editor
