package editor

import "github.com/charmbracelet/lipgloss"

// Style controls the editor's rendering.
type Style struct {
	Text       lipgloss.Style
	Misspelled lipgloss.Style
	Cursor     lipgloss.Style

	Popup         lipgloss.Style
	PopupSelected lipgloss.Style
	PopupAction   lipgloss.Style
	PopupMuted    lipgloss.Style

	Status        lipgloss.Style
	StatusMuted   lipgloss.Style
	NoticeInfo    lipgloss.Style
	NoticeSuccess lipgloss.Style
	NoticeWarning lipgloss.Style
	NoticeError   lipgloss.Style
	Spinner       lipgloss.Style
}

func DefaultStyle() Style {
	popup := lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("252"))
	return Style{
		Text:       lipgloss.NewStyle(),
		Misspelled: lipgloss.NewStyle().Underline(true).Italic(true).Foreground(lipgloss.Color("9")),
		Cursor:     lipgloss.NewStyle().Reverse(true),

		Popup:         popup,
		PopupSelected: popup.Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")),
		PopupAction:   popup.Foreground(lipgloss.Color("111")),
		PopupMuted:    popup.Foreground(lipgloss.Color("244")).Italic(true),

		Status:        lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		StatusMuted:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		NoticeInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		NoticeSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		NoticeWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		NoticeError:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Spinner:       lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
	}
}

func (s Style) notice(level NoticeLevel) lipgloss.Style {
	switch level {
	case NoticeSuccess:
		return s.NoticeSuccess
	case NoticeWarning:
		return s.NoticeWarning
	case NoticeError:
		return s.NoticeError
	default:
		return s.NoticeInfo
	}
}
