package editor

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type NoticeLevel uint8

const (
	NoticeInfo NoticeLevel = iota
	NoticeSuccess
	NoticeWarning
	NoticeError
)

func (l NoticeLevel) String() string {
	switch l {
	case NoticeSuccess:
		return "success"
	case NoticeWarning:
		return "warning"
	case NoticeError:
		return "error"
	default:
		return "info"
	}
}

// Notice is a transient status-line message.
type Notice struct {
	Level NoticeLevel
	Text  string
}

type noticeExpiredMsg struct{ id int }

// notify replaces the current notice and returns the expiry command, if any.
func (m *Model) notify(level NoticeLevel, text string) tea.Cmd {
	m.noticeID++
	m.notice = Notice{Level: level, Text: text}
	d := m.cfg.NoticeDuration
	if d <= 0 {
		return nil
	}
	id := m.noticeID
	return tea.Tick(d, func(time.Time) tea.Msg { return noticeExpiredMsg{id: id} })
}

func (m *Model) expireNotice(msg noticeExpiredMsg) {
	if msg.id == m.noticeID {
		m.notice = Notice{}
	}
}
