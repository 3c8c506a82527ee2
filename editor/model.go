package editor

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/spellbound/annotate"
	"github.com/iw2rmb/spellbound/buffer"
	"github.com/iw2rmb/spellbound/service"
	"github.com/iw2rmb/spellbound/suggest"
)

type saveStatus uint8

const (
	saveIdle saveStatus = iota
	savePending
	saveSaved
	saveFailed
)

func (s saveStatus) String() string {
	switch s {
	case savePending:
		return "Saving…"
	case saveSaved:
		return "Saved"
	case saveFailed:
		return "Not saved"
	default:
		return ""
	}
}

// Model is a Bubble Tea component for editing text with spelling
// annotations.
//
// The buffer owns the caret and the raw text. The annotate.Session owns the
// spelling results and replacement history; both are only touched from
// Update.
type Model struct {
	cfg      Config
	buf      *buffer.Buffer
	session  *annotate.Session
	provider *suggest.Provider
	logger   *slog.Logger

	focused bool

	viewport viewport.Model
	spinner  spinner.Model
	help     help.Model
	width    int
	height   int

	layout    layout
	direction service.Direction

	popup    popupState
	popupSeq int

	notice   Notice
	noticeID int

	inflight int

	saveSeq    int
	saveStatus saveStatus
}

func New(cfg Config) Model {
	if len(cfg.KeyMap.Check.Keys()) == 0 {
		cfg.KeyMap = DefaultKeyMap()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	lang := service.ResolveLanguage(cfg.Language)
	if len(cfg.Languages) == 0 {
		cfg.Languages = []string{lang}
	}

	provider := cfg.Provider
	if provider == nil && cfg.Service != nil {
		provider = suggest.NewProvider(suggest.SourceFunc(cfg.Service.Suggest), suggest.Options{Logger: logger})
	}

	m := Model{
		cfg:      cfg,
		buf:      buffer.New(cfg.Text),
		session:  annotate.NewSession(lang, annotate.Options{HistoryLimit: cfg.HistoryLimit, Logger: logger}),
		provider: provider,
		logger:   logger,
		focused:  true,
		viewport: viewport.New(0, 0),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(cfg.Style.Spinner),
		),
		help:      help.New(),
		direction: service.TextDirection(lang),
	}
	m.session.Reconcile(m.buf.Text(), nil)
	m.rebuildContent()
	return m
}

// Init restores the saved draft when the model starts without text.
func (m Model) Init() tea.Cmd {
	if m.cfg.Drafts == nil || m.cfg.Text != "" {
		return nil
	}
	return loadDraftCmd(m.cfg.Drafts)
}

// SetSize sets the outer size of the component, including the status and
// help lines.
func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.width = width
	m.height = height
	m.help.Width = width

	m.viewport.Width = width
	m.viewport.Height = max(height-m.chromeHeight(), 0)

	m.rebuildContent()
	m.followCursor()
	return m
}

func (m Model) chromeHeight() int {
	if m.cfg.ShowHelp {
		return 2
	}
	return 1
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.rebuildContent()
		m.followCursor()
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

func (m Model) Text() string { return m.buf.Text() }

func (m Model) Cursor() buffer.Pos { return m.buf.Cursor() }

func (m Model) Language() string { return m.session.Language() }

func (m Model) Direction() service.Direction { return m.direction }

// ErrorCount reports the number of misspellings currently flagged.
func (m Model) ErrorCount() int { return m.session.ErrorCount() }

func (m Model) Results() []annotate.Result { return m.session.Results() }

func (m Model) CanUndo() bool { return m.session.CanUndo() }

// Notice returns the notice currently shown, if any.
func (m Model) Notice() (Notice, bool) {
	return m.notice, m.notice.Text != ""
}

// Checking reports whether a spell check is in flight.
func (m Model) Checking() bool { return m.inflight > 0 }

// Check starts a spell check of the current text.
func (m Model) Check() (Model, tea.Cmd) {
	cmd := m.startCheck()
	return m, cmd
}

// SetLanguage switches the checking language. The text, results and
// replacement history are discarded.
func (m Model) SetLanguage(tag string) (Model, tea.Cmd) {
	cmd := m.switchLanguage(service.ResolveLanguage(tag))
	return m, cmd
}

func (m *Model) rebuildContent() {
	// One cell is kept free for the caret past the end of a full row.
	wrap := m.viewport.Width
	if wrap > 1 {
		wrap--
	}
	m.layout = buildLayout(m.buf, wrap, m.cfg.tabWidth())
	m.viewport.SetContent(m.renderContent())
}

// followCursor scrolls the viewport so the caret's visual row is visible.
func (m *Model) followCursor() {
	h := m.viewport.Height
	if h <= 0 {
		return
	}
	row := m.layout.visualRowFor(m.buf.Cursor())
	y := m.viewport.YOffset
	if row < y {
		m.viewport.SetYOffset(row)
		return
	}
	if row >= y+h {
		m.viewport.SetYOffset(row - h + 1)
	}
}
