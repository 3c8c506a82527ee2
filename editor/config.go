package editor

import (
	"log/slog"
	"time"

	"github.com/iw2rmb/spellbound/annotate"
	"github.com/iw2rmb/spellbound/service"
	"github.com/iw2rmb/spellbound/suggest"
)

// Config configures the editor Model.
type Config struct {
	// Initial text. When empty and Drafts is set, Init restores the saved draft.
	Text string

	// Language is a language code or BCP 47 tag; it is resolved against the
	// supported table. Languages lists the codes the language key cycles.
	Language  string
	Languages []string

	Service   Service
	Clipboard Clipboard
	Drafts    DraftStore

	// Provider overrides the suggestion provider built over Service.
	Provider *suggest.Provider

	Style    Style
	KeyMap   KeyMap
	TabWidth int

	// Forwarded to annotate.Options.
	HistoryLimit int

	// NoticeDuration is how long a notice stays visible. Zero keeps it until
	// the next one.
	NoticeDuration time.Duration
	// AutosaveDelay debounces draft saves after a text change.
	AutosaveDelay time.Duration

	PrefetchSuggestions bool
	ShowHelp            bool

	// OnChange is called after every text change.
	OnChange func(ChangeEvent)

	Logger *slog.Logger
}

const defaultTabWidth = 4

func (c Config) tabWidth() int {
	if c.TabWidth <= 0 {
		return defaultTabWidth
	}
	return c.TabWidth
}

// DefaultConfig returns a Config with the default style, key map and
// timings. Service, Clipboard and Drafts are left for the host.
func DefaultConfig() Config {
	return Config{
		Language:       service.DefaultLanguage,
		Style:          DefaultStyle(),
		KeyMap:         DefaultKeyMap(),
		TabWidth:       defaultTabWidth,
		HistoryLimit:   annotate.DefaultHistoryLimit,
		NoticeDuration: 3 * time.Second,
		AutosaveDelay:  time.Second,
		ShowHelp:       true,
	}
}
