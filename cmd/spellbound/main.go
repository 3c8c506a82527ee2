package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/spellbound"
	"github.com/iw2rmb/spellbound/config"
	"github.com/iw2rmb/spellbound/editor"
	"github.com/iw2rmb/spellbound/internal/draft"
	"github.com/iw2rmb/spellbound/internal/sysclip"
	"github.com/iw2rmb/spellbound/service"
)

type model struct {
	editor editor.Model
}

func (m model) Init() tea.Cmd { return m.editor.Init() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.editor = m.editor.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+q" {
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m model) View() string { return m.editor.View() }

func main() {
	if err := run(os.Args[1:]); err != nil {
		_, _ = os.Stderr.WriteString("spellbound: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("spellbound", flag.ContinueOnError)
	configPath := fs.String("config", config.DefaultPath(), "config file (TOML)")
	apiURL := fs.String("api", "", "spelling service base URL")
	lang := fs.String("lang", "", "language code, e.g. en_US or de-DE")
	token := fs.String("token", "", "bearer token for dictionary and star list")
	logPath := fs.String("log", "", "log file (logs are discarded when empty)")
	logLevel := fs.String("log-level", "", "debug, info, warn or error")
	draftPath := fs.String("draft", "", "draft database path")
	showVersion := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if *showVersion {
		fmt.Println(spellbound.VersionTag())
		return nil
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "api":
			cfg.APIBaseURL = *apiURL
		case "lang":
			cfg.Language = *lang
		case "token":
			cfg.Token = *token
		case "log":
			cfg.LogPath = *logPath
		case "log-level":
			cfg.LogLevel = *logLevel
		case "draft":
			cfg.DraftPath = *draftPath
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	logger.Info("starting", "version", spellbound.Version(), "api", cfg.APIBaseURL, "language", cfg.Language)

	client, err := service.New(service.Options{
		BaseURL: cfg.APIBaseURL,
		Token:   cfg.Token,
		Timeout: cfg.RequestTimeout.Std(),
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	ecfg := editor.DefaultConfig()
	ecfg.Language = cfg.Language
	ecfg.Languages = cfg.Languages
	ecfg.Service = client
	ecfg.HistoryLimit = cfg.HistoryLimit
	ecfg.NoticeDuration = cfg.NoticeDuration.Std()
	ecfg.AutosaveDelay = cfg.AutosaveDelay.Std()
	ecfg.PrefetchSuggestions = cfg.PrefetchSuggestions
	ecfg.ShowHelp = cfg.ShowHelp
	ecfg.Logger = logger
	if sysclip.Available() {
		ecfg.Clipboard = sysclip.New()
	}

	if cfg.DraftPath != "" {
		store, err := draft.Open(context.Background(), cfg.DraftPath)
		if err != nil {
			return err
		}
		defer store.Close()
		ecfg.Drafts = store
	}

	p := tea.NewProgram(model{editor: editor.New(ecfg)}, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return err
	}
	logger.Info("exiting")
	return nil
}

func newLogger(cfg config.Config) (*slog.Logger, func(), error) {
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	if cfg.LogPath == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { _ = f.Close() }, nil
}
