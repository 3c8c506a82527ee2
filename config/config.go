// Package config loads spellbound settings from defaults, an optional TOML
// file and SPELLBOUND_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SPELLBOUND_"

// Duration is a time.Duration that reads "1s"-style strings from TOML.
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(b)))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

type Config struct {
	APIBaseURL          string   `toml:"api_base_url"`
	Language            string   `toml:"language"`
	Languages           []string `toml:"languages"`
	Token               string   `toml:"token"`
	RequestTimeout      Duration `toml:"request_timeout"`
	HistoryLimit        int      `toml:"history_limit"`
	NoticeDuration      Duration `toml:"notice_duration"`
	AutosaveDelay       Duration `toml:"autosave_delay"`
	DraftPath           string   `toml:"draft_path"`
	LogPath             string   `toml:"log_path"`
	LogLevel            string   `toml:"log_level"`
	PrefetchSuggestions bool     `toml:"prefetch_suggestions"`
	ShowHelp            bool     `toml:"show_help"`
}

func Default() Config {
	return Config{
		APIBaseURL:     "http://localhost:8000",
		Language:       "en_US",
		Languages:      []string{"en_US", "en_GB", "de_DE", "fr_FR", "es_ES"},
		HistoryLimit:   1000,
		NoticeDuration: Duration(3 * time.Second),
		AutosaveDelay:  Duration(time.Second),
		LogLevel:       "info",
		ShowHelp:       true,
	}
}

// DefaultPath returns the user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "spellbound", "config.toml")
}

// Load builds a Config from defaults, the TOML file at path and the process
// environment. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.MergeFile(path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// MergeFile overlays the keys present in the TOML file at path.
func (c *Config) MergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return c.MergeTOML(path, data)
}

// MergeTOML overlays the keys present in data. source names the input in
// errors.
func (c *Config) MergeTOML(source string, data []byte) error {
	if err := toml.Unmarshal(data, c); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			pe.Line, pe.Column = derr.Position()
		}
		return pe
	}
	return nil
}

// ApplyEnv overlays SPELLBOUND_<KEY> variables, where KEY is the upper-case
// TOML key. Lists are comma separated.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = v
		}
	}
	str("API_BASE_URL", &c.APIBaseURL)
	str("LANGUAGE", &c.Language)
	str("TOKEN", &c.Token)
	str("DRAFT_PATH", &c.DraftPath)
	str("LOG_PATH", &c.LogPath)
	str("LOG_LEVEL", &c.LogLevel)

	if v, ok := lookup(EnvPrefix + "LANGUAGES"); ok {
		c.Languages = splitList(v)
	}
	if v, ok := lookup(EnvPrefix + "HISTORY_LIMIT"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return envError("HISTORY_LIMIT", err)
		}
		c.HistoryLimit = n
	}

	durations := []struct {
		key string
		dst *Duration
	}{
		{"REQUEST_TIMEOUT", &c.RequestTimeout},
		{"NOTICE_DURATION", &c.NoticeDuration},
		{"AUTOSAVE_DELAY", &c.AutosaveDelay},
	}
	for _, d := range durations {
		v, ok := lookup(EnvPrefix + d.key)
		if !ok {
			continue
		}
		if err := d.dst.UnmarshalText([]byte(v)); err != nil {
			return envError(d.key, err)
		}
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"PREFETCH_SUGGESTIONS", &c.PrefetchSuggestions},
		{"SHOW_HELP", &c.ShowHelp},
	}
	for _, b := range bools {
		v, ok := lookup(EnvPrefix + b.key)
		if !ok {
			continue
		}
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return envError(b.key, err)
		}
		*b.dst = parsed
	}
	return nil
}

// Validate reports settings the program cannot run with.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.APIBaseURL) == "" {
		errs = append(errs, errors.New("api_base_url is required"))
	}
	if c.RequestTimeout < 0 {
		errs = append(errs, errors.New("request_timeout must not be negative"))
	}
	if c.NoticeDuration < 0 {
		errs = append(errs, errors.New("notice_duration must not be negative"))
	}
	if c.AutosaveDelay < 0 {
		errs = append(errs, errors.New("autosave_delay must not be negative"))
	}
	if c.HistoryLimit < 0 {
		errs = append(errs, errors.New("history_limit must not be negative"))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrValidationFailed, errors.Join(errs...))
	}
	return nil
}

// ParseLevel maps a log_level value onto a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level %q: %w", s, err)
	}
	return lvl, nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envError(key string, err error) error {
	return &ParseError{Path: "$" + EnvPrefix + key, Message: err.Error(), Err: err}
}
