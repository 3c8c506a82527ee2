package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/iw2rmb/spellbound"
)

const (
	pathCheck        = "/api/check/"
	pathSuggest      = "/api/get-list/"
	pathDictAdd      = "/api/dictionary/add/"
	pathStarAdd      = "/api/star-list/add/"
	pathReplacements = "/api/replacements/"
	pathDictWords    = "/api/dictionary/words/"

	maxBodyBytes = 4 << 20
)

// List selects the user word list a word is added to.
type List int

const (
	ListDictionary List = iota
	ListStarList
)

func (l List) String() string {
	switch l {
	case ListStarList:
		return "star list"
	default:
		return "dictionary"
	}
}

func (l List) path() string {
	if l == ListStarList {
		return pathStarAdd
	}
	return pathDictAdd
}

type Options struct {
	BaseURL string
	// Token is an opaque bearer token. Empty means anonymous.
	Token string
	// Timeout bounds each request. Zero disables it.
	Timeout time.Duration
	// HTTPClient overrides the transport base; its Transport is wrapped.
	HTTPClient *http.Client
	// SessionID is sent as X-Session-ID. A random one is generated when empty.
	SessionID string
	Logger    *slog.Logger
}

// Client talks to the spelling service over JSON/HTTP.
type Client struct {
	base      *url.URL
	http      *http.Client
	timeout   time.Duration
	authed    bool
	sessionID string
	logger    *slog.Logger
}

func New(opts Options) (*Client, error) {
	raw := strings.TrimSpace(opts.BaseURL)
	if raw == "" {
		return nil, ErrNoBaseURL
	}
	base, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("service: parse base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("service: base URL %q must be absolute", raw)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sessionID := opts.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	var rt http.RoundTripper = http.DefaultTransport
	hc := &http.Client{}
	if opts.HTTPClient != nil {
		*hc = *opts.HTTPClient
		if opts.HTTPClient.Transport != nil {
			rt = opts.HTTPClient.Transport
		}
	}
	rt = &headerTransport{base: rt, userAgent: spellbound.UserAgent(), sessionID: sessionID}
	if opts.Token != "" {
		rt = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token, TokenType: "Bearer"}),
			Base:   rt,
		}
	}
	hc.Transport = rt

	return &Client{
		base:      base,
		http:      hc,
		timeout:   opts.Timeout,
		authed:    opts.Token != "",
		sessionID: sessionID,
		logger:    logger,
	}, nil
}

// Authenticated reports whether requests carry a bearer token.
func (c *Client) Authenticated() bool { return c.authed }

func (c *Client) SessionID() string { return c.sessionID }

type wordsRequest struct {
	Words    []string `json:"words"`
	Language string   `json:"language"`
}

type checkResponse struct {
	Results []struct {
		Word      string `json:"word"`
		IsCorrect bool   `json:"is_correct"`
	} `json:"results"`
	Language string `json:"language,omitempty"`
}

// Check asks the service which of words are spelled correctly. The returned
// map holds an entry for every word the service reported on.
func (c *Client) Check(ctx context.Context, words []string, lang string) (map[string]bool, error) {
	if len(words) == 0 {
		return map[string]bool{}, nil
	}
	var resp checkResponse
	if err := c.do(ctx, http.MethodPost, pathCheck, nil, wordsRequest{Words: words, Language: lang}, &resp); err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(resp.Results))
	for _, r := range resp.Results {
		out[r.Word] = r.IsCorrect
	}
	return out, nil
}

type suggestResponse struct {
	Suggestions map[string][]string `json:"suggestions"`
}

// Suggest fetches suggestion lists for words. Words absent from the response
// map to an empty list.
func (c *Client) Suggest(ctx context.Context, words []string, lang string) (map[string][]string, error) {
	out := make(map[string][]string, len(words))
	if len(words) == 0 {
		return out, nil
	}
	var resp suggestResponse
	if err := c.do(ctx, http.MethodPost, pathSuggest, nil, wordsRequest{Words: words, Language: lang}, &resp); err != nil {
		return nil, err
	}
	for _, w := range words {
		list := resp.Suggestions[w]
		if list == nil {
			list = []string{}
		}
		out[w] = list
	}
	return out, nil
}

type addWordRequest struct {
	Word     string `json:"word"`
	Language string `json:"language"`
}

// AddWord adds word to the user's dictionary or star list.
func (c *Client) AddWord(ctx context.Context, word string, list List, lang string) error {
	return c.do(ctx, http.MethodPost, list.path(), nil, addWordRequest{Word: word, Language: lang}, nil)
}

type replacementRequest struct {
	Original    string `json:"original_word"`
	Replacement string `json:"replacement_word"`
	Language    string `json:"language"`
}

// RecordReplacement logs an accepted suggestion.
func (c *Client) RecordReplacement(ctx context.Context, original, replacement, lang string) error {
	return c.do(ctx, http.MethodPost, pathReplacements, nil, replacementRequest{
		Original:    original,
		Replacement: replacement,
		Language:    lang,
	}, nil)
}

type dictionaryWordsResponse struct {
	Words []string `json:"words"`
}

// DictionaryWords lists the user's dictionary for lang.
func (c *Client) DictionaryWords(ctx context.Context, lang string) ([]string, error) {
	var resp dictionaryWordsResponse
	q := url.Values{"language": {lang}}
	if err := c.do(ctx, http.MethodGet, pathDictWords, q, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Words == nil {
		return []string{}, nil
	}
	return resp.Words, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", path, err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("service request failed", "method", method, "path", path, "err", err)
		return fmt.Errorf("%s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%s: read response: %w", path, err)
	}
	c.logger.Debug("service request", "method", method, "path", path, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serr := statusError(path, resp.StatusCode, data)
		c.logger.Warn("service error", "path", path, "status", resp.StatusCode, "msg", serr.Message)
		return serr
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: %w: %v", path, ErrDecode, err)
	}
	return nil
}

type headerTransport struct {
	base      http.RoundTripper
	userAgent string
	sessionID string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", t.userAgent)
	r.Header.Set("X-Session-ID", t.sessionID)
	return t.base.RoundTrip(r)
}
