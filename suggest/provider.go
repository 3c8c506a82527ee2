package suggest

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/sync/singleflight"
)

// Source fetches suggestion lists for a batch of words. Words the source has
// nothing for may be absent from the returned map.
type Source interface {
	Suggest(ctx context.Context, words []string, lang string) (map[string][]string, error)
}

type SourceFunc func(ctx context.Context, words []string, lang string) (map[string][]string, error)

func (f SourceFunc) Suggest(ctx context.Context, words []string, lang string) (map[string][]string, error) {
	return f(ctx, words, lang)
}

type Options struct {
	// Cache is shared with the caller when set; a fresh cache is used otherwise.
	Cache  *Cache
	Logger *slog.Logger
}

// Provider resolves suggestions through the cache, fetching from Source on a
// miss. Concurrent lookups of the same uncached word share one request.
type Provider struct {
	src    Source
	cache  *Cache
	group  singleflight.Group
	logger *slog.Logger
}

func NewProvider(src Source, opts Options) *Provider {
	cache := opts.Cache
	if cache == nil {
		cache = NewCache()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{src: src, cache: cache, logger: logger}
}

func (p *Provider) Cache() *Cache { return p.cache }

// Lookup returns suggestions for word. When the exact-case entry is empty the
// lowercase form is consulted and candidates equal to word (ignoring case)
// are dropped.
func (p *Provider) Lookup(ctx context.Context, word, lang string) ([]string, error) {
	if word == "" {
		return []string{}, nil
	}
	list, err := p.cached(ctx, word, lang)
	if err != nil {
		return nil, err
	}
	if len(list) > 0 {
		return list, nil
	}

	lower := strings.ToLower(word)
	if lower == word {
		return list, nil
	}
	lowered, err := p.cached(ctx, lower, lang)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(lowered))
	for _, s := range lowered {
		if strings.EqualFold(s, word) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// Prefetch fills the cache for every uncached word with a single request.
// Words missing from the response are cached as empty lists.
func (p *Provider) Prefetch(ctx context.Context, words []string, lang string) error {
	epoch := p.cache.Epoch()
	missing := make([]string, 0, len(words))
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		if _, ok := p.cache.Get(w); ok {
			continue
		}
		missing = append(missing, w)
	}
	if len(missing) == 0 {
		return nil
	}

	got, err := p.src.Suggest(ctx, missing, lang)
	if err != nil {
		p.logger.Warn("suggestion prefetch failed", "words", len(missing), "lang", lang, "err", err)
		return fmt.Errorf("prefetch suggestions: %w", err)
	}
	for _, w := range missing {
		if !p.cache.PutSince(epoch, w, got[w]) {
			p.logger.Debug("prefetch outdated by cache reset", "lang", lang)
			return nil
		}
	}
	p.logger.Debug("suggestions prefetched", "words", len(missing), "lang", lang)
	return nil
}

// Invalidate drops the cached entry for word.
func (p *Provider) Invalidate(word string) {
	p.cache.Invalidate(word)
}

// Reset drops every cached entry.
func (p *Provider) Reset() {
	p.cache.Reset()
}

func (p *Provider) cached(ctx context.Context, word, lang string) ([]string, error) {
	epoch := p.cache.Epoch()
	if list, ok := p.cache.Get(word); ok {
		return list, nil
	}

	// Lookups started after an invalidation never join a flight from before it.
	key := strconv.FormatUint(epoch, 10) + "\x00" + lang + "\x00" + word
	v, err, shared := p.group.Do(key, func() (any, error) {
		if list, ok := p.cache.Get(word); ok {
			return list, nil
		}
		got, err := p.src.Suggest(ctx, []string{word}, lang)
		if err != nil {
			return nil, err
		}
		list := got[word]
		if !p.cache.PutSince(epoch, word, list) {
			p.logger.Debug("suggestions outdated by cache reset", "word", word, "lang", lang)
		}
		return list, nil
	})
	if err != nil {
		p.logger.Warn("suggestion lookup failed", "word", word, "lang", lang, "err", err)
		return nil, fmt.Errorf("suggest %q: %w", word, err)
	}
	if shared {
		p.logger.Debug("suggestion lookup coalesced", "word", word)
	}
	return cloneList(v.([]string)), nil
}
