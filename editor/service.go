package editor

import (
	"context"

	"github.com/iw2rmb/spellbound/internal/draft"
	"github.com/iw2rmb/spellbound/service"
)

// Service is the spelling backend the editor talks to. *service.Client
// implements it.
type Service interface {
	Check(ctx context.Context, words []string, lang string) (map[string]bool, error)
	Suggest(ctx context.Context, words []string, lang string) (map[string][]string, error)
	AddWord(ctx context.Context, word string, list service.List, lang string) error
	RecordReplacement(ctx context.Context, original, replacement, lang string) error
	DictionaryWords(ctx context.Context, lang string) ([]string, error)
	Authenticated() bool
}

// DraftStore persists the working text. *draft.Store implements it.
type DraftStore interface {
	Load(ctx context.Context) (draft.Draft, bool, error)
	Save(ctx context.Context, d draft.Draft) error
	Clear(ctx context.Context) error
}

var (
	_ Service    = (*service.Client)(nil)
	_ DraftStore = (*draft.Store)(nil)
)
