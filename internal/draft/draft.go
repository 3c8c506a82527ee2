// Package draft persists the editor's working text between runs in a small
// SQLite database.
package draft

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS draft (
	id       INTEGER PRIMARY KEY CHECK (id = 1),
	text     TEXT    NOT NULL,
	language TEXT    NOT NULL,
	saved_at INTEGER NOT NULL
)`

// Draft is the saved editor state.
type Draft struct {
	Text     string
	Language string
	SavedAt  time.Time
}

// Store holds at most one draft.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the draft database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("draft: empty path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("draft: create dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("draft: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("draft: init schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Load returns the saved draft; ok is false when none exists.
func (s *Store) Load(ctx context.Context) (d Draft, ok bool, err error) {
	var savedAt int64
	row := s.db.QueryRowContext(ctx, `SELECT text, language, saved_at FROM draft WHERE id = 1`)
	if err := row.Scan(&d.Text, &d.Language, &savedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Draft{}, false, nil
		}
		return Draft{}, false, fmt.Errorf("draft: load: %w", err)
	}
	d.SavedAt = time.UnixMilli(savedAt)
	return d, true, nil
}

// Save replaces the stored draft. A zero SavedAt is stamped with the current
// time.
func (s *Store) Save(ctx context.Context, d Draft) error {
	if d.SavedAt.IsZero() {
		d.SavedAt = s.now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO draft (id, text, language, saved_at) VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET text = excluded.text, language = excluded.language, saved_at = excluded.saved_at`,
		d.Text, d.Language, d.SavedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("draft: save: %w", err)
	}
	return nil
}

// Clear removes the stored draft.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM draft`); err != nil {
		return fmt.Errorf("draft: clear: %w", err)
	}
	return nil
}
