// Package preferences persists the appearance theme and UI language and
// derives the style tokens and translation table that follow from them.
package preferences

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/go-ports/gomate/internal/db"
	"github.com/go-ports/gomate/internal/models"
)

var (
	// ErrUnknownTheme is returned for a theme outside light and dark.
	ErrUnknownTheme = errors.New("unknown theme")
	// ErrUnsupportedLanguage is returned for a language outside models.Languages.
	ErrUnsupportedLanguage = errors.New("unsupported language")
)

// Options holds the values used until something has been persisted.
type Options struct {
	Theme    models.Theme
	Language models.Language
}

// Store is the theme and locale store.
type Store struct {
	kv       db.KV
	defaults Options

	mu       sync.Mutex
	theme    models.Theme
	language models.Language
}

// New returns a Store persisting to kv. Invalid defaults fall back to light
// and English.
func New(kv db.KV, opts Options) *Store {
	if !validTheme(opts.Theme) {
		opts.Theme = models.ThemeLight
	}
	if !slices.Contains(models.Languages, opts.Language) {
		opts.Language = models.LanguageEnglish
	}
	return &Store{kv: kv, defaults: opts, theme: opts.Theme, language: opts.Language}
}

// Load restores the persisted theme and language. Unknown stored values are
// ignored in favor of the defaults.
func (s *Store) Load(ctx context.Context) error {
	theme, language := s.defaults.Theme, s.defaults.Language

	var t models.Theme
	found, err := db.GetJSON(ctx, s.kv, db.KeyTheme, &t)
	if err != nil {
		return db.Failure("preferences.Load", db.KeyTheme, err)
	}
	if found && validTheme(t) {
		theme = t
	}

	var l models.Language
	found, err = db.GetJSON(ctx, s.kv, db.KeyLanguage, &l)
	if err != nil {
		return db.Failure("preferences.Load", db.KeyLanguage, err)
	}
	if found && slices.Contains(models.Languages, l) {
		language = l
	}

	s.mu.Lock()
	s.theme, s.language = theme, language
	s.mu.Unlock()
	return nil
}

// Theme returns the active theme.
func (s *Store) Theme() models.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// IsDark reports whether the dark theme is active.
func (s *Store) IsDark() bool { return s.Theme() == models.ThemeDark }

// ToggleTheme flips between light and dark and returns the new theme.
func (s *Store) ToggleTheme(ctx context.Context) (models.Theme, error) {
	s.mu.Lock()
	next := models.ThemeDark
	if s.theme == models.ThemeDark {
		next = models.ThemeLight
	}
	err := s.setThemeLocked(ctx, "preferences.ToggleTheme", next)
	s.mu.Unlock()
	return next, err
}

// SetTheme selects t. The in-memory theme changes even when the write fails.
func (s *Store) SetTheme(ctx context.Context, t models.Theme) error {
	if !validTheme(t) {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, t)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setThemeLocked(ctx, "preferences.SetTheme", t)
}

func (s *Store) setThemeLocked(ctx context.Context, op string, t models.Theme) error {
	s.theme = t
	if err := db.SetJSON(ctx, s.kv, db.KeyTheme, t); err != nil {
		return db.Failure(op, db.KeyTheme, err)
	}
	return nil
}

// Tokens returns the style tokens of the active theme.
func (s *Store) Tokens() Tokens { return TokensFor(s.Theme()) }

// Language returns the active language.
func (s *Store) Language() models.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

// SetLanguage selects lang and its translation table.
func (s *Store) SetLanguage(ctx context.Context, lang models.Language) error {
	if !slices.Contains(models.Languages, lang) {
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
	s.mu.Lock()
	s.language = lang
	err := db.SetJSON(ctx, s.kv, db.KeyLanguage, lang)
	s.mu.Unlock()
	if err != nil {
		return db.Failure("preferences.SetLanguage", db.KeyLanguage, err)
	}
	return nil
}

// Translate looks key up in the active table. A key the table does not
// carry is returned unchanged.
func (s *Store) Translate(key string) string {
	return Translate(s.Language(), key)
}

// Reset restores the defaults in memory without touching storage.
func (s *Store) Reset() {
	s.mu.Lock()
	s.theme, s.language = s.defaults.Theme, s.defaults.Language
	s.mu.Unlock()
}

func validTheme(t models.Theme) bool {
	return t == models.ThemeLight || t == models.ThemeDark
}
