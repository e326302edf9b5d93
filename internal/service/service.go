// Package service implements the GoMate orchestrator that wires together
// configuration, storage, the catalog and every state store.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/go-ports/gomate/internal/catalog"
	"github.com/go-ports/gomate/internal/config"
	"github.com/go-ports/gomate/internal/db"
	"github.com/go-ports/gomate/internal/embeddings"
	"github.com/go-ports/gomate/internal/favorites"
	"github.com/go-ports/gomate/internal/markdown"
	"github.com/go-ports/gomate/internal/models"
	"github.com/go-ports/gomate/internal/notifications"
	"github.com/go-ports/gomate/internal/preferences"
	"github.com/go-ports/gomate/internal/redaction"
	"github.com/go-ports/gomate/internal/search"
	"github.com/go-ports/gomate/internal/session"
)

// DBFile is the SQLite database inside the home directory.
const DBFile = "gomate.db"

// Service owns one device's state. Its stores are loaded on construction.
type Service struct {
	Home   string
	Config *config.Config

	Catalog       *catalog.Catalog
	Session       *session.Store
	Favorites     *favorites.Store
	Notifications *notifications.Log
	Preferences   *preferences.Store

	database       *db.DB
	now            func() time.Time
	embProvider    embeddings.Provider
	embLoaded      bool
	ignorePatterns []*regexp.Regexp
	mu             sync.Mutex
}

// Option customizes New.
type Option func(*Service)

// WithClock overrides the clock used for ids, timestamps and exports.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New initialises a Service rooted at home.
// If home is empty it is resolved via config.GetHome.
func New(ctx context.Context, home string, opts ...Option) (*Service, error) {
	if home == "" {
		home = config.GetHome()
	}
	if err := os.MkdirAll(home, 0o755); err != nil {
		return nil, fmt.Errorf("service.New: create home: %w", err)
	}

	cfg, err := config.Load(filepath.Join(home, config.FileName))
	if err != nil {
		return nil, fmt.Errorf("service.New: load config: %w", err)
	}
	hasher, err := session.NewHasher(cfg.Auth.PasswordScheme)
	if err != nil {
		return nil, fmt.Errorf("service.New: %w", err)
	}

	database, err := db.Open(filepath.Join(home, DBFile))
	if err != nil {
		return nil, fmt.Errorf("service.New: open db: %w", err)
	}

	s := &Service{
		Home:     home,
		Config:   cfg,
		Catalog:  catalog.Default(),
		database: database,
		now:      time.Now,
	}
	for _, o := range opts {
		o(s)
	}

	s.Notifications = notifications.New(database, notifications.Options{
		Persist: cfg.Notifications.Persist,
		Now:     s.now,
	})
	s.Session = session.New(database, session.NewAccounts(database, hasher), session.Options{
		Notifier: s.Notifications,
		Now:      s.now,
	})
	s.Favorites = favorites.New(database, s.Catalog, s.Notifications)
	s.Preferences = preferences.New(database, preferences.Options{
		Theme:    models.Theme(cfg.Appearance.Theme),
		Language: models.Language(cfg.Appearance.Language),
	})

	if err := s.load(ctx); err != nil {
		_ = database.Close()
		return nil, err
	}
	return s, nil
}

func (s *Service) load(ctx context.Context) error {
	loaders := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"notifications", s.Notifications.Load},
		{"session", s.Session.Load},
		{"favorites", s.Favorites.Load},
		{"preferences", s.Preferences.Load},
	}
	for _, l := range loaders {
		if err := l.fn(ctx); err != nil {
			return fmt.Errorf("service.New: load %s: %w", l.name, err)
		}
	}
	return nil
}

// Close releases all resources held by the service.
func (s *Service) Close() error {
	return s.database.Close()
}

// ---------------------------------------------------------------------------
// Lazy helpers
// ---------------------------------------------------------------------------

// embeddingProvider returns the Provider, lazily initialising it (thread-safe).
// A nil Provider means the related index is disabled.
func (s *Service) embeddingProvider() (embeddings.Provider, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.embLoaded {
		return s.embProvider, nil
	}
	ep, err := embeddings.NewProvider(s.Config)
	if err != nil {
		return nil, err
	}
	s.embProvider, s.embLoaded = ep, true
	return ep, nil
}

// getIgnorePatterns returns redaction patterns, lazily loaded from .gomateignore.
func (s *Service) getIgnorePatterns() []*regexp.Regexp {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ignorePatterns != nil {
		return s.ignorePatterns
	}
	patterns, err := redaction.LoadIgnore(filepath.Join(s.Home, redaction.IgnoreFile))
	if err != nil {
		slog.Warn("failed to load "+redaction.IgnoreFile, "err", err)
	}
	if patterns == nil {
		patterns = make([]*regexp.Regexp, 0)
	}
	s.ignorePatterns = patterns
	return patterns
}

// ---------------------------------------------------------------------------
// Accounts
// ---------------------------------------------------------------------------

// Display returns u as it may be shown: no password and no URL secrets.
func (s *Service) Display(u models.User) models.User {
	return redaction.User(u, s.getIgnorePatterns())
}

// CurrentUser returns the redacted session user.
func (s *Service) CurrentUser() (models.User, bool) {
	u, ok := s.Session.Current()
	if !ok {
		return models.User{}, false
	}
	return s.Display(u), true
}

// DeleteAccount removes the logged-in account after re-checking password,
// clears the session, favorites and notifications keys, and resets the
// in-memory stores. Copies of the account held elsewhere are not touched.
func (s *Service) DeleteAccount(ctx context.Context, password string) error {
	cur, ok := s.Session.Current()
	if !ok {
		return session.ErrNoSession
	}
	if _, ok, err := s.Session.Accounts().Authenticate(ctx, cur.Email, password); err != nil {
		return err
	} else if !ok {
		return session.ErrInvalidCredentials
	}
	if _, err := s.Session.Accounts().Delete(ctx, cur.ID); err != nil {
		return err
	}

	s.Session.Reset()
	s.Favorites.Reset()
	s.Notifications.Reset()
	if err := s.database.MultiRemove(ctx, db.KeyCurrentUser, db.KeyFavorites, db.KeyNotifications); err != nil {
		return db.Failure("service.DeleteAccount", db.KeyCurrentUser, err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Destinations
// ---------------------------------------------------------------------------

// SearchDestinations runs the catalog keyword search, or the hybrid
// keyword plus vector search when semantic is set.
func (s *Service) SearchDestinations(ctx context.Context, query string, limit int, semantic bool) ([]search.Result, error) {
	var ep embeddings.Provider
	if semantic {
		p, err := s.embeddingProvider()
		if err != nil {
			return nil, err
		}
		ep = p
	}
	return search.Hybrid(ctx, s.database, ep, s.Catalog, query, limit)
}

// Related returns destinations similar to id.
func (s *Service) Related(ctx context.Context, id string, limit int) ([]search.Result, error) {
	ep, err := s.embeddingProvider()
	if err != nil {
		return nil, err
	}
	return search.Related(ctx, s.database, ep, s.Catalog, id, limit)
}

// Reindex rebuilds the related-destinations index.
func (s *Service) Reindex(ctx context.Context, progress func(current, total int)) (search.ReindexResult, error) {
	ep, err := s.embeddingProvider()
	if err != nil {
		return search.ReindexResult{}, err
	}
	return search.Reindex(ctx, s.database, ep, s.Catalog, progress)
}

// ---------------------------------------------------------------------------
// Favorites
// ---------------------------------------------------------------------------

// ExportFavorites renders the favorites as Markdown in the active
// language. When path is non-empty the document is also written there.
func (s *Service) ExportFavorites(path string) (string, error) {
	owner := ""
	if u, ok := s.Session.Current(); ok {
		owner = u.Name
	}
	doc, err := markdown.RenderFavorites(s.Favorites.Destinations(), owner, s.Preferences.Language(), s.now())
	if err != nil {
		return "", err
	}
	if path != "" {
		if err := markdown.WriteFile(path, doc); err != nil {
			return "", fmt.Errorf("service.ExportFavorites: %w", err)
		}
	}
	return doc, nil
}
