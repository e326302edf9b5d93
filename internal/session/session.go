// Package session keeps the authenticated-user session and the registry of
// accounts it is drawn from.
package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-ports/gomate/internal/db"
	"github.com/go-ports/gomate/internal/models"
	"github.com/go-ports/gomate/internal/validation"
)

var (
	// ErrInvalidCredentials is returned by Login when no account matches.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNoSession is returned by operations that need a logged-in user.
	ErrNoSession = errors.New("not logged in")
)

// Notifier receives the notifications emitted by profile changes.
type Notifier interface {
	Add(ctx context.Context, in models.NotificationInput) (models.Notification, error)
}

// Options configures a Store.
type Options struct {
	// Notifier receives profile-change notifications; may be nil.
	Notifier Notifier
	// Now overrides the clock used for user ids; nil means time.Now.
	Now func() time.Time
}

// Observer is called after the session changes. ok is false after logout.
type Observer func(u models.User, ok bool)

// Store is the current-session store.
type Store struct {
	kv       db.KV
	accounts *Accounts
	notifier Notifier
	ids      *models.IDSource

	mu        sync.Mutex
	current   *models.User
	observers map[int]Observer
	nextObs   int
}

// New returns a Store persisting the session in kv and resolving accounts
// through accounts.
func New(kv db.KV, accounts *Accounts, opts Options) *Store {
	return &Store{
		kv:        kv,
		accounts:  accounts,
		notifier:  opts.Notifier,
		ids:       models.NewIDSource(opts.Now),
		observers: make(map[int]Observer),
	}
}

// Accounts returns the registry backing the store.
func (s *Store) Accounts() *Accounts { return s.accounts }

// Load restores the persisted session. A session whose account no longer
// exists is kept, but logged.
func (s *Store) Load(ctx context.Context) error {
	var u models.User
	found, err := db.GetJSON(ctx, s.kv, db.KeyCurrentUser, &u)
	if err != nil {
		return db.Failure("session.Load", db.KeyCurrentUser, err)
	}
	if !found {
		return nil
	}
	if _, ok, err := s.accounts.FindByID(ctx, u.ID); err == nil && !ok {
		slog.Warn("session.Load: session user is not registered", "id", u.ID)
	}
	s.mu.Lock()
	s.current = &u
	s.mu.Unlock()
	return nil
}

// Current returns the logged-in user.
func (s *Store) Current() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return models.User{}, false
	}
	return *s.current, true
}

// Subscribe registers fn to be called after every session change and
// returns a function that removes it.
func (s *Store) Subscribe(fn Observer) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

// Login checks the credentials shape, looks the pair up in the registry and
// makes the match the current session. The session is unchanged on failure.
func (s *Store) Login(ctx context.Context, email, password string) (models.User, error) {
	if err := validation.Login(email, password).Err(); err != nil {
		return models.User{}, err
	}
	u, ok, err := s.accounts.Authenticate(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return models.User{}, err
	}
	if !ok {
		return models.User{}, ErrInvalidCredentials
	}
	if err := s.setCurrent(ctx, "session.Login", u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// Register creates an account and makes it the current session.
func (s *Store) Register(ctx context.Context, name, email, password string) (models.User, error) {
	if err := validation.Registration(name, email, password).Err(); err != nil {
		return models.User{}, err
	}
	stored, err := s.accounts.hash(password)
	var verr *validation.Error
	if errors.As(err, &verr) {
		return models.User{}, err
	}
	if err != nil {
		return models.User{}, db.Failure("session.Register", db.KeyRegisteredUsers, err)
	}
	id, _ := s.ids.Next()
	u := models.User{
		ID:       id,
		Name:     strings.TrimSpace(name),
		Email:    strings.TrimSpace(email),
		Password: stored,
	}
	if err := s.accounts.Add(ctx, u); err != nil {
		return models.User{}, err
	}
	if err := s.setCurrent(ctx, "session.Register", u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// Logout clears the session. The in-memory session is cleared even when the
// storage write fails; the failure is logged and returned as db.ErrStorage.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	s.notify(models.User{}, false)

	if err := s.kv.Remove(ctx, db.KeyCurrentUser); err != nil {
		return db.Failure("session.Logout", db.KeyCurrentUser, err)
	}
	return nil
}

// UpdateUser overwrites the session record and notifies observers. The
// registry is not touched; callers update both explicitly.
func (s *Store) UpdateUser(ctx context.Context, u models.User) error {
	return s.setCurrent(ctx, "session.UpdateUser", u)
}

// Reset drops the in-memory session without touching storage.
func (s *Store) Reset() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	s.notify(models.User{}, false)
}

func (s *Store) setCurrent(ctx context.Context, op string, u models.User) error {
	if err := db.SetJSON(ctx, s.kv, db.KeyCurrentUser, u); err != nil {
		return db.Failure(op, db.KeyCurrentUser, err)
	}
	s.mu.Lock()
	s.current = &u
	s.mu.Unlock()
	s.notify(u, true)
	return nil
}

func (s *Store) notify(u models.User, ok bool) {
	s.mu.Lock()
	obs := make([]Observer, 0, len(s.observers))
	for _, fn := range s.observers {
		obs = append(obs, fn)
	}
	s.mu.Unlock()
	for _, fn := range obs {
		fn(u, ok)
	}
}

func (s *Store) emit(ctx context.Context, in models.NotificationInput) {
	if s.notifier == nil {
		return
	}
	if _, err := s.notifier.Add(ctx, in); err != nil {
		slog.Warn("session: notification not persisted", "type", in.Type, "err", err)
	}
}
