package session

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/go-ports/gomate/internal/db"
	"github.com/go-ports/gomate/internal/models"
	"github.com/go-ports/gomate/internal/validation"
)

// ErrUserNotFound is returned when an account id has no record.
var ErrUserNotFound = errors.New("user not found")

// Accounts is the single owner of the registered-users collection. Every
// read-modify-write of the collection happens under one lock.
type Accounts struct {
	kv     db.KV
	hasher Hasher

	mu sync.Mutex
}

// NewAccounts returns the registry stored in kv. A nil hasher means plaintext.
func NewAccounts(kv db.KV, hasher Hasher) *Accounts {
	if hasher == nil {
		hasher = Plaintext{}
	}
	return &Accounts{kv: kv, hasher: hasher}
}

// List returns every registered account in registration order.
func (a *Accounts) List(ctx context.Context) ([]models.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loadLocked(ctx, "accounts.List")
}

// FindByID returns the account with the given id.
func (a *Accounts) FindByID(ctx context.Context, id string) (models.User, bool, error) {
	users, err := a.List(ctx)
	if err != nil {
		return models.User{}, false, err
	}
	i := slices.IndexFunc(users, func(u models.User) bool { return u.ID == id })
	if i < 0 {
		return models.User{}, false, nil
	}
	return users[i], true, nil
}

// FindByEmail returns the account registered under email.
func (a *Accounts) FindByEmail(ctx context.Context, email string) (models.User, bool, error) {
	users, err := a.List(ctx)
	if err != nil {
		return models.User{}, false, err
	}
	i := indexByEmail(users, email)
	if i < 0 {
		return models.User{}, false, nil
	}
	return users[i], true, nil
}

// Authenticate returns the account whose email and password both match.
func (a *Accounts) Authenticate(ctx context.Context, email, password string) (models.User, bool, error) {
	u, ok, err := a.FindByEmail(ctx, email)
	if err != nil || !ok {
		return models.User{}, false, err
	}
	if !a.hasher.Compare(u.Password, password) {
		return models.User{}, false, nil
	}
	return u, true, nil
}

// Add appends u. It fails with a validation error when the email is taken.
func (a *Accounts) Add(ctx context.Context, u models.User) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	users, err := a.loadLocked(ctx, "accounts.Add")
	if err != nil {
		return err
	}
	if indexByEmail(users, u.Email) >= 0 {
		return validation.Invalid(validation.FieldEmail, validation.ReasonEmailExists).Err()
	}
	return a.saveLocked(ctx, "accounts.Add", append(users, u))
}

// UpdateUserByID applies fn to the account with the given id and persists
// the result atomically. fn may return an error to abort without writing.
// A changed email must stay unique.
func (a *Accounts) UpdateUserByID(ctx context.Context, id string, fn func(*models.User) error) (models.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	users, err := a.loadLocked(ctx, "accounts.UpdateUserByID")
	if err != nil {
		return models.User{}, err
	}
	i := slices.IndexFunc(users, func(u models.User) bool { return u.ID == id })
	if i < 0 {
		return models.User{}, ErrUserNotFound
	}
	updated := users[i]
	if err := fn(&updated); err != nil {
		return models.User{}, err
	}
	updated.ID = id
	if j := indexByEmail(users, updated.Email); j >= 0 && j != i {
		return models.User{}, validation.Invalid(validation.FieldEmail, validation.ReasonEmailExists).Err()
	}
	users[i] = updated
	if err := a.saveLocked(ctx, "accounts.UpdateUserByID", users); err != nil {
		return models.User{}, err
	}
	return updated, nil
}

// Delete removes the account with the given id. It reports whether one was removed.
func (a *Accounts) Delete(ctx context.Context, id string) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	users, err := a.loadLocked(ctx, "accounts.Delete")
	if err != nil {
		return false, err
	}
	i := slices.IndexFunc(users, func(u models.User) bool { return u.ID == id })
	if i < 0 {
		return false, nil
	}
	return true, a.saveLocked(ctx, "accounts.Delete", slices.Delete(users, i, i+1))
}

// hash exposes the configured scheme to the session store.
func (a *Accounts) hash(password string) (string, error) { return a.hasher.Hash(password) }

func (a *Accounts) compare(stored, password string) bool { return a.hasher.Compare(stored, password) }

func (a *Accounts) loadLocked(ctx context.Context, op string) ([]models.User, error) {
	var users []models.User
	if _, err := db.GetJSON(ctx, a.kv, db.KeyRegisteredUsers, &users); err != nil {
		return nil, db.Failure(op, db.KeyRegisteredUsers, err)
	}
	if users == nil {
		users = make([]models.User, 0)
	}
	return users, nil
}

func (a *Accounts) saveLocked(ctx context.Context, op string, users []models.User) error {
	if err := db.SetJSON(ctx, a.kv, db.KeyRegisteredUsers, users); err != nil {
		return db.Failure(op, db.KeyRegisteredUsers, err)
	}
	return nil
}

func indexByEmail(users []models.User, email string) int {
	email = strings.TrimSpace(email)
	return slices.IndexFunc(users, func(u models.User) bool { return strings.EqualFold(u.Email, email) })
}
