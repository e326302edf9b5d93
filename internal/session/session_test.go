package session_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/gomate/internal/db"
	"github.com/go-ports/gomate/internal/db/dbtest"
	"github.com/go-ports/gomate/internal/models"
	"github.com/go-ports/gomate/internal/session"
	"github.com/go-ports/gomate/internal/validation"
)

// recorder is a session.Notifier that keeps every input.
type recorder struct {
	mu  sync.Mutex
	got []models.NotificationInput
}

func (r *recorder) Add(_ context.Context, in models.NotificationInput) (models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, in)
	return models.Notification{Type: in.Type}, nil
}

func (r *recorder) types() []models.NotificationType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.NotificationType, len(r.got))
	for i, in := range r.got {
		out[i] = in.Type
	}
	return out
}

func newStore(t testing.TB, kv db.KV, hasher session.Hasher) (*session.Store, *recorder) {
	t.Helper()
	rec := &recorder{}
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := session.New(kv, session.NewAccounts(kv, hasher), session.Options{
		Notifier: rec,
		Now:      func() time.Time { return clock },
	})
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s, rec
}

func reasonOf(c *qt.C, err error) string {
	var verr *validation.Error
	c.Assert(errors.As(err, &verr), qt.IsTrue, qt.Commentf("got %v", err))
	return verr.Reason
}

// ---------------------------------------------------------------------------
// Register / Login
// ---------------------------------------------------------------------------

func TestRegisterLogin_HappyPath(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()

	c.Run("register then login with same credentials", func(c *qt.C) {
		s, _ := newStore(c, dbtest.Open(c), nil)
		u, err := s.Register(ctx, "Jane Doe", "jane@example.com", "secret1")
		c.Assert(err, qt.IsNil)
		c.Assert(u.Email, qt.Equals, "jane@example.com")
		c.Assert(u.ID, qt.Equals, "1709294400000")

		cur, ok := s.Current()
		c.Assert(ok, qt.IsTrue)
		c.Assert(cur.ID, qt.Equals, u.ID)

		c.Assert(s.Logout(ctx), qt.IsNil)
		got, err := s.Login(ctx, "jane@example.com", "secret1")
		c.Assert(err, qt.IsNil)
		c.Assert(got.Name, qt.Equals, "Jane Doe")
	})

	c.Run("register trims name and email", func(c *qt.C) {
		s, _ := newStore(c, dbtest.Open(c), nil)
		u, err := s.Register(ctx, "  Jane  ", " jane@example.com ", "secret1")
		c.Assert(err, qt.IsNil)
		c.Assert(u.Name, qt.Equals, "Jane")
		c.Assert(u.Email, qt.Equals, "jane@example.com")
	})

	c.Run("session survives a reload", func(c *qt.C) {
		kv := dbtest.Open(c)
		s, _ := newStore(c, kv, nil)
		u, err := s.Register(ctx, "Jane Doe", "jane@example.com", "secret1")
		c.Assert(err, qt.IsNil)

		again, _ := newStore(c, kv, nil)
		cur, ok := again.Current()
		c.Assert(ok, qt.IsTrue)
		c.Assert(cur, qt.DeepEquals, u)
	})

	c.Run("bcrypt scheme stores a hash and still logs in", func(c *qt.C) {
		s, _ := newStore(c, dbtest.Open(c), session.Bcrypt{Cost: 4})

		u, err := s.Register(ctx, "Jane Doe", "jane@example.com", "secret1")
		c.Assert(err, qt.IsNil)
		c.Assert(u.Password, qt.Not(qt.Equals), "secret1")

		c.Assert(s.Logout(ctx), qt.IsNil)
		_, err = s.Login(ctx, "jane@example.com", "secret1")
		c.Assert(err, qt.IsNil)
	})
}

func TestRegisterLogin_FailurePath(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()

	c.Run("duplicate email is rejected", func(c *qt.C) {
		s, _ := newStore(c, dbtest.Open(c), nil)
		_, err := s.Register(ctx, "Jane Doe", "jane@example.com", "secret1")
		c.Assert(err, qt.IsNil)

		_, err = s.Register(ctx, "Other Jane", "jane@example.com", "secret2")
		c.Assert(reasonOf(c, err), qt.Equals, validation.ReasonEmailExists)

		users, err := s.Accounts().List(ctx)
		c.Assert(err, qt.IsNil)
		c.Assert(users, qt.HasLen, 1)
	})

	c.Run("duplicate email differing only in case is rejected", func(c *qt.C) {
		s, _ := newStore(c, dbtest.Open(c), nil)
		_, err := s.Register(ctx, "Jane Doe", "jane@example.com", "secret1")
		c.Assert(err, qt.IsNil)

		_, err = s.Register(ctx, "Jane Upper", "JANE@Example.com", "secret2")
		c.Assert(reasonOf(c, err), qt.Equals, validation.ReasonEmailExists)

		c.Assert(s.Logout(ctx), qt.IsNil)
		got, err := s.Login(ctx, "Jane@example.com", "secret1")
		c.Assert(err, qt.IsNil)
		c.Assert(got.Name, qt.Equals, "Jane Doe")
	})

	c.Run("bcrypt rejects overlong passwords as validation errors", func(c *qt.C) {
		kv := dbtest.Open(c)
		s, _ := newStore(c, kv, session.Bcrypt{Cost: 4})
		long := strings.Repeat("p", validation.MaxHashedPasswordBytes+1)

		_, err := s.Register(ctx, "Jane Doe", "jane@example.com", long)
		c.Assert(err, qt.Not(qt.ErrorIs), db.ErrStorage)
		c.Assert(reasonOf(c, err), qt.Equals, validation.ReasonPasswordTooLong)
		users, err := s.Accounts().List(ctx)
		c.Assert(err, qt.IsNil)
		c.Assert(users, qt.HasLen, 0)

		_, err = s.Register(ctx, "Jane Doe", "jane@example.com", "secret1")
		c.Assert(err, qt.IsNil)
		err = s.ChangePassword(ctx, "secret1", long, long)
		c.Assert(reasonOf(c, err), qt.Equals, validation.ReasonPasswordTooLong)
		_, ok, err := s.Accounts().Authenticate(ctx, "jane@example.com", "secret1")
		c.Assert(err, qt.IsNil)
		c.Assert(ok, qt.IsTrue)
	})

	c.Run("validation failures abort before any mutation", func(c *qt.C) {
		kv := dbtest.Open(c)
		s, _ := newStore(c, kv, nil)
		cases := []struct {
			name, email, password, reason string
		}{
			{"J", "jane@example.com", "secret1", validation.ReasonNameTooShort},
			{"Jane", "jane-at-example", "secret1", validation.ReasonInvalidEmail},
			{"Jane", "jane@example.com", "123", validation.ReasonPasswordTooShort},
		}
		for _, tc := range cases {
			_, err := s.Register(ctx, tc.name, tc.email, tc.password)
			c.Assert(reasonOf(c, err), qt.Equals, tc.reason)
		}
		keys, err := kv.Keys(ctx)
		c.Assert(err, qt.IsNil)
		c.Assert(keys, qt.HasLen, 0)
	})

	c.Run("wrong password fails and leaves session unchanged", func(c *qt.C) {
		s, _ := newStore(c, dbtest.Open(c), nil)
		u, err := s.Register(ctx, "Jane Doe", "jane@example.com", "secret1")
		c.Assert(err, qt.IsNil)

		_, err = s.Login(ctx, "jane@example.com", "secret2")
		c.Assert(err, qt.ErrorIs, session.ErrInvalidCredentials)
		cur, ok := s.Current()
		c.Assert(ok, qt.IsTrue)
		c.Assert(cur.ID, qt.Equals, u.ID)

		c.Assert(s.Logout(ctx), qt.IsNil)
		_, err = s.Login(ctx, "jane@example.com", "secret2")
		c.Assert(err, qt.ErrorIs, session.ErrInvalidCredentials)
		_, ok = s.Current()
		c.Assert(ok, qt.IsFalse)
	})

	c.Run("login validates shape before lookup", func(c *qt.C) {
		s, _ := newStore(c, dbtest.Open(c), nil)
		_, err := s.Login(ctx, "bad", "secret1")
		c.Assert(reasonOf(c, err), qt.Equals, validation.ReasonInvalidEmail)
		_, err = s.Login(ctx, "jane@example.com", "abc")
		c.Assert(reasonOf(c, err), qt.Equals, validation.ReasonPasswordTooShort)
	})

	c.Run("unknown account is invalid credentials", func(c *qt.C) {
		s, _ := newStore(c, dbtest.Open(c), nil)
		_, err := s.Login(ctx, "nobody@example.com", "secret1")
		c.Assert(err, qt.ErrorIs, session.ErrInvalidCredentials)
	})

	c.Run("storage failure surfaces generic error", func(c *qt.C) {
		kv := dbtest.NewFlaky(dbtest.Open(c))
		s, _ := newStore(c, kv, nil)
		kv.Fail(true)
		_, err := s.Register(ctx, "Jane Doe", "jane@example.com", "secret1")
		c.Assert(err, qt.ErrorIs, db.ErrStorage)
		_, ok := s.Current()
		c.Assert(ok, qt.IsFalse)
	})
}

// ---------------------------------------------------------------------------
// Logout / UpdateUser / Subscribe
// ---------------------------------------------------------------------------

func TestLogout(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()

	c.Run("logout clears memory and storage", func(c *qt.C) {
		kv := dbtest.Open(c)
		s, _ := newStore(c, kv, nil)
		_, err := s.Register(ctx, "Jane Doe", "jane@example.com", "secret1")
		c.Assert(err, qt.IsNil)
		c.Assert(s.Logout(ctx), qt.IsNil)

		_, ok := s.Current()
		c.Assert(ok, qt.IsFalse)
		_, found, err := kv.Get(ctx, db.KeyCurrentUser)
		c.Assert(err, qt.IsNil)
		c.Assert(found, qt.IsFalse)
	})

	c.Run("storage failure still clears the in-memory session", func(c *qt.C) {
		kv := dbtest.NewFlaky(dbtest.Open(c))
		s, _ := newStore(c, kv, nil)
		_, err := s.Register(ctx, "Jane Doe", "jane@example.com", "secret1")
		c.Assert(err, qt.IsNil)

		kv.FailRemove = true
		c.Assert(s.Logout(ctx), qt.ErrorIs, db.ErrStorage)
		_, ok := s.Current()
		c.Assert(ok, qt.IsFalse)
	})
}

func TestUpdateUser_DoesNotTouchRegistry(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	s, _ := newStore(t, dbtest.Open(t), nil)
	u, err := s.Register(ctx, "Jane Doe", "jane@example.com", "secret1")
	c.Assert(err, qt.IsNil)

	var seen []string
	cancel := s.Subscribe(func(u models.User, ok bool) {
		if ok {
			seen = append(seen, u.Name)
		}
	})

	u.Name = "Janet"
	c.Assert(s.UpdateUser(ctx, u), qt.IsNil)
	cur, _ := s.Current()
	c.Assert(cur.Name, qt.Equals, "Janet")
	c.Assert(seen, qt.DeepEquals, []string{"Janet"})

	stored, ok, err := s.Accounts().FindByID(ctx, u.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsTrue)
	c.Assert(stored.Name, qt.Equals, "Jane Doe")

	cancel()
	u.Name = "Jan"
	c.Assert(s.UpdateUser(ctx, u), qt.IsNil)
	c.Assert(seen, qt.HasLen, 1)
}

// ---------------------------------------------------------------------------
// Profile
// ---------------------------------------------------------------------------

func TestProfile_HappyPath(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()

	c.Run("update profile writes session and registry", func(c *qt.C) {
		s, rec := newStore(c, dbtest.Open(c), nil)
		u, err := s.Register(ctx, "Jane Doe", "jane@example.com", "secret1")
		c.Assert(err, qt.IsNil)

		got, err := s.UpdateProfile(ctx, "Jane Smith", "jane.smith@example.com")
		c.Assert(err, qt.IsNil)
		c.Assert(got.ID, qt.Equals, u.ID)

		cur, _ := s.Current()
		c.Assert(cur.Email, qt.Equals, "jane.smith@example.com")
		stored, _, err := s.Accounts().FindByID(ctx, u.ID)
		c.Assert(err, qt.IsNil)
		c.Assert(stored.Name, qt.Equals, "Jane Smith")
		c.Assert(rec.types(), qt.DeepEquals, []models.NotificationType{models.NotificationProfileUpdated})

		c.Assert(s.Logout(ctx), qt.IsNil)
		_, err = s.Login(ctx, "jane.smith@example.com", "secret1")
		c.Assert(err, qt.IsNil)
	})

	c.Run("change password", func(c *qt.C) {
		s, rec := newStore(c, dbtest.Open(c), nil)
		_, err := s.Register(ctx, "Jane Doe", "jane@example.com", "secret1")
		c.Assert(err, qt.IsNil)

		c.Assert(s.ChangePassword(ctx, "secret1", "secret2", "secret2"), qt.IsNil)
		c.Assert(rec.types(), qt.DeepEquals, []models.NotificationType{models.NotificationPasswordChanged})

		c.Assert(s.Logout(ctx), qt.IsNil)
		_, err = s.Login(ctx, "jane@example.com", "secret1")
		c.Assert(err, qt.ErrorIs, session.ErrInvalidCredentials)
		_, err = s.Login(ctx, "jane@example.com", "secret2")
		c.Assert(err, qt.IsNil)
	})

	c.Run("set profile image", func(c *qt.C) {
		s, rec := newStore(c, dbtest.Open(c), nil)
		_, err := s.Register(ctx, "Jane Doe", "jane@example.com", "secret1")
		c.Assert(err, qt.IsNil)

		u, err := s.SetProfileImage(ctx, "file:///photos/me.jpg")
		c.Assert(err, qt.IsNil)
		c.Assert(u.ProfileImage, qt.Equals, "file:///photos/me.jpg")
		c.Assert(rec.types(), qt.DeepEquals, []models.NotificationType{models.NotificationProfileImageUpdated})
	})
}

func TestProfile_FailurePath(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()

	c.Run("requires a session", func(c *qt.C) {
		s, _ := newStore(c, dbtest.Open(c), nil)
		_, err := s.UpdateProfile(ctx, "Jane", "jane@example.com")
		c.Assert(err, qt.ErrorIs, session.ErrNoSession)
	})

	c.Run("email taken by another account", func(c *qt.C) {
		s, rec := newStore(c, dbtest.Open(c), nil)
		_, err := s.Register(ctx, "Other", "other@example.com", "secret1")
		c.Assert(err, qt.IsNil)
		_, err = s.Register(ctx, "Jane Doe", "jane@example.com", "secret1")
		c.Assert(err, qt.IsNil)

		_, err = s.UpdateProfile(ctx, "Jane Doe", "other@example.com")
		c.Assert(reasonOf(c, err), qt.Equals, validation.ReasonEmailExists)
		cur, _ := s.Current()
		c.Assert(cur.Email, qt.Equals, "jane@example.com")
		c.Assert(rec.types(), qt.HasLen, 0)
	})

	c.Run("wrong current password", func(c *qt.C) {
		s, _ := newStore(c, dbtest.Open(c), nil)
		_, err := s.Register(ctx, "Jane Doe", "jane@example.com", "secret1")
		c.Assert(err, qt.IsNil)
		err = s.ChangePassword(ctx, "nope123", "secret2", "secret2")
		c.Assert(reasonOf(c, err), qt.Equals, validation.ReasonWrongPassword)
	})

	c.Run("mismatched confirmation", func(c *qt.C) {
		s, _ := newStore(c, dbtest.Open(c), nil)
		_, err := s.Register(ctx, "Jane Doe", "jane@example.com", "secret1")
		c.Assert(err, qt.IsNil)
		err = s.ChangePassword(ctx, "secret1", "secret2", "secret3")
		c.Assert(reasonOf(c, err), qt.Equals, validation.ReasonPasswordMismatch)
	})

	c.Run("stale session after account deletion", func(c *qt.C) {
		s, _ := newStore(c, dbtest.Open(c), nil)
		u, err := s.Register(ctx, "Jane Doe", "jane@example.com", "secret1")
		c.Assert(err, qt.IsNil)
		deleted, err := s.Accounts().Delete(ctx, u.ID)
		c.Assert(err, qt.IsNil)
		c.Assert(deleted, qt.IsTrue)

		_, err = s.SetProfileImage(ctx, "x.jpg")
		c.Assert(err, qt.ErrorIs, session.ErrUserNotFound)
	})
}

func TestNewHasher(t *testing.T) {
	c := qt.New(t)

	h, err := session.NewHasher("")
	c.Assert(err, qt.IsNil)
	c.Assert(h, qt.Equals, session.Hasher(session.Plaintext{}))

	h, err = session.NewHasher(session.SchemeBcrypt)
	c.Assert(err, qt.IsNil)
	_, ok := h.(session.Bcrypt)
	c.Assert(ok, qt.IsTrue)

	_, err = session.NewHasher("md5")
	c.Assert(err, qt.ErrorMatches, "unknown password scheme: md5")
}
