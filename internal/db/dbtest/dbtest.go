// Package dbtest provides key-value fixtures for store tests.
package dbtest

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/go-ports/gomate/internal/db"
)

// ErrInjected is the error returned by a FlakyKV operation that was told to fail.
var ErrInjected = errors.New("injected failure")

// Open opens a fresh SQLite database in a temp directory and registers
// t.Cleanup to close it.
func Open(t testing.TB) *db.DB {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("dbtest.Open: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// FlakyKV wraps a db.KV and fails the operations whose flags are set.
type FlakyKV struct {
	db.KV

	mu         sync.Mutex
	FailGet    bool
	FailSet    bool
	FailRemove bool
}

// NewFlaky wraps kv.
func NewFlaky(kv db.KV) *FlakyKV { return &FlakyKV{KV: kv} }

// Fail toggles every failure flag at once.
func (f *FlakyKV) Fail(on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.FailGet, f.FailSet, f.FailRemove = on, on, on
}

func (f *FlakyKV) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	fail := f.FailGet
	f.mu.Unlock()
	if fail {
		return "", false, ErrInjected
	}
	return f.KV.Get(ctx, key)
}

func (f *FlakyKV) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	fail := f.FailSet
	f.mu.Unlock()
	if fail {
		return ErrInjected
	}
	return f.KV.Set(ctx, key, value)
}

func (f *FlakyKV) Remove(ctx context.Context, key string) error {
	f.mu.Lock()
	fail := f.FailRemove
	f.mu.Unlock()
	if fail {
		return ErrInjected
	}
	return f.KV.Remove(ctx, key)
}

func (f *FlakyKV) MultiRemove(ctx context.Context, keys ...string) error {
	f.mu.Lock()
	fail := f.FailRemove
	f.mu.Unlock()
	if fail {
		return ErrInjected
	}
	return f.KV.MultiRemove(ctx, keys...)
}
