// Package notifications keeps the user-visible log of actions (favorite
// toggles, profile changes) with read/unread state.
package notifications

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/go-ports/gomate/internal/db"
	"github.com/go-ports/gomate/internal/models"
)

// Options configures a Log.
type Options struct {
	// Persist writes the log through to the notifications key. When false
	// the log lives only as long as the process.
	Persist bool
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

// Log is the notification log. Entries are kept newest first.
type Log struct {
	kv      db.KV
	persist bool
	ids     *models.IDSource

	mu    sync.Mutex
	items []models.Notification
}

// New returns an empty Log backed by kv.
func New(kv db.KV, opts Options) *Log {
	return &Log{
		kv:      kv,
		persist: opts.Persist,
		ids:     models.NewIDSource(opts.Now),
		items:   make([]models.Notification, 0),
	}
}

// Persistent reports whether the log writes through to storage.
func (l *Log) Persistent() bool { return l.persist }

// Load reads the persisted log. It is a no-op when persistence is off.
// On a storage failure the log stays empty.
func (l *Log) Load(ctx context.Context) error {
	if !l.persist {
		return nil
	}
	var items []models.Notification
	if _, err := db.GetJSON(ctx, l.kv, db.KeyNotifications, &items); err != nil {
		return db.Failure("notifications.Load", db.KeyNotifications, err)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if items == nil {
		items = make([]models.Notification, 0)
	}
	l.items = items
	return nil
}

// Add records a new unread notification at the head of the log.
// The entry is kept in memory even if persisting it fails.
func (l *Log) Add(ctx context.Context, in models.NotificationInput) (models.Notification, error) {
	id, at := l.ids.Next()
	n := models.Notification{
		ID:        id,
		Type:      in.Type,
		Title:     in.Title,
		Message:   in.Message,
		Timestamp: at.UTC(),
		Data:      maps.Clone(in.Data),
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = slices.Insert(l.items, 0, n)
	return n, l.saveLocked(ctx, "notifications.Add")
}

// List returns a copy of the log, newest first.
func (l *Log) List() []models.Notification {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.Notification, len(l.items))
	for i, n := range l.items {
		n.Data = maps.Clone(n.Data)
		out[i] = n
	}
	return out
}

// UnreadCount returns the number of entries not yet read.
func (l *Log) UnreadCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, it := range l.items {
		if !it.Read {
			n++
		}
	}
	return n
}

// MarkAsRead flags one entry as read. Unknown or already-read ids are a no-op.
func (l *Log) MarkAsRead(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.indexLocked(id)
	if i < 0 || l.items[i].Read {
		return nil
	}
	l.items[i].Read = true
	return l.saveLocked(ctx, "notifications.MarkAsRead")
}

// MarkAllAsRead flags every entry as read.
func (l *Log) MarkAllAsRead(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	changed := false
	for i := range l.items {
		if !l.items[i].Read {
			l.items[i].Read = true
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return l.saveLocked(ctx, "notifications.MarkAllAsRead")
}

// Clear removes one entry. Unknown ids are a no-op.
func (l *Log) Clear(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.indexLocked(id)
	if i < 0 {
		return nil
	}
	l.items = slices.Delete(l.items, i, i+1)
	return l.saveLocked(ctx, "notifications.Clear")
}

// ClearAll empties the log.
func (l *Log) ClearAll(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.items) == 0 {
		return nil
	}
	l.items = make([]models.Notification, 0)
	return l.saveLocked(ctx, "notifications.ClearAll")
}

// Reset drops the in-memory log without touching storage.
func (l *Log) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = make([]models.Notification, 0)
}

func (l *Log) indexLocked(id string) int {
	return slices.IndexFunc(l.items, func(n models.Notification) bool { return n.ID == id })
}

func (l *Log) saveLocked(ctx context.Context, op string) error {
	if !l.persist {
		return nil
	}
	if err := db.SetJSON(ctx, l.kv, db.KeyNotifications, l.items); err != nil {
		return db.Failure(op, db.KeyNotifications, err)
	}
	return nil
}
