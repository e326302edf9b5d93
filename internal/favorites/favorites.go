// Package favorites keeps the set of destinations the user has marked.
package favorites

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/go-ports/gomate/internal/db"
	"github.com/go-ports/gomate/internal/models"
)

// Lookup resolves destination ids to catalog entries.
type Lookup interface {
	ByID(id string) (models.Destination, bool)
}

// Notifier receives the notification emitted by each toggle.
type Notifier interface {
	Add(ctx context.Context, in models.NotificationInput) (models.Notification, error)
}

// Store is the favorites set. Ids are kept in insertion order without
// duplicates.
type Store struct {
	kv       db.KV
	lookup   Lookup
	notifier Notifier

	mu  sync.Mutex
	ids []string
}

// New returns a Store persisting to kv. lookup and notifier may be nil.
func New(kv db.KV, lookup Lookup, notifier Notifier) *Store {
	return &Store{kv: kv, lookup: lookup, notifier: notifier}
}

// Load replaces the in-memory set with the persisted one. Duplicates in the
// stored list are dropped.
func (s *Store) Load(ctx context.Context) error {
	var ids []string
	if _, err := db.GetJSON(ctx, s.kv, db.KeyFavorites, &ids); err != nil {
		return db.Failure("favorites.Load", db.KeyFavorites, err)
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	s.mu.Lock()
	s.ids = out
	s.mu.Unlock()
	return nil
}

// Toggle flips the membership of id and reports whether it is now a
// favorite. The in-memory set changes even when the write fails; the
// failure is returned as db.ErrStorage after the notification is emitted.
func (s *Store) Toggle(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	added := false
	if i := slices.Index(s.ids, id); i >= 0 {
		s.ids = slices.Delete(s.ids, i, i+1)
	} else {
		s.ids = append(s.ids, id)
		added = true
	}
	err := db.SetJSON(ctx, s.kv, db.KeyFavorites, s.snapshotLocked())
	s.mu.Unlock()

	if err != nil {
		err = db.Failure("favorites.Toggle", db.KeyFavorites, err)
	}
	s.emit(ctx, id, added)
	return added, err
}

// IsFavorite reports whether id is in the set.
func (s *Store) IsFavorite(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.ids, id)
}

// List returns the favorite ids in the order they were added.
func (s *Store) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Destinations resolves the favorites through the catalog, skipping ids it
// does not know.
func (s *Store) Destinations() []models.Destination {
	ids := s.List()
	out := make([]models.Destination, 0, len(ids))
	if s.lookup == nil {
		return out
	}
	for _, id := range ids {
		if d, ok := s.lookup.ByID(id); ok {
			out = append(out, d)
		}
	}
	return out
}

// Reset empties the in-memory set without touching storage.
func (s *Store) Reset() {
	s.mu.Lock()
	s.ids = nil
	s.mu.Unlock()
}

func (s *Store) snapshotLocked() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

func (s *Store) emit(ctx context.Context, id string, added bool) {
	if s.notifier == nil || s.lookup == nil {
		return
	}
	d, ok := s.lookup.ByID(id)
	if !ok {
		slog.Debug("favorites: no catalog entry, skipping notification", "id", id)
		return
	}
	in := models.NotificationInput{
		Type:    models.NotificationFavoriteRemoved,
		Title:   "Removed from Favorites",
		Message: d.Name + " has been removed from your favorites.",
		Data:    map[string]string{"destinationId": id},
	}
	if added {
		in.Type = models.NotificationFavoriteAdded
		in.Title = "Added to Favorites"
		in.Message = d.Name + " has been added to your favorites."
	}
	if _, err := s.notifier.Add(ctx, in); err != nil {
		slog.Warn("favorites: notification not persisted", "type", in.Type, "err", err)
	}
}
