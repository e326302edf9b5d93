// Package models defines the core data types shared by the GoMate stores.
package models

import (
	"strconv"
	"sync"
	"time"
)

// User is a registered account. Identity is ID; Email is unique across the
// registered-users collection.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// Destination is a read-only catalog entry.
type Destination struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Location        string   `json:"location"`
	Image           string   `json:"image"`
	Rating          float64  `json:"rating"`
	Category        string   `json:"category"`
	Description     string   `json:"description"`
	Transport       []string `json:"transport"`
	Status          string   `json:"status"`
	BestTimeToVisit string   `json:"bestTimeToVisit"`
	FullDescription string   `json:"fullDescription"`
	Highlights      []string `json:"highlights"`
}

// NotificationType tags the action a notification records.
type NotificationType string

const (
	NotificationFavoriteAdded       NotificationType = "favorite_added"
	NotificationFavoriteRemoved     NotificationType = "favorite_removed"
	NotificationProfileUpdated      NotificationType = "profile_updated"
	NotificationPasswordChanged     NotificationType = "password_changed"
	NotificationProfileImageUpdated NotificationType = "profile_image_updated"
)

// Notification is a user-visible record of an action.
type Notification struct {
	ID        string            `json:"id"`
	Type      NotificationType  `json:"type"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Timestamp time.Time         `json:"timestamp"`
	Read      bool              `json:"read"`
	Data      map[string]string `json:"data,omitempty"`
}

// NotificationInput is the caller-supplied part of a Notification.
type NotificationInput struct {
	Type    NotificationType
	Title   string
	Message string
	Data    map[string]string
}

// Theme is the persisted appearance flag.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Language is one of the supported UI locales.
type Language string

const (
	LanguageEnglish Language = "English"
	LanguageSinhala Language = "Sinhala"
)

// Languages lists the supported locales in display order.
var Languages = []Language{LanguageEnglish, LanguageSinhala}

// ---------------------------------------------------------------------------
// IDs
// ---------------------------------------------------------------------------

// IDSource hands out wall-clock derived identifiers (milliseconds since the
// epoch). IDs from one source are strictly increasing even when two are
// requested within the same millisecond.
type IDSource struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewIDSource returns an IDSource reading time from now; nil means time.Now.
func NewIDSource(now func() time.Time) *IDSource {
	if now == nil {
		now = time.Now
	}
	return &IDSource{now: now}
}

// Next returns the next identifier and the instant it was derived from.
func (s *IDSource) Next() (string, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.now()
	ms := t.UnixMilli()
	if ms <= s.last {
		ms = s.last + 1
	}
	s.last = ms
	return strconv.FormatInt(ms, 10), t
}
