// Package wishlist owns the user's tracked items and notification
// preferences. Every mutation is flushed to durable storage before the
// in-memory state counts, and broadcast so sibling store instances in
// the same process converge without a reload.
package wishlist

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gardenstock/stockwatch/internal/domain"
	"github.com/gardenstock/stockwatch/internal/logger"
	"github.com/gardenstock/stockwatch/internal/pubsub"
	"github.com/gardenstock/stockwatch/internal/storage"
)

// PermissionRequester is the desktop-notification capability as the
// wishlist store sees it. Absence of the capability reads as a
// permanent "denied"; requesting must never fail.
type PermissionRequester interface {
	Permission() domain.Permission
	Request() bool
}

// Store is one wishlist view. Multiple instances may exist in a
// process; the injected broadcaster keeps them in sync.
type Store struct {
	storage     storage.Store
	broadcaster *pubsub.Broadcaster
	desktop     PermissionRequester
	logger      logger.Logger

	mu       sync.RWMutex
	entries  []domain.WishlistEntry
	settings domain.NotificationSettings

	unsubscribe func()
	now         func() time.Time
}

// NewStore hydrates state from durable storage and subscribes to peer
// changes. Corrupt stored blobs fall back to defaults, logged but
// never surfaced.
func NewStore(
	ctx context.Context,
	st storage.Store,
	broadcaster *pubsub.Broadcaster,
	desktop PermissionRequester,
	log logger.Logger,
) *Store {
	s := &Store{
		storage:     st,
		broadcaster: broadcaster,
		desktop:     desktop,
		logger:      log,
		settings:    domain.DefaultNotificationSettings(),
		now:         time.Now,
	}

	s.hydrate(ctx)

	if broadcaster != nil {
		s.unsubscribe = broadcaster.Subscribe(func() {
			s.hydrate(context.Background())
		})
	}

	return s
}

// hydrate reloads entries and settings from storage.
func (s *Store) hydrate(ctx context.Context) {
	entries := s.loadEntries(ctx)
	settings := s.loadSettings(ctx)

	s.mu.Lock()
	s.entries = entries
	s.settings = settings
	s.mu.Unlock()
}

func (s *Store) loadEntries(ctx context.Context) []domain.WishlistEntry {
	data, ok, err := s.storage.Get(ctx, storage.KeyWishlist)
	if err != nil {
		s.logger.Warn("failed to load wishlist, starting empty", logger.Error(err))
		return nil
	}
	if !ok {
		return nil
	}

	var entries []domain.WishlistEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn("stored wishlist is corrupt, starting empty", logger.Error(err))
		return nil
	}
	return entries
}

func (s *Store) loadSettings(ctx context.Context) domain.NotificationSettings {
	defaults := domain.DefaultNotificationSettings()

	data, ok, err := s.storage.Get(ctx, storage.KeyNotificationSettings)
	if err != nil {
		s.logger.Warn("failed to load notification settings, using defaults", logger.Error(err))
		return defaults
	}
	if !ok {
		return defaults
	}

	var settings domain.NotificationSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		s.logger.Warn("stored notification settings are corrupt, using defaults", logger.Error(err))
		return defaults
	}
	return settings
}

// Add appends a new entry for (name, category). Adding a pair that is
// already tracked is a no-op.
func (s *Store) Add(ctx context.Context, name, category, color string) {
	s.mu.Lock()
	for _, e := range s.entries {
		if e.Name == name && e.Category == category {
			s.mu.Unlock()
			return
		}
	}

	now := s.now()
	entry := domain.WishlistEntry{
		ID:       fmt.Sprintf("%s-%s-%d", category, name, now.UnixMilli()),
		Name:     name,
		Category: category,
		Color:    color,
		AddedAt:  now,
	}
	updated := append(append([]domain.WishlistEntry{}, s.entries...), entry)
	s.mu.Unlock()

	s.commitEntries(ctx, updated)
}

// Remove deletes the entry with the given id. Unknown ids are a no-op.
func (s *Store) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	updated := make([]domain.WishlistEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if e.ID != id {
			updated = append(updated, e)
		}
	}
	s.mu.Unlock()

	s.commitEntries(ctx, updated)
}

// RemoveByItem deletes any entry matching (name, category). Used when
// a custom catalog item is deleted so its wishlist entry goes with it.
func (s *Store) RemoveByItem(ctx context.Context, name, category string) {
	s.mu.Lock()
	updated := make([]domain.WishlistEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if !(e.Name == name && e.Category == category) {
			updated = append(updated, e)
		}
	}
	s.mu.Unlock()

	s.commitEntries(ctx, updated)
}

// commitEntries persists the list, installs it and notifies peers.
// Storage is written before the in-memory swap; a write failure keeps
// the previous durable state but is logged rather than surfaced.
func (s *Store) commitEntries(ctx context.Context, entries []domain.WishlistEntry) {
	data, err := json.Marshal(entries)
	if err != nil {
		s.logger.Error("failed to marshal wishlist", logger.Error(err))
		return
	}
	if err := s.storage.Set(ctx, storage.KeyWishlist, data); err != nil {
		s.logger.Warn("failed to persist wishlist", logger.Error(err))
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()

	if s.broadcaster != nil {
		s.broadcaster.Publish()
	}
}

// IsInWishlist reports whether (name, category) is tracked.
func (s *Store) IsInWishlist(name, category string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.entries {
		if e.Name == name && e.Category == category {
			return true
		}
	}
	return false
}

// Entries returns a copy of the tracked entries in insertion order.
func (s *Store) Entries() []domain.WishlistEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.WishlistEntry{}, s.entries...)
}

// Settings returns the current notification settings.
func (s *Store) Settings() domain.NotificationSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// UpdateNotificationSettings overwrites the full settings object and
// persists it.
func (s *Store) UpdateNotificationSettings(ctx context.Context, settings domain.NotificationSettings) {
	data, err := json.Marshal(settings)
	if err != nil {
		s.logger.Error("failed to marshal notification settings", logger.Error(err))
		return
	}
	if err := s.storage.Set(ctx, storage.KeyNotificationSettings, data); err != nil {
		s.logger.Warn("failed to persist notification settings", logger.Error(err))
	}

	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()

	if s.broadcaster != nil {
		s.broadcaster.Publish()
	}
}

// Permission reports the desktop notification permission state.
func (s *Store) Permission() domain.Permission {
	if s.desktop == nil {
		return domain.PermissionDenied
	}
	return s.desktop.Permission()
}

// RequestNotificationPermission asks the platform for desktop alert
// permission. Missing capability reads as "not granted"; never fails.
func (s *Store) RequestNotificationPermission() bool {
	if s.desktop == nil {
		return false
	}
	return s.desktop.Request()
}

// Close detaches the store from the broadcaster. Idempotent.
func (s *Store) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}
