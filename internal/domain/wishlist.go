package domain

import "time"

// WishlistEntry is one user-tracked item.
// At most one entry exists per (name, category) pair.
type WishlistEntry struct {
	// ID is the canonical unique identifier, composed from category,
	// name and creation time so rapid repeated adds still get distinct
	// ids. Ex: "Seeds-Carrot-1718000000000".
	ID string `json:"id"`

	Name     string `json:"name"`
	Category string `json:"category"`
	Color    string `json:"color"`

	// AddedAt is when the user added the entry.
	AddedAt time.Time `json:"addedAt"`
}

// NotificationSettings gates alert dispatch. Process-wide, persisted,
// mutated only through the wishlist store.
type NotificationSettings struct {
	Enabled bool `json:"enabled"`
	Sound   bool `json:"sound"`
	Desktop bool `json:"desktop"`
}

// DefaultNotificationSettings matches a fresh install: alerts off until
// the user opts in, sound and desktop channels pre-selected.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{Enabled: false, Sound: true, Desktop: true}
}

// Permission is the desktop-notification capability state.
type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// PendingNotification is one wishlist entry queued for the next
// debounced alert flush, with the quantity observed when it was queued.
type PendingNotification struct {
	Entry    WishlistEntry
	Quantity string
}
