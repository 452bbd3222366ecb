// Package storage provides the durable key/value layer behind the
// wishlist, notification settings and custom item catalog. Values are
// opaque JSON blobs under fixed string keys; backends must make each
// Set atomic from the caller's perspective.
package storage

import "context"

// Fixed storage keys. Each holds one JSON-serialized blob.
const (
	KeyWishlist             = "garden-tracker-wishlist"
	KeyNotificationSettings = "garden-tracker-notifications"
	KeyItemDatabase         = "garden-tracker-item-database"
)

// Store is a durable string-keyed blob store.
type Store interface {
	// Get returns the stored value for key. The second return is false
	// when the key has never been written.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set durably writes value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
