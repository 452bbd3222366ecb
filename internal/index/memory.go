// Package index provides a rebuilt-on-write in-memory lookup over
// catalog items, so id lookups stay O(1) while the bucketed catalog
// document remains the persisted source of truth.
package index

import (
	"sync"
	"time"

	"github.com/gardenstock/stockwatch/internal/domain"
)

// MemoryIndex maps item ids to catalog items.
type MemoryIndex struct {
	mu         sync.RWMutex
	items      map[string]domain.GameItem
	lastReload time.Time
}

// NewMemoryIndex creates an empty index.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		items: make(map[string]domain.GameItem),
	}
}

// Update replaces the whole index contents.
func (idx *MemoryIndex) Update(items []domain.GameItem) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.items = make(map[string]domain.GameItem, len(items))
	for _, item := range items {
		idx.items[item.ID] = item
	}
	idx.lastReload = time.Now()
}

// Get retrieves an item by id.
func (idx *MemoryIndex) Get(id string) (domain.GameItem, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	item, ok := idx.items[id]
	return item, ok
}

// Count returns the number of indexed items.
func (idx *MemoryIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.items)
}

// LastReload returns the timestamp of the last full rebuild.
func (idx *MemoryIndex) LastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}
