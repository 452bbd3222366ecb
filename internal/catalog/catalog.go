// Package catalog maintains the item database users pick wishlist
// entries from: a built-in default catalog plus user-defined custom
// items, persisted as one JSON blob.
package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/gardenstock/stockwatch/internal/domain"
	"github.com/gardenstock/stockwatch/internal/index"
	"github.com/gardenstock/stockwatch/internal/logger"
	"github.com/gardenstock/stockwatch/internal/storage"
)

//go:embed default_catalog.yaml
var defaultCatalogYAML []byte

// itemDatabase is the persisted catalog layout, bucketed by category.
type itemDatabase struct {
	Seeds     []domain.GameItem `json:"seeds" yaml:"seeds"`
	Gears     []domain.GameItem `json:"gears" yaml:"gears"`
	Eggs      []domain.GameItem `json:"eggs" yaml:"eggs"`
	EventShop []domain.GameItem `json:"eventShop" yaml:"eventShop"`
	Cosmetics []domain.GameItem `json:"cosmetics" yaml:"cosmetics"`
}

func (db *itemDatabase) buckets() []*[]domain.GameItem {
	return []*[]domain.GameItem{&db.Seeds, &db.Gears, &db.Eggs, &db.EventShop, &db.Cosmetics}
}

// defaultDatabase parses the embedded catalog. A parse failure here is
// a build defect, hence the panic.
func defaultDatabase() *itemDatabase {
	var db itemDatabase
	if err := yaml.Unmarshal(defaultCatalogYAML, &db); err != nil {
		panic(fmt.Sprintf("embedded default catalog is invalid: %v", err))
	}
	return &db
}

// Database is the user-extensible item catalog. Defaults are seeded
// from the embedded catalog; custom items carry the "custom-" id
// prefix and survive restarts via the storage layer.
type Database struct {
	storage storage.Store
	logger  logger.Logger

	mu    sync.RWMutex
	items *itemDatabase

	// byID is rebuilt after every mutation; reads go through it so id
	// lookups skip the bucket scan.
	byID *index.MemoryIndex
}

// NewDatabase hydrates the catalog from durable storage, falling back
// to the embedded defaults when nothing is stored or the stored blob
// is corrupt.
func NewDatabase(ctx context.Context, st storage.Store, log logger.Logger) *Database {
	db := &Database{
		storage: st,
		logger:  log,
		items:   defaultDatabase(),
		byID:    index.NewMemoryIndex(),
	}
	defer db.reindex()

	data, ok, err := st.Get(ctx, storage.KeyItemDatabase)
	if err != nil {
		log.Warn("failed to load item database, using defaults", logger.Error(err))
		return db
	}
	if !ok {
		return db
	}

	var stored itemDatabase
	if err := json.Unmarshal(data, &stored); err != nil {
		log.Warn("stored item database is corrupt, using defaults", logger.Error(err))
		return db
	}
	db.items = &stored
	return db
}

// reindex rebuilds the id index from the current buckets.
func (d *Database) reindex() {
	d.byID.Update(d.AllItems())
}

// ItemByID returns the catalog item with the given id.
func (d *Database) ItemByID(id string) (domain.GameItem, bool) {
	return d.byID.Get(id)
}

// AllItems returns every catalog item across all categories.
func (d *Database) AllItems() []domain.GameItem {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var all []domain.GameItem
	for _, bucket := range d.items.buckets() {
		all = append(all, *bucket...)
	}
	return all
}

// Search filters items by an optional exact category and a free-text
// term matched against name, category and tags.
func (d *Database) Search(query, category string) []domain.GameItem {
	all := d.AllItems()

	filtered := all
	if category != "" {
		filtered = nil
		for _, item := range all {
			if item.Category == category {
				filtered = append(filtered, item)
			}
		}
	}

	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return filtered
	}

	var matched []domain.GameItem
	for _, item := range filtered {
		if item.Matches(term) {
			matched = append(matched, item)
		}
	}
	return matched
}

// AddCustomItem appends a user-defined item and persists the catalog.
// Items with an unrecognized category land in the cosmetics bucket.
func (d *Database) AddCustomItem(ctx context.Context, name, category, color string, rarity domain.Rarity) (domain.GameItem, error) {
	item := domain.GameItem{
		ID:       domain.CustomItemPrefix + uuid.New().String(),
		Name:     name,
		Category: category,
		Color:    color,
		Rarity:   rarity,
	}

	d.mu.Lock()
	bucket := d.bucketForCategory(category)
	*bucket = append(*bucket, item)
	d.mu.Unlock()
	d.reindex()

	if err := d.persist(ctx); err != nil {
		return item, err
	}
	return item, nil
}

// RemoveCustomItem deletes the item with the given id from whichever
// bucket holds it and persists. Removing an unknown id is a no-op.
func (d *Database) RemoveCustomItem(ctx context.Context, id string) error {
	d.mu.Lock()
	for _, bucket := range d.items.buckets() {
		items := *bucket
		for i, item := range items {
			if item.ID == id {
				*bucket = append(items[:i], items[i+1:]...)
				break
			}
		}
	}
	d.mu.Unlock()
	d.reindex()

	return d.persist(ctx)
}

// bucketForCategory routes a category string to its bucket. Caller
// holds the lock.
func (d *Database) bucketForCategory(category string) *[]domain.GameItem {
	switch strings.ToLower(strings.Join(strings.Fields(category), "")) {
	case "seeds":
		return &d.items.Seeds
	case "gears":
		return &d.items.Gears
	case "eggs":
		return &d.items.Eggs
	case "eventshopstock", "eventshop":
		return &d.items.EventShop
	default:
		return &d.items.Cosmetics
	}
}

func (d *Database) persist(ctx context.Context) error {
	d.mu.RLock()
	data, err := json.Marshal(d.items)
	d.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal item database: %w", err)
	}

	if err := d.storage.Set(ctx, storage.KeyItemDatabase, data); err != nil {
		return fmt.Errorf("failed to save item database: %w", err)
	}
	return nil
}
