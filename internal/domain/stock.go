package domain

import (
	"strings"
	"time"
)

// StockRecord is one raw entry from the upstream stock feed.
// Immutable once fetched; the normalizer is the only consumer.
type StockRecord struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Category string `json:"category"`
}

// StockItem is a normalized, display-ready stock entry.
// Derived from a StockRecord, never persisted.
type StockItem struct {
	Name string `json:"name"`
	// Count is the display quantity, ex: "x3". "x0" means out of stock
	// but the item is still listed.
	Count string `json:"count"`
	Color string `json:"color"`
}

// ZeroCount is the display value for an out-of-stock item.
const ZeroCount = "x0"

// InStock reports whether the item has a non-zero quantity.
func (i StockItem) InStock() bool {
	return i.Count != ZeroCount
}

// Bucket identifies one of the fixed snapshot categories.
type Bucket string

const (
	BucketSeeds          Bucket = "seeds"
	BucketGears          Bucket = "gears"
	BucketEggs           Bucket = "eggs"
	BucketEventShop      Bucket = "eventShop"
	BucketCosmeticCrates Bucket = "cosmeticCrates"
	BucketCosmeticItems  Bucket = "cosmeticItems"
)

// Buckets lists every snapshot bucket in display order.
var Buckets = []Bucket{
	BucketSeeds,
	BucketGears,
	BucketEggs,
	BucketEventShop,
	BucketCosmeticCrates,
	BucketCosmeticItems,
}

// Upstream category vocabulary. Records with any other category are dropped.
const (
	CategorySeeds     = "Seeds"
	CategoryGears     = "Gears"
	CategoryEggs      = "Eggs"
	CategoryEventShop = "Event Shop Stock"
	CategoryCosmetics = "Cosmetics"
)

// Snapshot is one complete normalized view of all tracked stock
// categories at a point in time. Items keep upstream order.
type Snapshot struct {
	Seeds          []StockItem `json:"seeds"`
	Gears          []StockItem `json:"gears"`
	Eggs           []StockItem `json:"eggs"`
	EventShop      []StockItem `json:"eventShop"`
	CosmeticCrates []StockItem `json:"cosmeticCrates"`
	CosmeticItems  []StockItem `json:"cosmeticItems"`
}

// Items returns the bucket contents for b, nil for an unknown bucket.
func (s *Snapshot) Items(b Bucket) []StockItem {
	switch b {
	case BucketSeeds:
		return s.Seeds
	case BucketGears:
		return s.Gears
	case BucketEggs:
		return s.Eggs
	case BucketEventShop:
		return s.EventShop
	case BucketCosmeticCrates:
		return s.CosmeticCrates
	case BucketCosmeticItems:
		return s.CosmeticItems
	}
	return nil
}

// Total returns the number of items across all buckets.
func (s *Snapshot) Total() int {
	n := 0
	for _, b := range Buckets {
		n += len(s.Items(b))
	}
	return n
}

// BucketsForCategory maps a category string (as stored on wishlist
// entries, ex: "Seeds", "Event Shop Stock", "Cosmetics") to the snapshot
// buckets it can appear in. Cosmetics span both cosmetic buckets since
// the crate/item split happens at normalization time.
func BucketsForCategory(category string) []Bucket {
	switch normalizeCategoryKey(category) {
	case "seeds":
		return []Bucket{BucketSeeds}
	case "gears":
		return []Bucket{BucketGears}
	case "eggs":
		return []Bucket{BucketEggs}
	case "eventshopstock", "eventshop":
		return []Bucket{BucketEventShop}
	case "cosmetics", "cosmeticcrates", "cosmeticitems":
		return []Bucket{BucketCosmeticCrates, BucketCosmeticItems}
	}
	return nil
}

// Quantity looks up the display count for (name, category) in the
// snapshot. The second return is false when the item is not listed at
// all, which callers treat as out of stock.
func (s *Snapshot) Quantity(name, category string) (string, bool) {
	for _, b := range BucketsForCategory(category) {
		for _, item := range s.Items(b) {
			if item.Name == name {
				return item.Count, true
			}
		}
	}
	return "", false
}

// normalizeCategoryKey lowercases and strips whitespace so that
// "Event Shop Stock" and "eventShop" compare equal-ish.
func normalizeCategoryKey(category string) string {
	return strings.ToLower(strings.Join(strings.Fields(category), ""))
}

// StockState is the externally visible fetch lifecycle state.
type StockState struct {
	Data         *Snapshot  `json:"data"`
	PreviousData *Snapshot  `json:"previousData"`
	Loading      bool       `json:"loading"`
	Error        string     `json:"error,omitempty"`
	LastUpdated  *time.Time `json:"lastUpdated,omitempty"`
	NextUpdate   *time.Time `json:"nextUpdate,omitempty"`
}
