package stock

import (
	"strconv"
	"strings"

	"github.com/gardenstock/stockwatch/internal/domain"
)

// DefaultColor is applied to items missing from the color table.
const DefaultColor = "bg-gray-400"

// itemColors maps item names to their display color class.
var itemColors = map[string]string{
	// Seeds
	"Blueberry":   "bg-blue-500",
	"Carrot":      "bg-orange-500",
	"Green Apple": "bg-green-500",
	"Strawberry":  "bg-red-500",
	"Tomato":      "bg-red-600",

	// Gears
	"Cleaning Spray":   "bg-blue-500",
	"Favorite Tool":    "bg-pink-500",
	"Harvest Tool":     "bg-orange-500",
	"Magnifying Glass": "bg-purple-500",
	"Recall Wrench":    "bg-gray-500",
	"Trowel":           "bg-amber-500",
	"Watering Can":     "bg-blue-600",

	// Eggs
	"Common Egg":        "bg-gray-400",
	"Common Summer Egg": "bg-yellow-500",
	"Rare Summer Egg":   "bg-blue-500",

	// Event Shop
	"Delphinium":       "bg-blue-500",
	"Oasis Crate":      "bg-yellow-500",
	"Summer Seed Pack": "bg-green-500",

	// Cosmetics
	"Beach Crate":         "bg-blue-400",
	"Sign Crate":          "bg-orange-400",
	"Green Tractor":       "bg-green-500",
	"Torch":               "bg-orange-500",
	"Yellow Umbrella":     "bg-yellow-500",
	"Brick Stack":         "bg-red-500",
	"Small Wood Flooring": "bg-amber-400",
	"Mini TV":             "bg-gray-600",
	"Shovel":              "bg-gray-500",
}

// ItemColor returns the display color for an item name.
func ItemColor(name string) string {
	if c, ok := itemColors[name]; ok {
		return c
	}
	return DefaultColor
}

// isCosmeticCrate splits the Cosmetics category into crates vs items.
func isCosmeticCrate(name string) bool {
	return strings.Contains(strings.ToLower(name), "crate")
}

// Normalize routes raw feed records into the fixed snapshot buckets.
// Pure: same input always yields the same snapshot. Records with an
// unrecognized category are dropped to match the upstream vocabulary;
// zero-quantity items are kept. Order within each bucket is input order.
func Normalize(records []domain.StockRecord) *domain.Snapshot {
	snap := &domain.Snapshot{
		Seeds:          []domain.StockItem{},
		Gears:          []domain.StockItem{},
		Eggs:           []domain.StockItem{},
		EventShop:      []domain.StockItem{},
		CosmeticCrates: []domain.StockItem{},
		CosmeticItems:  []domain.StockItem{},
	}

	for _, rec := range records {
		item := domain.StockItem{
			Name:  rec.Name,
			Count: "x" + strconv.Itoa(rec.Quantity),
			Color: ItemColor(rec.Name),
		}

		switch rec.Category {
		case domain.CategorySeeds:
			snap.Seeds = append(snap.Seeds, item)
		case domain.CategoryGears:
			snap.Gears = append(snap.Gears, item)
		case domain.CategoryEggs:
			snap.Eggs = append(snap.Eggs, item)
		case domain.CategoryEventShop:
			snap.EventShop = append(snap.EventShop, item)
		case domain.CategoryCosmetics:
			if isCosmeticCrate(rec.Name) {
				snap.CosmeticCrates = append(snap.CosmeticCrates, item)
			} else {
				snap.CosmeticItems = append(snap.CosmeticItems, item)
			}
		}
	}

	return snap
}
