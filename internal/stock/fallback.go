package stock

import "github.com/gardenstock/stockwatch/internal/domain"

// FallbackSnapshot returns the built-in demo snapshot used when no
// feed endpoint is configured. Deterministic offline mode, not an
// error state.
func FallbackSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Seeds: []domain.StockItem{
			{Name: "Blueberry", Count: "x1", Color: "bg-blue-500"},
			{Name: "Carrot", Count: "x18", Color: "bg-orange-500"},
			{Name: "Strawberry", Count: "x3", Color: "bg-red-500"},
			{Name: "Tomato", Count: "x1", Color: "bg-red-600"},
		},
		Gears: []domain.StockItem{
			{Name: "Cleaning Spray", Count: "x3", Color: "bg-blue-500"},
			{Name: "Favorite Tool", Count: "x2", Color: "bg-pink-500"},
			{Name: "Harvest Tool", Count: "x3", Color: "bg-orange-500"},
			{Name: "Watering Can", Count: "x1", Color: "bg-blue-600"},
		},
		Eggs: []domain.StockItem{
			{Name: "Common Egg", Count: "x4", Color: "bg-gray-400"},
			{Name: "Common Summer Egg", Count: "x3", Color: "bg-blue-400"},
		},
		EventShop: []domain.StockItem{
			{Name: "Delphinium", Count: "x4", Color: "bg-blue-500"},
			{Name: "Summer Seed Pack", Count: "x2", Color: "bg-green-500"},
		},
		CosmeticCrates: []domain.StockItem{
			{Name: "Beach Crate", Count: "x4", Color: "bg-blue-400"},
			{Name: "Sign Crate", Count: "x4", Color: "bg-orange-400"},
		},
		CosmeticItems: []domain.StockItem{
			{Name: "Large Wood Flooring", Count: "x4", Color: "bg-amber-500"},
			{Name: "Torch", Count: "x2", Color: "bg-orange-500"},
			{Name: "Shovel Grove", Count: "x1", Color: "bg-green-500"},
			{Name: "Rock Pile", Count: "x3", Color: "bg-gray-500"},
			{Name: "Log", Count: "x3", Color: "bg-amber-600"},
			{Name: "Small Wood Flooring", Count: "x4", Color: "bg-amber-400"},
			{Name: "Cabana", Count: "x1", Color: "bg-blue-400"},
		},
	}
}
