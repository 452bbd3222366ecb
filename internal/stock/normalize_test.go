package stock

import (
	"reflect"
	"testing"

	"github.com/gardenstock/stockwatch/internal/domain"
)

func TestNormalizeRouting(t *testing.T) {
	records := []domain.StockRecord{
		{Name: "Carrot", Quantity: 18, Category: "Seeds"},
		{Name: "Watering Can", Quantity: 1, Category: "Gears"},
		{Name: "Common Egg", Quantity: 4, Category: "Eggs"},
		{Name: "Delphinium", Quantity: 4, Category: "Event Shop Stock"},
		{Name: "Beach Crate", Quantity: 4, Category: "Cosmetics"},
		{Name: "Torch", Quantity: 2, Category: "Cosmetics"},
	}

	snap := Normalize(records)

	if len(snap.Seeds) != 1 || snap.Seeds[0].Name != "Carrot" {
		t.Errorf("Seeds = %+v, want [Carrot]", snap.Seeds)
	}
	if snap.Seeds[0].Count != "x18" {
		t.Errorf("Carrot count = %q, want x18", snap.Seeds[0].Count)
	}
	if snap.Seeds[0].Color != "bg-orange-500" {
		t.Errorf("Carrot color = %q, want bg-orange-500", snap.Seeds[0].Color)
	}

	// Cosmetics split: names containing "crate" (case-insensitive) are crates
	if len(snap.CosmeticCrates) != 1 || snap.CosmeticCrates[0].Name != "Beach Crate" {
		t.Errorf("CosmeticCrates = %+v, want [Beach Crate]", snap.CosmeticCrates)
	}
	if len(snap.CosmeticItems) != 1 || snap.CosmeticItems[0].Name != "Torch" {
		t.Errorf("CosmeticItems = %+v, want [Torch]", snap.CosmeticItems)
	}

	if len(snap.Gears) != 1 || len(snap.Eggs) != 1 || len(snap.EventShop) != 1 {
		t.Errorf("unexpected bucket sizes: gears=%d eggs=%d eventShop=%d",
			len(snap.Gears), len(snap.Eggs), len(snap.EventShop))
	}
}

func TestNormalizeDropsUnknownCategories(t *testing.T) {
	records := []domain.StockRecord{
		{Name: "Carrot", Quantity: 1, Category: "Seeds"},
		{Name: "Mystery Thing", Quantity: 7, Category: "Limited Deals"},
		{Name: "Tomato", Quantity: 2, Category: "Seeds"},
	}

	snap := Normalize(records)

	if got := snap.Total(); got != 2 {
		t.Errorf("Total() = %d, want 2 (unknown category must be dropped)", got)
	}
	for _, b := range domain.Buckets {
		for _, item := range snap.Items(b) {
			if item.Name == "Mystery Thing" {
				t.Errorf("dropped record appeared in bucket %s", b)
			}
		}
	}
}

func TestNormalizeKeepsZeroQuantity(t *testing.T) {
	snap := Normalize([]domain.StockRecord{
		{Name: "Carrot", Quantity: 0, Category: "Seeds"},
	})

	if len(snap.Seeds) != 1 {
		t.Fatalf("zero-stock item was filtered, want it retained")
	}
	if snap.Seeds[0].Count != "x0" {
		t.Errorf("count = %q, want x0", snap.Seeds[0].Count)
	}
	if snap.Seeds[0].InStock() {
		t.Error("InStock() = true for x0")
	}
}

func TestNormalizeUnknownNameGetsFallbackColor(t *testing.T) {
	snap := Normalize([]domain.StockRecord{
		{Name: "Never Seen Before", Quantity: 1, Category: "Gears"},
	})

	if snap.Gears[0].Color != DefaultColor {
		t.Errorf("color = %q, want fallback %q", snap.Gears[0].Color, DefaultColor)
	}
}

func TestNormalizeIsDeterministicAndOrderStable(t *testing.T) {
	records := []domain.StockRecord{
		{Name: "Tomato", Quantity: 1, Category: "Seeds"},
		{Name: "Carrot", Quantity: 18, Category: "Seeds"},
		{Name: "Blueberry", Quantity: 3, Category: "Seeds"},
	}

	first := Normalize(records)
	second := Normalize(records)

	if !reflect.DeepEqual(first, second) {
		t.Error("Normalize is not deterministic for identical input")
	}

	want := []string{"Tomato", "Carrot", "Blueberry"}
	for i, name := range want {
		if first.Seeds[i].Name != name {
			t.Errorf("Seeds[%d] = %q, want %q (input order must be preserved)",
				i, first.Seeds[i].Name, name)
		}
	}
}

func TestSnapshotQuantityLookup(t *testing.T) {
	snap := Normalize([]domain.StockRecord{
		{Name: "Carrot", Quantity: 5, Category: "Seeds"},
		{Name: "Beach Crate", Quantity: 2, Category: "Cosmetics"},
	})

	tests := []struct {
		name     string
		category string
		want     string
		found    bool
	}{
		{"Carrot", "Seeds", "x5", true},
		{"Beach Crate", "Cosmetics", "x2", true},
		{"Delphinium", "Event Shop Stock", "", false},
		{"Carrot", "Gears", "", false},
	}

	for _, tt := range tests {
		got, found := snap.Quantity(tt.name, tt.category)
		if found != tt.found || got != tt.want {
			t.Errorf("Quantity(%q, %q) = (%q, %v), want (%q, %v)",
				tt.name, tt.category, got, found, tt.want, tt.found)
		}
	}
}
