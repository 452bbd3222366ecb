package domain

import "strings"

// Rarity grades catalog items.
type Rarity string

const (
	RarityCommon       Rarity = "common"
	RarityUncommon     Rarity = "uncommon"
	RarityRare         Rarity = "rare"
	RarityLegendary    Rarity = "legendary"
	RarityMythical     Rarity = "mythical"
	RarityDivine       Rarity = "divine"
	RarityPrismatic    Rarity = "prismatic"
	RarityTranscendent Rarity = "transcendent"
)

// CustomItemPrefix marks user-defined catalog items, distinguishing
// them from the built-in defaults.
const CustomItemPrefix = "custom-"

// GameItem is one catalog definition a user can track. The catalog
// seeds wishlist additions for items not currently listed in stock.
type GameItem struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Category string   `json:"category" yaml:"category"`
	Color    string   `json:"color" yaml:"color"`
	Rarity   Rarity   `json:"rarity,omitempty" yaml:"rarity,omitempty"`
	Tags     []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// IsCustom reports whether the item was added by the user.
func (g GameItem) IsCustom() bool {
	return strings.HasPrefix(g.ID, CustomItemPrefix)
}

// Matches reports whether the item matches a lowercase search term by
// name, category or tag containment.
func (g GameItem) Matches(term string) bool {
	if strings.Contains(strings.ToLower(g.Name), term) {
		return true
	}
	if strings.Contains(strings.ToLower(g.Category), term) {
		return true
	}
	for _, tag := range g.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}
