package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gardenstock/stockwatch/internal/domain"
	"github.com/gardenstock/stockwatch/internal/httpserver/deps"
	"github.com/gardenstock/stockwatch/internal/logger"
)

type addCustomItemRequest struct {
	Name     string        `json:"name"`
	Category string        `json:"category"`
	Color    string        `json:"color"`
	Rarity   domain.Rarity `json:"rarity,omitempty"`
}

// CatalogSearch lists catalog items, optionally filtered by ?q= and
// ?category=.
func CatalogSearch(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		items := d.Catalog.Search(r.URL.Query().Get("q"), r.URL.Query().Get("category"))
		if items == nil {
			items = []domain.GameItem{}
		}
		_ = json.NewEncoder(w).Encode(items)
	}
}

// CatalogAdd creates a user-defined catalog item.
func CatalogAdd(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		var req addCustomItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.Category == "" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "name and category are required"})
			return
		}

		item, err := d.Catalog.AddCustomItem(r.Context(), req.Name, req.Category, req.Color, req.Rarity)
		if err != nil {
			d.Logger.Warn("failed to persist custom item", logger.Error(err))
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(item)
	}
}

// CatalogRemove deletes a user-defined catalog item along with any
// wishlist entry that was created from it.
func CatalogRemove(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		item, found := d.Catalog.ItemByID(id)
		if found && !item.IsCustom() {
			// Built-in defaults are not removable.
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "default items cannot be removed"})
			return
		}

		if err := d.Catalog.RemoveCustomItem(r.Context(), id); err != nil {
			d.Logger.Warn("failed to persist item removal", logger.Error(err))
		}
		if found {
			d.Wishlist.RemoveByItem(r.Context(), item.Name, item.Category)
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
