package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gardenstock/stockwatch/internal/domain"
	"github.com/gardenstock/stockwatch/internal/httpserver/deps"
)

type wishlistResponse struct {
	Entries    []domain.WishlistEntry      `json:"entries"`
	Settings   domain.NotificationSettings `json:"settings"`
	Permission domain.Permission           `json:"permission"`
}

type addWishlistRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Color    string `json:"color"`
}

// Wishlist returns the tracked entries plus notification state.
func Wishlist(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(wishlistResponse{
			Entries:    d.Wishlist.Entries(),
			Settings:   d.Wishlist.Settings(),
			Permission: d.Wishlist.Permission(),
		})
	}
}

// WishlistAdd tracks a new (name, category) pair. Adding an already
// tracked pair succeeds without duplicating.
func WishlistAdd(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		var req addWishlistRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.Category == "" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "name and category are required"})
			return
		}

		d.Wishlist.Add(r.Context(), req.Name, req.Category, req.Color)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "added"})
	}
}

// WishlistRemove untracks by entry id. Unknown ids still return 204.
func WishlistRemove(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Wishlist.Remove(r.Context(), chi.URLParam(r, "id"))
		w.WriteHeader(http.StatusNoContent)
	}
}

// NotificationSettings overwrites the full settings object.
func NotificationSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		var settings domain.NotificationSettings
		if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid settings payload"})
			return
		}

		d.Wishlist.UpdateNotificationSettings(r.Context(), settings)
		if settings.Enabled && settings.Desktop {
			d.Wishlist.RequestNotificationPermission()
		}
		_ = json.NewEncoder(w).Encode(d.Wishlist.Settings())
	}
}
