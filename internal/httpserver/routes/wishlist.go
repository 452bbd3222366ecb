package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/gardenstock/stockwatch/internal/httpserver/deps"
	"github.com/gardenstock/stockwatch/internal/httpserver/handlers"
)

func init() { Register(registerWishlist) }

func registerWishlist(r chi.Router, d deps.Deps) {
	r.Get("/api/wishlist", handlers.Wishlist(d))
	r.Post("/api/wishlist", handlers.WishlistAdd(d))
	r.Delete("/api/wishlist/{id}", handlers.WishlistRemove(d))
	r.Put("/api/notifications", handlers.NotificationSettings(d))

	r.Get("/api/catalog", handlers.CatalogSearch(d))
	r.Post("/api/catalog", handlers.CatalogAdd(d))
	r.Delete("/api/catalog/{id}", handlers.CatalogRemove(d))
}
