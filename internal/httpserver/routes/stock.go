package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/gardenstock/stockwatch/internal/httpserver/deps"
	"github.com/gardenstock/stockwatch/internal/httpserver/handlers"
)

func init() { Register(registerStock) }

func registerStock(r chi.Router, d deps.Deps) {
	r.Get("/api/stock", handlers.Stock(d))
	r.Post("/api/stock/refresh", handlers.StockRefresh(d))
}
