package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gardenstock/stockwatch/internal/httpserver/deps"
)

// Stock returns the current fetch state: both snapshots, loading and
// error flags, and the last/next update timestamps.
func Stock(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(d.StockStore.State())
	}
}

// StockRefresh queues a manual refresh. Non-blocking: if a refresh is
// already queued the trigger is dropped.
func StockRefresh(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if d.RefreshTrigger == nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "manual refresh not available"})
			return
		}

		select {
		case d.RefreshTrigger <- struct{}{}:
		default:
			// Already queued
		}
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "refresh queued"})
	}
}
