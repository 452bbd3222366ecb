package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gardenstock/stockwatch/internal/catalog"
	"github.com/gardenstock/stockwatch/internal/domain"
	"github.com/gardenstock/stockwatch/internal/httpserver/deps"
	"github.com/gardenstock/stockwatch/internal/httpserver/routes"
	"github.com/gardenstock/stockwatch/internal/logger"
	"github.com/gardenstock/stockwatch/internal/stock"
	"github.com/gardenstock/stockwatch/internal/storage"
	"github.com/gardenstock/stockwatch/internal/wishlist"
)

func newTestServer(t *testing.T) (*httptest.Server, deps.Deps) {
	t.Helper()

	log := logger.New("error", false)
	st, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	ctx := context.Background()
	stockStore := stock.NewStore(nil, log) // offline snapshot
	stockStore.Refetch(ctx)

	wl := wishlist.NewStore(ctx, st, nil, nil, log)
	t.Cleanup(wl.Close)

	d := deps.Deps{
		Logger:         log,
		StartTime:      time.Now(),
		Version:        "test",
		TimeNow:        time.Now,
		StockStore:     stockStore,
		Wishlist:       wl,
		Catalog:        catalog.NewDatabase(ctx, st, log),
		RefreshTrigger: make(chan struct{}, 1),
	}

	r := chi.NewRouter()
	routes.RegisterAll(r, d)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, d
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	var body map[string]any
	if code := getJSON(t, srv.URL+"/healthz", &body); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %v", body["status"])
	}
}

func TestGetStock(t *testing.T) {
	srv, _ := newTestServer(t)

	var state domain.StockState
	if code := getJSON(t, srv.URL+"/api/stock", &state); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if state.Data == nil || state.Data.Total() == 0 {
		t.Error("stock state has no snapshot")
	}
	if state.Loading {
		t.Error("Loading = true after committed refetch")
	}
}

func TestStockRefreshQueuesTrigger(t *testing.T) {
	srv, d := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/stock/refresh", "application/json", nil)
	if err != nil {
		t.Fatalf("POST refresh: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", resp.StatusCode)
	}

	select {
	case <-d.RefreshTrigger:
	default:
		t.Error("refresh trigger channel is empty")
	}

	// A second post while one is queued is still accepted.
	d.RefreshTrigger <- struct{}{}
	resp, err = http.Post(srv.URL+"/api/stock/refresh", "application/json", nil)
	if err != nil {
		t.Fatalf("POST refresh: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		t.Errorf("status = %d with full queue, want 202", resp.StatusCode)
	}
}

func TestWishlistLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)

	payload := bytes.NewBufferString(`{"name": "Carrot", "category": "Seeds", "color": "bg-orange-500"}`)
	resp, err := http.Post(srv.URL+"/api/wishlist", "application/json", payload)
	if err != nil {
		t.Fatalf("POST wishlist: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add status = %d, want 201", resp.StatusCode)
	}

	var body struct {
		Entries []domain.WishlistEntry `json:"entries"`
	}
	getJSON(t, srv.URL+"/api/wishlist", &body)
	if len(body.Entries) != 1 || body.Entries[0].Name != "Carrot" {
		t.Fatalf("entries = %+v", body.Entries)
	}

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/wishlist/"+body.Entries[0].ID, nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE wishlist: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", resp.StatusCode)
	}

	getJSON(t, srv.URL+"/api/wishlist", &body)
	if len(body.Entries) != 0 {
		t.Errorf("entries after delete = %+v", body.Entries)
	}
}

func TestWishlistAddValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, payload := range []string{`{}`, `{"name": "Carrot"}`, `{"category": "Seeds"}`, `not json`} {
		resp, err := http.Post(srv.URL+"/api/wishlist", "application/json", strings.NewReader(payload))
		if err != nil {
			t.Fatalf("POST wishlist: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("payload %q: status = %d, want 400", payload, resp.StatusCode)
		}
	}
}

func TestNotificationSettingsUpdate(t *testing.T) {
	srv, d := newTestServer(t)

	payload := strings.NewReader(`{"enabled": true, "sound": false, "desktop": false}`)
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/notifications", payload)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT notifications: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	want := domain.NotificationSettings{Enabled: true, Sound: false, Desktop: false}
	if got := d.Wishlist.Settings(); got != want {
		t.Errorf("Settings = %+v, want %+v", got, want)
	}
}

func TestCatalogSearchAndCustomItems(t *testing.T) {
	srv, d := newTestServer(t)

	var items []domain.GameItem
	if code := getJSON(t, srv.URL+"/api/catalog?category=Seeds", &items); code != http.StatusOK {
		t.Fatalf("search status = %d", code)
	}
	if len(items) == 0 {
		t.Fatal("catalog search returned nothing")
	}

	payload := strings.NewReader(`{"name": "Moon Fruit", "category": "Seeds", "color": "bg-indigo-300", "rarity": "mythical"}`)
	resp, err := http.Post(srv.URL+"/api/catalog", "application/json", payload)
	if err != nil {
		t.Fatalf("POST catalog: %v", err)
	}
	var created domain.GameItem
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode created item: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add status = %d, want 201", resp.StatusCode)
	}
	if !created.IsCustom() {
		t.Errorf("created item id = %q, want custom prefix", created.ID)
	}

	// Removing the custom item cascades into the wishlist.
	d.Wishlist.Add(context.Background(), "Moon Fruit", "Seeds", "bg-indigo-300")
	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/catalog/"+created.ID, nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE catalog: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", resp.StatusCode)
	}
	if d.Wishlist.IsInWishlist("Moon Fruit", "Seeds") {
		t.Error("wishlist entry survived custom item removal")
	}
}

func TestCatalogDefaultItemsNotRemovable(t *testing.T) {
	srv, d := newTestServer(t)

	var defaultID string
	for _, item := range d.Catalog.AllItems() {
		if !item.IsCustom() {
			defaultID = item.ID
			break
		}
	}
	if defaultID == "" {
		t.Fatal("no default item found")
	}

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/catalog/"+defaultID, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE catalog: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want 403", resp.StatusCode)
	}
}
