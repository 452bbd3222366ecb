package storage

import (
	"context"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	ctx := context.Background()

	// Missing key reads as absent, not as an error
	_, ok, err := store.Get(ctx, KeyWishlist)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("Get() reported a value for a key that was never written")
	}

	payload := []byte(`[{"id":"Seeds-Carrot-1"}]`)
	if err := store.Set(ctx, KeyWishlist, payload); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok, err := store.Get(ctx, KeyWishlist)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok {
		t.Fatal("Get() did not find the written value")
	}
	if string(got) != string(payload) {
		t.Errorf("Get() = %s, want %s", got, payload)
	}
}

func TestFileStoreOverwrite(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	ctx := context.Background()

	if err := store.Set(ctx, KeyNotificationSettings, []byte(`{"enabled":false}`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Set(ctx, KeyNotificationSettings, []byte(`{"enabled":true}`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, _, err := store.Get(ctx, KeyNotificationSettings)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != `{"enabled":true}` {
		t.Errorf("Get() after overwrite = %s", got)
	}
}

func TestFileStoreDeleteAbsentKey(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	if err := store.Delete(context.Background(), "never-written"); err != nil {
		t.Errorf("Delete() on absent key error = %v", err)
	}
}
