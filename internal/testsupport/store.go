package testsupport

import (
	"context"
	"testing"

	"crossfade/internal/config"
	"crossfade/internal/pairstore"
)

// MustOpenStore opens a pairstore.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *pairstore.Store {
	t.Helper()

	store, err := pairstore.Open(cfg.PairStore.Path)
	if err != nil {
		t.Fatalf("pairstore.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SavePairing persists a pairing for tests using the provided store.
func SavePairing(t testing.TB, store *pairstore.Store, trackID, videoID int64, title, artist string) {
	t.Helper()

	if err := store.Save(context.Background(), trackID, videoID, title, artist); err != nil {
		t.Fatalf("store.Save: %v", err)
	}
}
