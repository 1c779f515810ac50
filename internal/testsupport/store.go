package testsupport

import (
	"context"
	"testing"

	"wordrank/internal/archive"
	"wordrank/internal/config"
)

// MustOpenArchive opens an archive.Store for tests and registers cleanup.
func MustOpenArchive(t testing.TB, cfg *config.Config) *archive.Store {
	t.Helper()

	store, err := archive.OpenFromConfig(context.Background(), cfg)
	if err != nil {
		t.Fatalf("archive.OpenFromConfig: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
