package testutil

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/nhle/techtrack/internal/model"
	"github.com/nhle/techtrack/internal/storage"
	"github.com/nhle/techtrack/internal/store"
)

// Logger returns a logger that discards everything, for quiet tests.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewTestStore creates a store over a fresh in-memory binding seeded
// with the given technologies. With no seed the slot is absent and the
// store opens on the starter catalogue. It returns the binding too so
// tests can assert on the persisted form.
func NewTestStore(t *testing.T, techs ...model.Technology) (*store.Store, *storage.MemoryBinding) {
	t.Helper()

	binding := storage.NewMemoryBinding()
	if len(techs) > 0 {
		seed := struct {
			SchemaVersion int                `json:"schemaVersion"`
			Technologies  []model.Technology `json:"technologies"`
		}{SchemaVersion: 1, Technologies: techs}
		if err := binding.Write(context.Background(), store.SlotKey, seed); err != nil {
			t.Fatalf("seeding test store: %v", err)
		}
	}

	s := store.Open(binding, Logger())
	return s, binding
}
