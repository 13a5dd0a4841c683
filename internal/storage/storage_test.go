package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/techtrack/internal/storage"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func bindings(t *testing.T) map[string]storage.Binding {
	t.Helper()

	file, err := storage.NewFileBinding(t.TempDir())
	require.NoError(t, err)

	sqlite, err := storage.NewSQLiteBinding(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	return map[string]storage.Binding{
		"file":   file,
		"sqlite": sqlite,
		"memory": storage.NewMemoryBinding(),
	}
}

func TestBinding_ReadAbsentSlot(t *testing.T) {
	for name, b := range bindings(t) {
		t.Run(name, func(t *testing.T) {
			var got payload
			found, err := b.Read(context.Background(), "missing", &got)
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestBinding_WriteThenReadRoundTrips(t *testing.T) {
	for name, b := range bindings(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			want := payload{Name: "techtrack", Count: 3}
			require.NoError(t, b.Write(ctx, "slot", want))

			var got payload
			found, err := b.Read(ctx, "slot", &got)
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, want, got)
		})
	}
}

func TestBinding_WriteReplacesPriorValue(t *testing.T) {
	for name, b := range bindings(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, b.Write(ctx, "slot", payload{Name: "old"}))
			require.NoError(t, b.Write(ctx, "slot", payload{Name: "new", Count: 1}))

			var got payload
			found, err := b.Read(ctx, "slot", &got)
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, "new", got.Name)
			assert.Equal(t, 1, got.Count)
		})
	}
}

func TestFileBinding_CorruptSlotReturnsError(t *testing.T) {
	dir := t.TempDir()
	b, err := storage.NewFileBinding(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "slot.json"), []byte("{not json"), 0o644))

	var got payload
	_, err = b.Read(context.Background(), "slot", &got)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding slot")
}

func TestFileBinding_KeyCannotEscapeDirectory(t *testing.T) {
	dir := t.TempDir()
	b, err := storage.NewFileBinding(dir)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, b.Write(ctx, "../evil/key", payload{Name: "x"}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].Name(), "..")

	var got payload
	found, err := b.Read(ctx, "../evil/key", &got)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestSQLiteBinding_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	b, err := storage.NewSQLiteBinding(path)
	require.NoError(t, err)
	require.NoError(t, b.Write(ctx, "slot", payload{Name: "kept", Count: 7}))
	require.NoError(t, b.Close())

	reopened, err := storage.NewSQLiteBinding(path)
	require.NoError(t, err)
	defer reopened.Close()

	var got payload
	found, err := reopened.Read(ctx, "slot", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, payload{Name: "kept", Count: 7}, got)
}

func TestMemoryBinding_RawExposesStoredBytes(t *testing.T) {
	b := storage.NewMemoryBinding()
	require.NoError(t, b.Write(context.Background(), "slot", payload{Name: "raw"}))

	data, ok := b.Raw("slot")
	require.True(t, ok)
	assert.JSONEq(t, `{"name":"raw","count":0}`, string(data))
}
