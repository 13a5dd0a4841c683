package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryBinding keeps slots in process memory. It is the fallback
// medium when persistent storage cannot be opened, and the storage
// double used in tests. Values still round-trip through JSON so the
// serializability contract is exercised.
type MemoryBinding struct {
	mu    sync.Mutex
	slots map[string][]byte
}

// NewMemoryBinding creates an empty in-memory binding.
func NewMemoryBinding() *MemoryBinding {
	return &MemoryBinding{slots: make(map[string][]byte)}
}

// Read decodes the stored value for key into into.
func (b *MemoryBinding) Read(_ context.Context, key string, into any) (bool, error) {
	b.mu.Lock()
	data, ok := b.slots[key]
	b.mu.Unlock()

	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, into); err != nil {
		return false, fmt.Errorf("decoding slot %q: %w", key, err)
	}
	return true, nil
}

// Write encodes value and replaces the slot for key.
func (b *MemoryBinding) Write(_ context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding slot %q: %w", key, err)
	}

	b.mu.Lock()
	b.slots[key] = data
	b.mu.Unlock()
	return nil
}

// Close is a no-op for in-memory storage.
func (b *MemoryBinding) Close() error { return nil }

// Raw returns the stored bytes for key, for tests that assert on the
// persisted form.
func (b *MemoryBinding) Raw(key string) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.slots[key]
	return data, ok
}
