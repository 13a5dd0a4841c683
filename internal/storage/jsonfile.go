package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileBinding stores each slot as one JSON document in a directory,
// named <key>.json. Writes go through a temp file and rename so an
// interrupted write never corrupts the previous value.
type FileBinding struct {
	dir string
}

// NewFileBinding creates a FileBinding rooted at dir, creating the
// directory if needed.
func NewFileBinding(dir string) (*FileBinding, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage directory %s: %w", dir, err)
	}
	return &FileBinding{dir: dir}, nil
}

// Read decodes the slot file for key into into. A missing file means
// the slot is absent.
func (b *FileBinding) Read(_ context.Context, key string, into any) (bool, error) {
	data, err := os.ReadFile(b.slotPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading slot %q: %w", key, err)
	}

	if err := json.Unmarshal(data, into); err != nil {
		return false, fmt.Errorf("decoding slot %q: %w", key, err)
	}
	return true, nil
}

// Write encodes value and atomically replaces the slot file for key.
func (b *FileBinding) Write(_ context.Context, key string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding slot %q: %w", key, err)
	}

	path := b.slotPath(key)
	tmp, err := os.CreateTemp(b.dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file for slot %q: %w", key, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing slot %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp file for slot %q: %w", key, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing slot %q: %w", key, err)
	}
	return nil
}

// Close is a no-op for file-backed storage.
func (b *FileBinding) Close() error { return nil }

// slotPath maps a key to its file path, flattening path separators so
// a key can never escape the storage directory.
func (b *FileBinding) slotPath(key string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(b.dir, safe+".json")
}
