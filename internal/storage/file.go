package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File is a KV adapter backed by a single JSON document on disk.
// Writes rewrite the whole document; only one logical writer exists per
// client session, so last-write-wins is acceptable.
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile creates a file-backed store at path, creating parent directories
func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, errors.New("storage path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &File{path: path}, nil
}

// GetItem returns the stored value or ErrNotFound
func (f *File) GetItem(key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	items, err := f.read()
	if err != nil {
		return "", err
	}
	value, ok := items[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// SetItem stores the value under key
func (f *File) SetItem(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	items, err := f.read()
	if err != nil {
		return err
	}
	items[key] = value

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode storage document: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write storage document: %w", err)
	}
	return nil
}

func (f *File) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("failed to read storage document: %w", err)
	}
	items := make(map[string]string)
	if err := json.Unmarshal(data, &items); err != nil {
		// A corrupt document is treated as empty rather than fatal
		return make(map[string]string), nil
	}
	return items, nil
}
