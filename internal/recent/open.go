package recent

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Backend names accepted by Open.
const (
	BackendMemory   = "memory"
	BackendPebble   = "pebble"
	BackendSQLite   = "sqlite"
	BackendDisabled = "disabled"
)

// Backend is a Storage that owns resources.
type Backend interface {
	Storage
	Close() error
}

// Open creates the named storage backend. Pebble uses path as a directory and
// SQLite as a database file; both create missing parent directories.
func Open(backend, path string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendMemory:
		return NewMemoryStorage(), nil
	case BackendDisabled:
		return UnavailableStorage{}, nil
	case BackendPebble:
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create recent store directory: %w", err)
		}
		store, err := OpenPebble(path)
		if err != nil {
			return nil, err
		}
		return store, nil
	case BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create recent store directory: %w", err)
		}
		store, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown recent store backend %q", backend)
	}
}
