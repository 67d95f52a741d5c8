package recent

import (
	"errors"
	"sync"
)

var (
	// ErrNotFound is returned by Storage.Get when the key holds no value.
	ErrNotFound = errors.New("recent: key not found")
	// ErrUnavailable is returned by storages that cannot serve requests.
	ErrUnavailable = errors.New("recent: storage unavailable")
)

// Storage is the key-value port the recent-selections store persists through.
type Storage interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Remove(key string) error
}

// MemoryStorage keeps values in process memory.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string][]byte)}
}

// Get returns a copy of the value stored under key.
func (m *MemoryStorage) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set stores a copy of value under key.
func (m *MemoryStorage) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	return nil
}

// Remove deletes key. Removing a missing key is not an error.
func (m *MemoryStorage) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Close implements Backend.
func (m *MemoryStorage) Close() error { return nil }

// UnavailableStorage fails every operation with ErrUnavailable.
type UnavailableStorage struct{}

func (UnavailableStorage) Get(string) ([]byte, error) { return nil, ErrUnavailable }
func (UnavailableStorage) Set(string, []byte) error   { return ErrUnavailable }
func (UnavailableStorage) Remove(string) error        { return ErrUnavailable }
func (UnavailableStorage) Close() error               { return nil }
