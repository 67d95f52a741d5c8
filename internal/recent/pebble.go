package recent

import (
	"errors"
	"fmt"
	"log"

	"github.com/cockroachdb/pebble/v2"
)

const pebbleKeyPrefix = "recent:"

// PebbleStorage persists recent lists in a PebbleDB directory.
type PebbleStorage struct {
	db *pebble.DB
}

// OpenPebble opens or creates a PebbleDB at path.
func OpenPebble(path string) (*PebbleStorage, error) {
	db, err := pebble.Open(path, &pebble.Options{
		FormatMajorVersion: pebble.FormatNewest,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open recent store at %s: %w", path, err)
	}
	log.Printf("Info: recent selections stored in PebbleDB at %s", path)
	return &PebbleStorage{db: db}, nil
}

func pebbleKey(key string) []byte {
	return []byte(pebbleKeyPrefix + key)
}

// Get returns the value under key or ErrNotFound.
func (p *PebbleStorage) Get(key string) ([]byte, error) {
	val, closer, err := p.db.Get(pebbleKey(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	// val is only valid until closer.Close.
	out := append([]byte(nil), val...)
	if err := closer.Close(); err != nil {
		return nil, err
	}
	return out, nil
}

// Set writes value under key with a synced commit.
func (p *PebbleStorage) Set(key string, value []byte) error {
	return p.db.Set(pebbleKey(key), value, pebble.Sync)
}

// Remove deletes key.
func (p *PebbleStorage) Remove(key string) error {
	return p.db.Delete(pebbleKey(key), pebble.Sync)
}

// Close closes the underlying database.
func (p *PebbleStorage) Close() error {
	return p.db.Close()
}
