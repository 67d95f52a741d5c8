// Package catalog manages named candidate collections and persists them under
// a data directory, one sub-directory per collection.
package catalog

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gcbaptista/go-suggest/config"
	"github.com/gcbaptista/go-suggest/internal/errors"
	"github.com/gcbaptista/go-suggest/internal/match"
	"github.com/gcbaptista/go-suggest/internal/metrics"
	"github.com/gcbaptista/go-suggest/internal/persistence"
	"github.com/gcbaptista/go-suggest/internal/recent"
	"github.com/gcbaptista/go-suggest/model"
	"github.com/gcbaptista/go-suggest/services"
)

const (
	dataDirPerm    = 0755
	settingsFile   = "settings.gob"
	candidatesFile = "candidates.gob"

	// DefaultNamespace is used by Suggest when a query names no recent namespace.
	DefaultNamespace = "default"
)

// Catalog holds every collection in memory and mirrors changes to disk.
// It implements services.CollectionManager and services.RecentStores.
type Catalog struct {
	mu          sync.RWMutex
	collections map[string]*Collection
	dataDir     string

	recentStorage  recent.Storage
	recentCapacity int
	marker         match.Marker
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithRecentStorage sets the storage backing recent selections.
func WithRecentStorage(storage recent.Storage) Option {
	return func(c *Catalog) { c.recentStorage = storage }
}

// WithRecentCapacity sets the capacity for namespaces outside any collection.
func WithRecentCapacity(n int) Option {
	return func(c *Catalog) {
		if n > 0 {
			c.recentCapacity = n
		}
	}
}

// WithMarker sets the highlight markup used in results.
func WithMarker(m match.Marker) Option {
	return func(c *Catalog) { c.marker = m }
}

// New creates a Catalog over dataDir and loads the collections found there.
func New(dataDir string, opts ...Option) *Catalog {
	c := &Catalog{
		collections:    make(map[string]*Collection),
		dataDir:        dataDir,
		recentStorage:  recent.NewMemoryStorage(),
		recentCapacity: recent.DefaultCapacity,
		marker:         match.DefaultMarker,
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
		log.Printf("Warning: Could not create data directory %s: %v. Collections will not be persisted.", dataDir, err)
	}
	c.loadFromDisk()
	metrics.SetCollections(len(c.collections))
	return c
}

func (c *Catalog) loadFromDisk() {
	items, err := os.ReadDir(c.dataDir)
	if err != nil {
		log.Printf("Warning: Failed to read data directory %s: %v. No collections loaded.", c.dataDir, err)
		return
	}

	for _, item := range items {
		if !item.IsDir() || strings.HasPrefix(item.Name(), ".") {
			continue
		}
		name := item.Name()
		dir := filepath.Join(c.dataDir, name)

		var settings config.CollectionSettings
		if err := persistence.LoadGob(filepath.Join(dir, settingsFile), &settings); err != nil {
			if err != os.ErrNotExist {
				log.Printf("Warning: Failed to load settings for collection %s: %v. Skipping.", name, err)
			}
			continue
		}
		if settings.Name != name {
			log.Printf("Warning: Collection name in settings ('%s') does not match directory name ('%s'). Skipping.", settings.Name, name)
			continue
		}
		settings.ApplyDefaults()

		var candidates []model.Candidate
		if err := persistence.LoadGob(filepath.Join(dir, candidatesFile), &candidates); err != nil {
			if err == os.ErrNotExist {
				log.Printf("Info: No candidates file for collection %s. Starting empty.", name)
			} else {
				log.Printf("Warning: Failed to load candidates for collection %s: %v. Starting empty.", name, err)
			}
			candidates = nil
		}

		col := newCollection(c, settings)
		col.setCandidates(candidates)
		c.collections[name] = col
		metrics.SetCandidates(name, len(candidates))
		log.Printf("Info: Loaded collection %s with %d candidates", name, len(candidates))
	}
}

func validateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return errors.NewValidationError("name", "collection name cannot be empty")
	case name != strings.TrimSpace(name):
		return errors.NewValidationError("name", "collection name cannot start or end with whitespace")
	case name == "." || name == ".." || strings.HasPrefix(name, "."):
		return errors.NewValidationError("name", "collection name cannot start with '.'")
	case strings.ContainsAny(name, `/\:`):
		return errors.NewValidationError("name", "collection name cannot contain '/', '\\' or ':'")
	}
	return nil
}

func validateSettings(settings config.CollectionSettings) error {
	if err := validateName(settings.Name); err != nil {
		return err
	}
	if conflicts := settings.ValidateFieldNames(); len(conflicts) > 0 {
		return errors.NewValidationError("settings", strings.Join(conflicts, "; "))
	}
	return nil
}

// CreateCollection registers a new, empty collection and persists its settings.
func (c *Catalog) CreateCollection(settings config.CollectionSettings) error {
	settings.ApplyDefaults()
	if err := validateSettings(settings); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.collections[settings.Name]; exists {
		return errors.NewCollectionAlreadyExistsError(settings.Name)
	}

	col := newCollection(c, settings)
	if err := c.persistSettings(settings); err != nil {
		return fmt.Errorf("failed to persist new collection '%s': %w", settings.Name, err)
	}
	if err := col.persistCandidates(); err != nil {
		return fmt.Errorf("failed to persist new collection '%s': %w", settings.Name, err)
	}

	c.collections[settings.Name] = col
	metrics.SetCollections(len(c.collections))
	metrics.SetCandidates(settings.Name, 0)
	log.Printf("Info: Collection '%s' created", settings.Name)
	return nil
}

// GetCollection returns the named collection.
func (c *Catalog) GetCollection(name string) (services.CollectionAccessor, error) {
	col, err := c.collection(name)
	if err != nil {
		return nil, err
	}
	return col, nil
}

// Collection returns the concrete collection, for callers inside the module.
func (c *Catalog) Collection(name string) (*Collection, error) {
	return c.collection(name)
}

func (c *Catalog) collection(name string) (*Collection, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	col, exists := c.collections[name]
	if !exists {
		return nil, errors.NewCollectionNotFoundError(name)
	}
	return col, nil
}

// GetCollectionSettings returns a copy of the named collection's settings.
func (c *Catalog) GetCollectionSettings(name string) (config.CollectionSettings, error) {
	col, err := c.collection(name)
	if err != nil {
		return config.CollectionSettings{}, err
	}
	return col.Settings(), nil
}

// UpdateCollectionSettings replaces the settings of an existing collection.
// The name cannot change here; use RenameCollection.
func (c *Catalog) UpdateCollectionSettings(name string, settings config.CollectionSettings) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	col, exists := c.collections[name]
	if !exists {
		return errors.NewCollectionNotFoundError(name)
	}
	if settings.Name != "" && settings.Name != name {
		return errors.NewValidationError("name", fmt.Sprintf("cannot change collection name from '%s' to '%s' during settings update", name, settings.Name))
	}
	settings.Name = name
	settings.ApplyDefaults()
	if err := validateSettings(settings); err != nil {
		return err
	}

	if err := c.persistSettings(settings); err != nil {
		return fmt.Errorf("failed to save updated settings for collection '%s': %w", name, err)
	}
	col.setSettings(settings)
	log.Printf("Info: Settings for collection '%s' updated", name)
	return nil
}

// RenameCollection moves a collection and its data directory to newName.
func (c *Catalog) RenameCollection(oldName, newName string) error {
	if oldName == newName {
		return errors.NewSameNameError(oldName)
	}
	if err := validateName(newName); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	col, exists := c.collections[oldName]
	if !exists {
		return errors.NewCollectionNotFoundError(oldName)
	}
	if _, exists := c.collections[newName]; exists {
		return errors.NewCollectionAlreadyExistsError(newName)
	}

	settings := col.Settings()
	settings.Name = newName
	if err := c.persistSettings(settings); err != nil {
		return fmt.Errorf("failed to persist renamed collection: %w", err)
	}
	col.setSettings(settings)
	if err := col.persistCandidates(); err != nil {
		return fmt.Errorf("failed to persist renamed collection: %w", err)
	}

	c.collections[newName] = col
	delete(c.collections, oldName)

	oldDir := filepath.Join(c.dataDir, oldName)
	if err := os.RemoveAll(oldDir); err != nil {
		log.Printf("Warning: Failed to remove old collection directory %s: %v", oldDir, err)
	}
	metrics.DeleteCandidates(oldName)
	metrics.SetCandidates(newName, len(col.Candidates()))

	log.Printf("Info: Collection renamed from '%s' to '%s'", oldName, newName)
	return nil
}

// DeleteCollection removes a collection from memory and disk.
func (c *Catalog) DeleteCollection(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.collections[name]; !exists {
		return errors.NewCollectionNotFoundError(name)
	}
	delete(c.collections, name)

	dir := filepath.Join(c.dataDir, name)
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove collection directory %s: %w", dir, err)
	}
	metrics.SetCollections(len(c.collections))
	metrics.DeleteCandidates(name)
	log.Printf("Info: Collection '%s' deleted", name)
	return nil
}

// ListCollections returns the collection names in sorted order.
func (c *Catalog) ListCollections() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.collections))
	for name := range c.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Recent returns the recent-selections store for a namespace key.
func (c *Catalog) Recent(namespace string) services.RecentStore {
	return c.recentStore(namespace, c.recentCapacity)
}

func (c *Catalog) recentStore(namespace string, capacity int) *recent.Store {
	return recent.NewStore(c.recentStorage, namespace,
		recent.WithCapacity(capacity),
		recent.WithFailureHook(func(_, op string, _ error) { metrics.IncRecentFailure(op) }),
	)
}

// RecentNamespace is the store key of a namespace inside a collection.
func RecentNamespace(collection, namespace string) string {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return collection + ":" + namespace
}

func (c *Catalog) collectionDir(name string) string {
	return filepath.Join(c.dataDir, name)
}

func (c *Catalog) persistSettings(settings config.CollectionSettings) error {
	path := filepath.Join(c.collectionDir(settings.Name), settingsFile)
	if err := persistence.SaveGob(path, settings); err != nil {
		return fmt.Errorf("failed to save settings for collection %s: %w", settings.Name, err)
	}
	return nil
}
