// Package recent tracks the most recently selected candidate ids per namespace.
//
// Store never reports storage failures to its callers: reads degrade to an
// empty list and writes are dropped. Failures are logged and, when a hook is
// installed, reported through it.
package recent

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
)

// DefaultCapacity is the number of ids kept when no capacity is configured.
const DefaultCapacity = 5

// FailureHook observes swallowed storage failures. op is "get", "set" or "remove".
type FailureHook func(namespace, op string, err error)

// Store is a capped, most-recent-first list of ids under one namespace key.
type Store struct {
	storage   Storage
	namespace string
	capacity  int
	onFailure FailureHook

	// mu serializes read-modify-write cycles within this process only.
	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithCapacity sets the maximum number of ids kept. Values below 1 are ignored.
func WithCapacity(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// WithFailureHook installs a hook called for every swallowed storage error.
func WithFailureHook(hook FailureHook) Option {
	return func(s *Store) {
		s.onFailure = hook
	}
}

// NewStore creates a Store for namespace. A nil storage behaves as unavailable.
func NewStore(storage Storage, namespace string, opts ...Option) *Store {
	if storage == nil {
		storage = UnavailableStorage{}
	}
	s := &Store{
		storage:   storage,
		namespace: namespace,
		capacity:  DefaultCapacity,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Namespace returns the storage key of this store.
func (s *Store) Namespace() string { return s.namespace }

// Capacity returns the maximum number of ids kept.
func (s *Store) Capacity() int { return s.capacity }

// GetRecent returns the stored ids, most recent first. Missing, unreadable or
// malformed values yield an empty list.
func (s *Store) GetRecent() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// AddRecent moves id to the front of the list, dropping the oldest entries
// beyond capacity. Empty ids are ignored.
func (s *Store) AddRecent(id string) {
	if id == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.load()
	next := make([]string, 0, s.capacity)
	next = append(next, id)
	for _, existing := range current {
		if len(next) == s.capacity {
			break
		}
		if existing != id {
			next = append(next, existing)
		}
	}

	data, err := json.Marshal(next)
	if err != nil {
		s.fail("set", err)
		return
	}
	if err := s.storage.Set(s.namespace, data); err != nil {
		s.fail("set", err)
	}
}

// ClearRecent deletes the stored list.
func (s *Store) ClearRecent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.storage.Remove(s.namespace); err != nil {
		s.fail("remove", err)
	}
}

func (s *Store) load() []string {
	data, err := s.storage.Get(s.namespace)
	if errors.Is(err, ErrNotFound) {
		return []string{}
	}
	if err != nil {
		s.fail("get", err)
		return []string{}
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		s.fail("get", err)
		return []string{}
	}
	if ids == nil {
		return []string{}
	}
	if len(ids) > s.capacity {
		ids = ids[:s.capacity]
	}
	return ids
}

func (s *Store) fail(op string, err error) {
	log.Printf("Warning: recent selections %s for %q failed: %v", op, s.namespace, err)
	if s.onFailure != nil {
		s.onFailure(s.namespace, op, err)
	}
}
