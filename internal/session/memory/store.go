// Package memory provides an in-process session store, used when no Redis
// is configured and throughout the test suite.
package memory

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     string
	expiresAt time.Time // zero = no expiry
}

// Store implements session.Store with a mutex-guarded map.
type Store struct {
	mu     sync.RWMutex
	values map[string]entry
	now    func() time.Time
}

// NewStore creates an in-memory session store.
func NewStore() *Store {
	return NewStoreWithClock(time.Now)
}

// NewStoreWithClock creates a store with an injected clock so tests can
// control TTL expiry deterministically.
func NewStoreWithClock(now func() time.Time) *Store {
	return &Store{
		values: make(map[string]entry),
		now:    now,
	}
}

// Get returns the value for key, or "" when absent or expired.
func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	e, ok := s.values[key]
	s.mu.RUnlock()

	if !ok {
		return "", nil
	}
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		s.mu.Lock()
		delete(s.values, key)
		s.mu.Unlock()
		return "", nil
	}
	return e.value, nil
}

// Set writes key with an optional TTL.
func (s *Store) Set(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := entry{value: value}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	s.values[key] = e
	return nil
}

// Delete removes key.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Len returns the number of live entries (diagnostics only).
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
