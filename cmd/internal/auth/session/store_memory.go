package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process Store used when no Redis address is
// configured (dev mode) and by unit tests. Expiry is checked lazily on
// read against an injectable clock.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry

	// now is overridable in tests.
	now func() time.Time
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, realm Realm, principalID, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[realm.SessionKey(principalID)] = memoryEntry{
		value:     value,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, realm Realm, principalID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.live(realm.SessionKey(principalID))
	if !ok {
		return "", ErrNoSession
	}
	return e.value, nil
}

func (s *MemoryStore) Exists(_ context.Context, realm Realm, principalID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.live(realm.SessionKey(principalID))
	return ok, nil
}

func (s *MemoryStore) Delete(_ context.Context, realm Realm, principalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, realm.SessionKey(principalID))
	return nil
}

// Close is a no-op; MemoryStore holds no external resources.
func (s *MemoryStore) Close() error { return nil }

// live returns the entry for key, evicting it first if expired.
// Callers must hold s.mu.
func (s *MemoryStore) live(key string) (memoryEntry, bool) {
	e, ok := s.entries[key]
	if !ok {
		return memoryEntry{}, false
	}
	if !e.expiresAt.After(s.now()) {
		delete(s.entries, key)
		return memoryEntry{}, false
	}
	return e, true
}
