package iconforge

import (
	"fmt"
	"sync"
)

// ContentStore is the narrow capability through which user-supplied vector
// or bitmap content reaches the engine. Implementations own persistence;
// the engine only reads and writes opaque byte blobs.
type ContentStore interface {
	Put(key string, data []byte) error
	Get(key string) ([]byte, error)
	Delete(key string) error
}

// MemoryStore is an in-memory ContentStore.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore creates an empty in-memory content store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

// Put implements ContentStore. The stored blob is a private copy.
func (s *MemoryStore) Put(key string, data []byte) error {
	cp := make([]byte, len(data))
	copy(cp, data)
	s.mu.Lock()
	s.blobs[key] = cp
	s.mu.Unlock()
	return nil
}

// Get implements ContentStore.
func (s *MemoryStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.blobs[key]
	if !ok {
		return nil, fmt.Errorf("content %q: %w", key, ErrNotFound)
	}
	return data, nil
}

// Delete implements ContentStore.
func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	delete(s.blobs, key)
	s.mu.Unlock()
	return nil
}
