package photostore

import (
	"context"
	"sync"

	"penduduk_backend/internal/feature/residents/usecase"
)

// MemoryStore keeps photos in a map. It backs tests and local experiments.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

var _ usecase.PhotoStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory photo store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: map[string][]byte{}}
}

// Save stores the content under key.
func (s *MemoryStore) Save(ctx context.Context, key string, content []byte, contentType string) error {
	k, err := sanitizeKey(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[k] = append([]byte(nil), content...)
	return nil
}

// Delete removes the content stored under key.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	k, err := sanitizeKey(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blobs[k]; !ok {
		return ErrPhotoNotFound
	}
	delete(s.blobs, k)
	return nil
}

// URL returns a synthetic URL for a stored key.
func (s *MemoryStore) URL(key string) string {
	return "memory://" + key
}

// Has reports whether a photo is stored under key.
func (s *MemoryStore) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.blobs[key]
	return ok
}

// Len returns the number of stored photos.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}
