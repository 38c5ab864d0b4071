package memory

import (
	"context"
	"sync"

	"github.com/dafibh/gofinance/gofinance-backend/internal/domain"
)

// BlobStore implements domain.BlobStore in process memory
type BlobStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewBlobStore creates an empty BlobStore
func NewBlobStore() *BlobStore {
	return &BlobStore{values: make(map[string][]byte)}
}

// Get returns a copy of the value stored under key
func (s *BlobStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Put replaces the value stored under key
func (s *BlobStore) Put(_ context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	s.mu.Lock()
	s.values[key] = stored
	s.mu.Unlock()
	return nil
}
