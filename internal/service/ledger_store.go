package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dafibh/gofinance/gofinance-backend/internal/domain"
)

// LedgerStore reads and writes the whole transaction collection stored under
// a single key.
type LedgerStore struct {
	blobs domain.BlobStore
	key   string
}

// NewLedgerStore creates a LedgerStore over blobs. An empty key selects
// domain.DefaultLedgerKey.
func NewLedgerStore(blobs domain.BlobStore, key string) *LedgerStore {
	if key == "" {
		key = domain.DefaultLedgerKey
	}
	return &LedgerStore{
		blobs: blobs,
		key:   key,
	}
}

// Key returns the namespace key the collection lives under
func (s *LedgerStore) Key() string {
	return s.key
}

// Read returns the stored entries in insertion order. An absent key is an
// empty collection.
func (s *LedgerStore) Read(ctx context.Context) ([]json.RawMessage, error) {
	data, err := s.blobs.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return []json.RawMessage{}, nil
		}
		return nil, &domain.StorageError{Op: "read", Key: s.key, Err: err}
	}

	if len(data) == 0 {
		return []json.RawMessage{}, nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, &domain.StorageError{
			Op:  "read",
			Key: s.key,
			Err: fmt.Errorf("%w: %v", domain.ErrCorruptLedger, err),
		}
	}
	// A stored JSON null decodes to a nil slice
	if entries == nil {
		entries = []json.RawMessage{}
	}
	return entries, nil
}

// Write replaces the stored collection with entries.
func (s *LedgerStore) Write(ctx context.Context, entries []json.RawMessage) error {
	if entries == nil {
		entries = []json.RawMessage{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return &domain.StorageError{Op: "write", Key: s.key, Err: fmt.Errorf("encode ledger: %w", err)}
	}
	if err := s.blobs.Put(ctx, s.key, data); err != nil {
		return &domain.StorageError{Op: "write", Key: s.key, Err: err}
	}
	return nil
}
