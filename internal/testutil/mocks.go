package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/dafibh/gofinance/gofinance-backend/internal/domain"
	"github.com/dafibh/gofinance/gofinance-backend/internal/repository/memory"
	"github.com/dafibh/gofinance/gofinance-backend/internal/websocket"
)

// MockBlobStore is an in-memory domain.BlobStore whose calls can be made to fail
type MockBlobStore struct {
	*memory.BlobStore

	mu       sync.Mutex
	GetErr   error
	PutErr   error
	GetCalls int
	PutCalls int
}

// NewMockBlobStore creates an empty MockBlobStore
func NewMockBlobStore() *MockBlobStore {
	return &MockBlobStore{BlobStore: memory.NewBlobStore()}
}

// Get returns GetErr when set, otherwise the stored value
func (m *MockBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	m.GetCalls++
	err := m.GetErr
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return m.BlobStore.Get(ctx, key)
}

// Put returns PutErr when set, otherwise stores value
func (m *MockBlobStore) Put(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	m.PutCalls++
	err := m.PutErr
	m.mu.Unlock()
	if err != nil {
		return err
	}
	return m.BlobStore.Put(ctx, key, value)
}

// Seed stores raw JSON under key, bypassing any configured failure
func (m *MockBlobStore) Seed(key, raw string) {
	_ = m.BlobStore.Put(context.Background(), key, []byte(raw))
}

// Raw returns the stored bytes under key, or nil when absent
func (m *MockBlobStore) Raw(key string) []byte {
	data, err := m.BlobStore.Get(context.Background(), key)
	if err != nil {
		return nil
	}
	return data
}

// FixedClock returns a clock that always reports t
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// MockCategoryRegistry is a domain.CategoryRegistry over a fixed list
type MockCategoryRegistry struct {
	Categories []domain.Category
}

// Lookup finds a category by key
func (m *MockCategoryRegistry) Lookup(key domain.CategoryKey) (domain.Category, bool) {
	for _, c := range m.Categories {
		if c.Key == key {
			return c, true
		}
	}
	return domain.Category{}, false
}

// All returns the categories in order
func (m *MockCategoryRegistry) All() []domain.Category {
	out := make([]domain.Category, len(m.Categories))
	copy(out, m.Categories)
	return out
}

// PublishedEvent is one call captured by MockEventPublisher
type PublishedEvent struct {
	LedgerKey string
	Event     websocket.Event
}

// MockEventPublisher records every published event
type MockEventPublisher struct {
	mu     sync.Mutex
	Events []PublishedEvent
}

// Publish records the event
func (m *MockEventPublisher) Publish(ledgerKey string, event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, PublishedEvent{LedgerKey: ledgerKey, Event: event})
}

// Published returns a copy of the recorded events
func (m *MockEventPublisher) Published() []PublishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]PublishedEvent, len(m.Events))
	copy(out, m.Events)
	return out
}
