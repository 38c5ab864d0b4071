package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dafibh/gofinance/gofinance-backend/internal/domain"
	"github.com/dafibh/gofinance/gofinance-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Clock returns the current time. Tests replace it with a fixed instant.
type Clock func() time.Time

// SystemClock is the wall clock in UTC
func SystemClock() time.Time {
	return time.Now().UTC()
}

// LedgerWriter validates candidates and appends them to the stored collection
type LedgerWriter struct {
	store          *LedgerStore
	categories     domain.CategoryRegistry
	clock          Clock
	newID          func() string
	logger         zerolog.Logger
	eventPublisher websocket.EventPublisher

	// mu is held across read-modify-write so concurrent appends never drop a record
	mu sync.Mutex
}

// NewLedgerWriter creates a new LedgerWriter
func NewLedgerWriter(store *LedgerStore, registry domain.CategoryRegistry, logger zerolog.Logger) *LedgerWriter {
	return &LedgerWriter{
		store:      store,
		categories: registry,
		clock:      SystemClock,
		newID:      uuid.NewString,
		logger:     logger.With().Str("component", "ledger_writer").Logger(),
	}
}

// SetClock replaces the clock used to date new records
func (w *LedgerWriter) SetClock(clock Clock) {
	if clock == nil {
		clock = SystemClock
	}
	w.clock = clock
}

// SetEventPublisher sets the event publisher notified after each append
func (w *LedgerWriter) SetEventPublisher(publisher websocket.EventPublisher) {
	w.eventPublisher = publisher
}

func (w *LedgerWriter) publishEvent(event websocket.Event) {
	if w.eventPublisher != nil {
		w.eventPublisher.Publish(w.store.Key(), event)
	}
}

// Validate checks a candidate in submission order and returns the first
// problem as a *domain.ValidationError.
func (w *LedgerWriter) Validate(candidate domain.Candidate) error {
	if strings.TrimSpace(candidate.Name) == "" {
		return &domain.ValidationError{Field: "name", Err: domain.ErrNameRequired}
	}

	amount, err := domain.ParseAmount(candidate.Amount)
	if err != nil {
		return &domain.ValidationError{Field: "amount", Err: domain.ErrAmountNotNumeric}
	}
	if !amount.IsPositive() {
		return &domain.ValidationError{Field: "amount", Err: domain.ErrAmountNotPositive}
	}

	if !candidate.Type.Valid() {
		return &domain.ValidationError{Field: "type", Err: domain.ErrTransactionTypeRequired}
	}

	key, chosen := candidate.Category.Key()
	if !chosen {
		return &domain.ValidationError{Field: "category", Err: domain.ErrCategoryRequired}
	}
	if _, ok := w.categories.Lookup(key); !ok {
		return &domain.ValidationError{Field: "category", Err: domain.ErrUnknownCategory}
	}

	return nil
}

// Append validates candidate and adds it to the end of the collection.
// Nothing is written when validation or storage fails.
func (w *LedgerWriter) Append(ctx context.Context, candidate domain.Candidate) (*domain.TransactionRecord, error) {
	if err := w.Validate(candidate); err != nil {
		return nil, err
	}

	key, _ := candidate.Category.Key()
	record := &domain.TransactionRecord{
		ID:       w.newID(),
		Name:     strings.TrimSpace(candidate.Name),
		Amount:   strings.TrimSpace(candidate.Amount),
		Type:     candidate.Type,
		Category: key,
		Date:     w.clock().UTC(),
	}

	encoded, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}

	w.mu.Lock()
	entries, err := w.store.Read(ctx)
	if err != nil {
		w.mu.Unlock()
		w.logger.Error().Err(err).Str("ledger_key", w.store.Key()).Msg("Failed to read ledger before append")
		return nil, err
	}

	entries = append(entries, encoded)
	if err := w.store.Write(ctx, entries); err != nil {
		w.mu.Unlock()
		w.logger.Error().Err(err).Str("ledger_key", w.store.Key()).Msg("Failed to write ledger")
		return nil, err
	}
	w.mu.Unlock()

	w.logger.Info().
		Str("ledger_key", w.store.Key()).
		Str("id", record.ID).
		Str("type", string(record.Type)).
		Int("count", len(entries)).
		Msg("Transaction appended")

	w.publishEvent(websocket.LedgerAppended(record))

	return record, nil
}
