package service

import (
	"context"

	"github.com/dafibh/gofinance/gofinance-backend/internal/domain"
	"github.com/rs/zerolog"
)

// LedgerService is the entry point the transports use: it loads the
// aggregated ledger and appends new transactions.
type LedgerService struct {
	store      *LedgerStore
	aggregator *Aggregator
	writer     *LedgerWriter
	categories domain.CategoryRegistry
	logger     zerolog.Logger
}

// NewLedgerService wires a store, aggregator and writer over the same key
func NewLedgerService(blobs domain.BlobStore, key string, registry domain.CategoryRegistry, logger zerolog.Logger) *LedgerService {
	store := NewLedgerStore(blobs, key)
	return &LedgerService{
		store:      store,
		aggregator: NewAggregator(registry),
		writer:     NewLedgerWriter(store, registry, logger),
		categories: registry,
		logger:     logger.With().Str("component", "ledger_service").Logger(),
	}
}

// Writer exposes the underlying writer for clock and publisher wiring
func (s *LedgerService) Writer() *LedgerWriter {
	return s.writer
}

// Key returns the ledger namespace key
func (s *LedgerService) Key() string {
	return s.store.Key()
}

// Load reads the stored collection and aggregates it. Malformed entries are
// logged and reported in the result.
func (s *LedgerService) Load(ctx context.Context) (*domain.Ledger, error) {
	raw, err := s.store.Read(ctx)
	if err != nil {
		s.logger.Error().Err(err).Str("ledger_key", s.store.Key()).Msg("Failed to load ledger")
		return nil, err
	}

	ledger := s.aggregator.Aggregate(raw)
	for _, issue := range ledger.Issues {
		s.logger.Warn().
			Str("ledger_key", s.store.Key()).
			Int("index", issue.Index).
			Str("id", issue.ID).
			Str("reason", issue.Reason).
			Msg("Malformed ledger record")
	}
	return ledger, nil
}

// Append validates and stores a new transaction
func (s *LedgerService) Append(ctx context.Context, candidate domain.Candidate) (*domain.TransactionRecord, error) {
	record, err := s.writer.Append(ctx, candidate)
	if err != nil && domain.IsValidationError(err) {
		s.logger.Debug().Err(err).Str("ledger_key", s.store.Key()).Msg("Transaction rejected")
	}
	return record, err
}

// Categories returns the registry in declared order
func (s *LedgerService) Categories() []domain.Category {
	return s.categories.All()
}
