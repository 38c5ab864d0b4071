// Package bootstrap builds the ledger core from configuration. Both the API
// server and the ledgerctl CLI start from here.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dafibh/gofinance/gofinance-backend/internal/category"
	"github.com/dafibh/gofinance/gofinance-backend/internal/config"
	"github.com/dafibh/gofinance/gofinance-backend/internal/domain"
	"github.com/dafibh/gofinance/gofinance-backend/internal/repository/memory"
	"github.com/dafibh/gofinance/gofinance-backend/internal/repository/postgres"
	"github.com/dafibh/gofinance/gofinance-backend/internal/repository/sqlite"
	"github.com/dafibh/gofinance/gofinance-backend/internal/repository/storage"
	"github.com/dafibh/gofinance/gofinance-backend/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Ledger bundles the wired core and the cleanup its backend needs
type Ledger struct {
	Service    *service.LedgerService
	Categories *category.Registry
	closers    []func()
}

// Close releases backend resources in reverse order
func (l *Ledger) Close() {
	for i := len(l.closers) - 1; i >= 0; i-- {
		l.closers[i]()
	}
}

// NewLedger opens the configured backend and wires the ledger service over it
func NewLedger(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Ledger, error) {
	registry, err := category.LoadFile(cfg.CategoriesFile)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}

	blobs, closer, err := OpenBlobStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	l := &Ledger{
		Service:    service.NewLedgerService(blobs, cfg.LedgerKey, registry, logger),
		Categories: registry,
	}
	if closer != nil {
		l.closers = append(l.closers, closer)
	}
	return l, nil
}

// OpenBlobStore connects the backend named by cfg.LedgerBackend
func OpenBlobStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (domain.BlobStore, func(), error) {
	log := logger.With().Str("backend", cfg.LedgerBackend).Logger()

	switch cfg.LedgerBackend {
	case config.BackendMemory:
		log.Warn().Msg("Using in-memory ledger storage; data is lost on exit")
		return memory.NewBlobStore(), nil, nil

	case config.BackendFile:
		store, err := storage.NewFileBlobStore(cfg.LedgerDataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("open file storage: %w", err)
		}
		log.Info().Str("dir", cfg.LedgerDataDir).Msg("Using file ledger storage")
		return store, nil, nil

	case config.BackendSQLite:
		store, err := sqlite.NewBlobStore(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite storage: %w", err)
		}
		log.Info().Str("path", cfg.SQLiteDBPath).Msg("Using sqlite ledger storage")
		return store, func() { store.Close() }, nil

	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("ping database: %w", err)
		}
		store := postgres.NewBlobStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("prepare database schema: %w", err)
		}
		log.Info().Msg("Connected to database")
		return store, pool.Close, nil

	case config.BackendS3:
		store, err := storage.NewS3BlobStore(ctx, cfg.S3)
		if err != nil {
			return nil, nil, fmt.Errorf("open s3 storage: %w", err)
		}
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("Using s3 ledger storage")
		return store, nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown ledger backend %q", cfg.LedgerBackend)
	}
}
