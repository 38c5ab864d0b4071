package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/dafibh/gofinance/gofinance-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const createKVStoreSQL = `
CREATE TABLE IF NOT EXISTS kv_store (
    key        TEXT PRIMARY KEY,
    value      BYTEA NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const getValueSQL = `SELECT value FROM kv_store WHERE key = $1`

const upsertValueSQL = `
INSERT INTO kv_store (key, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

// querier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BlobStore implements domain.BlobStore using a PostgreSQL key/value table
type BlobStore struct {
	db querier
}

// NewBlobStore creates a new BlobStore
func NewBlobStore(db querier) *BlobStore {
	return &BlobStore{db: db}
}

// EnsureSchema creates the kv_store table if it does not exist
func (r *BlobStore) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createKVStoreSQL); err != nil {
		return fmt.Errorf("create kv_store: %w", err)
	}
	return nil
}

// Get retrieves the value stored under key
func (r *BlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRow(ctx, getValueSQL, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, err
	}
	return value, nil
}

// Put stores value under key in a single upsert
func (r *BlobStore) Put(ctx context.Context, key string, value []byte) error {
	_, err := r.db.Exec(ctx, upsertValueSQL, key, value)
	return err
}
