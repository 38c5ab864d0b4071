package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/dafibh/gofinance/gofinance-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	value []byte
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*[]byte)) = r.value
	return nil
}

// fakeDB emulates kv_store with a map
type fakeDB struct {
	rows    map[string][]byte
	execSQL []string
	failErr error
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execSQL = append(f.execSQL, sql)
	if f.failErr != nil {
		return pgconn.CommandTag{}, f.failErr
	}
	if len(args) == 2 {
		f.rows[args[0].(string)] = args[1].([]byte)
	}
	return pgconn.CommandTag{}, nil
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if f.failErr != nil {
		return fakeRow{err: f.failErr}
	}
	value, ok := f.rows[args[0].(string)]
	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{value: value}
}

func TestBlobStore_GetPut(t *testing.T) {
	ctx := context.Background()
	db := &fakeDB{rows: make(map[string][]byte)}
	store := NewBlobStore(db)

	require.NoError(t, store.EnsureSchema(ctx))
	assert.Contains(t, db.execSQL[0], "CREATE TABLE IF NOT EXISTS kv_store")

	_, err := store.Get(ctx, domain.DefaultLedgerKey)
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)

	require.NoError(t, store.Put(ctx, domain.DefaultLedgerKey, []byte(`[]`)))
	got, err := store.Get(ctx, domain.DefaultLedgerKey)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}

func TestBlobStore_Failure(t *testing.T) {
	boom := errors.New("connection refused")
	store := NewBlobStore(&fakeDB{rows: map[string][]byte{}, failErr: boom})

	_, err := store.Get(context.Background(), "k")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrKeyNotFound)

	assert.ErrorIs(t, store.Put(context.Background(), "k", []byte("x")), boom)
}
