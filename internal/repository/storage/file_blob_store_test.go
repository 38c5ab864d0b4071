package storage

import (
	"context"
	"os"
	"testing"

	"github.com/dafibh/gofinance/gofinance-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileBlobStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewFileBlobStore(dir)
	require.NoError(t, err)

	_, err = store.Get(ctx, domain.DefaultLedgerKey)
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)

	require.NoError(t, store.Put(ctx, domain.DefaultLedgerKey, []byte(`[{"id":"1"}]`)))
	require.NoError(t, store.Put(ctx, domain.DefaultLedgerKey, []byte(`[{"id":"1"},{"id":"2"}]`)))

	got, err := store.Get(ctx, domain.DefaultLedgerKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1"},{"id":"2"}]`, string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileBlobStore_KeysAreIsolated(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileBlobStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "a:b", []byte("1")))
	require.NoError(t, store.Put(ctx, "a/b", []byte("2")))

	first, err := store.Get(ctx, "a:b")
	require.NoError(t, err)
	second, err := store.Get(ctx, "a/b")
	require.NoError(t, err)
	assert.Equal(t, "1", string(first))
	assert.Equal(t, "2", string(second))
}

func TestFileBlobStore_CancelledContext(t *testing.T) {
	store, err := NewFileBlobStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Put(ctx, "k", []byte("x")), context.Canceled)
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}
