package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/dafibh/gofinance/gofinance-backend/internal/category"
	"github.com/dafibh/gofinance/gofinance-backend/internal/domain"
	"github.com/dafibh/gofinance/gofinance-backend/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerService_Load_Empty(t *testing.T) {
	svc := NewLedgerService(testutil.NewMockBlobStore(), "", category.Default(), zerolog.Nop())

	ledger, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ledger.Rows)
	assert.Equal(t, "R$ 0,00", ledger.Summary.Income)
	assert.Equal(t, "R$ 0,00", ledger.Summary.Outcome)
	assert.Equal(t, "R$ 0,00", ledger.Summary.Total)
	assert.Equal(t, domain.DefaultLedgerKey, svc.Key())
}

func TestLedgerService_Load_StorageFailure(t *testing.T) {
	blobs := testutil.NewMockBlobStore()
	blobs.GetErr = errors.New("connection refused")
	svc := NewLedgerService(blobs, testKey, category.Default(), zerolog.Nop())

	ledger, err := svc.Load(context.Background())
	require.Error(t, err)
	assert.Nil(t, ledger)
	assert.True(t, domain.IsStorageError(err))
}

func TestLedgerService_Load_CorruptIsNotEmpty(t *testing.T) {
	blobs := testutil.NewMockBlobStore()
	blobs.Seed(testKey, `{"id":"1"}`)
	svc := NewLedgerService(blobs, testKey, category.Default(), zerolog.Nop())

	ledger, err := svc.Load(context.Background())
	require.Error(t, err)
	assert.Nil(t, ledger)
	assert.ErrorIs(t, err, domain.ErrCorruptLedger)
}

func TestLedgerService_Load_ReportsIssues(t *testing.T) {
	blobs := testutil.NewMockBlobStore()
	blobs.Seed(testKey, `[{"id":"1","name":"x","amount":"abc","type":"up","category":"food","date":"2021-04-16T12:00:00Z"}]`)
	svc := NewLedgerService(blobs, testKey, category.Default(), zerolog.Nop())

	ledger, err := svc.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, ledger.Issues, 1)
	assert.Equal(t, "R$ 0,00", ledger.Summary.Total)
}

func TestLedgerService_Categories(t *testing.T) {
	svc := NewLedgerService(testutil.NewMockBlobStore(), testKey, category.Default(), zerolog.Nop())

	categories := svc.Categories()
	require.Len(t, categories, 6)
	assert.Equal(t, domain.CategoryKey("purchases"), categories[0].Key)
	assert.Equal(t, domain.CategoryKey("studies"), categories[5].Key)
}

func TestLedgerService_Append_LogsRejection(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	svc := NewLedgerService(testutil.NewMockBlobStore(), testKey, category.Default(), logger)

	candidate := validCandidate()
	candidate.Name = ""
	_, err := svc.Append(context.Background(), candidate)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "Transaction rejected")
	assert.Contains(t, buf.String(), testKey)
}

func TestLedgerService_ExponentAmountNeverStored(t *testing.T) {
	blobs := testutil.NewMockBlobStore()
	svc := NewLedgerService(blobs, testKey, category.Default(), zerolog.Nop())
	svc.Writer().SetClock(testutil.FixedClock(testNow))

	candidate := validCandidate()
	candidate.Amount = "1e50000000"
	_, err := svc.Append(context.Background(), candidate)
	assert.ErrorIs(t, err, domain.ErrAmountNotNumeric)
	assert.Nil(t, blobs.Raw(testKey))

	// A value that slipped in through storage stays an issue, not a total
	blobs.Seed(testKey, `[{"id":"1","name":"x","amount":"1e50000000","type":"up","category":"food","date":"2021-04-16T12:00:00Z"}]`)
	ledger, err := svc.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, ledger.Rows, 1)
	assert.True(t, ledger.Rows[0].Malformed)
	assert.Equal(t, "R$ 0,00", ledger.Summary.Income)
}
