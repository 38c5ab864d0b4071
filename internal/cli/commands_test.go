package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/dafibh/gofinance/gofinance-backend/internal/bootstrap"
	"github.com/dafibh/gofinance/gofinance-backend/internal/category"
	"github.com/dafibh/gofinance/gofinance-backend/internal/domain"
	"github.com/dafibh/gofinance/gofinance-backend/internal/service"
	"github.com/dafibh/gofinance/gofinance-backend/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// sharedOpener returns the same in-memory ledger on every call
func sharedOpener() LedgerOpener {
	blobs := testutil.NewMockBlobStore()
	registry := category.Default()
	return func(ctx context.Context, logger zerolog.Logger) (*bootstrap.Ledger, error) {
		return &bootstrap.Ledger{
			Service:    service.NewLedgerService(blobs, domain.DefaultLedgerKey, registry, logger),
			Categories: registry,
		}, nil
	}
}

func runCommand(t *testing.T, open LedgerOpener, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand(open)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestAddThenLoad(t *testing.T) {
	open := sharedOpener()

	out, err := runCommand(t, open, "add", "--name", "Salário", "--amount", "500", "--type", "up", "--category", "salary")
	require.NoError(t, err)
	assert.Contains(t, out, "Added ")

	_, err = runCommand(t, open, "add", "--name", "Mercado", "--amount", "200", "--type", "down", "--category", "food")
	require.NoError(t, err)

	out, err = runCommand(t, open, "load")
	require.NoError(t, err)
	assert.Contains(t, out, "Salário")
	assert.Contains(t, out, "- R$ 200,00")
	assert.Contains(t, out, "R$ 300,00")

	out, err = runCommand(t, open, "load", "--json")
	require.NoError(t, err)

	var decoded struct {
		Rows    []domain.DisplayRow  `json:"rows"`
		Summary domain.LedgerSummary `json:"summary"`
		Issues  int                  `json:"issues"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded.Rows, 2)
	assert.Equal(t, "R$ 500,00", decoded.Summary.Income)
	assert.Equal(t, "R$ 200,00", decoded.Summary.Outcome)
	assert.Equal(t, "R$ 300,00", decoded.Summary.Total)
}

func TestAdd_Rejected(t *testing.T) {
	open := sharedOpener()

	_, err := runCommand(t, open, "add", "--name", "x", "--amount", "-5", "--type", "up", "--category", "food")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAmountNotPositive)

	_, err = runCommand(t, open, "add", "--name", "x", "--amount", "5", "--type", "up")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCategoryRequired)

	out, err := runCommand(t, open, "load", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"rows": []`)
}

func TestCategories(t *testing.T) {
	out, err := runCommand(t, sharedOpener(), "categories")
	require.NoError(t, err)
	for _, key := range []string{"purchases", "food", "salary", "car", "leisure", "studies"} {
		assert.Contains(t, out, key)
	}
}

func TestExport(t *testing.T) {
	open := sharedOpener()
	_, err := runCommand(t, open, "add", "--name", "Salário", "--amount", "500", "--type", "up", "--category", "salary")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "ledger.xlsx")
	out, err := runCommand(t, open, "export", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 transaction(s)")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(service.ExportRowsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Salário", rows[1][0])
}

func TestExport_RequiresOut(t *testing.T) {
	_, err := runCommand(t, sharedOpener(), "export")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--out")
}

func TestOpenerFailure(t *testing.T) {
	failing := func(ctx context.Context, logger zerolog.Logger) (*bootstrap.Ledger, error) {
		return nil, errors.New("backend unavailable")
	}

	_, err := runCommand(t, failing, "load")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend unavailable")
}
