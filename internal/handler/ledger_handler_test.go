package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dafibh/gofinance/gofinance-backend/internal/category"
	"github.com/dafibh/gofinance/gofinance-backend/internal/domain"
	"github.com/dafibh/gofinance/gofinance-backend/internal/service"
	"github.com/dafibh/gofinance/gofinance-backend/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLedgerKey = "@gofinance:transactions"

func newTestLedgerHandler(blobs *testutil.MockBlobStore) *LedgerHandler {
	svc := service.NewLedgerService(blobs, testLedgerKey, category.Default(), zerolog.Nop())
	svc.Writer().SetClock(testutil.FixedClock(time.Date(2021, 4, 16, 12, 0, 0, 0, time.UTC)))
	return NewLedgerHandler(svc)
}

func postTransaction(t *testing.T, h *LedgerHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	return rec
}

func getLedger(t *testing.T, h *LedgerHandler) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ledger", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.GetLedger(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	return rec
}

func TestGetLedger_Empty(t *testing.T) {
	h := newTestLedgerHandler(testutil.NewMockBlobStore())

	rec := getLedger(t, h)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	assert.JSONEq(t, `{
		"rows": [],
		"summary": {"income": "R$ 0,00", "outcome": "R$ 0,00", "total": "R$ 0,00"},
		"issues": 0
	}`, rec.Body.String())
}

func TestCreateTransaction_Success(t *testing.T) {
	blobs := testutil.NewMockBlobStore()
	h := newTestLedgerHandler(blobs)

	rec := postTransaction(t, h, `{"name": "Salário", "amount": "500", "type": "up", "category": "salary"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var response TransactionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.NotEmpty(t, response.ID)
	assert.Equal(t, "Salário", response.Name)
	assert.Equal(t, "500", response.Amount)
	assert.Equal(t, "up", response.Type)
	assert.Equal(t, "salary", response.Category)
	assert.Equal(t, "2021-04-16T12:00:00Z", response.Date)

	rec = postTransaction(t, h, `{"name": "Mercado", "amount": 200, "type": "down", "category": "food"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = getLedger(t, h)
	var ledger LedgerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ledger))
	require.Len(t, ledger.Rows, 2)
	assert.Equal(t, "R$ 500,00", ledger.Summary.Income)
	assert.Equal(t, "R$ 200,00", ledger.Summary.Outcome)
	assert.Equal(t, "R$ 300,00", ledger.Summary.Total)
	assert.Equal(t, "- R$ 200,00", ledger.Rows[1].Amount)
	assert.Equal(t, "16/04/21", ledger.Rows[1].Date)
	assert.Equal(t, 0, ledger.Issues)
}

func TestCreateTransaction_ValidationErrors(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantField   string
		wantMessage string
	}{
		{"missing name", `{"name": "", "amount": "10", "type": "up", "category": "food"}`, "name", MsgNameRequired},
		{"non numeric amount", `{"name": "x", "amount": "abc", "type": "up", "category": "food"}`, "amount", MsgAmountNotNumeric},
		{"missing amount", `{"name": "x", "type": "up", "category": "food"}`, "amount", MsgAmountNotNumeric},
		{"negative amount", `{"name": "x", "amount": "-5", "type": "up", "category": "food"}`, "amount", MsgAmountNotPositive},
		{"zero amount", `{"name": "x", "amount": 0, "type": "up", "category": "food"}`, "amount", MsgAmountNotPositive},
		{"missing type", `{"name": "x", "amount": "10", "category": "food"}`, "type", MsgTypeRequired},
		{"invalid type", `{"name": "x", "amount": "10", "type": "income", "category": "food"}`, "type", MsgTypeRequired},
		{"missing category", `{"name": "x", "amount": "10", "type": "up"}`, "category", MsgCategoryRequired},
		{"blank category", `{"name": "x", "amount": "10", "type": "up", "category": "  "}`, "category", MsgCategoryRequired},
		{"unknown category", `{"name": "x", "amount": "10", "type": "up", "category": "travel"}`, "category", MsgUnknownCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blobs := testutil.NewMockBlobStore()
			h := newTestLedgerHandler(blobs)

			rec := postTransaction(t, h, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("Expected status 400, got %d", rec.Code)
			}

			var problem ProblemDetails
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
			assert.Equal(t, ErrorTypeValidation, problem.Type)
			assert.Equal(t, tt.wantMessage, problem.Detail)
			require.Len(t, problem.Errors, 1)
			assert.Equal(t, tt.wantField, problem.Errors[0].Field)
			assert.Equal(t, tt.wantMessage, problem.Errors[0].Message)

			assert.Nil(t, blobs.Raw(testLedgerKey))
		})
	}
}

func TestCreateTransaction_InvalidBody(t *testing.T) {
	h := newTestLedgerHandler(testutil.NewMockBlobStore())

	rec := postTransaction(t, h, `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestCreateTransaction_StorageFailure(t *testing.T) {
	blobs := testutil.NewMockBlobStore()
	blobs.PutErr = errors.New("disk full")
	h := newTestLedgerHandler(blobs)

	rec := postTransaction(t, h, `{"name": "x", "amount": "10", "type": "up", "category": "food"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("Expected status 500, got %d", rec.Code)
	}

	var problem ProblemDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, ErrorTypeInternal, problem.Type)
	assert.Equal(t, MsgSaveFailed, problem.Detail)
}

func TestGetLedger_StorageFailure(t *testing.T) {
	blobs := testutil.NewMockBlobStore()
	blobs.GetErr = errors.New("connection reset")
	h := newTestLedgerHandler(blobs)

	rec := getLedger(t, h)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("Expected status 500, got %d", rec.Code)
	}
	assert.Contains(t, rec.Body.String(), "Não foi possível carregar")
}

func TestGetLedger_CountsIssues(t *testing.T) {
	blobs := testutil.NewMockBlobStore()
	blobs.Seed(testLedgerKey, `[
		{"id":"1","name":"ok","amount":"10","type":"up","category":"food","date":"2021-04-16T12:00:00Z"},
		{"id":"2","name":"bad","amount":"x","type":"up","category":"food","date":"2021-04-16T12:00:00Z"}
	]`)
	h := newTestLedgerHandler(blobs)

	rec := getLedger(t, h)
	var ledger LedgerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ledger))
	assert.Equal(t, 1, ledger.Issues)
	require.Len(t, ledger.Rows, 2)
	assert.True(t, ledger.Rows[1].Malformed)
	assert.Equal(t, "R$ 10,00", ledger.Summary.Total)
}

func TestValidationMessage_Fallback(t *testing.T) {
	assert.Equal(t, "something else", validationMessage(errors.New("something else")))
	assert.Equal(t, MsgAmountNotPositive, validationMessage(&domain.ValidationError{Field: "amount", Err: domain.ErrAmountNotPositive}))
}

func TestCreateTransaction_ExponentAmountRejected(t *testing.T) {
	blobs := testutil.NewMockBlobStore()
	h := newTestLedgerHandler(blobs)

	rec := postTransaction(t, h, `{"name": "x", "amount": 1e50000000, "type": "up", "category": "food"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rec.Code)
	}

	var problem ProblemDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, MsgAmountNotNumeric, problem.Detail)
	assert.Nil(t, blobs.Raw(testLedgerKey))
}
