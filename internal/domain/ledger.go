package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// DefaultLedgerKey is the namespace key the ledger blob lives under.
const DefaultLedgerKey = "@gofinance:transactions"

// BlobStore persists opaque values under string keys. Get returns
// ErrKeyNotFound when nothing was ever written under key.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// DisplayRow is a stored record ready for rendering.
type DisplayRow struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Type         TransactionType `json:"type"`
	Amount       string          `json:"amount"`
	CategoryKey  CategoryKey     `json:"categoryKey"`
	CategoryName string          `json:"categoryName"`
	CategoryIcon string          `json:"categoryIcon"`
	Date         string          `json:"date"`
	Malformed    bool            `json:"malformed,omitempty"`
}

// LedgerSummary holds the formatted highlight figures.
type LedgerSummary struct {
	Income  string `json:"income"`
	Outcome string `json:"outcome"`
	Total   string `json:"total"`
}

// Totals are the unformatted sums behind a LedgerSummary.
type Totals struct {
	Income  decimal.Decimal
	Outcome decimal.Decimal
	Net     decimal.Decimal
}

// Ledger is the result of aggregating the stored collection.
type Ledger struct {
	Rows    []DisplayRow
	Summary LedgerSummary
	Totals  Totals
	Issues  []*MalformedRecordError
}
