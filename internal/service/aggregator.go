package service

import (
	"bytes"
	"encoding/json"

	"github.com/dafibh/gofinance/gofinance-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// outcomePrefix marks the amount of an outcome row
const outcomePrefix = "- "

// Aggregator turns stored entries into display rows and summary totals.
// It holds no state besides the registry and is safe for concurrent use.
type Aggregator struct {
	categories domain.CategoryRegistry
}

// NewAggregator creates an Aggregator resolving categories through registry
func NewAggregator(registry domain.CategoryRegistry) *Aggregator {
	return &Aggregator{categories: registry}
}

// Aggregate builds the ledger view of raw. Entries that cannot be trusted are
// reported in Issues and kept out of the totals, never returned as an error.
func (a *Aggregator) Aggregate(raw []json.RawMessage) *domain.Ledger {
	ledger := &domain.Ledger{
		Rows: make([]domain.DisplayRow, 0, len(raw)),
		Totals: domain.Totals{
			Income:  decimal.Zero,
			Outcome: decimal.Zero,
			Net:     decimal.Zero,
		},
	}

	seenIDs := make(map[string]struct{}, len(raw))
	for i, entry := range raw {
		row, amount, issues := a.buildRow(i, entry)
		ledger.Issues = append(ledger.Issues, issues...)
		if row == nil {
			continue
		}
		// A repeated id is reported but the row still counts
		if row.ID != "" {
			if _, dup := seenIDs[row.ID]; dup {
				ledger.Issues = append(ledger.Issues, &domain.MalformedRecordError{Index: i, ID: row.ID, Reason: "duplicate id"})
			}
			seenIDs[row.ID] = struct{}{}
		}
		ledger.Rows = append(ledger.Rows, *row)
		if row.Malformed {
			continue
		}

		switch row.Type {
		case domain.TransactionTypeIncome:
			ledger.Totals.Income = ledger.Totals.Income.Add(amount)
		case domain.TransactionTypeOutcome:
			ledger.Totals.Outcome = ledger.Totals.Outcome.Add(amount)
		}
	}

	ledger.Totals.Net = ledger.Totals.Income.Sub(ledger.Totals.Outcome)
	ledger.Summary = domain.LedgerSummary{
		Income:  domain.FormatCurrency(ledger.Totals.Income),
		Outcome: domain.FormatCurrency(ledger.Totals.Outcome),
		Total:   domain.FormatCurrency(ledger.Totals.Net),
	}
	return ledger
}

// buildRow decodes one entry. A nil row means the entry is not a record at all.
func (a *Aggregator) buildRow(index int, entry json.RawMessage) (*domain.DisplayRow, decimal.Decimal, []*domain.MalformedRecordError) {
	trimmed := bytes.TrimSpace(entry)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, decimal.Zero, []*domain.MalformedRecordError{{Index: index, Reason: "entry is not an object"}}
	}

	var rec domain.RawRecord
	if err := json.Unmarshal(trimmed, &rec); err != nil {
		return nil, decimal.Zero, []*domain.MalformedRecordError{{Index: index, Reason: "undecodable entry: " + err.Error()}}
	}

	var issues []*domain.MalformedRecordError
	flag := func(reason string) {
		issues = append(issues, &domain.MalformedRecordError{Index: index, ID: rec.ID, Reason: reason})
	}

	txType := domain.TransactionType(rec.Type)
	row := &domain.DisplayRow{
		ID:          rec.ID,
		Name:        rec.Name,
		Type:        txType,
		CategoryKey: domain.CategoryKey(rec.Category),
	}

	if cat, ok := a.categories.Lookup(row.CategoryKey); ok {
		row.CategoryName = cat.Name
		row.CategoryIcon = cat.Icon
	}

	if date, ok := rec.Time(); ok {
		row.Date = domain.FormatDate(date)
	} else {
		flag("unparseable date " + quoteOrEmpty(rec.DateText()))
	}

	amountText := rec.AmountText()
	amount, err := domain.ParseAmount(amountText)
	switch {
	case !txType.Valid():
		flag("unknown type " + quoteOrEmpty(rec.Type))
		row.Malformed = true
	case err != nil:
		flag("unparseable amount " + quoteOrEmpty(amountText))
		row.Malformed = true
	case !amount.IsPositive():
		flag("non-positive amount " + quoteOrEmpty(amountText))
		row.Malformed = true
	}

	if row.Malformed {
		row.Amount = amountText
		return row, decimal.Zero, issues
	}

	row.Amount = domain.FormatCurrency(amount)
	if txType == domain.TransactionTypeOutcome {
		row.Amount = outcomePrefix + row.Amount
	}
	return row, amount, issues
}

func quoteOrEmpty(s string) string {
	if s == "" {
		return "(empty)"
	}
	return `"` + s + `"`
}
