package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"time"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "up"
	TransactionTypeOutcome TransactionType = "down"
)

// Valid reports whether t is Income or Outcome.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeOutcome
}

// TransactionRecord is one persisted ledger entry. Amount keeps the text the
// user typed.
type TransactionRecord struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Amount   string          `json:"amount"`
	Type     TransactionType `json:"type"`
	Category CategoryKey     `json:"category"`
	Date     time.Time       `json:"date"`
}

// RawRecord is a stored entry before validation. Every field is optional and
// may hold any JSON type: text fields are stringified leniently, while
// amount and date keep their raw encoding.
type RawRecord struct {
	ID       string
	Name     string
	Amount   json.RawMessage
	Type     string
	Category string
	Date     json.RawMessage
}

// maxDateMillis is the largest epoch offset a stored date may carry.
const maxDateMillis = 8.64e15

// UnmarshalJSON decodes an object without failing on mistyped fields.
func (r *RawRecord) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*r = RawRecord{
		ID:       rawText(fields["id"]),
		Name:     rawText(fields["name"]),
		Amount:   fields["amount"],
		Type:     rawText(fields["type"]),
		Category: rawText(fields["category"]),
		Date:     fields["date"],
	}
	return nil
}

// AmountText returns the amount as text, unquoting JSON strings.
func (r RawRecord) AmountText() string {
	return rawText(r.Amount)
}

// DateText returns the stored date as text.
func (r RawRecord) DateText() string {
	return rawText(r.Date)
}

// Time resolves the stored date. Strings are RFC 3339 and numbers are
// epoch milliseconds.
func (r RawRecord) Time() (time.Time, bool) {
	raw := bytes.TrimSpace(r.Date)
	if len(raw) == 0 {
		return time.Time{}, false
	}

	if raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil || text == "" {
			return time.Time{}, false
		}
		t, err := time.Parse(time.RFC3339Nano, text)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}

	ms, err := strconv.ParseFloat(string(raw), 64)
	if err != nil || math.Abs(ms) > maxDateMillis {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(ms)).UTC(), true
}

// rawText unquotes JSON strings and keeps any other value as its encoding.
// Missing and null values are empty.
func rawText(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		return s
	}
	return string(trimmed)
}

// Candidate is a new transaction as submitted by the view layer.
type Candidate struct {
	Name     string
	Amount   string
	Type     TransactionType
	Category CategorySelection
}
