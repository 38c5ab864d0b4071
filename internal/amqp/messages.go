package amqp

import (
	"encoding/json"

	"github.com/dafibh/gofinance/gofinance-backend/internal/websocket"
)

// LedgerEventMessage wraps a ledger event with the key of the ledger it belongs to
type LedgerEventMessage struct {
	LedgerKey string          `json:"ledger_key"`
	Event     websocket.Event `json:"event"`
}

// NewLedgerEventMessage creates a message for the given ledger event
func NewLedgerEventMessage(ledgerKey string, event websocket.Event) *LedgerEventMessage {
	return &LedgerEventMessage{
		LedgerKey: ledgerKey,
		Event:     event,
	}
}

// ToJSON converts the message to JSON bytes
func (m *LedgerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerEventMessageFromJSON creates a message from JSON bytes
func LedgerEventMessageFromJSON(data []byte) (*LedgerEventMessage, error) {
	var msg LedgerEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
