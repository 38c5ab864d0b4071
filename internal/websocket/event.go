package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents what happened to the entity
type EventType string

const (
	EventTypeAppended EventType = "appended"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeLedger EntityType = "ledger"
)

// Event represents a message sent to subscribers
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "ledger.appended"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "ledger"
	Payload   interface{} `json:"payload"`   // Full entity data
	Timestamp time.Time   `json:"timestamp"` // Event timestamp
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// LedgerAppended creates a ledger.appended event carrying the new record
func LedgerAppended(payload interface{}) Event {
	return NewEvent(EventTypeAppended, EntityTypeLedger, payload)
}
