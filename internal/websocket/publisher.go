package websocket

// EventPublisher defines the interface for publishing ledger events
type EventPublisher interface {
	// Publish sends an event to everyone subscribed to the ledger key
	Publish(ledgerKey string, event Event)
}

// Ensure Hub implements EventPublisher
var _ EventPublisher = (*Hub)(nil)

// Publish implements EventPublisher by broadcasting the event to the ledger
func (h *Hub) Publish(ledgerKey string, event Event) {
	h.Broadcast(ledgerKey, event)
}

// NoOpPublisher is a publisher that does nothing (for testing or when WebSocket is disabled)
type NoOpPublisher struct{}

// Publish does nothing
func (n *NoOpPublisher) Publish(ledgerKey string, event Event) {}

// MultiPublisher fans an event out to several publishers in order
type MultiPublisher []EventPublisher

// Publish forwards the event to every non-nil publisher
func (m MultiPublisher) Publish(ledgerKey string, event Event) {
	for _, p := range m {
		if p != nil {
			p.Publish(ledgerKey, event)
		}
	}
}
