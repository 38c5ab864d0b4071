package websocket

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

// ErrClientClosed is returned when attempting to send to a closed client
var ErrClientClosed = errors.New("client is closed")

// ClientInterface defines the interface that clients must implement
type ClientInterface interface {
	ID() string
	LedgerKey() string
	Send(data []byte) error
	Close() error
}

// Hub manages WebSocket connections organized by ledger key
// It is safe for concurrent use
type Hub struct {
	// ledgers maps ledger key to a map of client ID to client
	ledgers map[string]map[string]ClientInterface
	mu      sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		ledgers: make(map[string]map[string]ClientInterface),
	}
}

// Register adds a client to the hub under its ledger key
func (h *Hub) Register(client ClientInterface) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ledgerKey := client.LedgerKey()
	clientID := client.ID()

	if h.ledgers[ledgerKey] == nil {
		h.ledgers[ledgerKey] = make(map[string]ClientInterface)
	}

	h.ledgers[ledgerKey][clientID] = client

	log.Debug().
		Str("ledger_key", ledgerKey).
		Str("client_id", clientID).
		Msg("WebSocket client registered")
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client ClientInterface) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ledgerKey := client.LedgerKey()
	clientID := client.ID()

	if clients, ok := h.ledgers[ledgerKey]; ok {
		if _, exists := clients[clientID]; exists {
			delete(clients, clientID)

			// Clean up empty ledger maps
			if len(clients) == 0 {
				delete(h.ledgers, ledgerKey)
			}

			log.Debug().
				Str("ledger_key", ledgerKey).
				Str("client_id", clientID).
				Msg("WebSocket client unregistered")
		}
	}
}

// Broadcast sends an event to all clients watching a ledger
func (h *Hub) Broadcast(ledgerKey string, event Event) {
	data, err := event.ToJSON()
	if err != nil {
		log.Error().
			Err(err).
			Str("ledger_key", ledgerKey).
			Str("event_type", event.Type).
			Msg("Failed to serialize event")
		return
	}

	h.mu.RLock()
	clients, ok := h.ledgers[ledgerKey]
	if !ok || len(clients) == 0 {
		h.mu.RUnlock()
		return
	}

	// Copy clients to avoid holding lock during send
	clientsCopy := make([]ClientInterface, 0, len(clients))
	for _, client := range clients {
		clientsCopy = append(clientsCopy, client)
	}
	h.mu.RUnlock()

	for _, client := range clientsCopy {
		go func(c ClientInterface) {
			if err := c.Send(data); err != nil {
				log.Warn().
					Err(err).
					Str("ledger_key", ledgerKey).
					Str("client_id", c.ID()).
					Msg("Failed to send to client")
			}
		}(client)
	}

	log.Debug().
		Str("ledger_key", ledgerKey).
		Str("event_type", event.Type).
		Int("client_count", len(clientsCopy)).
		Msg("Broadcast event")
}

// ClientCount returns the number of clients watching a ledger
func (h *Hub) ClientCount(ledgerKey string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.ledgers[ledgerKey]; ok {
		return len(clients)
	}
	return 0
}

// TotalClientCount returns the total number of connected clients
func (h *Hub) TotalClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, clients := range h.ledgers {
		total += len(clients)
	}
	return total
}
