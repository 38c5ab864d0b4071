package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordingPublisher struct {
	keys []string
}

func (r *recordingPublisher) Publish(ledgerKey string, event Event) {
	r.keys = append(r.keys, ledgerKey)
}

func TestHub_Publish(t *testing.T) {
	hub := NewHub()

	client := newMockClient("client-1", "ledger-a")
	hub.Register(client)

	var publisher EventPublisher = hub
	publisher.Publish("ledger-a", LedgerAppended(map[string]interface{}{"id": "42"}))

	assert.Eventually(t, func() bool {
		return client.messageCount() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestNoOpPublisher_Publish(t *testing.T) {
	publisher := &NoOpPublisher{}

	assert.NotPanics(t, func() {
		publisher.Publish("ledger-a", LedgerAppended(nil))
	})
}

func TestMultiPublisher_Publish(t *testing.T) {
	first := &recordingPublisher{}
	second := &recordingPublisher{}

	multi := MultiPublisher{first, nil, second}
	multi.Publish("ledger-a", LedgerAppended(nil))

	assert.Equal(t, []string{"ledger-a"}, first.keys)
	assert.Equal(t, []string{"ledger-a"}, second.keys)
}
