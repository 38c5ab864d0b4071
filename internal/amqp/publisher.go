package amqp

import (
	"context"
	"fmt"
	"time"

	"github.com/dafibh/gofinance/gofinance-backend/internal/websocket"
	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

const publishTimeout = 5 * time.Second

// channel is the subset of *amqp091.Channel the publisher needs
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Publisher forwards ledger events to a topic exchange, routed by event type
type Publisher struct {
	conn         *amqp091.Connection
	channel      channel
	exchangeName string
}

// Ensure Publisher implements EventPublisher
var _ websocket.EventPublisher = (*Publisher)(nil)

// NewPublisher dials the broker and declares the exchange
func NewPublisher(url, exchangeName string) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	p, err := newPublisher(ch, exchangeName)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, exchangeName string) (*Publisher, error) {
	err := ch.ExchangeDeclare(
		exchangeName, // name
		"topic",      // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &Publisher{
		channel:      ch,
		exchangeName: exchangeName,
	}, nil
}

// Publish implements EventPublisher. Failures are logged, never returned.
func (p *Publisher) Publish(ledgerKey string, event websocket.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := p.PublishEvent(ctx, ledgerKey, event); err != nil {
		log.Warn().
			Err(err).
			Str("ledger_key", ledgerKey).
			Str("event_type", event.Type).
			Str("exchange", p.exchangeName).
			Msg("Failed to publish ledger event")
	}
}

// PublishEvent publishes a single ledger event using the event type as routing key
func (p *Publisher) PublishEvent(ctx context.Context, ledgerKey string, event websocket.Event) error {
	body, err := NewLedgerEventMessage(ledgerKey, event).ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	err = p.channel.PublishWithContext(
		ctx,
		p.exchangeName, // exchange
		event.Type,     // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    event.Timestamp,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	log.Debug().
		Str("ledger_key", ledgerKey).
		Str("event_type", event.Type).
		Str("exchange", p.exchangeName).
		Msg("Published ledger event")

	return nil
}

// Close releases the channel and the connection
func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
