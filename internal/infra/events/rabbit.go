package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"wellness-booking/internal/usecase/shared"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const exchangeKind = "topic"

// RabbitPublisher hands booking events to the invoice and notification
// collaborators. One channel serves every publish, so sends are serialized.
type RabbitPublisher struct {
	mu       sync.Mutex
	ch       *amqp.Channel
	exchange string
	logger   *slog.Logger
}

func NewRabbitPublisher(conn *amqp.Connection, exchange string, logger *slog.Logger) (*RabbitPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open rabbit channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, exchangeKind, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}
	return &RabbitPublisher{ch: ch, exchange: exchange, logger: logger}, nil
}

func (p *RabbitPublisher) PublishBookingCommitted(ctx context.Context, evt shared.BookingCommitted) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", shared.EventBookingCommitted, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now(),
		Type:         shared.EventBookingCommitted,
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.PublishWithContext(ctx, p.exchange, shared.EventBookingCommitted, false, false, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", shared.EventBookingCommitted, err)
	}
	p.logger.Debug("event published",
		"event", shared.EventBookingCommitted,
		"session_id", evt.SessionID,
		"bookings", len(evt.BookingIDs))
	return nil
}

func (p *RabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.Close()
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct {
	logger *slog.Logger
}

func NewNopPublisher(logger *slog.Logger) *NopPublisher {
	return &NopPublisher{logger: logger}
}

func (p *NopPublisher) PublishBookingCommitted(_ context.Context, evt shared.BookingCommitted) error {
	p.logger.Debug("event publishing disabled, dropping event",
		"event", shared.EventBookingCommitted,
		"session_id", evt.SessionID)
	return nil
}
