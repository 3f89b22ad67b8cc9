package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Queue names. Durable queues on the default exchange, one per event type.
const (
	QueueConfirmed = "reservation.confirmed"
	QueueCancelled = "reservation.cancelled"
)

// Publisher sends persistent JSON events to RabbitMQ. Booking volume is
// low, so each publish dials a fresh connection rather than holding one.
type Publisher struct {
	url string
}

// NewPublisher creates a publisher for the given AMQP URL
func NewPublisher(url string) *Publisher {
	return &Publisher{url: url}
}

// PublishConfirmed sends a ReservationConfirmedEvent
func (p *Publisher) PublishConfirmed(ctx context.Context, event ReservationConfirmedEvent) error {
	return p.publish(ctx, QueueConfirmed, event)
}

// PublishCancelled sends a ReservationCancelledEvent
func (p *Publisher) PublishCancelled(ctx context.Context, event ReservationCancelledEvent) error {
	return p.publish(ctx, QueueCancelled, event)
}

func (p *Publisher) publish(ctx context.Context, queueName string, event any) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	return nil
}
