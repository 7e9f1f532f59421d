// Package service publishes booking events to RabbitMQ.  Errors are logged
// and returned so callers can ignore them without interrupting the booking
// flow.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/iliyamo/hotel-room-booking/internal/queue"
)

// EventPublisher is what the console needs to announce booking changes.
type EventPublisher interface {
	PublishBookingConfirmed(ctx context.Context, event q.BookingConfirmedEvent) error
	PublishBookingCancelled(ctx context.Context, event q.BookingCancelledEvent) error
}

// NopPublisher drops every event.  It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishBookingConfirmed(context.Context, q.BookingConfirmedEvent) error {
	return nil
}

func (NopPublisher) PublishBookingCancelled(context.Context, q.BookingCancelledEvent) error {
	return nil
}

// Publisher holds one connection and channel for the lifetime of the
// console session.
type Publisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewPublisher dials url and declares the booking queues.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	// Ensure the queues exist (idempotent). Durable so messages survive broker restarts.
	for _, name := range []string{q.BookingConfirmedQueue, q.BookingCancelledQueue} {
		if _, err := ch.QueueDeclare(
			name,  // name
			true,  // durable
			false, // autoDelete
			false, // exclusive
			false, // noWait
			nil,   // args
		); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return nil, fmt.Errorf("declare queue %s: %w", name, err)
		}
	}
	return &Publisher{conn: conn, ch: ch}, nil
}

// PublishBookingConfirmed publishes to the booking.confirmed queue.
func (p *Publisher) PublishBookingConfirmed(ctx context.Context, event q.BookingConfirmedEvent) error {
	return p.publish(ctx, q.BookingConfirmedQueue, event)
}

// PublishBookingCancelled publishes to the booking.cancelled queue.
func (p *Publisher) PublishBookingCancelled(ctx context.Context, event q.BookingCancelledEvent) error {
	return p.publish(ctx, q.BookingCancelledQueue, event)
}

func (p *Publisher) publish(ctx context.Context, queueName string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := p.ch.PublishWithContext(ctx,
		"",        // default exchange
		queueName, // routing key = queue name
		false,     // mandatory
		false,     // immediate
		pub,
	); err != nil {
		log.Printf("rabbitmq: publish to %s failed: %v", queueName, err)
		return err
	}
	return nil
}

// Close releases the channel and connection.
func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
