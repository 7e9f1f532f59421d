// Package queue contains the background consumer that listens to the
// booking queues and appends one line per event to the booking log.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StartBookingConsumer connects to RabbitMQ, declares the booking queues
// (durable), and appends every message to logPath in a single-line,
// human-friendly format.  It reconnects with backoff until ctx is
// cancelled and then returns ctx.Err().  A message that cannot be handled
// is logged and rejected so the consumer keeps running.
func StartBookingConsumer(ctx context.Context, url, logPath string) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("booking-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			if err := sleep(ctx, backoff); err != nil {
				return err
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		err = consumeLoop(ctx, conn, logPath)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("booking-consumer: consume loop ended: %v; reconnecting", err)
		if err := sleep(ctx, 2*time.Second); err != nil {
			return err
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, logPath string) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("booking-consumer: set QoS failed: %v", err)
	}

	confirmed, err := declareAndConsume(ch, BookingConfirmedQueue)
	if err != nil {
		return err
	}
	cancelled, err := declareAndConsume(ch, BookingCancelledQueue)
	if err != nil {
		return err
	}

	for {
		var d amqp.Delivery
		var ok bool
		var queueName string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok = <-confirmed:
			queueName = BookingConfirmedQueue
		case d, ok = <-cancelled:
			queueName = BookingCancelledQueue
		}
		if !ok {
			return errors.New("deliveries channel closed")
		}
		if err := handleMessage(queueName, d.Body, logPath); err != nil {
			log.Printf("booking-consumer: handle message failed: %v", err)
			_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
			continue
		}
		_ = d.Ack(false)
	}
}

func declareAndConsume(ch *amqp.Channel, name string) (<-chan amqp.Delivery, error) {
	if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("queue declare %s: %w", name, err)
	}
	msgs, err := ch.Consume(name, "", false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("queue consume %s: %w", name, err)
	}
	return msgs, nil
}

func handleMessage(queueName string, body []byte, logPath string) error {
	line, err := formatEvent(queueName, body)
	if err != nil {
		return err
	}
	return appendLine(logPath, line)
}

// formatEvent renders one booking event as a log line.
func formatEvent(queueName string, body []byte) (string, error) {
	switch queueName {
	case BookingConfirmedQueue:
		var ev BookingConfirmedEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return "", fmt.Errorf("unmarshal: %w", err)
		}
		return fmt.Sprintf("[%s] Booking confirmed | reservation_id=%s | guest=%q | room=%d | type=%s | nights=%d | total=%s | payment=%s | check_in=%s\n",
			ev.ConfirmedAt, ev.ReservationID, ev.GuestName, ev.RoomNumber, ev.RoomType, ev.Nights, ev.TotalAmount, ev.PaymentRef, ev.CheckIn), nil
	case BookingCancelledQueue:
		var ev BookingCancelledEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return "", fmt.Errorf("unmarshal: %w", err)
		}
		return fmt.Sprintf("[%s] Booking cancelled | reservation_id=%s | guest=%q | room=%d | type=%s | nights=%d | total=%s\n",
			ev.CancelledAt, ev.ReservationID, ev.GuestName, ev.RoomNumber, ev.RoomType, ev.Nights, ev.TotalAmount), nil
	}
	return "", fmt.Errorf("unexpected queue %q", queueName)
}

func appendLine(path, line string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
