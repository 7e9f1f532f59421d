// Package queue defines message payloads exchanged over the message broker.
package queue

import (
	"time"

	"github.com/iliyamo/hotel-room-booking/internal/model"
)

// Queue names.  Both queues are durable and bound to the default exchange.
const (
	BookingConfirmedQueue = "booking.confirmed"
	BookingCancelledQueue = "booking.cancelled"
)

// BookingConfirmedEvent is published after a room has been paid for and
// booked.  It carries everything a consumer needs to log or notify without
// reading the snapshot.
type BookingConfirmedEvent struct {
	ReservationID string `json:"reservation_id"`
	GuestName     string `json:"guest_name"`
	RoomNumber    int    `json:"room_number"`
	RoomType      string `json:"room_type"`
	Nights        int    `json:"nights"`
	TotalAmount   string `json:"total_amount"`
	PaymentRef    string `json:"payment_ref"`
	CheckIn       string `json:"check_in"`
	ConfirmedAt   string `json:"confirmed_at"`
}

// BookingCancelledEvent is published after a reservation has been removed.
type BookingCancelledEvent struct {
	ReservationID string `json:"reservation_id"`
	GuestName     string `json:"guest_name"`
	RoomNumber    int    `json:"room_number"`
	RoomType      string `json:"room_type"`
	Nights        int    `json:"nights"`
	TotalAmount   string `json:"total_amount"`
	CancelledAt   string `json:"cancelled_at"`
}

// NewBookingConfirmed builds the event for a fresh reservation of room.
func NewBookingConfirmed(res model.Reservation, room model.Room, at time.Time) BookingConfirmedEvent {
	return BookingConfirmedEvent{
		ReservationID: res.ID.String(),
		GuestName:     res.GuestName,
		RoomNumber:    res.RoomNumber,
		RoomType:      room.Type.String(),
		Nights:        res.Nights,
		TotalAmount:   res.TotalAmount.StringFixed(2),
		PaymentRef:    res.PaymentRef,
		CheckIn:       res.CheckIn.UTC().Format(time.RFC3339),
		ConfirmedAt:   at.UTC().Format(time.RFC3339),
	}
}

// NewBookingCancelled builds the event for a cancelled reservation.  room
// may be the zero Room when the room record is missing.
func NewBookingCancelled(res model.Reservation, room model.Room, at time.Time) BookingCancelledEvent {
	typ := ""
	if room.Type.Valid() {
		typ = room.Type.String()
	}
	return BookingCancelledEvent{
		ReservationID: res.ID.String(),
		GuestName:     res.GuestName,
		RoomNumber:    res.RoomNumber,
		RoomType:      typ,
		Nights:        res.Nights,
		TotalAmount:   res.TotalAmount.StringFixed(2),
		CancelledAt:   at.UTC().Format(time.RFC3339),
	}
}
