// Package hotel holds the room catalog, the reservation ledger and the
// operations that keep the two consistent.  Callers distinguish failures
// with errors.Is against the sentinel values below.
package hotel

import "errors"

// ErrRoomNotFound is returned when no room with the requested number
// exists in the catalog.
var ErrRoomNotFound = errors.New("room not found")

// ErrRoomAlreadyBooked is returned when booking a room that already has an
// active reservation.
var ErrRoomAlreadyBooked = errors.New("room already booked")

// ErrReservationNotFound is returned when cancelling a room that has no
// reservation in the ledger.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrInvalidNights is returned when the night count is zero or negative.
var ErrInvalidNights = errors.New("number of nights must be positive")

// ErrInvalidGuestName is returned when the guest name is blank.
var ErrInvalidGuestName = errors.New("guest name is required")

// ErrPaymentDeclined wraps any failure reported by the payment step.
var ErrPaymentDeclined = errors.New("payment declined")

// ErrInconsistentState is returned by Restore when the persisted rooms and
// reservations do not satisfy the booked-flag invariant.
var ErrInconsistentState = errors.New("inconsistent hotel state")
