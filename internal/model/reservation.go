package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Reservation records a guest's booking of one room for a number of
// nights.  Reservations are created by a successful booking, removed by a
// cancellation and never changed in between.
//
// Fields:
//
//	ID          – identifier assigned at booking time.
//	GuestName   – name the booking was made under.
//	RoomNumber  – room being reserved.
//	CheckIn     – timestamp captured when the booking was made.
//	Nights      – number of nights paid for (always positive).
//	TotalAmount – nightly price multiplied by Nights.
//	PaymentRef  – reference returned by the payment step.
type Reservation struct {
	ID          uuid.UUID
	GuestName   string
	RoomNumber  int
	CheckIn     time.Time
	Nights      int
	TotalAmount decimal.Decimal
	PaymentRef  string
}
