package hotel

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/hotel-room-booking/internal/model"
)

var validate = validator.New()

// BookingRequest carries the user supplied booking fields.  RoomNumber is
// resolved against the catalog before the request is validated.
type BookingRequest struct {
	GuestName  string `validate:"required"`
	RoomNumber int
	Nights     int `validate:"gt=0"`
}

// Option configures a State.
type Option func(*State)

// WithPayment replaces the payment step used by Book.
func WithPayment(p PaymentProcessor) Option {
	return func(s *State) { s.payment = p }
}

// WithClock sets the source of check-in timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *State) { s.now = now }
}

// State is the hotel aggregate: it owns the catalog and the ledger and is
// the only place either is mutated.  A room is booked exactly when one
// reservation in the ledger references it.  State is not safe for
// concurrent use; callers sharing it must serialise book, cancel and save.
type State struct {
	catalog *Catalog
	ledger  *Ledger
	payment PaymentProcessor
	now     func() time.Time
}

// New returns a hotel with the seeded catalog and an empty ledger.
func New(opts ...Option) *State {
	cat, _ := NewCatalog(SeedRooms())
	return newState(cat, &Ledger{}, opts)
}

// Restore rebuilds a hotel from persisted rooms and reservations.  It
// fails with ErrInconsistentState when a reservation references an unknown
// room, has a non-positive night count, a blank guest name or a total other
// than price times nights, or when a booked flag disagrees with the ledger.
func Restore(rooms []model.Room, reservations []model.Reservation, opts ...Option) (*State, error) {
	cat, err := NewCatalog(rooms)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInconsistentState, err)
	}
	led := &Ledger{entries: make([]model.Reservation, 0, len(reservations))}
	for _, r := range reservations {
		i := cat.indexOf(r.RoomNumber)
		if i < 0 {
			return nil, fmt.Errorf("%w: reservation for unknown room %d", ErrInconsistentState, r.RoomNumber)
		}
		if r.Nights <= 0 {
			return nil, fmt.Errorf("%w: reservation for room %d has %d nights", ErrInconsistentState, r.RoomNumber, r.Nights)
		}
		if strings.TrimSpace(r.GuestName) == "" {
			return nil, fmt.Errorf("%w: reservation for room %d has no guest name", ErrInconsistentState, r.RoomNumber)
		}
		if want := cat.rooms[i].Price().Mul(decimal.NewFromInt(int64(r.Nights))); !r.TotalAmount.Equal(want) {
			return nil, fmt.Errorf("%w: reservation for room %d totals %s, want %s", ErrInconsistentState, r.RoomNumber, r.TotalAmount, want)
		}
		led.append(r)
	}
	for _, room := range cat.rooms {
		n := led.countByRoom(room.Number)
		if room.Booked != (n == 1) || n > 1 {
			return nil, fmt.Errorf("%w: room %d booked=%t with %d reservations", ErrInconsistentState, room.Number, room.Booked, n)
		}
	}
	return newState(cat, led, opts), nil
}

func newState(cat *Catalog, led *Ledger, opts []Option) *State {
	s := &State{
		catalog: cat,
		ledger:  led,
		payment: SimulatedPayment{Delay: DefaultPaymentDelay},
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog exposes the room catalog for lookups.
func (s *State) Catalog() *Catalog { return s.catalog }

// Book reserves a room for a guest.  Checks run in order: the room must
// exist, must be free, and the request must be valid.  The total is charged
// through the payment step and only a successful payment changes state.
func (s *State) Book(ctx context.Context, guestName string, roomNumber, nights int) (model.Reservation, error) {
	i := s.catalog.indexOf(roomNumber)
	if i < 0 {
		return model.Reservation{}, fmt.Errorf("room %d: %w", roomNumber, ErrRoomNotFound)
	}
	room := s.catalog.rooms[i]
	if room.Booked {
		return model.Reservation{}, fmt.Errorf("room %d: %w", roomNumber, ErrRoomAlreadyBooked)
	}

	req := BookingRequest{GuestName: strings.TrimSpace(guestName), RoomNumber: roomNumber, Nights: nights}
	if err := validateRequest(req); err != nil {
		return model.Reservation{}, err
	}

	total := room.Price().Mul(decimal.NewFromInt(int64(nights)))
	receipt, err := s.payment.Process(ctx, total)
	if err != nil {
		return model.Reservation{}, fmt.Errorf("room %d: %w: %v", roomNumber, ErrPaymentDeclined, err)
	}

	res := model.Reservation{
		ID:          uuid.New(),
		GuestName:   req.GuestName,
		RoomNumber:  roomNumber,
		CheckIn:     s.now(),
		Nights:      nights,
		TotalAmount: total,
		PaymentRef:  receipt.Ref,
	}
	s.catalog.rooms[i].Booked = true
	s.ledger.append(res)
	return res, nil
}

// validateRequest reports the night count before the guest name so the
// caller sees the same error regardless of how many fields are wrong.
func validateRequest(req BookingRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]bool, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = true
	}
	switch {
	case fields["Nights"]:
		return fmt.Errorf("%w: got %d", ErrInvalidNights, req.Nights)
	case fields["GuestName"]:
		return ErrInvalidGuestName
	}
	return err
}

// Cancel removes the reservation for a room and frees the room.  The
// removed reservation is returned.
func (s *State) Cancel(roomNumber int) (model.Reservation, error) {
	i := s.ledger.findByRoom(roomNumber)
	if i < 0 {
		return model.Reservation{}, fmt.Errorf("room %d: %w", roomNumber, ErrReservationNotFound)
	}
	// A missing room record still lets the ledger entry go.
	s.catalog.setBooked(roomNumber, false)
	return s.ledger.remove(i), nil
}

// Rooms yields every room in catalog order.
func (s *State) Rooms() iter.Seq[model.Room] { return s.catalog.List() }

// AvailableRooms yields unbooked rooms in catalog order.  The sequence is
// recomputed on every iteration.
func (s *State) AvailableRooms() iter.Seq[model.Room] {
	return func(yield func(model.Room) bool) {
		for r := range s.catalog.List() {
			if r.Booked {
				continue
			}
			if !yield(r) {
				return
			}
		}
	}
}

// AllReservations yields reservations in booking order.
func (s *State) AllReservations() iter.Seq[model.Reservation] { return s.ledger.All() }

// Summary is an occupancy overview of the hotel.
type Summary struct {
	Rooms        int
	Available    int
	Booked       int
	Reservations int
	Revenue      decimal.Decimal
}

// Summary counts rooms by status and totals the amounts of all
// reservations in the ledger.
func (s *State) Summary() Summary {
	sum := Summary{Rooms: s.catalog.Len(), Reservations: s.ledger.Len(), Revenue: decimal.Zero}
	for r := range s.catalog.List() {
		if r.Booked {
			sum.Booked++
		} else {
			sum.Available++
		}
	}
	for r := range s.ledger.All() {
		sum.Revenue = sum.Revenue.Add(r.TotalAmount)
	}
	return sum
}
