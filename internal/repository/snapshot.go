package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/hotel-room-booking/internal/hotel"
	"github.com/iliyamo/hotel-room-booking/internal/model"
)

// SnapshotVersion is the schema version written by this build.
const SnapshotVersion = 1

// Snapshot is the on-disk form of the whole hotel.  The layout is explicit
// so the stored format does not follow changes to the in-memory types.
type Snapshot struct {
	Version      int                 `json:"version"`
	SavedAt      time.Time           `json:"saved_at"`
	Rooms        []RoomRecord        `json:"rooms"`
	Reservations []ReservationRecord `json:"reservations"`
}

// RoomRecord mirrors model.Room.  Price is stored for readers of the file
// and checked against the room type on load.
type RoomRecord struct {
	Number int             `json:"number"`
	Type   string          `json:"type"`
	Price  decimal.Decimal `json:"price"`
	Booked bool            `json:"booked"`
}

// ReservationRecord mirrors model.Reservation.
type ReservationRecord struct {
	ID          uuid.UUID       `json:"id"`
	GuestName   string          `json:"guest_name"`
	RoomNumber  int             `json:"room_number"`
	CheckIn     time.Time       `json:"check_in"`
	Nights      int             `json:"nights"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	PaymentRef  string          `json:"payment_ref,omitempty"`
}

// NewSnapshot copies the current state into a Snapshot.
func NewSnapshot(s *hotel.State, savedAt time.Time) Snapshot {
	snap := Snapshot{
		Version:      SnapshotVersion,
		SavedAt:      savedAt.UTC(),
		Rooms:        []RoomRecord{},
		Reservations: []ReservationRecord{},
	}
	for r := range s.Rooms() {
		snap.Rooms = append(snap.Rooms, RoomRecord{
			Number: r.Number,
			Type:   r.Type.String(),
			Price:  r.Price(),
			Booked: r.Booked,
		})
	}
	for r := range s.AllReservations() {
		snap.Reservations = append(snap.Reservations, ReservationRecord{
			ID:          r.ID,
			GuestName:   r.GuestName,
			RoomNumber:  r.RoomNumber,
			CheckIn:     r.CheckIn,
			Nights:      r.Nights,
			TotalAmount: r.TotalAmount,
			PaymentRef:  r.PaymentRef,
		})
	}
	return snap
}

// Restore rebuilds the hotel described by the snapshot.
func (snap Snapshot) Restore(opts ...hotel.Option) (*hotel.State, error) {
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, snap.Version)
	}
	rooms := make([]model.Room, 0, len(snap.Rooms))
	for _, rec := range snap.Rooms {
		typ, err := model.ParseRoomType(rec.Type)
		if err != nil {
			return nil, fmt.Errorf("room %d: %w", rec.Number, err)
		}
		if !rec.Price.Equal(typ.Price()) {
			return nil, fmt.Errorf("room %d: stored price %s does not match %s price %s", rec.Number, rec.Price, typ, typ.Price())
		}
		rooms = append(rooms, model.Room{Number: rec.Number, Type: typ, Booked: rec.Booked})
	}
	reservations := make([]model.Reservation, 0, len(snap.Reservations))
	for _, rec := range snap.Reservations {
		reservations = append(reservations, model.Reservation{
			ID:          rec.ID,
			GuestName:   rec.GuestName,
			RoomNumber:  rec.RoomNumber,
			CheckIn:     rec.CheckIn,
			Nights:      rec.Nights,
			TotalAmount: rec.TotalAmount,
			PaymentRef:  rec.PaymentRef,
		})
	}
	return hotel.Restore(rooms, reservations, opts...)
}

// Encode serialises the snapshot as indented JSON.
func (snap Snapshot) Encode() ([]byte, error) {
	return json.MarshalIndent(snap, "", "  ")
}

// DecodeSnapshot parses bytes produced by Encode.  Unknown fields are
// rejected so a file from a different program is not mistaken for ours.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if dec.More() {
		return Snapshot{}, fmt.Errorf("decode snapshot: trailing data")
	}
	if snap.Rooms == nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: missing rooms")
	}
	return snap, nil
}

// Equal reports whether two snapshots describe the same hotel, ignoring
// SavedAt.
func (snap Snapshot) Equal(other Snapshot) bool {
	if snap.Version != other.Version {
		return false
	}
	roomEq := func(a, b RoomRecord) bool {
		return a.Number == b.Number && a.Type == b.Type && a.Price.Equal(b.Price) && a.Booked == b.Booked
	}
	resEq := func(a, b ReservationRecord) bool {
		return a.ID == b.ID && a.GuestName == b.GuestName && a.RoomNumber == b.RoomNumber &&
			a.CheckIn.Equal(b.CheckIn) && a.Nights == b.Nights &&
			a.TotalAmount.Equal(b.TotalAmount) && a.PaymentRef == b.PaymentRef
	}
	return slices.EqualFunc(snap.Rooms, other.Rooms, roomEq) &&
		slices.EqualFunc(snap.Reservations, other.Reservations, resEq)
}
