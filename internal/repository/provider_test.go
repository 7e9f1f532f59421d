package repository

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"slices"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/hotel-room-booking/internal/hotel"
)

type memBackend struct {
	data     []byte
	readErr  error
	writeErr error
	writes   int
}

func (m *memBackend) Location() string { return "mem" }

func (m *memBackend) Read(context.Context) ([]byte, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	if m.data == nil {
		return nil, ErrSnapshotNotFound
	}
	return m.data, nil
}

func (m *memBackend) Write(_ context.Context, data []byte) error {
	m.writes++
	if m.writeErr != nil {
		return m.writeErr
	}
	m.data = slices.Clone(data)
	return nil
}

func fastOpts() []hotel.Option {
	return []hotel.Option{hotel.WithPayment(hotel.SimulatedPayment{})}
}

func TestProviderSaveWrapsBackendError(t *testing.T) {
	b := &memBackend{writeErr: errors.New("disk full")}
	p := NewProvider(b)
	err := p.Save(context.Background(), hotel.New(fastOpts()...))
	if !errors.Is(err, ErrIO) {
		t.Fatalf("Save error = %v, want ErrIO", err)
	}
	if b.writes != 1 {
		t.Errorf("expected a single write attempt, got %d", b.writes)
	}
}

func TestProviderLoadReadError(t *testing.T) {
	p := NewProvider(&memBackend{readErr: os.ErrPermission})
	if _, ok := p.Load(context.Background()); ok {
		t.Error("Load should report no state on read failure")
	}
}

func TestProviderRoundTripPreservesFields(t *testing.T) {
	checkIn := time.Date(2025, 6, 1, 9, 30, 15, 123456789, time.UTC)
	s := hotel.New(append(fastOpts(), hotel.WithClock(func() time.Time { return checkIn }))...)
	booked, err := s.Book(context.Background(), "Dana", 302, 3)
	if err != nil {
		t.Fatalf("Book: %v", err)
	}

	b := &memBackend{}
	p := NewProvider(b)
	p.now = func() time.Time { return checkIn.Add(time.Hour) }
	if err := p.Save(context.Background(), s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b.data, &raw); err != nil {
		t.Fatalf("snapshot is not JSON: %v", err)
	}
	if string(raw["version"]) != "1" {
		t.Errorf("version = %s, want 1", raw["version"])
	}

	loaded, ok := p.Load(context.Background(), fastOpts()...)
	if !ok {
		t.Fatal("Load failed")
	}
	got := slices.Collect(loaded.AllReservations())
	if len(got) != 1 {
		t.Fatalf("expected 1 reservation, got %d", len(got))
	}
	r := got[0]
	if r.ID != booked.ID || r.GuestName != "Dana" || r.RoomNumber != 302 || r.Nights != 3 || r.PaymentRef != booked.PaymentRef {
		t.Errorf("reservation mismatch: %+v vs %+v", r, booked)
	}
	if !r.CheckIn.Equal(checkIn) {
		t.Errorf("CheckIn = %v, want %v", r.CheckIn, checkIn)
	}
	if !r.TotalAmount.Equal(decimal.NewFromInt(18000)) {
		t.Errorf("TotalAmount = %s, want 18000", r.TotalAmount)
	}
	room, _ := loaded.Catalog().Find(302)
	if !room.Booked {
		t.Error("room 302 should be booked after load")
	}
}

func TestDecodeSnapshotRejectsTrailingData(t *testing.T) {
	data, err := NewSnapshot(hotel.New(fastOpts()...), time.Now()).Encode()
	if err != nil {
		t.Fatal(err)
	}
	data = append(data, []byte(`{"version":1}`)...)
	if _, err := DecodeSnapshot(data); err == nil {
		t.Error("expected error for trailing data")
	}
}

func TestSnapshotEqualIgnoresSavedAt(t *testing.T) {
	s := hotel.New(fastOpts()...)
	a := NewSnapshot(s, time.Unix(0, 0))
	b := NewSnapshot(s, time.Now())
	if !a.Equal(b) {
		t.Error("snapshots of the same state should be equal")
	}
	b.Rooms[0].Booked = true
	if a.Equal(b) {
		t.Error("snapshots with different booked flags should differ")
	}
}
