package repository_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/iliyamo/hotel-room-booking/internal/hotel"
	"github.com/iliyamo/hotel-room-booking/internal/repository"
)

func testOpts() []hotel.Option {
	return []hotel.Option{hotel.WithPayment(hotel.SimulatedPayment{})}
}

func bookedHotel(t *testing.T) *hotel.State {
	t.Helper()
	s := hotel.New(testOpts()...)
	ctx := context.Background()
	for _, b := range []struct {
		guest  string
		room   int
		nights int
	}{{"Alice", 101, 2}, {"Bob", 301, 1}, {"Carol", 202, 4}} {
		if _, err := s.Book(ctx, b.guest, b.room, b.nights); err != nil {
			t.Fatalf("Book %d: %v", b.room, err)
		}
	}
	return s
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hotel.json")
	p := repository.NewProvider(repository.NewFileBackend(path))
	ctx := context.Background()

	orig := bookedHotel(t)
	if err := p.Save(ctx, orig); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, ok := p.Load(ctx, testOpts()...)
	if !ok {
		t.Fatal("Load reported no state after Save")
	}

	want := repository.NewSnapshot(orig, time.Now())
	got := repository.NewSnapshot(loaded, time.Now())
	if !want.Equal(got) {
		t.Errorf("round trip mismatch:\nwant %+v\n got %+v", want, got)
	}
	if names := listDir(t, filepath.Dir(path)); !slices.Equal(names, []string{"hotel.json"}) {
		t.Errorf("unexpected files after save: %v", names)
	}
}

func TestFileSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hotel.json")
	p := repository.NewProvider(repository.NewFileBackend(path))
	ctx := context.Background()

	s := bookedHotel(t)
	if err := p.Save(ctx, s); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := s.Cancel(101); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if err := p.Save(ctx, s); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	loaded, ok := p.Load(ctx, testOpts()...)
	if !ok {
		t.Fatal("Load failed")
	}
	if n := len(slices.Collect(loaded.AllReservations())); n != 2 {
		t.Errorf("expected 2 reservations, got %d", n)
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.json")
	p := repository.NewProvider(repository.NewFileBackend(path))

	if _, ok := p.Load(context.Background()); ok {
		t.Fatal("Load should report no state for a missing file")
	}
	s, loaded := p.LoadOrNew(context.Background(), testOpts()...)
	if loaded {
		t.Error("LoadOrNew should report a fresh state")
	}
	rooms := slices.Collect(s.Rooms())
	if len(rooms) != 6 {
		t.Fatalf("expected 6 rooms, got %d", len(rooms))
	}
	for _, r := range rooms {
		if r.Booked {
			t.Errorf("room %d should be free", r.Number)
		}
	}
	if n := len(slices.Collect(s.AllReservations())); n != 0 {
		t.Errorf("expected empty ledger, got %d", n)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"garbage", "\xac\xed\x00\x05sr\x00"},
		{"empty", ""},
		{"wrong version", `{"version":99,"saved_at":"2025-01-01T00:00:00Z","rooms":[],"reservations":[]}`},
		{"unknown field", `{"version":1,"rooms":[],"reservations":[],"extra":true}`},
		{"unknown room type", `{"version":1,"rooms":[{"number":1,"type":"Penthouse","price":"1","booked":false}],"reservations":[]}`},
		{"price mismatch", `{"version":1,"rooms":[{"number":101,"type":"Standard","price":"10","booked":false}],"reservations":[]}`},
		{"booked without reservation", `{"version":1,"rooms":[{"number":101,"type":"Standard","price":"2000","booked":true}],"reservations":[]}`},
		{"missing rooms", `{"version":1,"reservations":[]}`},
		{"blank guest name", `{"version":1,"rooms":[{"number":101,"type":"Standard","price":"2000","booked":true}],"reservations":[{"id":"6f1c2a8e-3b7d-4e5f-9a01-23456789abcd","guest_name":"","room_number":101,"check_in":"2025-01-01T00:00:00Z","nights":2,"total_amount":"4000"}]}`},
		{"total mismatch", `{"version":1,"rooms":[{"number":101,"type":"Standard","price":"2000","booked":true}],"reservations":[{"id":"6f1c2a8e-3b7d-4e5f-9a01-23456789abcd","guest_name":"Alice","room_number":101,"check_in":"2025-01-01T00:00:00Z","nights":2,"total_amount":"1"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "hotel.json")
			if err := os.WriteFile(path, []byte(tt.data), 0o644); err != nil {
				t.Fatal(err)
			}
			p := repository.NewProvider(repository.NewFileBackend(path))
			if _, ok := p.Load(context.Background()); ok {
				t.Error("Load should reject the snapshot")
			}
			if _, loaded := p.LoadOrNew(context.Background(), testOpts()...); loaded {
				t.Error("LoadOrNew should fall back to a fresh state")
			}
		})
	}
}

func TestFailedSaveLeavesTargetUntouched(t *testing.T) {
	dir := t.TempDir()
	// A non-empty directory at the target path makes the final rename fail.
	target := filepath.Join(dir, "hotel.json")
	if err := os.MkdirAll(filepath.Join(target, "keep"), 0o755); err != nil {
		t.Fatal(err)
	}
	p := repository.NewProvider(repository.NewFileBackend(target))

	s := bookedHotel(t)
	before := repository.NewSnapshot(s, time.Now())
	err := p.Save(context.Background(), s)
	if !errors.Is(err, repository.ErrIO) {
		t.Fatalf("Save error = %v, want ErrIO", err)
	}
	if _, statErr := os.Stat(filepath.Join(target, "keep")); statErr != nil {
		t.Errorf("target was modified: %v", statErr)
	}
	for _, name := range listDir(t, dir) {
		if strings.HasSuffix(name, ".tmp") {
			t.Errorf("temp file %s left behind", name)
		}
	}
	if after := repository.NewSnapshot(s, time.Now()); !before.Equal(after) {
		t.Error("failed save changed the in-memory state")
	}
}

func TestFileBackendCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "hotel.json")
	p := repository.NewProvider(repository.NewFileBackend(path))
	if err := p.Save(context.Background(), hotel.New(testOpts()...)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("snapshot not written: %v", err)
	}
}

func TestFileBackendDefaultPath(t *testing.T) {
	if got := repository.NewFileBackend("").Location(); got != repository.DefaultDataFile {
		t.Errorf("Location() = %q, want %q", got, repository.DefaultDataFile)
	}
}
