package hotel

import (
	"fmt"
	"iter"

	"github.com/iliyamo/hotel-room-booking/internal/model"
)

// SeedRooms returns the fixed inventory a fresh hotel starts with: two
// rooms of each variant.
func SeedRooms() []model.Room {
	return []model.Room{
		{Number: 101, Type: model.Standard},
		{Number: 102, Type: model.Standard},
		{Number: 201, Type: model.Deluxe},
		{Number: 202, Type: model.Deluxe},
		{Number: 301, Type: model.Suite},
		{Number: 302, Type: model.Suite},
	}
}

// Catalog is the fixed, ordered set of rooms.  Lookups are linear scans;
// the catalog is small and never grows after construction.
type Catalog struct {
	rooms []model.Room
}

// NewCatalog builds a catalog from rooms in the given order.  Room numbers
// must be positive and unique and every room must have a known type.
func NewCatalog(rooms []model.Room) (*Catalog, error) {
	seen := make(map[int]bool, len(rooms))
	out := make([]model.Room, 0, len(rooms))
	for _, r := range rooms {
		if r.Number <= 0 {
			return nil, fmt.Errorf("invalid room number %d", r.Number)
		}
		if seen[r.Number] {
			return nil, fmt.Errorf("duplicate room number %d", r.Number)
		}
		if !r.Type.Valid() {
			return nil, fmt.Errorf("room %d: unknown type %d", r.Number, int(r.Type))
		}
		seen[r.Number] = true
		out = append(out, r)
	}
	return &Catalog{rooms: out}, nil
}

// Find returns a copy of the room with the given number.
func (c *Catalog) Find(number int) (model.Room, error) {
	if i := c.indexOf(number); i >= 0 {
		return c.rooms[i], nil
	}
	return model.Room{}, fmt.Errorf("room %d: %w", number, ErrRoomNotFound)
}

// List yields every room in catalog order.  Each call starts a new pass.
func (c *Catalog) List() iter.Seq[model.Room] {
	return func(yield func(model.Room) bool) {
		for _, r := range c.rooms {
			if !yield(r) {
				return
			}
		}
	}
}

// Len returns the number of rooms.
func (c *Catalog) Len() int { return len(c.rooms) }

func (c *Catalog) indexOf(number int) int {
	for i := range c.rooms {
		if c.rooms[i].Number == number {
			return i
		}
	}
	return -1
}

// setBooked updates the booked flag and reports whether the room exists.
func (c *Catalog) setBooked(number int, booked bool) bool {
	i := c.indexOf(number)
	if i < 0 {
		return false
	}
	c.rooms[i].Booked = booked
	return true
}
