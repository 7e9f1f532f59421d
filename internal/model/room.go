package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RoomType is the closed set of room variants offered by the hotel.  The
// variant alone determines the nightly price and the amenities, so neither
// is stored on the room itself.
type RoomType int

const (
	Standard RoomType = iota + 1
	Deluxe
	Suite
)

// roomTypeInfo holds the constants carried by each variant.
var roomTypeInfo = map[RoomType]struct {
	Name      string
	Price     int64
	Amenities string
}{
	Standard: {Name: "Standard", Price: 2000, Amenities: "AC, Wi-Fi, Television"},
	Deluxe:   {Name: "Deluxe", Price: 3500, Amenities: "AC, Wi-Fi, TV, Mini-Fridge, Breakfast"},
	Suite:    {Name: "Suite", Price: 6000, Amenities: "AC, Wi-Fi, TV, Kitchenette, Jacuzzi, Room-Service"},
}

// RoomTypes lists every variant in display order.
func RoomTypes() []RoomType { return []RoomType{Standard, Deluxe, Suite} }

// Valid reports whether t is one of the known variants.
func (t RoomType) Valid() bool {
	_, ok := roomTypeInfo[t]
	return ok
}

// String returns the stable name used in snapshots and events.
func (t RoomType) String() string {
	if info, ok := roomTypeInfo[t]; ok {
		return info.Name
	}
	return fmt.Sprintf("RoomType(%d)", int(t))
}

// Price returns the fixed nightly price for the variant.  Unknown variants
// price at zero.
func (t RoomType) Price() decimal.Decimal {
	return decimal.NewFromInt(roomTypeInfo[t].Price)
}

// Amenities returns the descriptive amenity list for the variant.
func (t RoomType) Amenities() string { return roomTypeInfo[t].Amenities }

// ParseRoomType maps a stored name back to its variant.
func ParseRoomType(name string) (RoomType, error) {
	for _, t := range RoomTypes() {
		if roomTypeInfo[t].Name == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown room type %q", name)
}

// Room is a single bookable room in the catalog.
//
// Fields:
//
//	Number – unique room number, fixed at catalog creation.
//	Type   – room variant; price and amenities derive from it.
//	Booked – true while an active reservation references the room.
type Room struct {
	Number int
	Type   RoomType
	Booked bool
}

// Price returns the nightly price of the room.
func (r Room) Price() decimal.Decimal { return r.Type.Price() }

// Amenities returns the amenity description of the room.
func (r Room) Amenities() string { return r.Type.Amenities() }
