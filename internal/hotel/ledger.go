package hotel

import (
	"iter"

	"github.com/iliyamo/hotel-room-booking/internal/model"
)

// Ledger keeps reservations in booking order.
type Ledger struct {
	entries []model.Reservation
}

func (l *Ledger) append(r model.Reservation) { l.entries = append(l.entries, r) }

// findByRoom returns the index of the first reservation for the room, or -1.
func (l *Ledger) findByRoom(number int) int {
	for i := range l.entries {
		if l.entries[i].RoomNumber == number {
			return i
		}
	}
	return -1
}

func (l *Ledger) remove(i int) model.Reservation {
	r := l.entries[i]
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	return r
}

// countByRoom returns how many reservations reference the room.
func (l *Ledger) countByRoom(number int) int {
	n := 0
	for i := range l.entries {
		if l.entries[i].RoomNumber == number {
			n++
		}
	}
	return n
}

// Len returns the number of reservations.
func (l *Ledger) Len() int { return len(l.entries) }

// All yields reservations in insertion order.
func (l *Ledger) All() iter.Seq[model.Reservation] {
	return func(yield func(model.Reservation) bool) {
		for _, r := range l.entries {
			if !yield(r) {
				return
			}
		}
	}
}
