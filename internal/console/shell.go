// Package console is the interactive menu around the hotel state.  It owns
// no business rules: every action calls into hotel.State and reports the
// outcome as a message.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/iliyamo/hotel-room-booking/internal/hotel"
	"github.com/iliyamo/hotel-room-booking/internal/model"
	"github.com/iliyamo/hotel-room-booking/internal/queue"
	"github.com/iliyamo/hotel-room-booking/internal/service"
)

// ErrInputClosed is returned by Run when the input ends before the user
// chooses Save & Exit.  Nothing is saved in that case.
var ErrInputClosed = errors.New("input closed before save")

// Saver persists the hotel state.
type Saver interface {
	Save(ctx context.Context, s *hotel.State) error
}

const currency = "₹"

// saveTimeout bounds one Save & Exit attempt.
const saveTimeout = 30 * time.Second

const menu = `
===== HOTEL RESERVATION MENU =====
1. View Available Rooms
2. Book Room
3. Cancel Booking
4. View All Reservations
5. Save & Exit
Enter choice: `

// Shell runs the menu loop for one session.
type Shell struct {
	state  *hotel.State
	store  Saver
	events service.EventPublisher
	in     *bufio.Scanner
	out    io.Writer
	now    func() time.Time
}

// New returns a Shell reading commands from in and writing to out.  A nil
// events publisher disables booking events.
func New(state *hotel.State, store Saver, events service.EventPublisher, in io.Reader, out io.Writer) *Shell {
	if events == nil {
		events = service.NopPublisher{}
	}
	return &Shell{
		state:  state,
		store:  store,
		events: events,
		in:     bufio.NewScanner(in),
		out:    out,
		now:    time.Now,
	}
}

// Run shows the menu until the state has been saved through Save & Exit.
// A failed save keeps the loop running so the user can retry.
func (sh *Shell) Run(ctx context.Context) error {
	for {
		sh.print(menu)
		line, err := sh.readLine()
		if err != nil {
			return err
		}
		switch strings.TrimSpace(line) {
		case "1":
			sh.showAvailableRooms()
		case "2":
			if err := sh.bookRoom(ctx); err != nil {
				return err
			}
		case "3":
			if err := sh.cancelBooking(ctx); err != nil {
				return err
			}
		case "4":
			sh.showAllReservations()
		case "5":
			if err := sh.save(ctx); err != nil {
				sh.println("Error saving data: " + err.Error())
				continue
			}
			sh.println("Data saved successfully.")
			sh.println("Goodbye!")
			return nil
		default:
			sh.println("Invalid option!")
		}
	}
}

// save ignores cancellation of ctx so Save & Exit still works after an
// interrupt.
func (sh *Shell) save(ctx context.Context) error {
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
	defer cancel()
	return sh.store.Save(saveCtx, sh.state)
}

func (sh *Shell) showAvailableRooms() {
	sh.println("\n--- Available Rooms ---")
	found := false
	for r := range sh.state.AvailableRooms() {
		sh.println(fmt.Sprintf("Room %d (%s) %s%s | %s", r.Number, r.Type, currency, r.Price().StringFixed(2), r.Amenities()))
		found = true
	}
	if !found {
		sh.println("No available rooms.")
	}
}

func (sh *Shell) bookRoom(ctx context.Context) error {
	sh.print("Enter Guest Name: ")
	guest, err := sh.readLine()
	if err != nil {
		return err
	}
	roomNum, ok, err := sh.readInt("Enter Room Number: ")
	if err != nil || !ok {
		return err
	}
	nights, ok, err := sh.readInt("Enter No. of Nights: ")
	if err != nil || !ok {
		return err
	}

	res, err := sh.state.Book(ctx, guest, roomNum, nights)
	if err != nil {
		sh.println(bookingMessage(err, roomNum))
		return nil
	}
	sh.println(fmt.Sprintf("Payment of %s%s successful (ref %s).", currency, res.TotalAmount.StringFixed(2), res.PaymentRef))
	sh.println(fmt.Sprintf("Room %d booked successfully for %s!", res.RoomNumber, res.GuestName))

	var room model.Room
	if r, err := sh.state.Catalog().Find(res.RoomNumber); err == nil {
		room = r
	}
	if err := sh.events.PublishBookingConfirmed(ctx, queue.NewBookingConfirmed(res, room, sh.now())); err != nil {
		log.Printf("console: booking event not published: %v", err)
	}
	return nil
}

func (sh *Shell) cancelBooking(ctx context.Context) error {
	roomNum, ok, err := sh.readInt("Enter Room Number to Cancel: ")
	if err != nil || !ok {
		return err
	}
	res, err := sh.state.Cancel(roomNum)
	if err != nil {
		if errors.Is(err, hotel.ErrReservationNotFound) {
			sh.println(fmt.Sprintf("No reservation found for Room %d", roomNum))
		} else {
			sh.println("Cancellation failed: " + err.Error())
		}
		return nil
	}
	sh.println(fmt.Sprintf("Booking for Room %d cancelled.", roomNum))

	var room model.Room
	if r, err := sh.state.Catalog().Find(roomNum); err == nil {
		room = r
	}
	if err := sh.events.PublishBookingCancelled(ctx, queue.NewBookingCancelled(res, room, sh.now())); err != nil {
		log.Printf("console: cancellation event not published: %v", err)
	}
	return nil
}

func (sh *Shell) showAllReservations() {
	sh.println("\n--- All Reservations ---")
	sum := sh.state.Summary()
	if sum.Reservations == 0 {
		sh.println("No reservations yet!")
		return
	}
	for r := range sh.state.AllReservations() {
		sh.println(formatReservation(r))
	}
	sh.println(fmt.Sprintf("Occupancy: %d/%d rooms booked | Total: %s%s",
		sum.Booked, sum.Rooms, currency, sum.Revenue.StringFixed(2)))
}

func formatReservation(r model.Reservation) string {
	return fmt.Sprintf("Guest: %s | Room: %d | Nights: %d | Amount: %s%s | Date: %s",
		r.GuestName, r.RoomNumber, r.Nights, currency, r.TotalAmount.StringFixed(2),
		r.CheckIn.Local().Format("2006-01-02 15:04"))
}

func bookingMessage(err error, roomNum int) string {
	switch {
	case errors.Is(err, hotel.ErrRoomNotFound):
		return "Invalid room number!"
	case errors.Is(err, hotel.ErrRoomAlreadyBooked):
		return "Room already booked!"
	case errors.Is(err, hotel.ErrInvalidNights):
		return "Number of nights must be at least 1!"
	case errors.Is(err, hotel.ErrInvalidGuestName):
		return "Guest name is required!"
	case errors.Is(err, hotel.ErrPaymentDeclined):
		return fmt.Sprintf("Payment failed, room %d was not booked.", roomNum)
	}
	return "Booking failed: " + err.Error()
}

// readInt prompts for a number.  ok is false when the input was not a
// number; the message has already been shown in that case.
func (sh *Shell) readInt(prompt string) (n int, ok bool, err error) {
	sh.print(prompt)
	line, err := sh.readLine()
	if err != nil {
		return 0, false, err
	}
	n, convErr := strconv.Atoi(strings.TrimSpace(line))
	if convErr != nil {
		sh.println("Please enter a whole number.")
		return 0, false, nil
	}
	return n, true, nil
}

func (sh *Shell) readLine() (string, error) {
	if sh.in.Scan() {
		return sh.in.Text(), nil
	}
	if err := sh.in.Err(); err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return "", ErrInputClosed
}

func (sh *Shell) print(s string)   { fmt.Fprint(sh.out, s) }
func (sh *Shell) println(s string) { fmt.Fprintln(sh.out, s) }
