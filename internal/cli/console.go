// Package cli is the interactive front-end: a numbered menu over the booking
// service. All input and output go through injected reader/writer so the
// flow is testable without a terminal.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"roomdesk/internal/app"
	"roomdesk/internal/domain"
)

type Console struct {
	in  *bufio.Scanner
	out io.Writer
	svc *app.BookingService
}

func New(in io.Reader, out io.Writer, svc *app.BookingService) *Console {
	return &Console{in: bufio.NewScanner(in), out: out, svc: svc}
}

// Run drives the menu loop until the user exits or input ends. State is
// flushed to the store on the way out.
func (c *Console) Run(ctx context.Context) {
	for {
		c.printf("\n--- Hotel Reservation System ---\n")
		c.printf("1. Search and Book Room\n")
		c.printf("2. Cancel Reservation\n")
		c.printf("3. View All Reservations\n")
		c.printf("4. Exit\n")

		choice, ok := c.promptInt(1, 4)
		if !ok {
			return // input closed
		}
		switch choice {
		case 1:
			c.makeReservation(ctx)
		case 2:
			c.cancelReservation(ctx)
		case 3:
			c.viewReservations(ctx)
		case 4:
			if err := c.svc.Flush(ctx); err != nil {
				log.Warn().Err(err).Msg("final save failed")
			}
			c.printf("Exiting... Goodbye!\n")
			return
		}
	}
}

func (c *Console) makeReservation(ctx context.Context) {
	c.printf("Enter your name:\n")
	guest, ok := c.readLine()
	if !ok || guest == "" {
		return
	}

	c.printf("Choose room category:\n")
	cats := domain.Categories()
	for i, cat := range cats {
		c.printf("%d. %s\n", i+1, cat)
	}
	pick, ok := c.promptInt(1, len(cats))
	if !ok {
		return
	}
	category := cats[pick-1]

	checkIn, ok := c.promptDate("Enter check-in date (yyyy-MM-dd):")
	if !ok {
		return
	}
	checkOut, ok := c.promptDate("Enter check-out date (yyyy-MM-dd):")
	if !ok {
		return
	}
	if !checkOut.After(checkIn) {
		c.printf("Check-out date must be after check-in date.\n")
		return
	}

	res, err := c.svc.Book(ctx, guest, category, checkIn, checkOut, c.selector(), c.payment())
	switch {
	case err == nil:
		c.printf("Reservation successful! Your reservation ID is %s\n", res.ID)
	case errors.Is(err, domain.ErrNoAvailability):
		c.printf("No available rooms of that category for given dates.\n")
	case errors.Is(err, domain.ErrPaymentDeclined):
		c.printf("Payment failed. Reservation not completed.\n")
	case errors.Is(err, domain.ErrPersistence):
		c.printf("Reservation %s recorded but could not be saved to disk.\n", res.ID)
	case errors.Is(err, errInputClosed):
		return
	default:
		c.printf("Booking failed: %v\n", err)
	}
}

func (c *Console) cancelReservation(ctx context.Context) {
	c.printf("Enter your reservation ID:\n")
	id, ok := c.readLine()
	if !ok {
		return
	}

	// probe without committing so we only ask to confirm a real reservation
	if _, err := c.svc.Cancel(ctx, id, false); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.printf("Reservation ID not found.\n")
			return
		}
		c.printf("Cancellation failed: %v\n", err)
		return
	}

	c.printf("Are you sure you want to cancel your reservation? (y/n)\n")
	if !c.confirm() {
		c.printf("Cancellation aborted.\n")
		return
	}
	if _, err := c.svc.Cancel(ctx, id, true); err != nil {
		c.printf("Cancellation failed: %v\n", err)
		return
	}
	c.printf("Reservation cancelled successfully.\n")
}

func (c *Console) viewReservations(ctx context.Context) {
	all := c.svc.ListAll(ctx)
	if len(all) == 0 {
		c.printf("No reservations found.\n")
		return
	}
	c.printf("All Reservations:\n")
	for _, res := range all {
		c.printf("%s\n", res)
	}
}

// selector lists the candidates numbered from 1 and prompts for a pick.
func (c *Console) selector() domain.RoomSelector {
	return domain.SelectorFunc(func(rooms []domain.Room) (int, error) {
		c.printf("Available rooms:\n")
		for i, r := range rooms {
			c.printf("%d. %s\n", i+1, r)
		}
		c.printf("Select room to book (enter number):\n")
		pick, ok := c.promptInt(1, len(rooms))
		if !ok {
			return -1, errInputClosed
		}
		return pick - 1, nil
	})
}

// payment shows the quote and treats a y answer as an approved charge,
// matching the original simulated flow.
func (c *Console) payment() domain.PaymentGateway {
	return paymentPrompt{c}
}

type paymentPrompt struct{ c *Console }

func (p paymentPrompt) Authorize(ctx context.Context, room domain.Room, checkIn, checkOut time.Time, amount int64) (bool, error) {
	nights := domain.Nights(checkIn, checkOut)
	p.c.printf("Total cost for %d night(s) in %s: $%d.00\n", nights, room.Category, amount)
	p.c.printf("Proceed with payment? (y/n)\n")
	if !p.c.confirm() {
		return false, nil
	}
	p.c.printf("Payment successful.\n")
	return true, nil
}

var errInputClosed = errors.New("input closed")

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

// promptInt re-prompts until it reads an integer within [min, max].
func (c *Console) promptInt(min, max int) (int, bool) {
	for {
		c.printf("Enter choice (%d-%d): ", min, max)
		line, ok := c.readLine()
		if !ok {
			return 0, false
		}
		if v, err := strconv.Atoi(line); err == nil && v >= min && v <= max {
			return v, true
		}
		c.printf("Invalid input. Try again.\n")
	}
}

// promptDate re-prompts until it reads a valid YYYY-MM-DD date.
func (c *Console) promptDate(label string) (time.Time, bool) {
	c.printf("%s\n", label)
	for {
		line, ok := c.readLine()
		if !ok {
			return time.Time{}, false
		}
		if d, err := domain.ParseDate(line); err == nil {
			return d, true
		}
		c.printf("Invalid date format. Please use yyyy-MM-dd.\n")
	}
}

func (c *Console) confirm() bool {
	line, ok := c.readLine()
	return ok && strings.EqualFold(line, "y")
}
