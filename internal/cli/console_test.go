package cli_test

import (
	"context"
	"strings"
	"testing"

	"roomdesk/internal/app"
	"roomdesk/internal/cli"
	filestore "roomdesk/internal/storage/file"
)

func newConsoleService(t *testing.T) *app.BookingService {
	t.Helper()
	store, err := filestore.New(t.TempDir())
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	svc, err := app.NewBookingService(context.Background(), store, nil, 0)
	if err != nil {
		t.Fatalf("NewBookingService: %v", err)
	}
	return svc
}

// run feeds scripted input through the console and returns everything printed.
func run(t *testing.T, svc *app.BookingService, script ...string) string {
	t.Helper()
	var out strings.Builder
	c := cli.New(strings.NewReader(strings.Join(script, "\n")+"\n"), &out, svc)
	c.Run(context.Background())
	return out.String()
}

func TestConsole_BookAndView(t *testing.T) {
	svc := newConsoleService(t)
	out := run(t, svc,
		"1",          // search and book
		"Ada",        // guest
		"1",          // STANDARD
		"2024-01-10", // check-in
		"2024-01-12", // check-out
		"1",          // first candidate (room 101)
		"y",          // pay
		"3",          // view all
		"4",          // exit
	)

	if !strings.Contains(out, "Total cost for 2 night(s) in STANDARD: $200.00") {
		t.Fatalf("quote missing:\n%s", out)
	}
	if !strings.Contains(out, "Reservation successful!") {
		t.Fatalf("booking did not complete:\n%s", out)
	}
	if !strings.Contains(out, "room 101") || !strings.Contains(out, "[PAID]") {
		t.Fatalf("listing missing booked room:\n%s", out)
	}

	all := svc.ListAll(context.Background())
	if len(all) != 1 || all[0].RoomNumber != 101 || !all[0].Paid {
		t.Fatalf("unexpected state: %+v", all)
	}
}

func TestConsole_PaymentDeclineLeavesNoReservation(t *testing.T) {
	svc := newConsoleService(t)
	out := run(t, svc,
		"1", "Ada", "2", "2024-01-10", "2024-01-12", "1",
		"n", // decline payment
		"4",
	)
	if !strings.Contains(out, "Payment failed. Reservation not completed.") {
		t.Fatalf("decline message missing:\n%s", out)
	}
	if len(svc.ListAll(context.Background())) != 0 {
		t.Fatalf("reservation stored despite declined payment")
	}
}

func TestConsole_InvalidDateRangeReturnsToMenu(t *testing.T) {
	svc := newConsoleService(t)
	out := run(t, svc,
		"1", "Ada", "1", "2024-01-12", "2024-01-12",
		"4",
	)
	if !strings.Contains(out, "Check-out date must be after check-in date.") {
		t.Fatalf("validation message missing:\n%s", out)
	}
	if len(svc.ListAll(context.Background())) != 0 {
		t.Fatalf("reservation stored despite invalid range")
	}
}

func TestConsole_RepromptsOnBadInput(t *testing.T) {
	svc := newConsoleService(t)
	out := run(t, svc,
		"9",          // out of menu bounds
		"x",          // not a number
		"1",          // finally valid
		"Ada",
		"1",
		"not-a-date", // re-prompt
		"2024-01-10",
		"2024-01-12",
		"1",
		"y",
		"4",
	)
	if strings.Count(out, "Invalid input. Try again.") < 2 {
		t.Fatalf("expected menu re-prompts:\n%s", out)
	}
	if !strings.Contains(out, "Invalid date format. Please use yyyy-MM-dd.") {
		t.Fatalf("expected date re-prompt:\n%s", out)
	}
	if !strings.Contains(out, "Reservation successful!") {
		t.Fatalf("booking did not complete:\n%s", out)
	}
}

func TestConsole_CancelFlow(t *testing.T) {
	svc := newConsoleService(t)
	run(t, svc, "1", "Ada", "1", "2024-01-10", "2024-01-12", "1", "y", "4")
	id := svc.ListAll(context.Background())[0].ID

	// unknown id
	out := run(t, svc, "2", "RES-unknown", "4")
	if !strings.Contains(out, "Reservation ID not found.") {
		t.Fatalf("not-found message missing:\n%s", out)
	}

	// declined confirmation keeps the reservation
	out = run(t, svc, "2", id, "n", "4")
	if !strings.Contains(out, "Cancellation aborted.") {
		t.Fatalf("abort message missing:\n%s", out)
	}
	if len(svc.ListAll(context.Background())) != 1 {
		t.Fatalf("reservation removed despite aborted cancel")
	}

	// confirmed cancellation removes it
	out = run(t, svc, "2", id, "y", "4")
	if !strings.Contains(out, "Reservation cancelled successfully.") {
		t.Fatalf("success message missing:\n%s", out)
	}
	if len(svc.ListAll(context.Background())) != 0 {
		t.Fatalf("reservation still present after confirmed cancel")
	}

	// the freed room books again for the exact former range
	out = run(t, svc, "1", "Bea", "1", "2024-01-10", "2024-01-12", "1", "y", "4")
	if !strings.Contains(out, "Reservation successful!") {
		t.Fatalf("rebooking freed room failed:\n%s", out)
	}
}

func TestConsole_ViewEmpty(t *testing.T) {
	svc := newConsoleService(t)
	out := run(t, svc, "3", "4")
	if !strings.Contains(out, "No reservations found.") {
		t.Fatalf("empty listing message missing:\n%s", out)
	}
	if !strings.Contains(out, "Exiting... Goodbye!") {
		t.Fatalf("exit message missing:\n%s", out)
	}
}
