package domain

import (
	"fmt"
	"time"
)

// DateLayout is the textual form accepted everywhere dates cross a boundary.
const DateLayout = "2006-01-02"

// Reservation is created only after a successful payment; there is no
// pending state. Once stored it is immutable until cancelled.
type Reservation struct {
	ID         string    `json:"id"`
	GuestName  string    `json:"guest_name"`
	RoomNumber int       `json:"room_number"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
	Paid       bool      `json:"paid"`
}

// Overlaps reports whether the half-open stay [checkIn, checkOut) collides
// with this reservation's range. The checkout day is shared: a room checked
// out on day D is free for a new check-in on day D, so adjacent stays on the
// same room do not overlap.
func (r Reservation) Overlaps(checkIn, checkOut time.Time) bool {
	return checkOut.After(r.CheckIn) && checkIn.Before(r.CheckOut)
}

func (r Reservation) String() string {
	paid := "[NOT PAID]"
	if r.Paid {
		paid = "[PAID]"
	}
	return fmt.Sprintf("Reservation %s for %s, room %d, from %s to %s %s",
		r.ID, r.GuestName, r.RoomNumber,
		r.CheckIn.Format(DateLayout), r.CheckOut.Format(DateLayout), paid)
}

// Nights returns the stay length in whole days. Callers validate the range
// first, so the result is >= 1 for any bookable stay.
func Nights(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours() / 24)
}

// ParseDate parses a YYYY-MM-DD date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}
