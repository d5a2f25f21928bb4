package app

import (
	"time"

	"roomdesk/internal/domain"
)

// availableRooms computes the subset of catalog rooms of the given category
// with no overlapping reservation, preserving catalog order. Callers
// validate checkOut > checkIn first. Pure read, no side effects.
func availableRooms(catalog []domain.Room, reservations map[string]domain.Reservation, c domain.Category, checkIn, checkOut time.Time) []domain.Room {
	out := make([]domain.Room, 0, len(catalog))
rooms:
	for _, room := range catalog {
		if room.Category != c {
			continue
		}
		for _, res := range reservations {
			if res.RoomNumber == room.Number && res.Overlaps(checkIn, checkOut) {
				continue rooms
			}
		}
		out = append(out, room)
	}
	return out
}
