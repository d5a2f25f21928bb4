package domain

import (
	"context"
	"time"
)

// StateStore persists the catalog and the reservation map. Implementations
// are keyed blob stores; corrupt or missing data must surface as an error
// (or ok=false for an absent catalog), never panic.
type StateStore interface {
	// LoadCatalog returns the room catalog. ok is false when no catalog
	// has ever been saved, in which case the caller seeds defaults.
	LoadCatalog(ctx context.Context) (rooms []Room, ok bool, err error)
	SaveCatalog(ctx context.Context, rooms []Room) error

	// LoadReservations returns the live reservation map; an absent key
	// yields an empty map and no error.
	LoadReservations(ctx context.Context) (map[string]Reservation, error)
	SaveReservations(ctx context.Context, all map[string]Reservation) error
}

// PaymentGateway authorizes a charge for a stay. approved=false with a nil
// error is a clean decline; a non-nil error means the gateway could not be
// reached or answered out of protocol.
type PaymentGateway interface {
	Authorize(ctx context.Context, room Room, checkIn, checkOut time.Time, amount int64) (approved bool, err error)
}

// RoomSelector picks one room from a non-empty candidate list and returns
// its index. An index outside [0, len) is rejected by the booking service.
type RoomSelector interface {
	Select(rooms []Room) (int, error)
}

// SelectorFunc adapts a plain function to the RoomSelector interface.
type SelectorFunc func(rooms []Room) (int, error)

func (f SelectorFunc) Select(rooms []Room) (int, error) { return f(rooms) }

// Cache is a read-through cache for listing snapshots. Get reports a hit
// and decodes the cached JSON into dst.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
