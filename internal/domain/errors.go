package domain

import "errors"

// Sentinel errors for the booking core. None of these are fatal: every
// failure returns to the caller with enough information to retry or abort.
var (
	// ErrInvalidDateRange means checkout is not strictly after checkin.
	ErrInvalidDateRange = errors.New("check-out date must be after check-in date")

	// ErrNoAvailability means no room of the requested category is free
	// for the requested range.
	ErrNoAvailability = errors.New("no available rooms for category and dates")

	// ErrPaymentDeclined means the payment collaborator refused the charge;
	// no reservation was created.
	ErrPaymentDeclined = errors.New("payment declined")

	// ErrNotFound means the reservation id is not in the store.
	ErrNotFound = errors.New("reservation not found")

	// ErrInvalidSelection means the room selector returned an index outside
	// the candidate list.
	ErrInvalidSelection = errors.New("room selection out of range")

	// ErrPersistence marks a state save that failed after the in-memory
	// commit succeeded. The mutation stands but is not durable.
	ErrPersistence = errors.New("state not persisted")
)
