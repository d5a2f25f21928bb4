package app

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"roomdesk/internal/domain"
)

const listCacheKey = "reservations:all"

// BookingService owns the in-memory catalog and reservation state and is the
// only writer to the state store. All mutations happen under one write lock
// spanning the availability check through commit and persist, so no two
// overlapping reservations for the same room can ever both commit.
type BookingService struct {
	mu           sync.RWMutex
	catalog      []domain.Room
	reservations map[string]domain.Reservation

	store    domain.StateStore
	cache    domain.Cache // optional; nil disables caching
	cacheTTL time.Duration
}

// NewBookingService loads state from the store. An absent catalog is seeded
// with the defaults and saved; corrupt or unreadable reservations degrade to
// an empty map. Neither is fatal.
func NewBookingService(ctx context.Context, store domain.StateStore, cache domain.Cache, cacheTTL time.Duration) (*BookingService, error) {
	s := &BookingService{store: store, cache: cache, cacheTTL: cacheTTL}

	rooms, ok, err := store.LoadCatalog(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("catalog load failed, seeding defaults")
	}
	if err != nil || !ok || len(rooms) == 0 {
		rooms = domain.DefaultCatalog()
		if serr := store.SaveCatalog(ctx, rooms); serr != nil {
			log.Warn().Err(serr).Msg("seeded catalog not persisted")
		}
	}
	s.catalog = rooms

	all, err := store.LoadReservations(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("reservation load failed, starting empty")
		all = nil
	}
	if all == nil {
		all = map[string]domain.Reservation{}
	}
	s.reservations = all
	return s, nil
}

// Rooms returns a copy of the catalog in seed order.
func (s *BookingService) Rooms() []domain.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Room, len(s.catalog))
	copy(out, s.catalog)
	return out
}

// FindAvailable returns the free rooms of a category for [checkIn, checkOut),
// in catalog order. Fails with ErrInvalidDateRange when the range is empty
// or inverted.
func (s *BookingService) FindAvailable(ctx context.Context, c domain.Category, checkIn, checkOut time.Time) ([]domain.Room, error) {
	if !checkOut.After(checkIn) {
		return nil, domain.ErrInvalidDateRange
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return availableRooms(s.catalog, s.reservations, c, checkIn, checkOut), nil
}

// Book runs the full reservation flow: validate the range, find candidates,
// let the selector pick one, quote the stay, authorize payment, then commit
// and persist. Payment and commit are all-or-nothing: a decline or selector
// error leaves the store untouched. The write lock is held from the
// availability check through persist so no concurrent booking can slip an
// overlapping reservation in between.
func (s *BookingService) Book(ctx context.Context, guestName string, c domain.Category, checkIn, checkOut time.Time, selector domain.RoomSelector, gateway domain.PaymentGateway) (*domain.Reservation, error) {
	if !checkOut.After(checkIn) {
		return nil, domain.ErrInvalidDateRange
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	candidates := availableRooms(s.catalog, s.reservations, c, checkIn, checkOut)
	if len(candidates) == 0 {
		return nil, domain.ErrNoAvailability
	}

	idx, err := selector.Select(candidates)
	if err != nil {
		return nil, fmt.Errorf("room selection: %w", err)
	}
	if idx < 0 || idx >= len(candidates) {
		return nil, domain.ErrInvalidSelection
	}
	room := candidates[idx]

	amount := domain.Quote(c, domain.Nights(checkIn, checkOut))
	approved, err := gateway.Authorize(ctx, room, checkIn, checkOut, amount)
	if err != nil {
		return nil, fmt.Errorf("payment authorization: %w", err)
	}
	if !approved {
		return nil, domain.ErrPaymentDeclined
	}

	id := s.newIDLocked()
	res := domain.Reservation{
		ID:         id,
		GuestName:  guestName,
		RoomNumber: room.Number,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Paid:       true,
	}
	s.reservations[id] = res
	s.invalidateListing(ctx)

	if err := s.store.SaveReservations(ctx, s.snapshotLocked()); err != nil {
		log.Error().Err(err).Str("id", id).Msg("reservation save failed")
		return &res, fmt.Errorf("reservation %s held in memory only: %w", id, domain.ErrPersistence)
	}
	return &res, nil
}

// Cancel removes a reservation. confirmed=false is an explicit abort: the
// store stays untouched and cancelled is false with no error. The freed
// range is available again as soon as Cancel returns.
func (s *BookingService) Cancel(ctx context.Context, id string, confirmed bool) (cancelled bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reservations[id]; !ok {
		return false, domain.ErrNotFound
	}
	if !confirmed {
		return false, nil
	}
	delete(s.reservations, id)
	s.invalidateListing(ctx)

	if err := s.store.SaveReservations(ctx, s.snapshotLocked()); err != nil {
		log.Error().Err(err).Str("id", id).Msg("cancellation save failed")
		return true, fmt.Errorf("cancellation of %s held in memory only: %w", id, domain.ErrPersistence)
	}
	return true, nil
}

// ListAll returns a snapshot of the store sorted by reservation id.
func (s *BookingService) ListAll(ctx context.Context) []domain.Reservation {
	if s.cache != nil {
		var cached []domain.Reservation
		if ok, _ := s.cache.Get(ctx, listCacheKey, &cached); ok {
			return cached
		}
	}

	s.mu.RLock()
	out := make([]domain.Reservation, 0, len(s.reservations))
	for _, r := range s.reservations {
		out = append(out, r)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if s.cache != nil {
		_ = s.cache.Set(ctx, listCacheKey, out, int(s.cacheTTL.Seconds()))
	}
	return out
}

// Flush writes catalog and reservations through to the store. Called at
// teardown so shutdown never loses a degraded in-memory commit.
func (s *BookingService) Flush(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.store.SaveCatalog(ctx, s.catalog); err != nil {
		return err
	}
	return s.store.SaveReservations(ctx, s.snapshotLocked())
}

// newIDLocked generates a reservation id unique against live store keys.
// UUIDs do not collide in practice; the re-draw loop keeps the contract
// explicit. Caller holds the write lock.
func (s *BookingService) newIDLocked() string {
	for {
		id := "RES-" + uuid.NewString()
		if _, exists := s.reservations[id]; !exists {
			return id
		}
	}
}

// snapshotLocked copies the reservation map for handoff to the store.
func (s *BookingService) snapshotLocked() map[string]domain.Reservation {
	out := make(map[string]domain.Reservation, len(s.reservations))
	for k, v := range s.reservations {
		out[k] = v
	}
	return out
}

func (s *BookingService) invalidateListing(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, listCacheKey)
	}
}
