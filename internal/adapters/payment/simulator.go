// Package payment provides PaymentGateway implementations: a simulator that
// always approves, and an HTTP client for a real gateway.
package payment

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"roomdesk/internal/domain"
)

// Simulator approves every charge. It stands in for a real gateway in
// development and can be swapped for a Client without touching the
// booking service.
type Simulator struct{}

func NewSimulator() *Simulator { return &Simulator{} }

func (Simulator) Authorize(ctx context.Context, room domain.Room, checkIn, checkOut time.Time, amount int64) (bool, error) {
	log.Info().
		Int("room", room.Number).
		Int64("amount", amount).
		Str("check_in", checkIn.Format(domain.DateLayout)).
		Str("check_out", checkOut.Format(domain.DateLayout)).
		Msg("simulated payment approved")
	return true, nil
}
