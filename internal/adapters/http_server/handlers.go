package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"roomdesk/internal/adapters/observability"
	"roomdesk/internal/app"
	"roomdesk/internal/domain"
)

type Handlers struct {
	Svc     *app.BookingService
	Gateway domain.PaymentGateway
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/rooms", h.listRooms)
	s.mux.Get("/v1/availability", h.availability)
	s.mux.Get("/v1/reservations", h.listReservations)
	s.mux.Post("/v1/reservations", h.createReservation)
	s.mux.Delete("/v1/reservations/{id}", h.cancelReservation)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// stayQuery pulls category + date range from query params.
func stayQuery(r *http.Request) (domain.Category, time.Time, time.Time, error) {
	c, err := domain.ParseCategory(r.URL.Query().Get("category"))
	if err != nil {
		return "", time.Time{}, time.Time{}, err
	}
	in, err := domain.ParseDate(r.URL.Query().Get("check_in"))
	if err != nil {
		return "", time.Time{}, time.Time{}, err
	}
	out, err := domain.ParseDate(r.URL.Query().Get("check_out"))
	if err != nil {
		return "", time.Time{}, time.Time{}, err
	}
	return c, in, out, nil
}

func (h *Handlers) listRooms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Svc.Rooms())
}

func (h *Handlers) availability(w http.ResponseWriter, r *http.Request) {
	c, in, out, err := stayQuery(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	rooms, err := h.Svc.FindAvailable(r.Context(), c, in, out)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rooms)
}

func (h *Handlers) listReservations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Svc.ListAll(r.Context()))
}

type createReservationRequest struct {
	GuestName  string `json:"guest_name"`
	Category   string `json:"category"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	RoomNumber *int   `json:"room_number,omitempty"`
}

func (h *Handlers) createReservation(w http.ResponseWriter, r *http.Request) {
	var req createReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if req.GuestName == "" {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "guest_name is required")
		return
	}
	c, err := domain.ParseCategory(req.Category)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	in, err := domain.ParseDate(req.CheckIn)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	out, err := domain.ParseDate(req.CheckOut)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	// Clients either name a room among the candidates or take the first one.
	selector := domain.SelectorFunc(func(rooms []domain.Room) (int, error) { return 0, nil })
	if req.RoomNumber != nil {
		want := *req.RoomNumber
		selector = domain.SelectorFunc(func(rooms []domain.Room) (int, error) {
			for i, room := range rooms {
				if room.Number == want {
					return i, nil
				}
			}
			return -1, domain.ErrInvalidSelection
		})
	}

	res, err := h.Svc.Book(r.Context(), req.GuestName, c, in, out, selector, h.Gateway)
	switch {
	case err == nil:
		observability.ObserveBooking("booked")
		writeJSON(w, http.StatusCreated, res)
	case errors.Is(err, domain.ErrInvalidDateRange):
		observability.ObserveBooking("invalid_dates")
		writeProblem(w, http.StatusBadRequest, "Invalid Date Range", err.Error())
	case errors.Is(err, domain.ErrInvalidSelection):
		observability.ObserveBooking("invalid_selection")
		writeProblem(w, http.StatusBadRequest, "Invalid Room Selection", "requested room is not among the available candidates")
	case errors.Is(err, domain.ErrNoAvailability):
		observability.ObserveBooking("no_availability")
		writeProblem(w, http.StatusUnprocessableEntity, "No Availability", err.Error())
	case errors.Is(err, domain.ErrPaymentDeclined):
		observability.ObserveBooking("payment_declined")
		writeProblem(w, http.StatusPaymentRequired, "Payment Declined", err.Error())
	case errors.Is(err, domain.ErrPersistence):
		// committed in memory, not durable
		observability.ObserveBooking("not_persisted")
		writeProblem(w, http.StatusServiceUnavailable, "Not Persisted", err.Error())
	default:
		observability.ObserveBooking("error")
		log.Error().Err(err).Msg("booking failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "booking failed")
	}
}

func (h *Handlers) cancelReservation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	// an explicit DELETE is the confirmation
	_, err := h.Svc.Cancel(r.Context(), id, true)
	switch {
	case err == nil:
		observability.ObserveCancellation("cancelled")
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, domain.ErrNotFound):
		observability.ObserveCancellation("not_found")
		writeProblem(w, http.StatusNotFound, "Not Found", "no reservation with id "+id)
	case errors.Is(err, domain.ErrPersistence):
		observability.ObserveCancellation("not_persisted")
		writeProblem(w, http.StatusServiceUnavailable, "Not Persisted", err.Error())
	default:
		observability.ObserveCancellation("error")
		log.Error().Err(err).Msg("cancellation failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "cancellation failed")
	}
}
