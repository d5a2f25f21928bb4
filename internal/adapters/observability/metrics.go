package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "roomdesk", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "roomdesk", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	Bookings = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "roomdesk", Name: "bookings_total", Help: "Booking attempts by outcome."},
		[]string{"outcome"}, // booked|no_availability|invalid_dates|payment_declined|error
	)
	Cancellations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "roomdesk", Name: "cancellations_total", Help: "Cancellation attempts by outcome."},
		[]string{"outcome"}, // cancelled|aborted|not_found|error
	)
	PaymentRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "roomdesk", Name: "payment_requests_total", Help: "Outbound payment gateway calls."},
		[]string{"gateway", "status"},
	)
	PaymentLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "roomdesk", Name: "payment_request_duration_seconds",
			Help:    "Outbound payment gateway call duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"gateway"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "roomdesk", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
)

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, Bookings, Cancellations, PaymentRequests, PaymentLatency, CacheEvents)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveBooking(outcome string) { Bookings.WithLabelValues(outcome).Inc() }

func ObserveCancellation(outcome string) { Cancellations.WithLabelValues(outcome).Inc() }

func ObservePayment(gateway string, status int, dur time.Duration) {
	PaymentRequests.WithLabelValues(gateway, strconv.Itoa(status)).Inc()
	PaymentLatency.WithLabelValues(gateway).Observe(dur.Seconds())
}

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}
