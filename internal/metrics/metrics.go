package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookings_created_total",
		Help: "Total number of bookings created, by the store that persisted them",
	}, []string{"store"})

	BookingsRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookings_rejected_total",
		Help: "Total number of rejected booking requests",
	}, []string{"reason"})

	StoreFallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "store_fallbacks_total",
		Help: "Total number of calls served by the fallback store",
	}, []string{"operation"})

	InventoryCASRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inventory_cas_retries_total",
		Help: "Total number of inventory reservations retried after a concurrent stock change",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
