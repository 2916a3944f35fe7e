package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "code"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "code"},
	)

	// Search
	searches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trip_searches_total",
			Help: "Total number of trip searches by trip type.",
		},
		[]string{"type"},
	)
	proposals = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trip_search_proposals",
			Help:    "Number of proposals found per search, before pagination.",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 200, 500, 1000},
		},
		[]string{"type"},
	)
	searchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trip_search_duration_seconds",
			Help:    "Time spent computing proposals.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"type"},
	)

	// Trips
	trips = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trips_total",
			Help: "Trip creation attempts by outcome (created, rejected, failed).",
		},
		[]string{"outcome"},
	)

	// Cache
	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_lookups_total",
			Help: "Catalog cache lookups by entity and result (hit, miss, error).",
		},
		[]string{"entity", "result"},
	)

	// Kafka
	kafkaErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_errors_total",
			Help: "Total number of Kafka-related errors.",
		},
		[]string{"component", "operation"},
	)
	kafkaProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "kafka_messages_processed_total",
			Help: "Total number of Kafka messages successfully processed.",
		},
	)
)

var registerOnce sync.Once

func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequests,
			httpDuration,

			searches,
			proposals,
			searchDuration,

			trips,
			cacheLookups,

			kafkaErrors,
			kafkaProcessed,
		)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}

// --- HTTP ---
func ObserveHTTPRequest(method, route string, code int, d time.Duration) {
	c := strconv.Itoa(code)
	httpRequests.WithLabelValues(method, route, c).Inc()
	httpDuration.WithLabelValues(method, route, c).Observe(d.Seconds())
}

// --- Search ---
func ObserveSearch(tripType string, found int, d time.Duration) {
	searches.WithLabelValues(tripType).Inc()
	proposals.WithLabelValues(tripType).Observe(float64(found))
	searchDuration.WithLabelValues(tripType).Observe(d.Seconds())
}

// --- Trips ---
const (
	TripCreated  = "created"
	TripRejected = "rejected"
	TripFailed   = "failed"
)

func IncTrip(outcome string) { trips.WithLabelValues(outcome).Inc() }

// --- Cache ---
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

func IncCacheLookup(entity, result string) { cacheLookups.WithLabelValues(entity, result).Inc() }

// --- Kafka ---
func IncKafkaError(component, operation string) {
	kafkaErrors.WithLabelValues(component, operation).Inc()
}
func IncKafkaProcessed() { kafkaProcessed.Inc() }
