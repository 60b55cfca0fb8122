package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Корзина и сессия.
var (
	CartOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_operations_total",
			Help: "Cart engine mutations",
		},
		[]string{"op"}, // add|remove|clear|noop
	)
	CartLines = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cart_lines",
			Help: "Number of distinct lines currently in the cart",
		},
	)
	SessionTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_transitions_total",
			Help: "Session guard state transitions",
		},
		[]string{"to"}, // authenticated|unauthenticated
	)
	RouteDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "route_admission_total",
			Help: "Route admission decisions",
		},
		[]string{"decision"}, // allow|deny
	)
)

// Хранилище профиля.
var (
	StoreDecodeFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_decode_failures_total",
			Help: "Persisted values treated as absent because they could not be read or decoded",
		},
		[]string{"key"},
	)
	StoreWriteFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_write_failures_total",
			Help: "Failed writes to the profile store",
		},
		[]string{"key"},
	)
)

// Индикатор занятости.
var (
	BusyActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "busy_operations_active",
			Help: "Operations currently holding the busy indicator",
		},
	)
	BusyUnderflow = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "busy_unmatched_end_total",
			Help: "End calls without a matching Begin",
		},
	)
)

// Удалённый API.
var (
	APIRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Requests to the remote ordering API",
		},
		[]string{"method", "outcome"}, // outcome: ok|failed|transport
	)
	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Remote API request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

// Кэш меню.
var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "menu_cache_operations_total",
			Help: "Menu cache operations",
		},
		[]string{"op"}, // hit|miss|evicted|expired|invalidated
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "menu_cache_size",
			Help: "Number of menu items currently in cache",
		},
	)
)

// События активности.
var (
	ActivityPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_events_published_total",
			Help: "Activity events written to the broker",
		},
		[]string{"type"},
	)
	ActivityFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_events_failed_total",
			Help: "Activity events that could not be written",
		},
		[]string{"type"},
	)
)

var registerOnce sync.Once

// MustRegister - регистрирует все метрики в глобальном реестре (повторный вызов безопасен).
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			CartOps, CartLines, SessionTransitions, RouteDecisions,
			StoreDecodeFailures, StoreWriteFailures,
			BusyActive, BusyUnderflow,
			APIRequests, APIRequestDuration,
			CacheOps, CacheSize,
			ActivityPublished, ActivityFailed,
		)
	})
}
