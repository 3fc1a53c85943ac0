package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestCounter counts HTTP requests by status code, method, and path
	RequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backoffice_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"status", "method", "path"},
	)

	// RequestDuration measures HTTP request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backoffice_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status", "method", "path"},
	)

	// RequestInProgress counts HTTP requests currently being processed
	RequestInProgress = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "backoffice_http_requests_in_progress",
			Help: "Number of HTTP requests currently being processed",
		},
		[]string{"method", "path"},
	)

	// RateLimiterRejections counts rejected requests due to rate limiting
	RateLimiterRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backoffice_rate_limiter_rejections_total",
			Help: "Total number of requests rejected by rate limiter",
		},
		[]string{"ip"},
	)

	// DatabaseOperationDuration measures database operation duration
	DatabaseOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backoffice_db_operation_duration_seconds",
			Help:    "Database operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	// MenuBuildsTotal counts navigation list builds by outcome
	MenuBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backoffice_menu_builds_total",
			Help: "Total number of navigation list computations",
		},
		[]string{"outcome"}, // "custom", "default", "fallback"
	)

	// MenuBuildFallbacks counts degradations to the default navigation list
	MenuBuildFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backoffice_menu_build_fallbacks_total",
			Help: "Total number of menu builds that fell back to the default list",
		},
		[]string{"reason"}, // "resolve_error", "config_error", "build_error", "empty"
	)

	// AccessEventsLogged counts persisted access events
	AccessEventsLogged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "backoffice_access_events_logged_total",
			Help: "Total number of access events written by the middleware",
		},
	)

	// AccessEventsDropped counts access events that failed to persist
	AccessEventsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "backoffice_access_events_dropped_total",
			Help: "Total number of access events dropped on write failure",
		},
	)

	// MemoryStats tracks memory usage stats
	MemoryStats = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "backoffice_memory_stats_bytes",
			Help: "Memory statistics in bytes",
		},
		[]string{"type"},
	)

	// GoroutineCount tracks the number of goroutines
	GoroutineCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "backoffice_goroutine_count",
			Help: "Number of goroutines",
		},
	)

	// CacheHits counts the number of cache hits
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "backoffice_cache_hits_total",
			Help: "Total number of cache hits",
		},
	)

	// CacheMisses counts the number of cache misses
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "backoffice_cache_misses_total",
			Help: "Total number of cache misses",
		},
	)

	// SystemLoadAverage tracks system load averages
	SystemLoadAverage = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "backoffice_system_load_average",
			Help: "System load average",
		},
		[]string{"period"}, // "1min", "5min", "15min"
	)

	// SystemMemoryUsage tracks host memory usage
	SystemMemoryUsage = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "backoffice_system_memory_bytes",
			Help: "Host memory statistics in bytes",
		},
		[]string{"type"}, // "total", "used", "available"
	)

	// SystemDiskUsage tracks disk usage of the root filesystem
	SystemDiskUsage = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "backoffice_system_disk_usage_bytes",
			Help: "Disk usage statistics in bytes",
		},
		[]string{"type"}, // "total", "used", "free"
	)
)

// RecordDBOperation records the duration of a database operation
func RecordDBOperation(operation string, table string, startTime time.Time) {
	duration := time.Since(startTime).Seconds()
	DatabaseOperationDuration.WithLabelValues(operation, table).Observe(duration)
}
