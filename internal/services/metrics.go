package services

import (
	"net/http"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/nexconsult/brdocs-api/internal/brdocs"
	"github.com/nexconsult/brdocs-api/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService keeps Prometheus collectors on a private registry and an
// in-memory tally for the JSON metrics document.
type MetricsService struct {
	registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
	cacheHits       *prometheus.CounterVec
	validations     *prometheus.CounterVec

	mu            sync.Mutex
	total         int64
	success       int64
	errors        int64
	totalDuration time.Duration
	maxDuration   time.Duration
	hits          int64
	misses        int64
	byType        map[string]int64
	valid         int64
	invalid       int64
	cacheSize     func() int
}

// NewMetricsService creates a new metrics service with its own registry
func NewMetricsService() *MetricsService {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &MetricsService{
		registry: reg,
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "brdocs_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"path", "method", "status"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brdocs_requests_total",
				Help: "Number of HTTP requests",
			},
			[]string{"path", "method", "status"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brdocs_cache_hits_total",
				Help: "Number of analysis cache lookups",
			},
			[]string{"result"},
		),
		validations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brdocs_validations_total",
				Help: "Number of document validations",
			},
			[]string{"type", "valid"},
		),
		byType: make(map[string]int64),
	}
}

// TrackCacheSize makes the snapshot report the size returned by fn
func (m *MetricsService) TrackCacheSize(fn func() int) {
	m.mu.Lock()
	m.cacheSize = fn
	m.mu.Unlock()
}

// RecordRequest records a request metric
func (m *MetricsService) RecordRequest(method, endpoint string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	m.requestDuration.WithLabelValues(endpoint, method, status).Observe(duration.Seconds())
	m.requestsTotal.WithLabelValues(endpoint, method, status).Inc()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.total++
	if statusCode < http.StatusBadRequest {
		m.success++
	} else {
		m.errors++
	}
	m.totalDuration += duration
	if duration > m.maxDuration {
		m.maxDuration = duration
	}
}

// RecordCacheHit records a cache hit or miss
func (m *MetricsService) RecordCacheHit(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheHits.WithLabelValues(result).Inc()

	m.mu.Lock()
	defer m.mu.Unlock()
	if hit {
		m.hits++
	} else {
		m.misses++
	}
}

// RecordValidation records a validation verdict
func (m *MetricsService) RecordValidation(docType brdocs.DocType, valid bool) {
	m.validations.WithLabelValues(docType.String(), strconv.FormatBool(valid)).Inc()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.byType[docType.String()]++
	if valid {
		m.valid++
	} else {
		m.invalid++
	}
}

// Snapshot returns current metrics
func (m *MetricsService) Snapshot() models.MetricsResponse {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	m.mu.Lock()
	defer m.mu.Unlock()

	resp := models.MetricsResponse{
		Requests: models.RequestsMetrics{
			Total:   m.total,
			Success: m.success,
			Errors:  m.errors,
		},
		Performance: models.PerformanceMetrics{
			MaxResponseTimeMs: float64(m.maxDuration.Microseconds()) / 1000,
		},
		Cache: models.CacheMetrics{
			Hits:   m.hits,
			Misses: m.misses,
		},
		Documents: models.DocumentMetrics{
			Validations: make(map[string]int64, len(m.byType)),
			Valid:       m.valid,
			Invalid:     m.invalid,
		},
		System: models.SystemMetrics{
			MemoryUsage: float64(mem.Alloc) / 1024 / 1024,
			Goroutines:  runtime.NumGoroutine(),
		},
		Timestamp: time.Now(),
	}

	if m.total > 0 {
		resp.Requests.SuccessRate = float64(m.success) / float64(m.total) * 100
		resp.Performance.AvgResponseTimeMs = float64(m.totalDuration.Microseconds()) / 1000 / float64(m.total)
	}
	if lookups := m.hits + m.misses; lookups > 0 {
		resp.Cache.HitRate = float64(m.hits) / float64(lookups) * 100
	}
	if m.cacheSize != nil {
		resp.Cache.Size = int64(m.cacheSize())
	}
	for t, n := range m.byType {
		resp.Documents.Validations[t] = n
	}

	return resp
}

// Handler serves the Prometheus exposition format for the private registry
func (m *MetricsService) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Health returns metrics service health status
func (m *MetricsService) Health() map[string]interface{} {
	return map[string]interface{}{
		"status": "healthy",
	}
}
