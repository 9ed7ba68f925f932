package models

import (
	"time"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error" example:"Invalid document"`
	Message   string    `json:"message" example:"CPF check digits do not match"`
	Code      string    `json:"code,omitempty" example:"INVALID_DOCUMENT"`
	Timestamp time.Time `json:"timestamp" example:"2024-01-15T10:30:00Z"`
	Path      string    `json:"path" example:"/api/v1/cpf/52998224726"`
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string                 `json:"status" example:"healthy"`
	Timestamp time.Time              `json:"timestamp" example:"2024-01-15T10:30:00Z"`
	Version   string                 `json:"version" example:"1.0.0"`
	Services  map[string]ServiceInfo `json:"services"`
	Uptime    string                 `json:"uptime" example:"2h30m45s"`
}

// ServiceInfo represents individual service health
type ServiceInfo struct {
	Status         string    `json:"status" example:"healthy"`
	LastCheck      time.Time `json:"last_check" example:"2024-01-15T10:30:00Z"`
	ResponseTimeMs int64     `json:"response_time_ms" example:"2"`
	Error          string    `json:"error,omitempty"`
}

// MetricsResponse represents metrics response
type MetricsResponse struct {
	Requests    RequestsMetrics    `json:"requests"`
	Performance PerformanceMetrics `json:"performance"`
	Cache       CacheMetrics       `json:"cache"`
	Documents   DocumentMetrics    `json:"documents"`
	System      SystemMetrics      `json:"system"`
	Timestamp   time.Time          `json:"timestamp" example:"2024-01-15T10:30:00Z"`
}

// RequestsMetrics represents request metrics
type RequestsMetrics struct {
	Total       int64   `json:"total" example:"1500"`
	Success     int64   `json:"success" example:"1450"`
	Errors      int64   `json:"errors" example:"50"`
	SuccessRate float64 `json:"success_rate" example:"96.67"`
}

// PerformanceMetrics represents performance metrics
type PerformanceMetrics struct {
	AvgResponseTimeMs float64 `json:"avg_response_time_ms" example:"0.4"`
	MaxResponseTimeMs float64 `json:"max_response_time_ms" example:"12.5"`
}

// CacheMetrics represents cache metrics
type CacheMetrics struct {
	HitRate float64 `json:"hit_rate" example:"85.5"`
	Hits    int64   `json:"hits" example:"1240"`
	Misses  int64   `json:"misses" example:"210"`
	Size    int64   `json:"size" example:"150"`
}

// DocumentMetrics counts validations per document type
type DocumentMetrics struct {
	Validations map[string]int64 `json:"validations"`
	Valid       int64            `json:"valid" example:"1200"`
	Invalid     int64            `json:"invalid" example:"300"`
}

// SystemMetrics represents system metrics
type SystemMetrics struct {
	MemoryUsage float64 `json:"memory_usage" example:"12.5"`
	Goroutines  int     `json:"goroutines" example:"12"`
}
