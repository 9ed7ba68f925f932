package services

import (
	"context"
	"net/http"
	"time"

	"github.com/nexconsult/brdocs-api/internal/brdocs"
	"github.com/nexconsult/brdocs-api/internal/models"
)

// DocumentServiceInterface defines the interface for document service
type DocumentServiceInterface interface {
	// Analyze detects the type of value and describes it
	Analyze(ctx context.Context, value string) (*models.DocumentAnalysis, error)

	// AnalyzeAs describes value under a known document type
	AnalyzeAs(ctx context.Context, docType brdocs.DocType, value string) (*models.DocumentAnalysis, error)

	// Validate returns the verdict for a typed document
	Validate(ctx context.Context, req models.DocumentRequest) models.ValidationResponse

	// Format masks a typed document
	Format(req models.DocumentRequest) models.FormatResponse

	// Detect classifies partially typed text
	Detect(value string) models.DetectResponse

	// Batch analyzes several documents concurrently, keeping input order
	Batch(ctx context.Context, documents []string) (*models.BatchResponse, error)

	// Extract finds valid documents in text or HTML
	Extract(ctx context.Context, req models.ExtractRequest) (*models.ExtractResponse, error)

	// Generate produces a valid test document
	Generate(docType brdocs.DocType) (*models.GenerateResponse, error)

	// Invalidate removes the cached analysis of value
	Invalidate(ctx context.Context, value string) (bool, error)

	// Health returns service health status
	Health() map[string]interface{}
}

// AuthServiceInterface defines the login and forgot-password prechecks
type AuthServiceInterface interface {
	NormalizeLogin(req models.LoginRequest) (*models.LoginNormalization, error)
	ForgotPassword(req models.ForgotPasswordRequest) (*models.ForgotPasswordResponse, error)
}

// CacheServiceInterface defines the interface for cache service
type CacheServiceInterface interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) (string, error)

	// Set stores a value in cache with TTL
	Set(ctx context.Context, key string, value string) error

	// Delete removes a value from cache
	Delete(ctx context.Context, key string) error

	// Clear removes every entry under the service prefix
	Clear(ctx context.Context) (int64, error)

	// Exists checks if a key exists in cache
	Exists(ctx context.Context, key string) (bool, error)

	// GetStats returns cache statistics
	GetStats(ctx context.Context) (map[string]interface{}, error)

	// Health returns cache service health status
	Health() map[string]interface{}
}

// ExtractorServiceInterface defines the interface for HTML text extraction
type ExtractorServiceInterface interface {
	// TextFromHTML returns the visible text of an HTML document
	TextFromHTML(html string) (string, error)

	// Health returns extractor service health status
	Health() map[string]interface{}
}

// MetricsServiceInterface defines the interface for metrics service
type MetricsServiceInterface interface {
	// RecordRequest records a request metric
	RecordRequest(method, endpoint string, statusCode int, duration time.Duration)

	// RecordCacheHit records a cache hit or miss
	RecordCacheHit(hit bool)

	// RecordValidation records a validation verdict
	RecordValidation(docType brdocs.DocType, valid bool)

	// Snapshot returns current metrics
	Snapshot() models.MetricsResponse

	// Handler serves the Prometheus exposition format
	Handler() http.Handler

	// Health returns metrics service health status
	Health() map[string]interface{}
}
