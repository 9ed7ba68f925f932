package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nexconsult/brdocs-api/internal/config"
	"github.com/nexconsult/brdocs-api/internal/logger"
	"github.com/nexconsult/brdocs-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, Environment: "test"},
		Redis:  config.RedisConfig{Enabled: false},
		Documents: config.DocumentsConfig{
			CacheTTL:         time.Minute,
			CachePrefix:      "doc:",
			BatchLimit:       5,
			BatchConcurrency: 2,
		},
		Log: config.LogConfig{Level: "panic", Format: "text"},
		Security: config.SecurityConfig{
			RateLimit: config.RateLimitConfig{
				RequestsPerMinute: 6000,
				BurstSize:         1000,
				CleanupInterval:   time.Minute,
			},
			CORS: config.CORSConfig{
				AllowedOrigins: []string{"*"},
				AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
				AllowedHeaders: []string{"Content-Type"},
			},
		},
	}
}

func newTestServer(t *testing.T, mutate func(*config.Config)) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	if mutate != nil {
		mutate(cfg)
	}

	log := logger.Discard()
	container, err := services.NewContainer(cfg, log)
	require.NoError(t, err)

	server := NewServer(cfg, log, container)
	t.Cleanup(func() {
		server.Close()
		_ = container.Close()
	})
	return server
}

func do(t *testing.T, s *Server, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestPing(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodGet, "/api/ping", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestAnalyzeEndpoint(t *testing.T) {
	s := newTestServer(t, nil)
	path := "/api/v1/documents/analyze?" + url.Values{"value": {"11.222.333/0001-81"}}.Encode()

	rec := do(t, s, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))

	body := decode(t, rec)
	assert.Equal(t, "cnpj", body["type"])
	assert.Equal(t, "11222333000181", body["normalized"])
	assert.Equal(t, true, body["valid"])
	assert.Equal(t, "MATRIZ", body["kind"])

	rec = do(t, s, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))

	rec = do(t, s, http.MethodGet, "/api/v1/documents/analyze", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "MISSING_VALUE", decode(t, rec)["code"])
}

func TestDetectEndpoint(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodGet, "/api/v1/documents/detect?value=5299822", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "cpf", body["type"])
	assert.Equal(t, "529.982.2", body["formatted"])
}

func TestValidateEndpoint(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name   string
		body   map[string]string
		status int
		valid  bool
	}{
		{"valid cpf", map[string]string{"type": "cpf", "value": "529.982.247-25"}, http.StatusOK, true},
		{"invalid cnpj", map[string]string{"type": "cnpj", "value": "11.222.333/0001-82"}, http.StatusOK, false},
		{"valid email", map[string]string{"type": "email", "value": " ana@bar.com "}, http.StatusOK, true},
		{"unknown type", map[string]string{"type": "rg", "value": "123"}, http.StatusBadRequest, false},
		{"missing type", map[string]string{"value": "123"}, http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/v1/documents/validate", tt.body)
			require.Equal(t, tt.status, rec.Code)

			body := decode(t, rec)
			if tt.status == http.StatusOK {
				assert.Equal(t, tt.valid, body["valid"])
			} else {
				assert.Equal(t, "INVALID_REQUEST", body["code"])
			}
		})
	}
}

func TestFormatEndpoint(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodPost, "/api/v1/documents/format", map[string]string{"type": "cnpj", "value": "112223330001"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "11.222.333/0001", decode(t, rec)["formatted"])
}

func TestBatchEndpoint(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodPost, "/api/v1/documents/batch", map[string][]string{
		"documents": {"52998224725", "11222333000181", "ana@bar"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, float64(3), body["total"])
	assert.Equal(t, float64(2), body["valid"])
	results := body["results"].([]interface{})
	assert.Equal(t, "ana@bar", results[2].(map[string]interface{})["document"])

	rec = do(t, s, http.MethodPost, "/api/v1/documents/batch", map[string][]string{
		"documents": {"1", "2", "3", "4", "5", "6"},
	})
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "BATCH_TOO_LARGE", decode(t, rec)["code"])

	rec = do(t, s, http.MethodPost, "/api/v1/documents/batch", map[string][]string{"documents": {}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExtractEndpoint(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodPost, "/api/v1/documents/extract", map[string]interface{}{
		"text": "<p>CNPJ <b>11.222.333/0001-81</b></p><p>CPF 52998224725</p>",
		"html": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, float64(2), body["total"])
	first := body["matches"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "11222333000181", first["digits"])
}

func TestGenerateEndpoint(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodGet, "/api/v1/documents/generate?type=cpf", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["digits"], 11)

	for _, docType := range []string{"email", "rg", ""} {
		rec = do(t, s, http.MethodGet, "/api/v1/documents/generate?type="+docType, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, docType)
	}
}

func TestTypedDocumentEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodGet, "/api/v1/cpf/52998224725", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "529.982.247-25", decode(t, rec)["formatted"])

	rec = do(t, s, http.MethodGet, "/api/v1/cpf/52998224726", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_CPF", decode(t, rec)["code"])

	rec = do(t, s, http.MethodGet, "/api/v1/cnpj/11222333000262", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "FILIAL", decode(t, rec)["kind"])

	rec = do(t, s, http.MethodGet, "/api/v1/cnpj/00000000000000", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_CNPJ", decode(t, rec)["code"])
}

func TestAuthEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodPost, "/api/v1/auth/normalize", map[string]string{
		"document": "529.982.247-25",
		"password": "segredo",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "cpf", body["docType"])
	assert.Equal(t, map[string]interface{}{"acesso": "52998224725", "doc_type": "cpf"}, body["payload"])
	assert.NotContains(t, rec.Body.String(), "segredo")

	rec = do(t, s, http.MethodPost, "/api/v1/auth/normalize", map[string]string{
		"docType":  "cpf",
		"document": "52998224725",
		"password": "123",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Credenciais inválidas", decode(t, rec)["message"])

	rec = do(t, s, http.MethodPost, "/api/v1/auth/normalize", map[string]string{
		"docType":  "passport",
		"document": "52998224725",
		"password": "segredo",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_REQUEST", decode(t, rec)["code"])

	rec = do(t, s, http.MethodPost, "/api/v1/auth/forgot-password", map[string]string{"document": "ana@bar.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Se existir uma conta, enviamos instruções de redefinição.", decode(t, rec)["message"])

	rec = do(t, s, http.MethodPost, "/api/v1/auth/forgot-password", map[string]string{"document": "ana@bar"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Documento ou email inválido", decode(t, rec)["message"])
}

func TestCurrencyEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodGet, "/api/v1/currency/format?amount=1234.56", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "R$\u00a01.234,56", decode(t, rec)["formatted"])

	rec = do(t, s, http.MethodGet, "/api/v1/currency/format?amount=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/v1/currency/parse?"+url.Values{"value": {"R$ 1.234,56"}}.Encode(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1234.56, decode(t, rec)["amount"])
}

func TestCacheEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	require.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/api/v1/cpf/52998224725", nil).Code)

	rec := do(t, s, http.MethodGet, "/api/v1/cache/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode(t, rec)["stats"].(map[string]interface{})
	assert.Equal(t, "doc:", stats["prefix"])

	rec = do(t, s, http.MethodDelete, "/api/v1/cache/52998224725", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodDelete, "/api/v1/cache/52998224725", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	require.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/api/v1/cnpj/11222333000181", nil).Code)
	rec = do(t, s, http.MethodDelete, "/api/v1/cache/clear", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode(t, rec)["removed"])
}

func TestCacheRoutesRequireAdminToken(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) {
		cfg.Security.AdminToken = "s3cret"
	})

	rec := do(t, s, http.MethodGet, "/api/v1/cache/stats", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/v1/cache/stats", nil, "X-Admin-Token", "wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/v1/cache/stats", nil, "X-Admin-Token", "s3cret")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "healthy", body["status"])
	assert.Contains(t, body["services"], "cache")

	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/health/ready", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/health/live", nil).Code)

	do(t, s, http.MethodGet, "/api/ping", nil)

	rec = do(t, s, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	requests := decode(t, rec)["requests"].(map[string]interface{})
	assert.GreaterOrEqual(t, requests["total"], float64(4))

	rec = do(t, s, http.MethodGet, "/metrics/prometheus", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `brdocs_requests_total{method="GET",path="/api/ping",status="200"} 1`)
}

func TestUnknownRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodGet, "/api/v1/nothing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, rec)["code"])

	rec = do(t, s, http.MethodPost, "/api/ping", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "METHOD_NOT_ALLOWED", decode(t, rec)["code"])
}

func TestSwaggerHiddenInProduction(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) {
		cfg.Server.Environment = "production"
	})

	rec := do(t, s, http.MethodGet, "/swagger/index.html", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRateLimitSkipsProbes(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) {
		cfg.Security.RateLimit.RequestsPerMinute = 1
		cfg.Security.RateLimit.BurstSize = 1
	})

	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/api/ping", nil).Code)

	rec := do(t, s, http.MethodGet, "/api/ping", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.True(t, strings.Contains(rec.Body.String(), "RATE_LIMITED"))

	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/health/live", nil).Code)
}
