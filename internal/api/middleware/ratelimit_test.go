package middleware

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nexconsult/brdocs-api/internal/config"
	"github.com/stretchr/testify/assert"
)

func newTestLimiter(t *testing.T, rpm, burst int) *RateLimiter {
	t.Helper()
	rl := NewRateLimiter(config.RateLimitConfig{
		RequestsPerMinute: rpm,
		BurstSize:         burst,
		CleanupInterval:   time.Minute,
	})
	t.Cleanup(rl.Stop)
	return rl
}

func TestRateLimiterBurst(t *testing.T) {
	rl := newTestLimiter(t, 60, 3)

	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		rec := serve(r, http.MethodGet, "/", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "60", rec.Header().Get("X-RateLimit-Limit"))
	}

	rec := serve(r, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimiterPerClient(t *testing.T) {
	rl := newTestLimiter(t, 60, 1)

	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodGet, "/", nil).Code)

	r.ForwardedByClientIP = true
	assert.NoError(t, r.SetTrustedProxies([]string{"192.0.2.1"}))
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/", map[string]string{"X-Forwarded-For": "203.0.113.9"}).Code)

	assert.Equal(t, 2, rl.GetStats()["active_clients"])
}

func TestRateLimiterEvictsIdleClients(t *testing.T) {
	rl := newTestLimiter(t, 60, 1)
	rl.getLimiter("198.51.100.1")

	rl.evictIdle(time.Now().Add(time.Second))
	assert.Equal(t, 0, rl.GetStats()["active_clients"])
}
