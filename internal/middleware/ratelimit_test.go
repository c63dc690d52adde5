package middleware

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickshow/quickshow-api/internal/config"
)

func TestDisabledRateLimitIsPassThrough(t *testing.T) {
	mw := NewTokenBucket(config.RateLimitConfig{Enabled: false}, nil)
	called := false
	h := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, h(newTestContext(t, http.MethodGet, "/v1/movies")))
	assert.True(t, called)
}

func TestBuildRateKeyStrategies(t *testing.T) {
	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_user_route"}
	c := newTestContext(t, http.MethodGet, "/v1/movies")
	c.Set("user_id", uint64(7))

	key := buildRateKey(cfg, c)
	assert.Contains(t, key, "rl:")
	assert.Contains(t, key, "user:7")
	assert.Contains(t, key, "GET /v1/movies")

	cfg.KeyStrategy = "ip"
	ipKey := buildRateKey(cfg, c)
	assert.NotContains(t, ipKey, "user:7")
}

func TestCurrentUserIDFallsBackToAnon(t *testing.T) {
	c := newTestContext(t, http.MethodGet, "/v1/movies")
	assert.Equal(t, "anon", currentUserID(c))

	c.Set("user_id", float64(12))
	assert.Equal(t, "12", currentUserID(c))
}
