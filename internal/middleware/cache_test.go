package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinecore/catalog/internal/config"
	"github.com/cinecore/catalog/internal/utils"
)

func TestEncodeDecodePayload(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	hdr.Add("X-Multi", "a")
	hdr.Add("X-Multi", "b")
	body := []byte(`{"status":true}`)

	bs, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, []string{"a", "b"}, gotHdr.Values("X-Multi"))
	assert.Equal(t, body, gotBody)
}

func TestDecodePayloadRejectsGarbage(t *testing.T) {
	for _, bs := range [][]byte{nil, {1, 2, 3}, []byte("not a payload")} {
		_, _, _, ok := decodePayload(bs)
		assert.False(t, ok)
	}
}

func TestCacheKeyStrategies(t *testing.T) {
	e := echo.New()
	newCtx := func(target string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/api/movies")
		return c
	}
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}

	k1 := cacheKeyFrom(cfg, newCtx("/api/movies?page=0"))
	k2 := cacheKeyFrom(cfg, newCtx("/api/movies?page=1"))
	k3 := cacheKeyFrom(cfg, newCtx("/api/movies?page=0"))
	assert.NotEqual(t, k1, k2)
	assert.Equal(t, k1, k3)

	// with the query dropped from the key the pages collide on purpose
	cfg.KeyStrategy = "route"
	assert.Equal(t,
		cacheKeyFrom(cfg, newCtx("/api/movies?page=0")),
		cacheKeyFrom(cfg, newCtx("/api/movies?page=1")))
}

func TestCacheDisabledPassesThrough(t *testing.T) {
	mw := NewRedisCache(config.CacheConfig{Enabled: false, TTL: time.Minute}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/movies", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "fresh")
	})(c)
	require.NoError(t, err)
	assert.Equal(t, "fresh", rec.Body.String())
	assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestRateLimitDisabledPassesThrough(t *testing.T) {
	mw := NewTokenBucket(config.RateLimitConfig{Enabled: false}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/movies", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/movies", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.1")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/api/movies")

	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_user_route"}
	assert.Equal(t, "rl:ip:10.0.0.1:user:anon:route:GET /api/movies", buildRateKey(cfg, c))

	c.Set(CtxUserID, uint64(42))
	assert.Equal(t, "rl:ip:10.0.0.1:user:42:route:GET /api/movies", buildRateKey(cfg, c))

	cfg.KeyStrategy = "user"
	assert.Equal(t, "rl:user:42", buildRateKey(cfg, c))
}

func TestBuildRateKeyFromBearerToken(t *testing.T) {
	at, err := utils.NewAccessToken("test-secret", 42, "USER", 15)
	require.NoError(t, err)

	e := echo.New()
	newCtx := func(auth string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, "/api/movies", nil)
		req.Header.Set(echo.HeaderXRealIP, "10.0.0.1")
		if auth != "" {
			req.Header.Set(echo.HeaderAuthorization, auth)
		}
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/api/movies")
		return c
	}
	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "user"}

	// the limiter runs before JWTAuth, so the id comes straight from the
	// token's sub claim
	assert.Equal(t, "rl:user:42", buildRateKey(cfg, newCtx("Bearer "+at.Token)))

	// garbage tokens and missing headers fall back to the shared bucket
	assert.Equal(t, "rl:user:anon", buildRateKey(cfg, newCtx("Bearer not.a.jwt")))
	assert.Equal(t, "rl:user:anon", buildRateKey(cfg, newCtx("")))
}
