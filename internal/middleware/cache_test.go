package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/averden/hospitality-booking/internal/config"
)

func TestEncodeDecodeEntry(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}, "X-Total": {"42"}}
	body := []byte(`{"items":[]}`)

	bs, err := encodeEntry(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodeEntry(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, "42", gotHdr.Get("X-Total"))
	assert.Equal(t, body, gotBody)
}

func TestDecodeEntryRejectsGarbage(t *testing.T) {
	_, _, _, ok := decodeEntry([]byte("short"))
	assert.False(t, ok)
	_, _, _, ok = decodeEntry([]byte{0, 0, 0, 200, 0xFF, 0xFF, 0xFF, 0xFF})
	assert.False(t, ok)
}

func TestCacheKeyStableAndStrategyBound(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}
	e := echo.New()

	ctx := func(target string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/v1/search/listings")
		return c
	}

	a := cacheKey(cfg, ctx("/v1/search/listings?q=lake"))
	b := cacheKey(cfg, ctx("/v1/search/listings?q=lake"))
	other := cacheKey(cfg, ctx("/v1/search/listings?q=forest"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, other)

	// "route" strategy ignores the query string.
	cfg.KeyStrategy = "route"
	assert.Equal(t,
		cacheKey(cfg, ctx("/v1/search/listings?q=lake")),
		cacheKey(cfg, ctx("/v1/search/listings?q=forest")))
}

func TestNewRedisCacheNilClientPassesThrough(t *testing.T) {
	mw := NewRedisCache(config.CacheConfig{Enabled: true}, nil)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/locations", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := mw(func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	require.NoError(t, h(c))
	assert.Equal(t, "ok", rec.Body.String())
	assert.Empty(t, rec.Header().Get("X-Cache"))
}
