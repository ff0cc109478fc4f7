package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestClientRateLimitAllowsWithinBurst(t *testing.T) {
	handler := ClientRateLimit(RateLimitOptions{RPS: 1, Burst: 3})(okHandler())

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/api/profile", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestClientRateLimitRejectsOverBurst(t *testing.T) {
	handler := ClientRateLimit(RateLimitOptions{RPS: 1, Burst: 2})(okHandler())

	var lastCode int
	var lastBody []byte
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/api/profile", nil)
		req.RemoteAddr = "10.0.0.2:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		lastCode = rec.Code
		lastBody = rec.Body.Bytes()
	}

	require.Equal(t, http.StatusTooManyRequests, lastCode)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(lastBody, &resp))
	assert.Equal(t, "RATE_LIMITED", resp.Error.Code)
}

func TestClientRateLimitKeysClientsSeparately(t *testing.T) {
	handler := ClientRateLimit(RateLimitOptions{RPS: 1, Burst: 1})(okHandler())

	first := httptest.NewRequest("GET", "/api/posts", nil)
	first.RemoteAddr = "10.0.0.3:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, first)
	require.Equal(t, http.StatusOK, rec.Code)

	// A different client keeps its own bucket.
	second := httptest.NewRequest("GET", "/api/posts", nil)
	second.RemoteAddr = "10.0.0.4:1234"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, second)
	require.Equal(t, http.StatusOK, rec.Code)

	// The first client's bucket is spent.
	again := httptest.NewRequest("GET", "/api/posts", nil)
	again.RemoteAddr = "10.0.0.3:9999"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, again)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestClientRateLimitDisabledWhenNoRPS(t *testing.T) {
	handler := ClientRateLimit(RateLimitOptions{})(okHandler())

	for i := 0; i < 50; i++ {
		req := httptest.NewRequest("GET", "/api/company", nil)
		req.RemoteAddr = "10.0.0.5:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestDefaultKeyFuncPrefersForwardedFor(t *testing.T) {
	keyFn := DefaultKeyFunc(true)

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.6:1234"
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.6")
	assert.Equal(t, "203.0.113.9", keyFn(req))

	untrusted := DefaultKeyFunc(false)
	assert.Equal(t, "10.0.0.6", untrusted(req))
}

func TestMaxInflightShedsOverCap(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started <- struct{}{}
		<-release
		w.WriteHeader(http.StatusOK)
	})

	handler := MaxInflight(1)(slow)

	go func() {
		req := httptest.NewRequest("GET", "/api/profile", nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}()
	<-started

	req := httptest.NewRequest("GET", "/api/profile", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "SERVICE_UNAVAILABLE", resp.Error.Code)

	close(release)
}

func TestMaxInflightDisabledWhenZero(t *testing.T) {
	handler := MaxInflight(0)(okHandler())

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}
