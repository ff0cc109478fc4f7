package integration

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/core/gate"
	"github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/core/linkedin"
	"github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/core/relay"
	"github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/observability"
	"github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/server/handlers"
)

// recordedCall captures what the fake gateway saw for one request.
type recordedCall struct {
	Path     string
	RawQuery string
	Key      string
	Host     string
	At       time.Time
}

// fakeGateway stands in for the RapidAPI gateway. Responses are keyed by
// upstream path; unrouted paths return 404 with a gateway-style body.
type fakeGateway struct {
	mu        sync.Mutex
	calls     []recordedCall
	responses map[string]func(n int) (int, string)
}

func (g *fakeGateway) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g.mu.Lock()
		g.calls = append(g.calls, recordedCall{
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
			Key:      r.Header.Get("x-rapidapi-key"),
			Host:     r.Header.Get("x-rapidapi-host"),
			At:       time.Now(),
		})
		seen := 0
		for _, call := range g.calls {
			if call.Path == r.URL.Path {
				seen++
			}
		}
		respond := g.responses[r.URL.Path]
		g.mu.Unlock()

		if respond == nil {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Endpoint does not exist"}`))
			return
		}
		status, body := respond(seen)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func (g *fakeGateway) recorded() []recordedCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]recordedCall, len(g.calls))
	copy(out, g.calls)
	return out
}

// newProxyStack wires the full outbound pipeline against a fake gateway and
// serves it through the real router and middleware.
func newProxyStack(t *testing.T, gw *fakeGateway, spacing time.Duration) (*httptest.Server, *http.Client) {
	t.Helper()

	upstream := httptest.NewServer(gw.handler())
	t.Cleanup(upstream.Close)

	dispatcher := &relay.Relay{
		Builder: &linkedin.Client{
			BaseURL: upstream.URL,
			Host:    linkedin.DefaultHost,
		},
		Client:      upstream.Client(),
		Gate:        gate.New(spacing),
		MaxAttempts: 3,
		BackoffBase: time.Millisecond,
	}
	proxy := &handlers.Proxy{
		Relay:      dispatcher,
		DefaultKey: func() string { return "integration-key" },
	}

	return newTestServer(t, proxy, nil)
}

func TestProxyRoundTrip_ProfilePassthrough(t *testing.T) {
	observability.InitCLILogger("test", false)
	observability.InitServerLogger("test", "info")

	gw := &fakeGateway{responses: map[string]func(int) (int, string){
		"/get-profile": func(int) (int, string) {
			return http.StatusOK, `{"username":"alice","firstName":"Alice"}`
		},
	}}
	ts, client := newProxyStack(t, gw, 0)

	resp, err := client.Get(ts.URL + "/api/profile?username=alice")
	require.NoError(t, err)
	body, readErr := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, readErr)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"username":"alice","firstName":"Alice"}`, string(body))

	calls := gw.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, "/get-profile", calls[0].Path)
	assert.Equal(t, "username=alice", calls[0].RawQuery)
	assert.Equal(t, "integration-key", calls[0].Key)
	assert.Equal(t, linkedin.DefaultHost, calls[0].Host)
}

func TestProxyRoundTrip_HeaderKeyWinsOverDefault(t *testing.T) {
	observability.InitCLILogger("test", false)
	observability.InitServerLogger("test", "info")

	gw := &fakeGateway{responses: map[string]func(int) (int, string){
		"/get-company-details": func(int) (int, string) {
			return http.StatusOK, `{"name":"Acme"}`
		},
	}}
	ts, client := newProxyStack(t, gw, 0)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/company?identifier=acme", nil)
	require.NoError(t, err)
	req.Header.Set("x-rapidapi-key", "caller-key")

	resp, err := client.Do(req)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	calls := gw.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, "caller-key", calls[0].Key)
}

func TestProxyRoundTrip_RetryAfterTooManyRequests(t *testing.T) {
	observability.InitCLILogger("test", false)
	observability.InitServerLogger("test", "info")

	gw := &fakeGateway{responses: map[string]func(int) (int, string){
		"/get-profile-posts": func(n int) (int, string) {
			if n == 1 {
				return http.StatusTooManyRequests, `{"message":"Too many requests"}`
			}
			return http.StatusOK, `{"data":[{"text":"post"}]}`
		},
	}}
	ts, client := newProxyStack(t, gw, 0)

	resp, err := client.Get(ts.URL + "/api/posts?username=alice")
	require.NoError(t, err)
	body, readErr := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, readErr)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"data":[{"text":"post"}]}`, string(body))
	assert.Len(t, gw.recorded(), 2, "second attempt should have succeeded")
}

func TestProxyRoundTrip_QuotaExhaustionSurfacesAs429(t *testing.T) {
	observability.InitCLILogger("test", false)
	observability.InitServerLogger("test", "info")

	gw := &fakeGateway{responses: map[string]func(int) (int, string){
		"/get-profile": func(int) (int, string) {
			return http.StatusTooManyRequests, `{"message":"Too many requests"}`
		},
	}}
	ts, client := newProxyStack(t, gw, 0)

	resp, err := client.Get(ts.URL + "/api/profile?username=alice")
	require.NoError(t, err)
	body, readErr := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, readErr)

	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	assert.Equal(t, "QUOTA_EXCEEDED", envelope.Error.Code)
	assert.Equal(t, "Rate limit exceeded. Please try again later.", envelope.Error.Message)
	assert.Len(t, gw.recorded(), 3, "all attempts should have been spent")
}

func TestProxyRoundTrip_GateSpacesConcurrentCalls(t *testing.T) {
	observability.InitCLILogger("test", false)
	observability.InitServerLogger("test", "info")

	const spacing = 30 * time.Millisecond

	gw := &fakeGateway{responses: map[string]func(int) (int, string){
		"/get-profile": func(int) (int, string) {
			return http.StatusOK, `{"username":"alice"}`
		},
	}}
	ts, client := newProxyStack(t, gw, spacing)

	var failures atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := client.Get(ts.URL + "/api/profile?username=alice")
			if err != nil {
				failures.Add(1)
				return
			}
			defer resp.Body.Close() // nolint:errcheck // test cleanup
			if resp.StatusCode != http.StatusOK {
				failures.Add(1)
			}
		}()
	}
	wg.Wait()

	require.Zero(t, failures.Load())

	calls := gw.recorded()
	require.Len(t, calls, 3)
	for i := 1; i < len(calls); i++ {
		gap := calls[i].At.Sub(calls[i-1].At)
		// Allow a little scheduling slack below the configured spacing.
		assert.GreaterOrEqual(t, gap, spacing-10*time.Millisecond,
			"calls %d and %d arrived %v apart", i-1, i, gap)
	}
}
