package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fulmenhq/gofulmen/errors"
	"golang.org/x/time/rate"
)

// KeyFunc derives the limiter key for a request.
type KeyFunc func(r *http.Request) string

// RateLimitOptions tunes the inbound per-client limiter. The limiter protects
// the single outbound gate: without it, one chatty client could queue every
// other caller behind the 1.2s spacing indefinitely.
type RateLimitOptions struct {
	RPS                float64
	Burst              int
	TrustXForwardedFor bool
	KeyFn              KeyFunc
	IdleTTL            time.Duration
	SweepEvery         time.Duration
}

// DefaultKeyFunc keys by the original client address: first X-Forwarded-For
// entry when trusted, else RemoteAddr without the port.
func DefaultKeyFunc(trustXFF bool) KeyFunc {
	return func(r *http.Request) string {
		if trustXFF {
			if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
				if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
					return ip
				}
			}
		}

		host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
		if err == nil && host != "" {
			return host
		}
		if r.RemoteAddr != "" {
			return r.RemoteAddr
		}
		return "unknown"
	}
}

type limiterEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// clientLimiters is a token-bucket store keyed per client. Idle entries are
// swept inline on lookup, so there is no janitor goroutine to manage.
type clientLimiters struct {
	mu         sync.Mutex
	entries    map[string]*limiterEntry
	rps        rate.Limit
	burst      int
	idleTTL    time.Duration
	sweepEvery time.Duration
	lastSweep  time.Time
}

func (c *clientLimiters) get(key string) *rate.Limiter {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if now.Sub(c.lastSweep) >= c.sweepEvery {
		cutoff := now.Add(-c.idleTTL)
		for k, ent := range c.entries {
			if ent.lastSeen.Before(cutoff) {
				delete(c.entries, k)
			}
		}
		c.lastSweep = now
	}

	if ent, ok := c.entries[key]; ok {
		ent.lastSeen = now
		return ent.lim
	}

	lim := rate.NewLimiter(c.rps, c.burst)
	c.entries[key] = &limiterEntry{lim: lim, lastSeen: now}
	return lim
}

// ClientRateLimit rejects clients that exceed their token bucket with a
// RATE_LIMITED envelope and a Retry-After hint.
func ClientRateLimit(opts RateLimitOptions) func(http.Handler) http.Handler {
	if opts.RPS <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if opts.Burst <= 0 {
		opts.Burst = 1
	}
	if opts.KeyFn == nil {
		opts.KeyFn = DefaultKeyFunc(opts.TrustXForwardedFor)
	}
	if opts.IdleTTL <= 0 {
		opts.IdleTTL = 15 * time.Minute
	}
	if opts.SweepEvery <= 0 {
		opts.SweepEvery = 2 * time.Minute
	}

	store := &clientLimiters{
		entries:    make(map[string]*limiterEntry),
		rps:        rate.Limit(opts.RPS),
		burst:      opts.Burst,
		idleTTL:    opts.IdleTTL,
		sweepEvery: opts.SweepEvery,
		lastSweep:  time.Now(),
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !store.get(opts.KeyFn(r)).Allow() {
				retryAfter := int(math.Ceil(1 / opts.RPS))
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))

				envelope := errors.NewErrorEnvelope("RATE_LIMITED", "Too many requests, slow down").
					WithCorrelationID(GetRequestID(r.Context()))
				writeErrorResponse(w, envelope, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
