package middleware

import (
	"net/http"

	"github.com/fulmenhq/gofulmen/errors"
	"golang.org/x/sync/semaphore"
)

// MaxInflight caps concurrently served requests with a weighted semaphore.
// Requests over the cap are shed immediately with 503 rather than queued;
// anything queued here would only pile up behind the outbound gate anyway.
func MaxInflight(limit int64) func(http.Handler) http.Handler {
	if limit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	sem := semaphore.NewWeighted(limit)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !sem.TryAcquire(1) {
				w.Header().Set("Retry-After", "1")

				envelope := errors.NewErrorEnvelope("SERVICE_UNAVAILABLE", "Server is at capacity, retry shortly").
					WithCorrelationID(GetRequestID(r.Context()))
				writeErrorResponse(w, envelope, http.StatusServiceUnavailable)
				return
			}
			defer sem.Release(1)

			next.ServeHTTP(w, r)
		})
	}
}
