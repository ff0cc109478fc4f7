package metrics

import (
	"strconv"
	"time"

	"github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/observability"
)

// Proxy-level metrics following Prometheus conventions
var (
	// Upstream dispatch metrics
	UpstreamRequestsTotal   = "upstream_requests_total"
	UpstreamRequestDuration = "upstream_request_duration_ms"
	UpstreamRetriesTotal    = "upstream_retries_total"
	DispatchFailuresTotal   = "dispatch_failures_total"

	// Rate gate metrics
	GateWaitDuration = "gate_wait_duration_ms"

	// Health check metrics
	HealthCheckTotal    = "app_health_check_total"
	HealthCheckDuration = "app_health_check_duration_ms"

	// Server lifecycle metrics
	ServerStartTime = "app_server_start_time_seconds"
)

// RecordUpstreamRequest records one completed outbound call to the provider.
func RecordUpstreamRequest(endpoint string, status int, duration time.Duration) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			UpstreamRequestsTotal,
			1,
			map[string]string{
				"endpoint": endpoint,
				"status":   strconv.Itoa(status),
			},
		)

		_ = observability.TelemetrySystem.Histogram(
			UpstreamRequestDuration,
			duration,
			map[string]string{
				"endpoint": endpoint,
			},
		)
	}
}

// RecordUpstreamRetry records a retried attempt and why it was retried
// ("throttled" or "network").
func RecordUpstreamRetry(endpoint string, reason string) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			UpstreamRetriesTotal,
			1,
			map[string]string{
				"endpoint": endpoint,
				"reason":   reason,
			},
		)
	}
}

// RecordGateWait records how long a dispatch waited for its outbound slot.
func RecordGateWait(endpoint string, wait time.Duration) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Histogram(
			GateWaitDuration,
			wait,
			map[string]string{
				"endpoint": endpoint,
			},
		)
	}
}

// RecordDispatchFailure records a dispatch that surfaced an error to the caller.
func RecordDispatchFailure(endpoint string, errorCode string) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			DispatchFailuresTotal,
			1,
			map[string]string{
				"endpoint":   endpoint,
				"error_code": errorCode,
			},
		)
	}
}

// RecordHealthCheck records a health check execution
func RecordHealthCheck(checkName string, healthy bool, duration time.Duration) {
	status := "healthy"
	if !healthy {
		status = "unhealthy"
	}

	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			HealthCheckTotal,
			1,
			map[string]string{
				"check":  checkName,
				"status": status,
			},
		)

		_ = observability.TelemetrySystem.Histogram(
			HealthCheckDuration,
			duration,
			map[string]string{
				"check": checkName,
			},
		)
	}
}

// SetServerStartTime records the server start time (Unix timestamp)
func SetServerStartTime(timestamp int64) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Gauge(
			ServerStartTime,
			float64(timestamp),
			nil,
		)
	}
}
