// Package relay dispatches outbound calls to the upstream provider. It owns
// the parts of the call that are shared by every route: rate-gate pacing,
// the bounded retry ladder with exponential backoff on throttling, and the
// classification of terminal failures.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/core"
	"github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/core/gate"
	"github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/metrics"
)

const (
	defaultMaxAttempts = 3
	defaultBackoffBase = time.Second
	defaultTimeout     = 30 * time.Second
)

// Retry reasons recorded on the upstream retry counter.
const (
	retryReasonThrottled = "throttled"
	retryReasonNetwork   = "network"
)

// RequestBuilder turns an outbound request into a concrete HTTP request.
// A fresh request is built for every attempt.
type RequestBuilder interface {
	NewRequest(ctx context.Context, out core.OutboundRequest) (*http.Request, error)
}

// Relay performs upstream calls. All fields are optional except Builder;
// zero values fall back to production defaults (3 attempts, 1s backoff
// base, 30s request timeout, no pacing when Gate is nil).
type Relay struct {
	Builder     RequestBuilder
	Client      *http.Client
	Gate        *gate.Gate
	MaxAttempts int
	BackoffBase time.Duration
	Sleep       func(ctx context.Context, d time.Duration) error
	Clock       func() time.Time
}

// attemptResult is the classified product of one upstream attempt.
type attemptResult struct {
	outcome attemptOutcome
	status  int
	body    []byte
	err     error
}

// Do performs one dispatch: gate, call, classify, retry as the policy
// dictates. On success it returns the raw response document for
// pass-through; every failure is a *Failure carrying the terminal kind.
// The rate gate is consulted before every attempt, retries included.
func (r *Relay) Do(ctx context.Context, out core.OutboundRequest) (json.RawMessage, error) {
	if r == nil || r.Builder == nil {
		return nil, errors.New("relay is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if strings.TrimSpace(out.Key) == "" {
		return nil, &Failure{Kind: KindMissingKey, Resource: out.Resource}
	}

	maxAttempts := r.maxAttempts()

	for attempt := 0; attempt < maxAttempts; attempt++ {
		gateStart := r.now()
		if err := r.Gate.Wait(ctx); err != nil {
			return nil, err
		}
		if waited := r.now().Sub(gateStart); waited > 0 {
			metrics.RecordGateWait(out.Endpoint, waited)
		}

		result, err := r.attempt(ctx, out)
		if err != nil {
			return nil, err
		}

		act := decide(attempt, maxAttempts, result.outcome, r.backoffBase())
		switch act.kind {
		case actionSucceed:
			if emptyPayload(result.body) {
				metrics.RecordDispatchFailure(out.Endpoint, KindEmptyResponse.String())
				return nil, &Failure{Kind: KindEmptyResponse, Resource: out.Resource}
			}
			return json.RawMessage(result.body), nil

		case actionRetry:
			reason := retryReasonNetwork
			if result.outcome == outcomeThrottled {
				reason = retryReasonThrottled
			}
			metrics.RecordUpstreamRetry(out.Endpoint, reason)
			if act.delay > 0 {
				if err := r.sleep(ctx, act.delay); err != nil {
					return nil, err
				}
			}

		case actionFailQuota:
			metrics.RecordDispatchFailure(out.Endpoint, KindQuotaExceeded.String())
			return nil, &Failure{Kind: KindQuotaExceeded, Resource: out.Resource, Status: result.status}

		case actionFailUpstream:
			metrics.RecordDispatchFailure(out.Endpoint, KindUpstream.String())
			return nil, &Failure{Kind: KindUpstream, Resource: out.Resource, Status: result.status, Body: string(result.body)}

		case actionFailTransport:
			metrics.RecordDispatchFailure(out.Endpoint, KindTransport.String())
			return nil, &Failure{Kind: KindTransport, Resource: out.Resource, Err: result.err}
		}
	}

	// The policy terminates every final attempt; this is unreachable.
	return nil, &Failure{Kind: KindTransport, Resource: out.Resource}
}

// attempt issues a single upstream call and classifies the result. The
// returned error is reserved for request construction problems, which are
// not retryable.
func (r *Relay) attempt(ctx context.Context, out core.OutboundRequest) (attemptResult, error) {
	req, err := r.Builder.NewRequest(ctx, out)
	if err != nil {
		return attemptResult{}, err
	}

	started := r.now()
	resp, err := r.client().Do(req)
	if err != nil {
		return attemptResult{outcome: outcomeNetwork, err: err}, nil
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup on HTTP response body

	metrics.RecordUpstreamRequest(out.Endpoint, resp.StatusCode, r.now().Sub(started))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return attemptResult{outcome: outcomeNetwork, status: resp.StatusCode, err: err}, nil
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return attemptResult{outcome: outcomeThrottled, status: resp.StatusCode, body: body}, nil
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return attemptResult{outcome: outcomeSuccess, status: resp.StatusCode, body: body}, nil
	default:
		return attemptResult{outcome: outcomeUpstream, status: resp.StatusCode, body: body}, nil
	}
}

// emptyPayload reports whether a 2xx body decodes to nothing a caller could
// use: blank, null, an empty object or array, or not a JSON document at all.
// Scalar documents pass through untouched.
func emptyPayload(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return true
	}

	var decoded any
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return true
	}

	switch v := decoded.(type) {
	case nil:
		return true
	case map[string]any:
		return len(v) == 0
	case []any:
		return len(v) == 0
	}
	return false
}

func (r *Relay) maxAttempts() int {
	if r != nil && r.MaxAttempts > 0 {
		return r.MaxAttempts
	}
	return defaultMaxAttempts
}

func (r *Relay) backoffBase() time.Duration {
	if r != nil && r.BackoffBase > 0 {
		return r.BackoffBase
	}
	return defaultBackoffBase
}

func (r *Relay) client() *http.Client {
	if r != nil && r.Client != nil {
		return r.Client
	}
	return &http.Client{Timeout: defaultTimeout}
}

func (r *Relay) now() time.Time {
	if r != nil && r.Clock != nil {
		return r.Clock()
	}
	return time.Now()
}

func (r *Relay) sleep(ctx context.Context, d time.Duration) error {
	if r != nil && r.Sleep != nil {
		return r.Sleep(ctx, d)
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
