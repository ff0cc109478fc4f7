package relay

import "fmt"

// Kind classifies a terminal dispatch failure.
type Kind int

const (
	// KindMissingKey means no credential was available for the call.
	KindMissingKey Kind = iota
	// KindQuotaExceeded means every attempt was throttled by the gateway.
	KindQuotaExceeded
	// KindUpstream means the provider answered with a non-throttling error status.
	KindUpstream
	// KindEmptyResponse means a 2xx answer carried no usable document.
	KindEmptyResponse
	// KindTransport means the call never produced an HTTP response.
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindMissingKey:
		return "missing_key"
	case KindQuotaExceeded:
		return "quota_exceeded"
	case KindUpstream:
		return "upstream_error"
	case KindEmptyResponse:
		return "empty_response"
	case KindTransport:
		return "transport_error"
	default:
		return "unknown"
	}
}

// Failure is the typed outcome of an exhausted or aborted dispatch. Handlers
// translate it into the caller-facing error taxonomy; the relay itself stays
// transport-neutral.
type Failure struct {
	Kind     Kind
	Resource string // label of what was being fetched ("profile", "posts", ...)
	Status   int    // last upstream status, set for quota and upstream kinds
	Body     string // upstream body, set for upstream kind
	Err      error  // underlying transport error, set for transport kind
}

func (f *Failure) Error() string {
	switch f.Kind {
	case KindMissingKey:
		return "rapidapi key is missing"
	case KindQuotaExceeded:
		return fmt.Sprintf("upstream quota exhausted fetching %s", f.Resource)
	case KindUpstream:
		return fmt.Sprintf("upstream status %d fetching %s", f.Status, f.Resource)
	case KindEmptyResponse:
		return fmt.Sprintf("empty upstream response fetching %s", f.Resource)
	case KindTransport:
		if f.Err != nil {
			return fmt.Sprintf("fetching %s: %v", f.Resource, f.Err)
		}
		return fmt.Sprintf("fetching %s failed", f.Resource)
	default:
		return fmt.Sprintf("dispatch failed fetching %s", f.Resource)
	}
}

func (f *Failure) Unwrap() error {
	return f.Err
}
