package linkedin

import (
	"errors"
	"strings"
)

const (
	// KeyHeader is the inbound and outbound header carrying the RapidAPI key.
	KeyHeader = "x-rapidapi-key"

	// MissingKeyDetail is the client-facing explanation when no credential
	// can be resolved for a request.
	MissingKeyDetail = "RapidAPI key missing. Set in .env or send via x-rapidapi-key header."
)

// ErrMissingKey reports that neither the request header nor the configured
// default supplied a usable credential.
var ErrMissingKey = errors.New("rapidapi key is missing")

// ResolveKey picks the credential for one upstream call. A non-empty header
// value wins; otherwise the configured default is used. Values are trimmed
// before the emptiness check so a whitespace-only header does not shadow a
// real default key.
func ResolveKey(headerValue, defaultKey string) (string, error) {
	if key := strings.TrimSpace(headerValue); key != "" {
		return key, nil
	}
	if key := strings.TrimSpace(defaultKey); key != "" {
		return key, nil
	}
	return "", ErrMissingKey
}
