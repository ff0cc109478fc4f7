package linkedin

import "net/url"

// NormalizePostURL strips the query string and fragment from a post URL so
// the same post always reaches the upstream provider under one canonical
// form, no matter which tracking parameters the share link carried. Scheme,
// host and path are preserved exactly. Input that does not parse is returned
// unchanged. Normalizing an already-normalized URL is a no-op.
func NormalizePostURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	parsed.RawQuery = ""
	parsed.ForceQuery = false
	parsed.Fragment = ""
	parsed.RawFragment = ""

	return parsed.String()
}
