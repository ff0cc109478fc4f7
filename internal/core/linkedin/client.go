// Package linkedin shapes requests for the LinkedIn data provider behind the
// RapidAPI gateway: credential resolution, post-URL normalization and the
// endpoint catalog. It never performs I/O itself; the dispatcher does.
package linkedin

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/core"
)

const (
	// DefaultBaseURL is the RapidAPI gateway fronting the provider.
	DefaultBaseURL = "https://linkedin-data-api.p.rapidapi.com"

	// DefaultHost is the value of the x-rapidapi-host header, which RapidAPI
	// uses to route the call to the right provider.
	DefaultHost = "linkedin-data-api.p.rapidapi.com"

	hostHeader = "x-rapidapi-host"
)

// Client builds HTTP requests against the gateway. The zero value targets the
// production RapidAPI host.
type Client struct {
	BaseURL string
	Host    string
}

// NewRequest turns an outbound request into an *http.Request addressed at the
// gateway, with the host and credential headers set. Query parameters keep
// their declared order.
func (c *Client) NewRequest(ctx context.Context, out core.OutboundRequest) (*http.Request, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	reqURL := c.baseURL().ResolveReference(&url.URL{Path: out.Endpoint}).String()
	if query := encodeParams(out.Params); query != "" {
		reqURL += "?" + query
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(hostHeader, c.host())
	req.Header.Set(KeyHeader, out.Key)

	return req, nil
}

func (c *Client) baseURL() *url.URL {
	if c != nil && c.BaseURL != "" {
		if parsed, err := url.Parse(c.BaseURL); err == nil {
			return parsed
		}
	}
	parsed, _ := url.Parse(DefaultBaseURL)
	return parsed
}

func (c *Client) host() string {
	if c != nil && c.Host != "" {
		return c.Host
	}
	return DefaultHost
}

// encodeParams encodes query parameters in declared order. url.Values.Encode
// would sort keys alphabetically, which reorders the pairs the provider
// documents.
func encodeParams(params []core.Param) string {
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}
