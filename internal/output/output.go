package output

import (
	"fmt"
	"strings"
)

// Format represents an output format.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Route describes one public route of the backend.
type Route struct {
	Method   string   `json:"method"`
	Path     string   `json:"path"`
	Params   []string `json:"params,omitempty"`
	Upstream string   `json:"upstream,omitempty"`
	Notes    string   `json:"notes,omitempty"`
}

// Catalog is the route listing rendered by the endpoints command. UpstreamBase
// names the provider the /api routes forward to; service-local routes leave
// Upstream empty.
type Catalog struct {
	Service      string  `json:"service"`
	UpstreamBase string  `json:"upstream_base_url,omitempty"`
	Routes       []Route `json:"routes"`
}

// Formatter renders a route catalog.
type Formatter interface {
	FormatCatalog(catalog *Catalog) (string, error)
}

// ParseFormat validates and normalizes a format string.
func ParseFormat(value string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "", string(FormatTable):
		return FormatTable, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatMarkdown):
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", value)
	}
}

// NewFormatter returns a formatter for the requested format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	case FormatMarkdown:
		return &MarkdownFormatter{}
	default:
		return &TableFormatter{}
	}
}

func paramList(route Route) string {
	if len(route.Params) == 0 {
		return "-"
	}
	return strings.Join(route.Params, ", ")
}

func upstreamLabel(route Route) string {
	if route.Upstream == "" {
		return "-"
	}
	return route.Upstream
}
