package output

import (
	"fmt"
	"strings"
)

// MarkdownFormatter renders the catalog as a markdown table.
type MarkdownFormatter struct{}

// FormatCatalog renders a route catalog as Markdown.
func (f *MarkdownFormatter) FormatCatalog(catalog *Catalog) (string, error) {
	if catalog == nil {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## %s routes\n\n", escapeMarkdownCell(catalog.Service)))
	sb.WriteString("| Method | Path | Params | Upstream | Notes |\n")
	sb.WriteString("|--------|------|--------|----------|-------|\n")

	for _, route := range catalog.Routes {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
			escapeMarkdownCell(route.Method),
			escapeMarkdownCell(route.Path),
			escapeMarkdownCell(paramList(route)),
			escapeMarkdownCell(upstreamLabel(route)),
			escapeMarkdownCell(route.Notes),
		))
	}

	if catalog.UpstreamBase != "" {
		sb.WriteString(fmt.Sprintf("\n**Upstream**: %s\n", escapeMarkdownCell(catalog.UpstreamBase)))
	}

	return sb.String(), nil
}

func escapeMarkdownCell(value string) string {
	return strings.ReplaceAll(value, "|", "\\|")
}
