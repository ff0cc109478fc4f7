package output

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
)

// TableFormatter renders the catalog as an ASCII table.
type TableFormatter struct{}

// FormatCatalog renders a route catalog as a table.
func (f *TableFormatter) FormatCatalog(catalog *Catalog) (string, error) {
	if catalog == nil {
		return "", nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetTitle(catalog.Service)
	t.AppendHeader(table.Row{"Method", "Path", "Params", "Upstream", "Notes"})

	for _, route := range catalog.Routes {
		t.AppendRow(table.Row{
			route.Method,
			route.Path,
			paramList(route),
			upstreamLabel(route),
			route.Notes,
		})
	}

	footer := fmt.Sprintf("%d routes", len(catalog.Routes))
	if catalog.UpstreamBase != "" {
		footer += " -> " + catalog.UpstreamBase
	}
	t.AppendFooter(table.Row{"", "", "", "", footer})

	return t.Render(), nil
}
