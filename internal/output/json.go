package output

import (
	"encoding/json"
)

// JSONFormatter renders the catalog as JSON.
type JSONFormatter struct {
	Indent bool
}

// FormatCatalog renders a route catalog as JSON.
func (f *JSONFormatter) FormatCatalog(catalog *Catalog) (string, error) {
	if catalog == nil {
		return "", nil
	}

	var (
		data []byte
		err  error
	)

	if f.Indent {
		data, err = json.MarshalIndent(catalog, "", "  ")
	} else {
		data, err = json.Marshal(catalog)
	}
	if err != nil {
		return "", err
	}

	return string(data), nil
}
