// Package layout provides the page markup the widget runs against.
package layout

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/pluqqy/quicknotes/pkg/dom"
)

//go:embed index.html
var defaultLayout string

// Default returns the built-in page markup
func Default() string {
	return defaultLayout
}

// Load parses the layout at path, or the built-in layout when path is empty
func Load(path string) (*dom.Document, error) {
	if path == "" {
		return dom.ParseString(defaultLayout)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout %s: %w", path, err)
	}
	return dom.ParseString(string(data))
}
