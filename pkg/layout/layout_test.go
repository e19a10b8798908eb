package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLayoutAddresses(t *testing.T) {
	doc, err := Load("")
	require.NoError(t, err)

	for _, selector := range []string{
		"#search-bar",
		"#add-note",
		"#note-renderer",
		"#empty-disclaimer button",
		"#note-composition-panel h2",
		"#note-composition-panel-title",
		"#note-composition-panel-content",
		"#note-composition-panel-cancel",
		"#note-composition-panel-add-button",
		"#template-note",
	} {
		_, err := doc.Locate(selector)
		assert.NoError(t, err, selector)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.html")
	require.NoError(t, os.WriteFile(path, []byte(`<html><body><p id="hello">hi</p></body></html>`), 0644))

	doc, err := Load(path)
	require.NoError(t, err)
	h, err := doc.Locate("#hello")
	require.NoError(t, err)
	assert.Equal(t, "hi", h.Text())

	_, err = Load(filepath.Join(t.TempDir(), "missing.html"))
	assert.Error(t, err)
}
