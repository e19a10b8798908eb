package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const testConfig = `labels:
  add_heading: Nouvelle note
log:
  level: warn
notes:
  - title: Groceries
    content: milk and eggs
    created_at: 2024-05-14
  - title: Dentist
    content: call on monday
    created_at: 2024-06-01
`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	cmd := NewRootCommand("1.2.3")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "quicknotes version 1.2.3\n", out)
}

func TestListCommand(t *testing.T) {
	path := writeTestConfig(t)

	tests := []struct {
		name     string
		args     []string
		contains []string
		excludes []string
	}{
		{
			name:     "all notes as text",
			args:     []string{"list"},
			contains: []string{"TITLE", "Groceries", "may 14", "Dentist", "jun 1", "2 of 2 notes"},
		},
		{
			name:     "filtered",
			args:     []string{"list", "--filter", "MILK"},
			contains: []string{"Groceries", "1 of 2 notes"},
			excludes: []string{"Dentist"},
		},
		{
			name:     "filter matches the date",
			args:     []string{"list", "-f", "jun"},
			contains: []string{"Dentist"},
			excludes: []string{"Groceries"},
		},
		{
			name:     "no match",
			args:     []string{"list", "-f", "zzz"},
			contains: []string{`No notes match "zzz".`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, append(tt.args, "--config", path)...)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, out, unwanted)
			}
		})
	}
}

func TestListCommandJSON(t *testing.T) {
	out, err := execute(t, "list", "-o", "json", "--config", writeTestConfig(t))
	require.NoError(t, err)

	var result ListResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, "Groceries", result.Notes[0].Title)
	assert.Equal(t, "may 14", result.Notes[0].Date)
}

func TestListCommandYAML(t *testing.T) {
	out, err := execute(t, "list", "-o", "yaml", "-f", "dentist", "--config", writeTestConfig(t))
	require.NoError(t, err)

	var result map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &result))
	assert.Equal(t, "dentist", result["filter"])
	assert.Equal(t, 1, result["count"])
}

func TestListCommandDefaults(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Note 1")
	assert.Contains(t, out, "3 of 3 notes")
}

func TestListCommandInvalidOutput(t *testing.T) {
	_, err := execute(t, "list", "-o", "xml")
	assert.Error(t, err)
}

func TestListCommandBrokenLayout(t *testing.T) {
	layout := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(layout, []byte("<html><body><p>nothing here</p></body></html>"), 0644))

	_, err := execute(t, "list", "--layout", layout)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to set up notes view")
}

func TestConfigCommand(t *testing.T) {
	path := writeTestConfig(t)

	out, err := execute(t, "config", "--config", path, "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, out, "# "+path)
	assert.Contains(t, out, "add_heading: Nouvelle note")
	assert.Contains(t, out, "level: debug")
	assert.Contains(t, out, "title: Dentist")
}

func TestConfigCommandDefaults(t *testing.T) {
	out, err := execute(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "# built-in defaults")
	assert.Contains(t, out, "level: info")
}

func TestCopyCommand(t *testing.T) {
	var copied []string
	original := copyToClipboard
	defer func() { copyToClipboard = original }()
	copyToClipboard = func(text string) error {
		copied = append(copied, text)
		return nil
	}

	_, err := execute(t, "copy", "dentist", "--quiet", "--config", writeTestConfig(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"call on monday"}, copied)

	_, err = execute(t, "copy", "missing", "--quiet", "--config", writeTestConfig(t))
	assert.Error(t, err)
}

func TestCopyCommandClipboardFailure(t *testing.T) {
	original := copyToClipboard
	defer func() { copyToClipboard = original }()
	copyToClipboard = func(string) error { return errors.New("no clipboard") }

	_, err := execute(t, "copy", "Groceries", "--quiet", "--config", writeTestConfig(t))
	assert.Error(t, err)
}
