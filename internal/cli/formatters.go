package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// ValidateOutputFormat checks that format is one of text, json or yaml
func ValidateOutputFormat(format string) error {
	switch OutputFormat(format) {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	default:
		return fmt.Errorf("invalid output format %q: must be text, json or yaml", format)
	}
}

// Column describes one table column. Cells longer than MaxWidth runes are
// truncated; zero means no limit.
type Column struct {
	Title    string
	MaxWidth int
}

// Table buffers rows and writes them aligned under a dashed rule
type Table struct {
	out     io.Writer
	columns []Column
	rows    [][]string
}

// NewTable creates a table with the given columns
func NewTable(out io.Writer, columns ...Column) *Table {
	return &Table{out: out, columns: columns}
}

// Append adds a row. Missing cells are left blank, extra cells are dropped.
func (t *Table) Append(cells ...string) {
	row := make([]string, len(t.columns))
	for i, column := range t.columns {
		if i >= len(cells) {
			break
		}
		cell := cells[i]
		if column.MaxWidth > 0 {
			cell = TruncateString(cell, column.MaxWidth)
		}
		row[i] = cell
	}
	t.rows = append(t.rows, row)
}

// Len returns the number of buffered rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Flush writes the header, a rule as wide as each column and every row
func (t *Table) Flush() error {
	titles := make([]string, len(t.columns))
	rules := make([]string, len(t.columns))
	for i, column := range t.columns {
		width := utf8.RuneCountInString(column.Title)
		for _, row := range t.rows {
			width = max(width, utf8.RuneCountInString(row[i]))
		}
		titles[i] = column.Title
		rules[i] = strings.Repeat("-", width)
	}

	tw := tabwriter.NewWriter(t.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(titles, "\t"))
	fmt.Fprintln(tw, strings.Join(rules, "\t"))
	for _, row := range t.rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// Encode writes data as json or yaml. Text output has no generic encoding;
// commands print their own text views.
func Encode(w io.Writer, format OutputFormat, data interface{}) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(data); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return fmt.Errorf("no encoder for output format %q", format)
	}
}

// TruncateString shortens s to maxLen runes, ending with "..." when cut.
// Line breaks are flattened so a value fits one table cell.
func TruncateString(s string, maxLen int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
