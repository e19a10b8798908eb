package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pluqqy/quicknotes/internal/cli"
	"github.com/pluqqy/quicknotes/pkg/models"
)

// ListResult represents the output structure for list command
type ListResult struct {
	Filter string     `json:"filter,omitempty" yaml:"filter,omitempty"`
	Notes  []ListItem `json:"notes" yaml:"notes"`
	Count  int        `json:"count" yaml:"count"`
	Total  int        `json:"total" yaml:"total"`
}

// ListItem represents a single note in the list
type ListItem struct {
	Title     string    `json:"title" yaml:"title"`
	Content   string    `json:"content" yaml:"content"`
	Date      string    `json:"date" yaml:"date"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// NewListCommand creates the list command
func NewListCommand(opts *GlobalOptions) *cobra.Command {
	var (
		filter string
		output string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the seeded notes",
		Long: `Render the notes from the configuration and print them.

Examples:
  # List all notes
  quicknotes list

  # Only notes matching a filter, as JSON
  quicknotes list --filter groceries -o json`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.ValidateOutputFormat(output)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts, filter, output)
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "only notes whose title, content or date contain this text")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format (text, json, yaml)")

	return cmd
}

func runList(cmd *cobra.Command, opts *GlobalOptions, filter, output string) error {
	s, err := openSession(cmd, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.widget.Filter(filter); err != nil {
		return fmt.Errorf("failed to filter notes: %w", err)
	}

	result := ListResult{
		Filter: filter,
		Notes:  toListItems(s.widget.Visible()),
		Total:  len(s.widget.Notes()),
	}
	result.Count = len(result.Notes)

	switch cli.OutputFormat(output) {
	case cli.FormatJSON, cli.FormatYAML:
		return cli.Encode(cmd.OutOrStdout(), cli.OutputFormat(output), result)
	default:
		return outputListText(cmd, result)
	}
}

func toListItems(notes []*models.Note) []ListItem {
	items := make([]ListItem, 0, len(notes))
	for _, note := range notes {
		items = append(items, ListItem{
			Title:     note.Title,
			Content:   note.Content,
			Date:      note.FormattedDate(),
			CreatedAt: note.CreatedAt,
		})
	}
	return items
}

func outputListText(cmd *cobra.Command, result ListResult) error {
	out := cmd.OutOrStdout()
	if result.Count == 0 {
		if result.Total == 0 {
			fmt.Fprintln(out, "No notes.")
		} else {
			fmt.Fprintf(out, "No notes match %q.\n", result.Filter)
		}
		return nil
	}

	table := cli.NewTable(out,
		cli.Column{Title: "TITLE", MaxWidth: 30},
		cli.Column{Title: "DATE"},
		cli.Column{Title: "CONTENT", MaxWidth: 50},
	)
	for _, item := range result.Notes {
		table.Append(item.Title, item.Date, item.Content)
	}
	if err := table.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%d of %d notes\n", result.Count, result.Total)
	return nil
}
