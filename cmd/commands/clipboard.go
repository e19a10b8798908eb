package commands

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/pluqqy/quicknotes/internal/cli"
	"github.com/pluqqy/quicknotes/pkg/widget"
)

// copyToClipboard is replaced in tests
var copyToClipboard = clipboard.WriteAll

// NewCopyCommand creates the copy command
func NewCopyCommand(opts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copy <title>",
		Short: "Copy a note's content to the clipboard",
		Long: `Copy the content of the first note whose title matches to the system
clipboard, the same way the copy button in the notes view does.

Examples:
  quicknotes copy "Note 1"`,
		Args:    cobra.ExactArgs(1),
		Aliases: []string{"clip"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCopy(cmd, opts, args[0])
		},
	}
	return cmd
}

func runCopy(cmd *cobra.Command, opts *GlobalOptions, title string) error {
	var copied string
	s, err := openSession(cmd, opts, widget.WithClipboard(func(text string) error {
		if err := copyToClipboard(text); err != nil {
			return err
		}
		copied = text
		return nil
	}))
	if err != nil {
		return err
	}
	defer s.Close()

	index := -1
	for i, note := range s.widget.Visible() {
		if strings.EqualFold(note.Title, title) {
			index = i
			break
		}
	}
	if index == -1 {
		return fmt.Errorf("no note titled %q", title)
	}

	buttons, err := s.widget.Document().Root().FindAll(widget.RendererRootID + ` [data-action="` + widget.ActionCopy + `"]`)
	if err != nil {
		return err
	}
	if index >= len(buttons) {
		return fmt.Errorf("note %q is not rendered", title)
	}
	buttons[index].Click()

	if copied == "" && s.widget.Visible()[index].Content != "" {
		return fmt.Errorf("failed to copy note %q to the clipboard", title)
	}
	cli.PrintSuccess("Copied %q to clipboard", s.widget.Visible()[index].Title)
	return nil
}
