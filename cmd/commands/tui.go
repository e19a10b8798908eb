package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pluqqy/quicknotes/pkg/tui"
)

func runTUI(cmd *cobra.Command, opts *GlobalOptions) error {
	s, err := openSession(cmd, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	app := tui.NewApp(s.widget,
		tui.WithTheme(tui.NewTheme(s.settings.UI)),
		tui.WithWidth(s.settings.UI.Width),
		tui.WithLogger(logrus.NewEntry(s.logger)),
	)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to start the terminal user interface: %w", err)
	}
	if err := app.Err(); err != nil {
		return fmt.Errorf("notes view stopped: %w", err)
	}
	return nil
}
