package commands

import (
	"github.com/spf13/cobra"

	"github.com/pluqqy/quicknotes/internal/cli"
)

// GlobalOptions holds the persistent flags shared by every command
type GlobalOptions struct {
	ConfigFile string
	LogFile    string
	LogLevel   string
	Layout     string
	Quiet      bool
	NoColor    bool
}

// NewRootCommand creates the quicknotes command tree. Running it without a
// subcommand starts the terminal UI.
func NewRootCommand(version string) *cobra.Command {
	opts := &GlobalOptions{}

	cmd := &cobra.Command{
		Use:   "quicknotes",
		Short: "Terminal note-taking widget",
		Long: `Quicknotes keeps a list of notes in memory and lets you add, edit, filter
and delete them from the terminal. Seed notes, labels and colours come from
~/.config/quicknotes/config.yaml; nothing is written back.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cli.SetGlobalFlags(opts.Quiet, opts.NoColor)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.ConfigFile, "config", "", "config file (default is $HOME/.config/quicknotes/config.yaml)")
	flags.StringVar(&opts.LogFile, "log-file", "", "write debug logs to this file")
	flags.StringVar(&opts.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&opts.Layout, "layout", "", "custom page layout (HTML)")
	flags.BoolVarP(&opts.Quiet, "quiet", "q", false, "suppress status messages")
	flags.BoolVar(&opts.NoColor, "no-color", false, "disable symbols in status messages")

	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewCopyCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))
	cmd.AddCommand(NewVersionCommand(version))

	return cmd
}
