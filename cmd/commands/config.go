package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/quicknotes/pkg/config"
)

// NewConfigCommand creates the config command
func NewConfigCommand(opts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective settings",
		Long: `Print the settings quicknotes runs with, after merging the config file,
QUICKNOTES_* environment variables and command-line flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, file, err := loadSettings(cmd, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if file != "" {
				fmt.Fprintf(out, "# %s\n", file)
			} else {
				fmt.Fprintln(out, "# built-in defaults")
			}
			return config.Dump(out, settings)
		},
	}
}
