// Package cli implements the streambar command line.
package cli

import (
	"github.com/spf13/cobra"
)

// Execute runs the command line with os.Args.
func Execute(version string) error {
	return newRootCmd(version).Execute()
}

// ExecuteUI launches the sidebar, as if "streambar ui" had been typed.
func ExecuteUI(version string) error {
	cmd := newRootCmd(version)
	cmd.SetArgs([]string{"ui"})
	return cmd.Execute()
}

func newRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "streambar",
		Short:         "Stream and topic sidebar for a local chat store",
		Long:          "streambar keeps a SQLite chat store and shows its streams and topics in a terminal sidebar.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}
	cmd.PersistentFlags().String("config", "", "config file (default ~/.config/streambar/config.yaml)")
	cmd.PersistentFlags().String("db", "", "SQLite database path override")
	cmd.PersistentFlags().String("log-level", "", "log level: debug|info|warn|error")

	cmd.AddCommand(
		newUICmd(),
		newInitCmd(),
		newStreamsCmd(),
		newSendCmd(),
		newReadCmd(),
		newMuteCmd(),
		newUnmuteCmd(),
		newTopicsCmd(),
	)

	return cmd
}
