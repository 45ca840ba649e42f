package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the data directories and the database",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, _ []string) error {
	rt, err := EnsureRuntime(cmd, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "database: %s\n", rt.Store.Path())
	fmt.Fprintf(out, "session:  %s\n", rt.Config.SessionStore().Path())
	return nil
}
