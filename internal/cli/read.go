package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <stream> [topic]",
		Short: "Mark a topic, or a whole stream, as read",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runRead,
	}
}

func runRead(cmd *cobra.Command, args []string) error {
	rt, err := EnsureRuntime(cmd, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx := commandContext(cmd)
	stream, err := resolveStream(ctx, rt.Store, args[0])
	if err != nil {
		return err
	}

	if len(args) == 1 {
		n, err := rt.Store.MarkStreamRead(ctx, stream.ID)
		if err != nil {
			return Exitf(ExitCodeFailure, "mark %s read: %v", stream.Name, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "marked %d messages read in %s\n", n, stream.Name)
		return nil
	}

	topic := strings.TrimSpace(args[1])
	n, err := rt.Store.MarkTopicRead(ctx, stream.ID, topic)
	if err != nil {
		return Exitf(ExitCodeFailure, "mark %s > %s read: %v", stream.Name, topic, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "marked %d messages read in %s > %s\n", n, stream.Name, topic)
	return nil
}
