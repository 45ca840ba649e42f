package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newMuteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mute [<stream> <topic>]",
		Short: "Mute a topic, or list muted topics",
		Args: func(cmd *cobra.Command, args []string) error {
			if list, _ := cmd.Flags().GetBool("list"); list {
				return cobra.MaximumNArgs(1)(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: runMute,
	}
	cmd.Flags().Bool("list", false, "list muted topics, optionally of one stream")
	return cmd
}

func newUnmuteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unmute <stream> <topic>",
		Short: "Unmute a topic",
		Args:  cobra.ExactArgs(2),
		RunE:  runUnmute,
	}
}

func runMute(cmd *cobra.Command, args []string) error {
	rt, err := EnsureRuntime(cmd, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx := commandContext(cmd)
	if list, _ := cmd.Flags().GetBool("list"); list {
		var streamID int64
		if len(args) == 1 {
			stream, err := resolveStream(ctx, rt.Store, args[0])
			if err != nil {
				return err
			}
			streamID = stream.ID
		}
		return listMuted(cmd, rt, streamID)
	}

	stream, err := resolveStream(ctx, rt.Store, args[0])
	if err != nil {
		return err
	}
	topic := strings.TrimSpace(args[1])
	if err := rt.Store.MuteTopic(ctx, stream.ID, topic); err != nil {
		return Exitf(ExitCodeFailure, "mute %s > %s: %v", stream.Name, topic, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "muted %s > %s\n", stream.Name, topic)
	return nil
}

func runUnmute(cmd *cobra.Command, args []string) error {
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
	topic := strings.TrimSpace(args[1])
	if err := rt.Store.UnmuteTopic(ctx, stream.ID, topic); err != nil {
		return Exitf(ExitCodeFailure, "unmute %s > %s: %v", stream.Name, topic, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "unmuted %s > %s\n", stream.Name, topic)
	return nil
}

func listMuted(cmd *cobra.Command, rt *Runtime, streamID int64) error {
	ctx := commandContext(cmd)
	muted, err := rt.Store.MutedTopics(ctx, streamID)
	if err != nil {
		return Exitf(ExitCodeFailure, "list muted topics: %v", err)
	}
	if len(muted) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No muted topics.")
		return nil
	}

	names := make(map[int64]string)
	rows := make([][]string, 0, len(muted))
	for _, m := range muted {
		name, ok := names[m.StreamID]
		if !ok {
			stream, err := rt.Store.Stream(ctx, m.StreamID)
			if err != nil {
				return Exitf(ExitCodeFailure, "look up stream %d: %v", m.StreamID, err)
			}
			name = stream.Name
			names[m.StreamID] = name
		}
		rows = append(rows, []string{name, m.Topic, m.MutedAt.Local().Format("2006-01-02 15:04")})
	}
	return writeTable(cmd.OutOrStdout(), []string{"STREAM", "TOPIC", "MUTED"}, rows)
}
