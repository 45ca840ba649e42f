package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tOgg1/streambar/internal/narrow"
	"github.com/tOgg1/streambar/internal/topiclist"
)

func newTopicsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "topics",
		Aliases: []string{"topic"},
		Short:   "Show the topics the sidebar would list for a stream",
		Long: "Show the topics the sidebar would list for a stream. Without --zoom only " +
			"recent, unread and active topics get a row; the rest are summed into \"more topics\".",
		Args: cobra.NoArgs,
		RunE: runTopics,
	}
	cmd.Flags().String("stream", "", "stream name (required)")
	cmd.Flags().Bool("zoom", false, "list every topic, as after a full history fetch")
	cmd.Flags().String("active", "", "topic to treat as open")
	cmd.Flags().Bool("links", false, "include topic permalinks")
	_ = cmd.MarkFlagRequired("stream")
	return cmd
}

func runTopics(cmd *cobra.Command, _ []string) error {
	streamName, _ := cmd.Flags().GetString("stream")
	zoom, _ := cmd.Flags().GetBool("zoom")
	active, _ := cmd.Flags().GetString("active")
	links, _ := cmd.Flags().GetBool("links")

	rt, err := EnsureRuntime(cmd, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx := commandContext(cmd)
	stream, err := resolveStream(ctx, rt.Store, streamName)
	if err != nil {
		return err
	}

	// Read-only: a running sidebar owns the topic cache.
	sc := rt.Config.Sidebar
	snap, err := rt.Store.PreviewStream(ctx, stream.ID, sc.InitialTopics, zoom)
	if err != nil {
		return Exitf(ExitCodeFailure, "load %s: %v", stream.Name, err)
	}

	limits := topiclist.Limits{MaxTopics: sc.MaxTopics, MaxTopicsWithUnread: sc.MaxTopicsWithUnread}
	in := topiclist.SelectionInput{
		TopicNames:  snap.Topics,
		UnreadCount: func(topic string) int { return snap.Unread[topiclist.FoldTopic(topic)] },
		IsMuted:     func(topic string) bool { return snap.Muted[topiclist.FoldTopic(topic)] },
		Zoomed:      zoom,
		Limits:      limits,
	}
	if strings.TrimSpace(active) != "" {
		in.ActiveTopic = topiclist.FoldTopic(strings.TrimSpace(active))
	}
	if links {
		in.Permalink = func(topic string) string {
			return narrow.TopicPermalink(stream.ID, stream.Name, topic)
		}
	}
	sel := topiclist.Select(in)

	out := cmd.OutOrStdout()
	if len(sel.Shown) == 0 {
		fmt.Fprintf(out, "No topics in %s.\n", stream.Name)
	} else {
		headers := []string{"TOPIC", "UNREAD", "MUTED"}
		if links {
			headers = append(headers, "LINK")
		}
		rows := make([][]string, 0, len(sel.Shown))
		for _, view := range sel.Shown {
			name := view.Name
			if view.Active {
				name = "* " + name
			}
			unread := ""
			if !view.IsZero {
				unread = strconv.Itoa(view.Unread)
			}
			row := []string{name, unread, formatYesNo(view.Muted)}
			if links {
				row = append(row, view.URL)
			}
			rows = append(rows, row)
		}
		if err := writeTable(out, headers, rows); err != nil {
			return err
		}
	}

	if zoom {
		fmt.Fprintf(out, "%d topics, history complete\n", len(snap.Topics))
		return nil
	}
	if len(snap.Topics) > limits.MaxTopics || !snap.Subscription.HasCompleteHistory {
		if sel.MoreUnread > 0 {
			fmt.Fprintf(out, "more topics (%d unread)\n", sel.MoreUnread)
		} else {
			fmt.Fprintln(out, "more topics")
		}
	}
	return nil
}
