package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tOgg1/streambar/internal/db"
	"github.com/tOgg1/streambar/internal/models"
	"github.com/tOgg1/streambar/internal/store"
)

func newStreamsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "streams",
		Aliases: []string{"stream"},
		Short:   "List and create streams",
		Args:    cobra.NoArgs,
		RunE:    runStreamsList,
	}
	cmd.Flags().Bool("json", false, "output JSON")

	list := &cobra.Command{
		Use:   "list",
		Short: "List streams with topic and unread totals",
		Args:  cobra.NoArgs,
		RunE:  runStreamsList,
	}
	list.Flags().Bool("json", false, "output JSON")

	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a stream",
		Args:  cobra.ExactArgs(1),
		RunE:  runStreamsCreate,
	}
	create.Flags().String("description", "", "stream description")

	cmd.AddCommand(list, create)
	return cmd
}

type streamSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Topics      int    `json:"topics"`
	Unread      int    `json:"unread"`
}

func runStreamsList(cmd *cobra.Command, _ []string) error {
	rt, err := EnsureRuntime(cmd, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx := commandContext(cmd)
	streams, err := rt.Store.Streams(ctx)
	if err != nil {
		return Exitf(ExitCodeFailure, "list streams: %v", err)
	}

	summaries := make([]streamSummary, 0, len(streams))
	for _, stream := range streams {
		topics, err := rt.Store.Topics(ctx, stream.ID)
		if err != nil {
			return Exitf(ExitCodeFailure, "list topics of %s: %v", stream.Name, err)
		}
		unread, err := rt.Store.UnreadCounts(ctx, stream.ID)
		if err != nil {
			return Exitf(ExitCodeFailure, "count unread of %s: %v", stream.Name, err)
		}
		total := 0
		for _, n := range unread {
			total += n
		}
		summaries = append(summaries, streamSummary{
			ID:          stream.ID,
			Name:        stream.Name,
			Description: stream.Description,
			Topics:      len(topics),
			Unread:      total,
		})
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	}

	if len(summaries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No streams. Create one with: streambar streams create <name>")
		return nil
	}
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			strconv.FormatInt(s.ID, 10),
			s.Name,
			strconv.Itoa(s.Topics),
			strconv.Itoa(s.Unread),
			s.Description,
		})
	}
	return writeTable(cmd.OutOrStdout(), []string{"ID", "NAME", "TOPICS", "UNREAD", "DESCRIPTION"}, rows)
}

func runStreamsCreate(cmd *cobra.Command, args []string) error {
	rt, err := EnsureRuntime(cmd, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	description, _ := cmd.Flags().GetString("description")
	stream, err := rt.Store.CreateStream(commandContext(cmd), strings.TrimSpace(args[0]), strings.TrimSpace(description))
	if err != nil {
		switch {
		case errors.Is(err, db.ErrStreamAlreadyExists):
			return Exitf(ExitCodeFailure, "stream already exists: %s", args[0])
		case errors.Is(err, models.ErrInvalidStreamName):
			return Exitf(ExitCodeUsage, "invalid stream name %q: %v", args[0], err)
		}
		return Exitf(ExitCodeFailure, "create stream: %v", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created stream %s (id %d)\n", stream.Name, stream.ID)
	return nil
}

// resolveStream maps a stream name argument to its record.
func resolveStream(ctx context.Context, st *store.Store, name string) (*models.Stream, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, Exitf(ExitCodeUsage, "stream name is required")
	}
	stream, err := st.StreamByName(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrStreamNotFound) {
			return nil, Exitf(ExitCodeFailure, "unknown stream: %s", name)
		}
		return nil, Exitf(ExitCodeFailure, "look up stream %s: %v", name, err)
	}
	return stream, nil
}
