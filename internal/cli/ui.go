package cli

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tOgg1/streambar/internal/logging"
	"github.com/tOgg1/streambar/internal/sidebar"
	"github.com/tOgg1/streambar/internal/topiclist"
	"golang.org/x/term"
)

func newUICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Launch the sidebar",
		Long:  "Launch the stream and topic sidebar terminal UI.",
		Args:  cobra.NoArgs,
		RunE:  runUI,
	}
	cmd.Flags().String("theme", "", "theme override: default|high-contrast")
	cmd.Flags().String("sender", "", "name new messages are posted as (default $USER)")
	return cmd
}

func runUI(cmd *cobra.Command, _ []string) error {
	if !hasTTY() {
		return Exitf(ExitCodeFailure, "the sidebar requires an interactive terminal; use the subcommands instead")
	}

	rt, err := EnsureRuntime(cmd, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	sc := rt.Config.Sidebar
	cfg := sidebar.Config{
		Limits: topiclist.Limits{
			MaxTopics:           sc.MaxTopics,
			MaxTopicsWithUnread: sc.MaxTopicsWithUnread,
		},
		InitialTopics:  sc.InitialTopics,
		PollInterval:   sc.PollInterval,
		HistoryTimeout: sc.HistoryTimeout,
		Theme:          sc.Theme,
		Session:        rt.Config.SessionStore(),
	}
	if theme, _ := cmd.Flags().GetString("theme"); theme != "" {
		cfg.Theme = theme
	}
	cfg.Sender, _ = cmd.Flags().GetString("sender")

	logging.Info().Str("db", rt.Store.Path()).Str("theme", cfg.Theme).Msg("starting sidebar")
	return sidebar.Run(rt.Store, cfg)
}

func hasTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
