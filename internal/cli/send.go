package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tOgg1/streambar/internal/models"
)

func newSendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send <stream> <topic> [message]",
		Short: "Post a message to a stream topic",
		Long:  "Post a message to a stream topic. The message body is read from stdin when omitted or '-'.",
		Args:  cobra.RangeArgs(2, 3),
		RunE:  runSend,
	}
	cmd.Flags().String("sender", "", "sender name (default $USER)")
	cmd.Flags().Bool("json", false, "output the stored message as JSON")
	return cmd
}

func runSend(cmd *cobra.Command, args []string) error {
	body := ""
	if len(args) > 2 {
		body = args[2]
	}
	if body == "" || body == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return Exitf(ExitCodeFailure, "read message body: %v", err)
		}
		body = string(data)
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return Exitf(ExitCodeUsage, "message body is empty")
	}

	sender, _ := cmd.Flags().GetString("sender")
	sender = strings.TrimSpace(sender)
	if sender == "" {
		sender = defaultSender()
	}

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
	msg, err := rt.Store.Send(ctx, stream.Name, strings.TrimSpace(args[1]), sender, body)
	if err != nil {
		if errors.Is(err, models.ErrInvalidTopicName) || errors.Is(err, models.ErrEmptyMessage) {
			return Exitf(ExitCodeUsage, "%v", err)
		}
		return Exitf(ExitCodeFailure, "send: %v", err)
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(msg)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "sent #%d to %s > %s\n", msg.ID, stream.Name, msg.Topic)
	return nil
}

func defaultSender() string {
	if user := strings.TrimSpace(os.Getenv("USER")); user != "" {
		return user
	}
	return "me"
}
