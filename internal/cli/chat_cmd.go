package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/healthtab/internal/cli/formatter"
	"github.com/alexanderramin/healthtab/internal/domain"
	"github.com/spf13/cobra"
)

func newChatCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat [message...]",
		Short: "Talk to the assistant",
		Long: `Send a message and get a reply. With no message on a terminal an
interactive chat opens; otherwise each line of stdin is one message.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, out := cmd.Context(), cmd.OutOrStdout()
			if len(args) > 0 {
				return sendChat(ctx, app, out, strings.Join(args, " "))
			}
			if app.interactive() {
				return app.runProgram(newChatView(ctx, app.Wellness))
			}

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if err := sendChat(ctx, app, out, line); err != nil {
					return err
				}
			}
			return scanner.Err()
		},
	}
}

// sendChat submits one message and prints the turn. A reply that could
// not be saved is still printed before the error is returned.
func sendChat(ctx context.Context, app *App, out io.Writer, message string) error {
	reply, err := app.Wellness.SubmitChatMessage(ctx, message)
	if reply == "" {
		return err
	}
	fmt.Fprint(out, formatter.FormatChatTurn(domain.ChatTurn{User: strings.TrimSpace(message), AI: reply}))
	return err
}
