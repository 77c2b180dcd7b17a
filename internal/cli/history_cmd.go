package cli

import (
	"fmt"

	"github.com/alexanderramin/healthtab/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past logs and plans, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive, got %d", limit)
			}
			entries := app.Wellness.RecentLogs(limit)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(entries, app.Wellness.Today()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 5, "Number of entries to show")
	return cmd
}

func newChatsCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "chats",
		Short: "Show the chat transcript",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive, got %d", limit)
			}
			turns := app.Wellness.ChatHistory()
			if len(turns) > limit {
				turns = turns[len(turns)-limit:]
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatChatHistory(turns))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of turns to show")
	return cmd
}
