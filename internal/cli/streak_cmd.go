package cli

import (
	"fmt"

	"github.com/alexanderramin/healthtab/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStreakCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "streak",
		Short: "Show your consistency streak",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := formatter.StreakOutput{
				Current: app.Wellness.Streak(),
				Best:    app.Wellness.BestStreak(),
				Today:   app.Wellness.Today(),
			}
			if last := app.Wellness.RecentLogs(1); len(last) == 1 {
				d := last[0].Date
				out.Last = &d
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStreak(out))
			return nil
		},
	}
}

func newStatsCmd(app *App) *cobra.Command {
	var window int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Average energy, mood and fatigue over recent check-ins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if window <= 0 {
				return fmt.Errorf("--window must be positive, got %d", window)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSummary(app.Wellness.Summary(window), window))
			return nil
		},
	}

	cmd.Flags().IntVarP(&window, "window", "w", 7, "Number of recent check-ins to average")
	return cmd
}
