package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/alexanderramin/healthtab/internal/cli/formatter"
	"github.com/alexanderramin/healthtab/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// defaultLevel is the preselected value for every level.
const defaultLevel = 5

// levelFlag is an int flag restricted to the 0..10 level range.
type levelFlag struct {
	value int
}

var _ pflag.Value = (*levelFlag)(nil)

func (f *levelFlag) String() string { return strconv.Itoa(f.value) }

func (f *levelFlag) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("%q is not a whole number", s)
	}
	if n < domain.MinLevel || n > domain.MaxLevel {
		return fmt.Errorf("%d is outside %d..%d", n, domain.MinLevel, domain.MaxLevel)
	}
	f.value = n
	return nil
}

func (f *levelFlag) Type() string { return "level" }

func newCheckInCmd(app *App) *cobra.Command {
	energy := &levelFlag{value: defaultLevel}
	mood := &levelFlag{value: defaultLevel}
	fatigue := &levelFlag{value: defaultLevel}
	var notes string

	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Log today's energy, mood and fatigue and get a daily plan",
		Long: `Log today's energy, mood and fatigue (0-10) with optional notes.
Without flags on a terminal, a form asks for the values.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := domain.CheckIn{
				Energy:  energy.value,
				Mood:    mood.value,
				Fatigue: fatigue.value,
				Notes:   notes,
			}

			flags := cmd.Flags()
			given := flags.Changed("energy") || flags.Changed("mood") || flags.Changed("fatigue") || flags.Changed("notes")
			if !given {
				if !app.interactive() {
					return fmt.Errorf("no check-in values: pass --energy, --mood and --fatigue, or run on a terminal for the form")
				}
				if err := app.runForm(newCheckInForm(&in)); err != nil {
					if errors.Is(err, huh.ErrUserAborted) {
						fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Check-in cancelled."))
						return nil
					}
					return err
				}
			}

			res, err := app.Wellness.SubmitCheckIn(cmd.Context(), in)
			if res == nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCheckIn(formatter.CheckInOutput{
				Entry:         res.Entry,
				Streak:        res.Streak,
				Outcome:       res.Outcome,
				GapDays:       res.GapDays,
				Encouragement: res.Encouragement,
				Saved:         err == nil,
			}))
			return err
		},
	}

	cmd.Flags().Var(energy, "energy", "Energy level 0-10")
	cmd.Flags().Var(mood, "mood", "Mood level 0-10")
	cmd.Flags().Var(fatigue, "fatigue", "Fatigue level 0-10")
	cmd.Flags().StringVar(&notes, "notes", "", "How you are feeling, in your own words")

	return cmd
}
