package cli

import (
	"io"

	"github.com/alexanderramin/healthtab/internal/cli/formatter"
	"github.com/alexanderramin/healthtab/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// App holds the service and the terminal hooks used by CLI commands.
type App struct {
	Wellness service.WellnessService

	// IsInteractive reports whether stdin is a terminal. Nil means no.
	IsInteractive func() bool
	// RunForm and RunProgram default to running on the real terminal;
	// tests replace them.
	RunForm    func(form *huh.Form) error
	RunProgram func(model tea.Model) error
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) runForm(form *huh.Form) error {
	if a.RunForm != nil {
		return a.RunForm(form)
	}
	return form.Run()
}

func (a *App) runProgram(model tea.Model) error {
	if a.RunProgram != nil {
		return a.RunProgram(model)
	}
	_, err := tea.NewProgram(model).Run()
	return err
}

// NewRootCmd creates the top-level "healthtab" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "healthtab",
		Short:         "Daily wellness check-in with a consistency streak",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			warnLoadError(cmd.ErrOrStderr(), app)
		},
	}

	root.AddCommand(
		newCheckInCmd(app),
		newChatCmd(app),
		newHistoryCmd(app),
		newChatsCmd(app),
		newStreakCmd(app),
		newStatsCmd(app),
	)

	return root
}

func warnLoadError(w io.Writer, app *App) {
	if err := app.Wellness.LoadError(); err != nil {
		io.WriteString(w, formatter.Warning("Could not read saved data, starting fresh: "+err.Error())+"\n")
	}
}
