package cli

import (
	"strconv"

	"github.com/alexanderramin/healthtab/internal/cli/formatter"
	"github.com/alexanderramin/healthtab/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// healthtabHuhTheme returns a huh theme matching the formatter palette.
func healthtabHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func levelOptions(lowLabel, highLabel string) []huh.Option[int] {
	opts := make([]huh.Option[int], 0, domain.MaxLevel-domain.MinLevel+1)
	for n := domain.MinLevel; n <= domain.MaxLevel; n++ {
		label := strconv.Itoa(n)
		switch n {
		case domain.MinLevel:
			label += " · " + lowLabel
		case domain.MaxLevel:
			label += " · " + highLabel
		}
		opts = append(opts, huh.NewOption(label, n))
	}
	return opts
}

// newCheckInForm collects the three levels and the notes into in. The
// levels keep whatever value in already holds as the preselected option.
func newCheckInForm(in *domain.CheckIn) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Energy level").
				Description("How much energy do you have today?").
				Options(levelOptions("drained", "full of energy")...).
				Value(&in.Energy),
			huh.NewSelect[int]().
				Title("Mood level").
				Options(levelOptions("very low", "excellent")...).
				Value(&in.Mood),
			huh.NewSelect[int]().
				Title("Fatigue level").
				Options(levelOptions("rested", "exhausted")...).
				Value(&in.Fatigue),
		),
		huh.NewGroup(
			huh.NewText().
				Title("How are you feeling today?").
				Placeholder("Type your feelings or notes here...").
				CharLimit(2000).
				Value(&in.Notes),
		),
	).WithTheme(healthtabHuhTheme()).WithShowHelp(false)
}
