package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/healthtab/internal/advisor"
	"github.com/alexanderramin/healthtab/internal/domain"
	"github.com/alexanderramin/healthtab/internal/streak"
)

// StreakOutput is what FormatStreak needs.
type StreakOutput struct {
	Current int
	Best    int
	Last    *domain.Date
	Today   domain.Date
}

// FormatStreak renders the current and best streak with progress toward
// the next milestone. A streak whose last check-in is older than
// yesterday is shown as lapsed; it restarts at the next check-in.
func FormatStreak(s StreakOutput) string {
	var lines []string
	if s.Last == nil {
		lines = append(lines, Dim("No check-ins yet. Your streak starts with the first one."))
		return RenderBox("Consistency days", strings.Join(lines, "\n")) + "\n"
	}

	gap := s.Last.DaysUntil(s.Today)
	current := StyleGreen.Render(fmt.Sprintf("%d", s.Current))
	if gap > 1 {
		current = StyleRed.Render(fmt.Sprintf("%d", s.Current)) + Dim(" (lapsed, restarts at 1 on your next check-in)")
	}
	lines = append(lines,
		fmt.Sprintf("%s %s", StyleFg.Render("Current:"), current),
		fmt.Sprintf("%s %s", StyleFg.Render("Best:   "), StyleBold.Render(fmt.Sprintf("%d", s.Best))),
		fmt.Sprintf("%s %s (%s)", StyleFg.Render("Last:   "), s.Last.String(), RelativeDay(*s.Last, s.Today)),
	)

	if gap <= 1 {
		into := s.Current % streak.MilestoneEvery
		lines = append(lines, "",
			fmt.Sprintf("%s %s", StyleFg.Render("Next milestone:"), RenderProgress(into, streak.MilestoneEvery, 10)),
		)
	}
	return RenderBox("Consistency days", strings.Join(lines, "\n")) + "\n"
}

// FormatSummary renders trailing-window averages.
func FormatSummary(sum advisor.Summary, window int) string {
	if sum.Count == 0 {
		return Dim("No logs yet, nothing to summarise.") + "\n"
	}
	lines := []string{
		Dim(fmt.Sprintf("Last %s requested, %s found, %s to %s", Plural(window, "entry", "entries"), Plural(sum.Count, "entry", "entries"), sum.From, sum.To)),
		"",
		fmt.Sprintf("%s  %s", StyleFg.Render("Avg energy "), averageBar(sum.AvgEnergy, true)),
		fmt.Sprintf("%s  %s", StyleFg.Render("Avg mood   "), averageBar(sum.AvgMood, true)),
		fmt.Sprintf("%s  %s", StyleFg.Render("Avg fatigue"), averageBar(sum.AvgFatigue, false)),
		"",
		fmt.Sprintf("%s %d of %d", StyleFg.Render("Days with wellness support suggested:"), sum.SupportDays, sum.Count),
	}
	return RenderBox("Summary", strings.Join(lines, "\n")) + "\n"
}

func averageBar(avg float64, highIsGood bool) string {
	rounded := int(avg + 0.5)
	return fmt.Sprintf("%s %s", RenderLevel(rounded, highIsGood), Dim(fmt.Sprintf("(%.1f)", avg)))
}
