package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/healthtab/internal/domain"
	"github.com/alexanderramin/healthtab/internal/streak"
)

// FormatPlan renders the plan as a two-column table in category order.
func FormatPlan(p domain.Plan) string {
	rows := make([][]string, 0, 4)
	for _, item := range p.Items() {
		rows = append(rows, []string{
			CategoryStyle(item.Category).Render(item.Category),
			item.Recommendation,
		})
	}
	return RenderTable([]string{"CATEGORY", "RECOMMENDATION"}, rows)
}

// FormatLevels renders energy, mood and fatigue as bars.
func FormatLevels(energy, mood, fatigue int) string {
	return strings.Join([]string{
		fmt.Sprintf("%s  %s", StyleFg.Render("Energy "), RenderLevel(energy, true)),
		fmt.Sprintf("%s  %s", StyleFg.Render("Mood   "), RenderLevel(mood, true)),
		fmt.Sprintf("%s  %s", StyleFg.Render("Fatigue"), RenderLevel(fatigue, false)),
	}, "\n")
}

// FormatReply renders a canned reply line.
func FormatReply(reply string) string {
	return StylePurple.Render("AI says: ") + StyleFg.Render(reply)
}

// OutcomeNote explains how a check-in moved the streak.
func OutcomeNote(outcome streak.Outcome, gapDays int) string {
	switch outcome {
	case streak.OutcomeStarted:
		return "First check-in. Your streak has started."
	case streak.OutcomeExtended:
		return "Streak extended."
	case streak.OutcomeRepeat:
		return "Already checked in today, streak unchanged."
	case streak.OutcomeReset:
		return fmt.Sprintf("Streak restarted after %s without a check-in.", Plural(gapDays-1, "day", "days"))
	case streak.OutcomeClockSkew:
		return "This date is before your last check-in, so the streak restarted."
	default:
		return ""
	}
}

// CheckInOutput is what FormatCheckIn needs from a finished check-in.
type CheckInOutput struct {
	Entry         domain.LogEntry
	Streak        int
	Outcome       streak.Outcome
	GapDays       int
	Encouragement string
	// Saved is false when the entry could not be written to disk.
	Saved bool
}

// FormatCheckIn renders the reply, the plan and the streak line, plus the
// family encouragement on a milestone.
func FormatCheckIn(out CheckInOutput) string {
	var b strings.Builder
	b.WriteString(FormatReply(out.Entry.AIReply))
	b.WriteString("\n\n")
	b.WriteString(RenderBox("Your daily plan", strings.TrimRight(FormatPlan(out.Entry.Plan), "\n")))
	b.WriteString("\n\n")
	if out.Saved {
		b.WriteString(StyleGreen.Render(fmt.Sprintf("✔ Log saved! Your Consistency Days streak: %d", out.Streak)))
	} else {
		b.WriteString(StyleYellow.Render(fmt.Sprintf("! Log kept for this session only. Your Consistency Days streak: %d", out.Streak)))
	}
	if note := OutcomeNote(out.Outcome, out.GapDays); note != "" {
		b.WriteString("\n")
		b.WriteString(Dim(note))
	}
	if out.Encouragement != "" {
		b.WriteString("\n\n")
		b.WriteString(RenderBox("Milestone", StyleYellow.Render(out.Encouragement)))
	}
	b.WriteString("\n")
	return b.String()
}
