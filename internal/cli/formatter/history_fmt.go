package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/healthtab/internal/domain"
)

// FormatHistory renders entries as numbered cards, in the order given.
func FormatHistory(entries []domain.LogEntry, today domain.Date) string {
	if len(entries) == 0 {
		return Dim("No logs yet. Start with `healthtab checkin`.") + "\n"
	}

	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Past logs and plans (last %s)", Plural(len(entries), "entry", "entries"))))
	b.WriteString("\n")
	for i, e := range entries {
		b.WriteString("\n")
		b.WriteString(Bold(fmt.Sprintf("Entry %d", i+1)))
		b.WriteString(Dim(fmt.Sprintf("  %s · %s", e.Date, RelativeDay(e.Date, today))))
		b.WriteString("\n")
		b.WriteString(FormatLevels(e.Energy, e.Mood, e.Fatigue))
		b.WriteString("\n")
		if strings.TrimSpace(e.Notes) != "" {
			b.WriteString(StyleFg.Render("Feeling: ") + e.Notes + "\n")
		}
		if e.AIReply != "" {
			b.WriteString(FormatReply(e.AIReply) + "\n")
		}
		for _, item := range e.Plan.Items() {
			b.WriteString(fmt.Sprintf("  - %s: %s\n", CategoryStyle(item.Category).Render(item.Category), item.Recommendation))
		}
	}
	return b.String()
}

// FormatChatHistory renders the last turns as a transcript.
func FormatChatHistory(turns []domain.ChatTurn) string {
	if len(turns) == 0 {
		return Dim("No chat messages yet. Try `healthtab chat how are you`.") + "\n"
	}
	var b strings.Builder
	for _, t := range turns {
		b.WriteString(FormatChatTurn(t))
	}
	return b.String()
}

// FormatChatTurn renders one user line and its reply.
func FormatChatTurn(t domain.ChatTurn) string {
	return Dim("You: ") + t.User + "\n" + FormatReply(t.AI) + "\n"
}

// FormatChatWelcome is the banner of the interactive chat.
func FormatChatWelcome() string {
	return Header("Chat") + "\n" + Dim("Tell me how you feel. Enter sends, esc or /quit leaves.") + "\n"
}
