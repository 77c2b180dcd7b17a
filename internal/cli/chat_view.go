package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/healthtab/internal/cli/formatter"
	"github.com/alexanderramin/healthtab/internal/domain"
	"github.com/alexanderramin/healthtab/internal/service"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const quitCommand = "/quit"

// chatReplyMsg carries the outcome of one submitted chat line.
type chatReplyMsg struct {
	turn domain.ChatTurn
	err  error
}

// chatView is the interactive chat: a transcript above a single-line input.
type chatView struct {
	ctx      context.Context
	wellness service.WellnessService
	input    textinput.Model
	turns    []domain.ChatTurn
	pending  bool
	lastErr  error
	width    int
	quitting bool
}

func newChatView(ctx context.Context, wellness service.WellnessService) *chatView {
	ti := textinput.New()
	ti.Placeholder = "How are you feeling?"
	ti.Prompt = "> "
	ti.CharLimit = 2000
	ti.Focus()
	return &chatView{ctx: ctx, wellness: wellness, input: ti}
}

func (m *chatView) Init() tea.Cmd {
	return textinput.Blink
}

func (m *chatView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-4, 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}

	case chatReplyMsg:
		m.pending = false
		m.lastErr = msg.err
		if msg.turn.AI != "" {
			m.turns = append(m.turns, msg.turn)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *chatView) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || m.pending {
		return m, nil
	}
	if text == quitCommand {
		m.quitting = true
		return m, tea.Quit
	}
	m.input.Reset()
	m.pending = true
	ctx, wellness := m.ctx, m.wellness
	return m, func() tea.Msg {
		reply, err := wellness.SubmitChatMessage(ctx, text)
		return chatReplyMsg{turn: domain.ChatTurn{User: text, AI: reply}, err: err}
	}
}

func (m *chatView) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(formatter.FormatChatWelcome())
	b.WriteString("\n")
	for _, t := range m.turns {
		b.WriteString(formatter.FormatChatTurn(t))
		b.WriteString("\n")
	}
	if m.lastErr != nil {
		b.WriteString(formatter.Warning(m.lastErr.Error()))
		b.WriteString("\n\n")
	}
	if m.pending {
		b.WriteString(formatter.Dim("..."))
		b.WriteString("\n")
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")
	return b.String()
}
