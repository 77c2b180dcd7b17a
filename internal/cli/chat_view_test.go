package cli

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/healthtab/internal/advisor"
	"github.com/alexanderramin/healthtab/internal/teatest"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatDriver(t *testing.T, app *App) *teatest.Driver {
	t.Helper()
	view := newChatView(context.Background(), app.Wellness)
	// A static cursor keeps keystrokes from queueing blink timers, so the
	// reply Cmd, which writes to the store, can be given a generous timeout.
	view.input.Cursor.SetMode(cursor.CursorStatic)
	d := teatest.New(t, view, teatest.WithSize(100, 30), teatest.WithCmdTimeout(time.Second))
	d.DrainInit()
	return d
}

func chatModel(t *testing.T, d *teatest.Driver) *chatView {
	t.Helper()
	m, ok := d.Model.(*chatView)
	require.True(t, ok, "model is %T", d.Model)
	return m
}

func TestChatView_SubmitsLine(t *testing.T) {
	day := "2026-03-10"
	app := testApp(t, &day)
	d := newChatDriver(t, app)

	assert.Contains(t, d.View(), "CHAT")

	d.TypeLine("so tired today")

	m := chatModel(t, d)
	require.Len(t, m.turns, 1)
	assert.Equal(t, "so tired today", m.turns[0].User)
	reply, _ := advisor.Classify("so tired today")
	assert.Equal(t, reply, m.turns[0].AI)
	assert.False(t, m.pending)
	assert.Empty(t, m.input.Value(), "input clears after submit")

	view := d.View()
	assert.Contains(t, view, "You: so tired today")
	assert.Contains(t, view, reply)

	history := app.Wellness.ChatHistory()
	require.Len(t, history, 1)
	assert.Equal(t, "so tired today", history[0].User)
}

func TestChatView_BlankLineIgnored(t *testing.T) {
	day := "2026-03-10"
	app := testApp(t, &day)
	d := newChatDriver(t, app)

	d.TypeLine("   ")

	assert.Empty(t, chatModel(t, d).turns)
	assert.Empty(t, app.Wellness.ChatHistory())
	assert.False(t, d.Quitting)
}

func TestChatView_MultipleTurnsInOrder(t *testing.T) {
	day := "2026-03-10"
	app := testApp(t, &day)
	d := newChatDriver(t, app)

	d.TypeLine("hello")
	d.TypeLine("I have a doctor appointment")

	m := chatModel(t, d)
	require.Len(t, m.turns, 2)
	assert.Equal(t, "hello", m.turns[0].User)
	assert.Equal(t, "I have a doctor appointment", m.turns[1].User)
	assert.Len(t, app.Wellness.ChatHistory(), 2)
}

func TestChatView_QuitCommand(t *testing.T) {
	day := "2026-03-10"
	app := testApp(t, &day)
	d := newChatDriver(t, app)

	d.TypeLine("/quit")

	assert.True(t, d.Quitting)
	assert.Empty(t, app.Wellness.ChatHistory(), "/quit is not sent as a message")
	assert.Empty(t, d.View())
}

func TestChatView_EscQuits(t *testing.T) {
	day := "2026-03-10"
	app := testApp(t, &day)
	d := newChatDriver(t, app)

	d.PressEsc()
	assert.True(t, d.Quitting)
}

func TestChatView_CtrlCQuits(t *testing.T) {
	day := "2026-03-10"
	app := testApp(t, &day)
	d := newChatDriver(t, app)

	d.PressCtrlC()
	assert.True(t, d.Quitting)
}
