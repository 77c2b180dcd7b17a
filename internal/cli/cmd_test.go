package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/healthtab/internal/advisor"
	"github.com/alexanderramin/healthtab/internal/domain"
	"github.com/alexanderramin/healthtab/internal/service"
	"github.com/alexanderramin/healthtab/internal/store"
	"github.com/alexanderramin/healthtab/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires a full App backed by an in-memory DB for CLI integration
// tests. day is read on every call so tests can move the clock.
func testApp(t *testing.T, day *string) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	st := store.NewSQLiteStore(database, testutil.NewTestUoW(database))
	return &App{
		Wellness: service.NewWellnessService(context.Background(), st,
			service.WithClock(testutil.SteppingClock(day)), service.WithLocation(time.UTC)),
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	return executeCmdWithInput(t, app, "", args...)
}

func executeCmdWithInput(t *testing.T, app *App, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// --- checkin ---

func TestCheckInCmd_Flags(t *testing.T) {
	day := "2026-03-10"
	app := testApp(t, &day)

	out, err := executeCmd(t, app, "checkin", "--energy", "3", "--mood", "4", "--fatigue", "8", "--notes", "Feeling tired and stressed")
	require.NoError(t, err)

	assert.Contains(t, out, "YOUR DAILY PLAN")
	assert.Contains(t, out, advisor.ExerciseLight)
	assert.Contains(t, out, advisor.RestExtra)
	assert.Contains(t, out, advisor.WellnessSupport)
	assert.Contains(t, out, "Log saved! Your Consistency Days streak: 1")

	logs := app.Wellness.RecentLogs(1)
	require.Len(t, logs, 1)
	assert.Equal(t, "Feeling tired and stressed", logs[0].Notes)
	assert.Equal(t, 8, logs[0].Fatigue)
}

func TestCheckInCmd_StreakAcrossDays(t *testing.T) {
	day := "2026-03-10"
	app := testApp(t, &day)

	_, err := executeCmd(t, app, "checkin", "--energy", "7", "--mood", "7", "--fatigue", "2")
	require.NoError(t, err)

	day = "2026-03-11"
	out, err := executeCmd(t, app, "checkin", "--energy", "7", "--mood", "7", "--fatigue", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "streak: 2")
	assert.Equal(t, 2, app.Wellness.Streak())
}

func TestCheckInCmd_RejectsOutOfRangeLevel(t *testing.T) {
	day := "2026-03-10"
	app := testApp(t, &day)

	_, err := executeCmd(t, app, "checkin", "--energy", "11", "--mood", "5", "--fatigue", "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside 0..10")
	assert.Empty(t, app.Wellness.RecentLogs(5))
}

func TestCheckInCmd_RejectsNonNumericLevel(t *testing.T) {
	day := "2026-03-10"
	app := testApp(t, &day)

	_, err := executeCmd(t, app, "checkin", "--mood", "high")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a whole number")
}

func TestCheckInCmd_NoFlagsNonInteractive(t *testing.T) {
	day := "2026-03-10"
	app := testApp(t, &day)

	_, err := executeCmd(t, app, "checkin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no check-in values")
	assert.Empty(t, app.Wellness.RecentLogs(5))
}

func TestCheckInCmd_FormDefaults(t *testing.T) {
	day := "2026-03-10"
	app := testApp(t, &day)
	var ran bool
	app.IsInteractive = func() bool { return true }
	app.RunForm = func(*huh.Form) error {
		ran = true
		return nil
	}

	out, err := executeCmd(t, app, "checkin")
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Contains(t, out, "Log saved!")

	logs := app.Wellness.RecentLogs(1)
	require.Len(t, logs, 1)
	assert.Equal(t, defaultLevel, logs[0].Energy)
	assert.Equal(t, defaultLevel, logs[0].Mood)
	assert.Equal(t, defaultLevel, logs[0].Fatigue)
}

func TestCheckInCmd_FormAborted(t *testing.T) {
	day := "2026-03-10"
	app := testApp(t, &day)
	app.IsInteractive = func() bool { return true }
	app.RunForm = func(*huh.Form) error { return huh.ErrUserAborted }

	out, err := executeCmd(t, app, "checkin")
	require.NoError(t, err)
	assert.Contains(t, out, "Check-in cancelled.")
	assert.Empty(t, app.Wellness.RecentLogs(5))
}

func TestCheckInCmd_SaveFailureStillShowsPlan(t *testing.T) {
	day := "2026-03-10"
	database := testutil.NewTestDB(t)
	boom := errors.New("disk full")
	st := store.NewSQLiteStore(database, &testutil.FailOnNthExecUoW{DB: database, FailOn: 1, Err: boom})
	app := &App{Wellness: service.NewWellnessService(context.Background(), st,
		service.WithClock(testutil.SteppingClock(&day)), service.WithLocation(time.UTC))}

	out, err := executeCmd(t, app, "checkin", "--energy", "5", "--mood", "5", "--fatigue", "5")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Contains(t, out, "YOUR DAILY PLAN")
	assert.Contains(t, out, "Log kept for this session only")
	assert.NotContains(t, out, "Log saved!")
}

func TestRootCmd_WarnsOnLoadError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user_state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	fs, err := store.NewFileStore(path)
	require.NoError(t, err)
	day := "2026-03-10"
	app := &App{Wellness: service.NewWellnessService(context.Background(), fs,
		service.WithClock(testutil.SteppingClock(&day)), service.WithLocation(time.UTC))}

	out, err := executeCmd(t, app, "streak")
	require.NoError(t, err)
	assert.Contains(t, out, "Could not read saved data, starting fresh")
}

func TestCheckInCmd_AfterLoadErrorNotSaved(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user_state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	fs, err := store.NewFileStore(path)
	require.NoError(t, err)
	day := "2026-03-10"
	app := &App{Wellness: service.NewWellnessService(context.Background(), fs,
		service.WithClock(testutil.SteppingClock(&day)), service.WithLocation(time.UTC))}

	out, err := executeCmd(t, app, "checkin", "--energy", "5", "--mood", "5", "--fatigue", "5")
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrNotLoaded)
	assert.Contains(t, out, "Log kept for this session only")
	assert.FileExists(t, path+".corrupt")
	assert.NoFileExists(t, path)
}

// --- chat ---

func TestChatCmd_OneShot(t *testing.T) {
	day := "2026-03-10"
	app := testApp(t, &day)

	out, err := executeCmd(t, app, "chat", "I", "feel", "tired")
	require.NoError(t, err)
	assert.Contains(t, out, "You: I feel tired")
	assert.Contains(t, out, "AI says:")

	history := app.Wellness.ChatHistory()
	require.Len(t, history, 1)
	assert.Equal(t, "I feel tired", history[0].User)
}

func TestChatCmd_Stdin(t *testing.T) {
	day := "2026-03-10"
	app := testApp(t, &day)

	out, err := executeCmdWithInput(t, app, "hello\n\n   \nmy knee is sore\n", "chat")
	require.NoError(t, err)
	assert.Contains(t, out, "You: hello")
	assert.Contains(t, out, "You: my knee is sore")
	assert.Len(t, app.Wellness.ChatHistory(), 2)
}

func TestChatCmd_BlankMessageRejected(t *testing.T) {
	day := "2026-03-10"
	app := testApp(t, &day)

	_, err := executeCmd(t, app, "chat", "   ")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, app.Wellness.ChatHistory())
}

func TestChatCmd_InteractiveRunsProgram(t *testing.T) {
	day := "2026-03-10"
	app := testApp(t, &day)
	app.IsInteractive = func() bool { return true }
	var got tea.Model
	app.RunProgram = func(m tea.Model) error {
		got = m
		return nil
	}

	_, err := executeCmd(t, app, "chat")
	require.NoError(t, err)
	assert.IsType(t, &chatView{}, got)
}

func TestChatsCmd_Limit(t *testing.T) {
	day := "2026-03-10"
	app := testApp(t, &day)
	for _, msg := range []string{"one", "two", "three"} {
		_, err := executeCmd(t, app, "chat", msg)
		require.NoError(t, err)
	}

	out, err := executeCmd(t, app, "chats", "--limit", "2")
	require.NoError(t, err)
	assert.NotContains(t, out, "You: one")
	assert.Contains(t, out, "You: two")
	assert.Contains(t, out, "You: three")
}

func TestChatsCmd_Empty(t *testing.T) {
	day := "2026-03-10"
	app := testApp(t, &day)

	out, err := executeCmd(t, app, "chats")
	require.NoError(t, err)
	assert.Contains(t, out, "No chat messages yet.")
}

// --- history / streak / stats ---

func TestHistoryCmd_NewestFirst(t *testing.T) {
	day := "2026-03-10"
	app := testApp(t, &day)
	_, err := executeCmd(t, app, "checkin", "--energy", "2", "--mood", "5", "--fatigue", "5", "--notes", "first")
	require.NoError(t, err)
	day = "2026-03-11"
	_, err = executeCmd(t, app, "checkin", "--energy", "8", "--mood", "5", "--fatigue", "5", "--notes", "second")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "LAST 2 ENTRIES")
	first := strings.Index(out, "first")
	second := strings.Index(out, "second")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, second, first)
}

func TestHistoryCmd_Empty(t *testing.T) {
	day := "2026-03-10"
	app := testApp(t, &day)

	out, err := executeCmd(t, app, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No logs yet.")
}

func TestHistoryCmd_InvalidLimit(t *testing.T) {
	day := "2026-03-10"
	app := testApp(t, &day)

	_, err := executeCmd(t, app, "history", "--limit", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--limit must be positive")
}

func TestStreakCmd(t *testing.T) {
	day := "2026-03-10"
	app := testApp(t, &day)

	out, err := executeCmd(t, app, "streak")
	require.NoError(t, err)
	assert.Contains(t, out, "No check-ins yet.")

	for _, d := range []string{"2026-03-10", "2026-03-11"} {
		day = d
		_, err = executeCmd(t, app, "checkin", "--energy", "6", "--mood", "6", "--fatigue", "3")
		require.NoError(t, err)
	}

	out, err = executeCmd(t, app, "streak")
	require.NoError(t, err)
	assert.Contains(t, out, "Current:")
	assert.Contains(t, out, "2026-03-11")
	assert.NotContains(t, out, "lapsed")

	day = "2026-03-14"
	out, err = executeCmd(t, app, "streak")
	require.NoError(t, err)
	assert.Contains(t, out, "lapsed")
}

func TestStatsCmd(t *testing.T) {
	day := "2026-03-10"
	app := testApp(t, &day)

	out, err := executeCmd(t, app, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing to summarise")

	_, err = executeCmd(t, app, "checkin", "--energy", "4", "--mood", "6", "--fatigue", "2")
	require.NoError(t, err)

	out, err = executeCmd(t, app, "stats", "--window", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Avg energy")
	assert.Contains(t, out, "1 entry found")
}
