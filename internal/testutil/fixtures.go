package testutil

import (
	"time"

	"github.com/alexanderramin/healthtab/internal/domain"
)

// LogEntry options
type LogEntryOption func(*domain.LogEntry)

func WithLevels(energy, mood, fatigue int) LogEntryOption {
	return func(e *domain.LogEntry) {
		e.Energy, e.Mood, e.Fatigue = energy, mood, fatigue
	}
}

func WithNotes(notes string) LogEntryOption {
	return func(e *domain.LogEntry) {
		e.Notes = notes
	}
}

func WithReply(reply string) LogEntryOption {
	return func(e *domain.LogEntry) {
		e.AIReply = reply
	}
}

func WithPlan(p domain.Plan) LogEntryOption {
	return func(e *domain.LogEntry) {
		e.Plan = p
	}
}

// DefaultPlan is a complete plan for fixtures that do not care about rules.
func DefaultPlan() domain.Plan {
	return domain.Plan{
		Exercise:   "Normal walk or exercise (20–30 min)",
		Rest:       "Normal rest schedule",
		Wellness:   "Maintain normal activities",
		Medication: "Take medication at 12:00 PM",
	}
}

// NewTestLogEntry builds a log entry on day ("YYYY-MM-DD") with mid-range
// levels and a complete plan.
func NewTestLogEntry(day string, opts ...LogEntryOption) domain.LogEntry {
	e := domain.LogEntry{
		Date:    domain.MustParseDate(day),
		Energy:  5,
		Mood:    5,
		Fatigue: 3,
		Notes:   "feeling okay",
		Plan:    DefaultPlan(),
		AIReply: "Got it! I'll make sure today's plan suits how you're feeling.",
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// NewTestState builds a consistent state whose logs fall on days, in
// order. Streak and last log date are derived from the trailing run.
func NewTestState(days ...string) *domain.UserState {
	s := domain.NewUserState()
	for _, day := range days {
		s.Logs = append(s.Logs, NewTestLogEntry(day))
	}
	if len(days) > 0 {
		last := s.Logs[len(s.Logs)-1].Date
		s.LastLogDate = &last
		s.Streak = 1
		for i := len(s.Logs) - 1; i > 0; i-- {
			gap := s.Logs[i-1].Date.DaysUntil(s.Logs[i].Date)
			if gap == 0 {
				continue
			}
			if gap != 1 {
				break
			}
			s.Streak++
		}
		s.BestStreak = s.Streak
	}
	return s
}

// FixedClock returns a clock that always reports day at 09:00 UTC.
func FixedClock(day string) func() time.Time {
	d := domain.MustParseDate(day)
	return func() time.Time {
		return time.Date(d.Year, d.Month, d.Day, 9, 0, 0, 0, time.UTC)
	}
}

// SteppingClock returns a clock whose day is read from *day on every call,
// so tests can move time forward between events.
func SteppingClock(day *string) func() time.Time {
	return func() time.Time {
		return FixedClock(*day)()
	}
}
