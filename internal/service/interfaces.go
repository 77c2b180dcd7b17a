package service

import (
	"context"

	"github.com/alexanderramin/healthtab/internal/advisor"
	"github.com/alexanderramin/healthtab/internal/domain"
	"github.com/alexanderramin/healthtab/internal/streak"
)

// CheckInResult is everything a check-in produced.
type CheckInResult struct {
	Entry   domain.LogEntry
	Plan    domain.Plan
	Reply   string
	Streak  int
	Outcome streak.Outcome
	// GapDays is the distance in days from the previous check-in.
	GapDays int
	// Milestone is set when Streak reached a multiple of
	// streak.MilestoneEvery with this check-in.
	Milestone     bool
	Encouragement string
}

// WellnessService owns the in-memory state for the process lifetime and
// flushes it to the store after every mutation.
type WellnessService interface {
	SubmitCheckIn(ctx context.Context, in domain.CheckIn) (*CheckInResult, error)
	SubmitChatMessage(ctx context.Context, message string) (string, error)
	RecentLogs(n int) []domain.LogEntry
	ChatHistory() []domain.ChatTurn
	Streak() int
	BestStreak() int
	Summary(n int) advisor.Summary
	// Today is the current date in the configured time zone.
	Today() domain.Date
	// LoadError reports why startup fell back to an empty state, if it did.
	LoadError() error
}
