// Package streak tracks consecutive days with at least one check-in.
package streak

import (
	"fmt"

	"github.com/alexanderramin/healthtab/internal/domain"
)

// Outcome classifies how a check-in affected the streak.
type Outcome string

const (
	OutcomeStarted   Outcome = "started"
	OutcomeExtended  Outcome = "extended"
	OutcomeRepeat    Outcome = "repeat"
	OutcomeReset     Outcome = "reset"
	OutcomeClockSkew Outcome = "clock_skew"
)

// MilestoneEvery is the streak length interval that earns encouragement.
const MilestoneEvery = 5

// Result is the updated streak state after a check-in.
type Result struct {
	Streak      int
	LastLogDate domain.Date
	Outcome     Outcome
	// GapDays is today minus the previous log date; zero when there was none.
	GapDays int
}

// Update computes the streak after a check-in on today, given the previous
// log date (nil when nothing has been logged) and the current streak.
//
// A second check-in on the same day leaves the streak untouched. A date
// earlier than the last log (clock skew, backdating) resets like a gap but
// keeps LastLogDate at the later date, so the log stays in date order.
// Callers stamp the new entry with Result.LastLogDate.
func Update(last *domain.Date, current int, today domain.Date) Result {
	if last == nil {
		return Result{Streak: 1, LastLogDate: today, Outcome: OutcomeStarted}
	}

	diff := last.DaysUntil(today)
	switch {
	case diff == 0:
		s := current
		if s < 1 {
			s = 1
		}
		return Result{Streak: s, LastLogDate: *last, Outcome: OutcomeRepeat}
	case diff == 1:
		return Result{Streak: current + 1, LastLogDate: today, Outcome: OutcomeExtended, GapDays: diff}
	case diff > 1:
		return Result{Streak: 1, LastLogDate: today, Outcome: OutcomeReset, GapDays: diff}
	default:
		return Result{Streak: 1, LastLogDate: *last, Outcome: OutcomeClockSkew, GapDays: diff}
	}
}

// Milestone reports whether streak is a positive multiple of MilestoneEvery.
func Milestone(streak int) bool {
	return streak > 0 && streak%MilestoneEvery == 0
}

// Encouragement returns the family message shown on a milestone, or "".
func Encouragement(streak int) string {
	if !Milestone(streak) {
		return ""
	}
	return fmt.Sprintf("Awesome! You've reached %d Consistency Days! Family says: 'Great job keeping up with your health today!'", streak)
}

// Longest returns the longest run of consecutive calendar days found in
// logs, which must be in non-decreasing date order.
func Longest(logs []domain.LogEntry) int {
	best, run := 0, 0
	var prev *domain.Date
	for i := range logs {
		d := logs[i].Date
		switch {
		case prev == nil:
			run = 1
		case prev.DaysUntil(d) == 0:
		case prev.DaysUntil(d) == 1:
			run++
		default:
			run = 1
		}
		if run > best {
			best = run
		}
		prev = &logs[i].Date
	}
	return best
}
