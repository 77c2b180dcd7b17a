package domain

import "fmt"

// UserState is the single persisted document: the check-in log, the
// consistency streak and the chat history.
type UserState struct {
	Logs        []LogEntry `json:"logs"`
	Streak      int        `json:"streak"`
	BestStreak  int        `json:"bestStreak,omitempty"`
	LastLogDate *Date      `json:"lastLogDate"`
	ChatHistory []ChatTurn `json:"chatHistory"`
}

// NewUserState returns an empty state with non-nil collections.
func NewUserState() *UserState {
	return &UserState{
		Logs:        []LogEntry{},
		ChatHistory: []ChatTurn{},
	}
}

// Normalize replaces nil collections with empty ones so the document
// always encodes lists as [] rather than null.
func (s *UserState) Normalize() {
	if s.Logs == nil {
		s.Logs = []LogEntry{}
	}
	if s.ChatHistory == nil {
		s.ChatHistory = []ChatTurn{}
	}
}

// Validate checks the document invariants.
func (s *UserState) Validate() error {
	if s.Streak < 0 {
		return fmt.Errorf("streak %d is negative", s.Streak)
	}
	if s.BestStreak != 0 && s.BestStreak < s.Streak {
		return fmt.Errorf("best streak %d below current streak %d", s.BestStreak, s.Streak)
	}
	if (s.LastLogDate == nil) != (len(s.Logs) == 0) {
		return fmt.Errorf("last log date must be set exactly when logs exist")
	}
	for i := range s.Logs {
		if !s.Logs[i].Plan.Complete() {
			return fmt.Errorf("log %d (%s): plan is missing a category", i, s.Logs[i].Date)
		}
		if i > 0 && s.Logs[i].Date.Before(s.Logs[i-1].Date) {
			return fmt.Errorf("log %d (%s) precedes log %d (%s)", i, s.Logs[i].Date, i-1, s.Logs[i-1].Date)
		}
	}
	return nil
}

// Recent returns up to n log entries, newest first.
func (s *UserState) Recent(n int) []LogEntry {
	if n <= 0 || len(s.Logs) == 0 {
		return nil
	}
	if n > len(s.Logs) {
		n = len(s.Logs)
	}
	out := make([]LogEntry, 0, n)
	for i := len(s.Logs) - 1; i >= len(s.Logs)-n; i-- {
		out = append(out, s.Logs[i])
	}
	return out
}

// Clone returns a deep copy, so callers can hand state out without
// exposing the orchestrator's slices.
func (s *UserState) Clone() *UserState {
	c := *s
	c.Logs = append([]LogEntry{}, s.Logs...)
	c.ChatHistory = append([]ChatTurn{}, s.ChatHistory...)
	if s.LastLogDate != nil {
		d := *s.LastLogDate
		c.LastLogDate = &d
	}
	return &c
}
