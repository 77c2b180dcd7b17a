package store

import (
	"fmt"

	"github.com/alexanderramin/healthtab/internal/domain"
	json "github.com/goccy/go-json"
)

// document is the decode shape of the state file. It also accepts the
// first-generation layout, which had no lastLogDate or chatHistory and
// stored notes and reply under feeling_text and ai_reply.
type document struct {
	Logs        []entryRecord     `json:"logs"`
	Streak      int               `json:"streak"`
	BestStreak  int               `json:"bestStreak"`
	LastLogDate *domain.Date      `json:"lastLogDate"`
	ChatHistory []domain.ChatTurn `json:"chatHistory"`
}

type entryRecord struct {
	domain.LogEntry
	FeelingText string `json:"feeling_text"`
	LegacyReply string `json:"ai_reply"`
}

func decodeDocument(data []byte) (*domain.UserState, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	state := &domain.UserState{
		Streak:      doc.Streak,
		BestStreak:  doc.BestStreak,
		LastLogDate: doc.LastLogDate,
		ChatHistory: doc.ChatHistory,
		Logs:        make([]domain.LogEntry, 0, len(doc.Logs)),
	}
	for _, rec := range doc.Logs {
		e := rec.LogEntry
		if e.Notes == "" {
			e.Notes = rec.FeelingText
		}
		if e.AIReply == "" {
			e.AIReply = rec.LegacyReply
		}
		state.Logs = append(state.Logs, e)
	}
	if state.LastLogDate == nil && len(state.Logs) > 0 {
		last := state.Logs[len(state.Logs)-1].Date
		state.LastLogDate = &last
	}
	state.Normalize()

	if err := state.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return state, nil
}
