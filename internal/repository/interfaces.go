package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/healthtab/internal/domain"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// StreakState is the singleton streak row.
type StreakState struct {
	Streak      int
	BestStreak  int
	LastLogDate *domain.Date
}

type CheckInRepo interface {
	Append(ctx context.Context, e *domain.LogEntry) error
	ListAll(ctx context.Context) ([]domain.LogEntry, error)
	ListRecent(ctx context.Context, n int) ([]domain.LogEntry, error)
	Count(ctx context.Context) (int, error)
}

type ChatRepo interface {
	Append(ctx context.Context, turn *domain.ChatTurn) error
	ListAll(ctx context.Context) ([]domain.ChatTurn, error)
	Count(ctx context.Context) (int, error)
}

type StreakRepo interface {
	Get(ctx context.Context) (*StreakState, error)
	Upsert(ctx context.Context, s *StreakState) error
}
