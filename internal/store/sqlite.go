package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/healthtab/internal/db"
	"github.com/alexanderramin/healthtab/internal/domain"
	"github.com/alexanderramin/healthtab/internal/repository"
)

// SQLiteStore keeps the state document in the user_state, checkin_logs
// and chat_turns tables. A save runs in one transaction.
type SQLiteStore struct {
	db  *sql.DB
	uow db.UnitOfWork
}

func NewSQLiteStore(database *sql.DB, uow db.UnitOfWork) *SQLiteStore {
	return &SQLiteStore{db: database, uow: uow}
}

func (s *SQLiteStore) Load(ctx context.Context) (*domain.UserState, error) {
	row, err := repository.NewSQLiteStreakRepo(s.db).Get(ctx)
	if err != nil {
		return nil, loadError(fmt.Errorf("reading streak: %w", err))
	}
	logs, err := repository.NewSQLiteCheckInRepo(s.db).ListAll(ctx)
	if err != nil {
		return nil, loadError(fmt.Errorf("reading check-ins: %w", err))
	}
	chats, err := repository.NewSQLiteChatRepo(s.db).ListAll(ctx)
	if err != nil {
		return nil, loadError(fmt.Errorf("reading chat turns: %w", err))
	}

	state := &domain.UserState{
		Logs:        logs,
		Streak:      row.Streak,
		BestStreak:  row.BestStreak,
		LastLogDate: row.LastLogDate,
		ChatHistory: chats,
	}
	state.Normalize()
	if err := state.Validate(); err != nil {
		return nil, loadError(fmt.Errorf("%w: %v", ErrCorrupt, err))
	}
	return state, nil
}

// Save appends the rows the database is missing. Both collections are
// append-only, so the document must extend what is stored: a shorter
// document, or one whose last stored check-in differs, is refused with
// ErrDiverged and nothing is written.
func (s *SQLiteStore) Save(ctx context.Context, state *domain.UserState) error {
	if err := state.Validate(); err != nil {
		return saveError(fmt.Errorf("refusing to write invalid state: %w", err))
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		checkIns := repository.NewSQLiteCheckInRepo(tx)
		chats := repository.NewSQLiteChatRepo(tx)
		streaks := repository.NewSQLiteStreakRepo(tx)

		if err := appendLogs(ctx, checkIns, state.Logs); err != nil {
			return err
		}
		if err := appendChats(ctx, chats, state.ChatHistory); err != nil {
			return err
		}
		return streaks.Upsert(ctx, &repository.StreakState{
			Streak:      state.Streak,
			BestStreak:  state.BestStreak,
			LastLogDate: state.LastLogDate,
		})
	})
	if err != nil {
		return saveError(err)
	}
	return nil
}

func appendLogs(ctx context.Context, repo repository.CheckInRepo, logs []domain.LogEntry) error {
	stored, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting check-ins: %w", err)
	}
	if stored > len(logs) {
		return fmt.Errorf("%w: %d check-ins stored, document has %d", ErrDiverged, stored, len(logs))
	}
	if stored > 0 {
		last, err := repo.ListRecent(ctx, 1)
		if err != nil {
			return fmt.Errorf("reading last check-in: %w", err)
		}
		if len(last) != 1 || last[0] != logs[stored-1] {
			return fmt.Errorf("%w: check-in %d differs from the stored one", ErrDiverged, stored-1)
		}
	}
	for i := stored; i < len(logs); i++ {
		if err := repo.Append(ctx, &logs[i]); err != nil {
			return fmt.Errorf("writing check-in %d: %w", i, err)
		}
	}
	return nil
}

func appendChats(ctx context.Context, repo repository.ChatRepo, turns []domain.ChatTurn) error {
	stored, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting chat turns: %w", err)
	}
	if stored > len(turns) {
		return fmt.Errorf("%w: %d chat turns stored, document has %d", ErrDiverged, stored, len(turns))
	}
	for i := stored; i < len(turns); i++ {
		if err := repo.Append(ctx, &turns[i]); err != nil {
			return fmt.Errorf("writing chat turn %d: %w", i, err)
		}
	}
	return nil
}
