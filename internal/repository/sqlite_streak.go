package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/healthtab/internal/db"
)

// SQLiteStreakRepo implements StreakRepo over the user_state singleton.
type SQLiteStreakRepo struct {
	db db.DBTX
}

func NewSQLiteStreakRepo(conn db.DBTX) *SQLiteStreakRepo {
	return &SQLiteStreakRepo{db: conn}
}

func (r *SQLiteStreakRepo) Get(ctx context.Context) (*StreakState, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT streak, best_streak, last_log_date FROM user_state WHERE id = 'default'`)

	var s StreakState
	var last sql.NullString
	if err := row.Scan(&s.Streak, &s.BestStreak, &last); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user state: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning user state: %w", err)
	}
	date, err := parseNullableDate(last)
	if err != nil {
		return nil, fmt.Errorf("parsing last_log_date: %w", err)
	}
	s.LastLogDate = date
	return &s, nil
}

func (r *SQLiteStreakRepo) Upsert(ctx context.Context, s *StreakState) error {
	query := `INSERT OR REPLACE INTO user_state (id, streak, best_streak, last_log_date, updated_at)
		VALUES ('default', ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.Streak,
		s.BestStreak,
		nullableDateToString(s.LastLogDate),
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("upserting user state: %w", err)
	}
	return nil
}
