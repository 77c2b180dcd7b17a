package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/healthtab/internal/db"
	"github.com/alexanderramin/healthtab/internal/domain"
	"github.com/google/uuid"
)

// SQLiteCheckInRepo implements CheckInRepo. Rows are ordered by seq, which
// is allocated on insert, so the log keeps its append order.
type SQLiteCheckInRepo struct {
	db db.DBTX
}

func NewSQLiteCheckInRepo(conn db.DBTX) *SQLiteCheckInRepo {
	return &SQLiteCheckInRepo{db: conn}
}

const checkInColumns = `log_date, energy, mood, fatigue, notes,
	plan_exercise, plan_rest, plan_wellness, plan_medication, ai_reply`

func (r *SQLiteCheckInRepo) Append(ctx context.Context, e *domain.LogEntry) error {
	query := `INSERT INTO checkin_logs (id, seq, ` + checkInColumns + `, created_at)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM checkin_logs), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		uuid.New().String(),
		e.Date.String(),
		e.Energy,
		e.Mood,
		e.Fatigue,
		e.Notes,
		e.Plan.Exercise,
		e.Plan.Rest,
		e.Plan.Wellness,
		e.Plan.Medication,
		e.AIReply,
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting check-in log: %w", err)
	}
	return nil
}

func (r *SQLiteCheckInRepo) ListAll(ctx context.Context) ([]domain.LogEntry, error) {
	query := `SELECT ` + checkInColumns + ` FROM checkin_logs ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing check-in logs: %w", err)
	}
	defer rows.Close()
	return r.scanEntries(rows)
}

// ListRecent returns up to n entries, newest first.
func (r *SQLiteCheckInRepo) ListRecent(ctx context.Context, n int) ([]domain.LogEntry, error) {
	if n <= 0 {
		return nil, nil
	}
	query := `SELECT ` + checkInColumns + ` FROM checkin_logs ORDER BY seq DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("listing recent check-in logs: %w", err)
	}
	defer rows.Close()
	return r.scanEntries(rows)
}

func (r *SQLiteCheckInRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM checkin_logs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting check-in logs: %w", err)
	}
	return n, nil
}


func (r *SQLiteCheckInRepo) scanEntries(rows *sql.Rows) ([]domain.LogEntry, error) {
	var entries []domain.LogEntry
	for rows.Next() {
		var e domain.LogEntry
		var dateStr string
		err := rows.Scan(
			&dateStr, &e.Energy, &e.Mood, &e.Fatigue, &e.Notes,
			&e.Plan.Exercise, &e.Plan.Rest, &e.Plan.Wellness, &e.Plan.Medication, &e.AIReply,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning check-in row: %w", err)
		}
		if e.Date, err = domain.ParseDate(dateStr); err != nil {
			return nil, fmt.Errorf("parsing log_date: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating check-in logs: %w", err)
	}
	return entries, nil
}
