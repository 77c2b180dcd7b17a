package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/healthtab/internal/db"
	"github.com/alexanderramin/healthtab/internal/domain"
	"github.com/google/uuid"
)

// SQLiteChatRepo implements ChatRepo.
type SQLiteChatRepo struct {
	db db.DBTX
}

func NewSQLiteChatRepo(conn db.DBTX) *SQLiteChatRepo {
	return &SQLiteChatRepo{db: conn}
}

func (r *SQLiteChatRepo) Append(ctx context.Context, turn *domain.ChatTurn) error {
	query := `INSERT INTO chat_turns (id, seq, user_message, ai_reply, created_at)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM chat_turns), ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, uuid.New().String(), turn.User, turn.AI, nowUTC()); err != nil {
		return fmt.Errorf("inserting chat turn: %w", err)
	}
	return nil
}

func (r *SQLiteChatRepo) ListAll(ctx context.Context) ([]domain.ChatTurn, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT user_message, ai_reply FROM chat_turns ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("listing chat turns: %w", err)
	}
	defer rows.Close()

	var turns []domain.ChatTurn
	for rows.Next() {
		var t domain.ChatTurn
		if err := rows.Scan(&t.User, &t.AI); err != nil {
			return nil, fmt.Errorf("scanning chat turn: %w", err)
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chat turns: %w", err)
	}
	return turns, nil
}

func (r *SQLiteChatRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chat_turns`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting chat turns: %w", err)
	}
	return n, nil
}

