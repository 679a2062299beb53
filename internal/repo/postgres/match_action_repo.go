package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrDuplicateMatchAction = errors.New("match action already exists for this pair")

type MatchActionRepo struct {
	pool *pgxpool.Pool
}

func NewMatchActionRepo(pool *pgxpool.Pool) *MatchActionRepo {
	return &MatchActionRepo{pool: pool}
}

type MatchActionRecord struct {
	ID         int64
	SenderID   int64
	ReceiverID int64
	SentAt     time.Time
}

func (r *MatchActionRepo) Create(ctx context.Context, tx pgx.Tx, senderID, receiverID int64, now time.Time) (MatchActionRecord, error) {
	if senderID <= 0 || receiverID <= 0 {
		return MatchActionRecord{}, fmt.Errorf("invalid match action payload")
	}
	if tx == nil {
		return MatchActionRecord{}, fmt.Errorf("transaction is required")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	var rec MatchActionRecord
	err := tx.QueryRow(ctx, `
INSERT INTO match_actions (
	sender_id,
	receiver_id,
	sent_at
) VALUES ($1, $2, $3)
RETURNING id, sender_id, receiver_id, sent_at
`, senderID, receiverID, now.UTC()).Scan(
		&rec.ID,
		&rec.SenderID,
		&rec.ReceiverID,
		&rec.SentAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return MatchActionRecord{}, ErrDuplicateMatchAction
		}
		return MatchActionRecord{}, fmt.Errorf("create match action: %w", err)
	}

	return rec, nil
}

func (r *MatchActionRepo) ListBySender(ctx context.Context, senderID int64, limit int) ([]MatchActionRecord, error) {
	if senderID <= 0 {
		return nil, fmt.Errorf("invalid sender id")
	}
	if limit <= 0 {
		limit = 100
	}
	if r.pool == nil {
		return []MatchActionRecord{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, sender_id, receiver_id, sent_at
FROM match_actions
WHERE sender_id = $1
ORDER BY sent_at DESC, id DESC
LIMIT $2
`, senderID, limit)
	if err != nil {
		return nil, fmt.Errorf("list match actions: %w", err)
	}
	defer rows.Close()

	items := make([]MatchActionRecord, 0, limit)
	for rows.Next() {
		var rec MatchActionRecord
		if err := rows.Scan(&rec.ID, &rec.SenderID, &rec.ReceiverID, &rec.SentAt); err != nil {
			return nil, fmt.Errorf("scan match action: %w", err)
		}
		items = append(items, rec)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate match actions: %w", rows.Err())
	}

	return items, nil
}
