package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrDuplicateSwipe = errors.New("swipe already exists for this pair")

type SwipeRepo struct {
	pool *pgxpool.Pool
}

func NewSwipeRepo(pool *pgxpool.Pool) *SwipeRepo {
	return &SwipeRepo{pool: pool}
}

type SwipeRecord struct {
	ID           int64
	SwiperID     int64
	SwipedUserID int64
	IsLike       bool
	CreatedAt    time.Time
}

// Create appends a swipe to the ledger. The unique index on
// (swiper_id, swiped_user_id) is the arbiter under concurrency: exactly one
// of two racing inserts for the same pair succeeds, the other returns
// ErrDuplicateSwipe.
func (r *SwipeRepo) Create(ctx context.Context, tx pgx.Tx, swiperID, swipedUserID int64, isLike bool, now time.Time) (SwipeRecord, error) {
	if swiperID <= 0 || swipedUserID <= 0 {
		return SwipeRecord{}, fmt.Errorf("invalid swipe payload")
	}
	if tx == nil {
		return SwipeRecord{}, fmt.Errorf("transaction is required")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	var rec SwipeRecord
	err := tx.QueryRow(ctx, `
INSERT INTO swipes (
	swiper_id,
	swiped_user_id,
	is_like,
	created_at
) VALUES ($1, $2, $3, $4)
RETURNING id, swiper_id, swiped_user_id, is_like, created_at
`, swiperID, swipedUserID, isLike, now.UTC()).Scan(
		&rec.ID,
		&rec.SwiperID,
		&rec.SwipedUserID,
		&rec.IsLike,
		&rec.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return SwipeRecord{}, ErrDuplicateSwipe
		}
		return SwipeRecord{}, fmt.Errorf("create swipe: %w", err)
	}

	return rec, nil
}

// LikeExists is one directed-like existence lookup; the mutual-match gate
// calls it twice, once per direction.
func (r *SwipeRepo) LikeExists(ctx context.Context, fromUserID, toUserID int64) (bool, error) {
	if fromUserID <= 0 || toUserID <= 0 {
		return false, fmt.Errorf("invalid like lookup payload")
	}
	if r.pool == nil {
		return false, fmt.Errorf("postgres pool is nil")
	}

	var one int
	err := r.pool.QueryRow(ctx, `
SELECT 1
FROM swipes
WHERE swiper_id = $1 AND swiped_user_id = $2 AND is_like = TRUE
LIMIT 1
`, fromUserID, toUserID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("lookup directed like: %w", err)
	}

	return true, nil
}

// ListSwipedUserIDs returns ids this user swiped, optionally restricted by
// outcome. A nil isLike means either outcome.
func (r *SwipeRepo) ListSwipedUserIDs(ctx context.Context, swiperID int64, isLike *bool) ([]int64, error) {
	if swiperID <= 0 {
		return nil, fmt.Errorf("invalid swiper id")
	}
	if r.pool == nil {
		return []int64{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT swiped_user_id
FROM swipes
WHERE swiper_id = $1
	AND ($2::boolean IS NULL OR is_like = $2)
ORDER BY created_at DESC, id DESC
`, swiperID, isLike)
	if err != nil {
		return nil, fmt.Errorf("list swiped user ids: %w", err)
	}
	defer rows.Close()

	return scanIDs(rows, "swiped user id")
}

// ListLikerUserIDs returns ids of users who liked this user.
func (r *SwipeRepo) ListLikerUserIDs(ctx context.Context, userID int64) ([]int64, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return []int64{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT swiper_id
FROM swipes
WHERE swiped_user_id = $1 AND is_like = TRUE
ORDER BY created_at DESC, id DESC
`, userID)
	if err != nil {
		return nil, fmt.Errorf("list liker user ids: %w", err)
	}
	defer rows.Close()

	return scanIDs(rows, "liker user id")
}

type MutualMatchRecord struct {
	UserID    int64
	Email     string
	FirstName string
	Age       int
	City      string
	MatchedAt time.Time
}

// ListMutualMatches resolves every mutual-like counterpart of userID in one
// pass over the ledger: like edges touching the user are folded per
// counterpart and both directions must be present. Cost is proportional to
// the user's slice of the ledger, never one round trip per candidate.
func (r *SwipeRepo) ListMutualMatches(ctx context.Context, userID int64) ([]MutualMatchRecord, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return []MutualMatchRecord{}, nil
	}

	rows, err := r.pool.Query(ctx, `
WITH mutual AS (
	SELECT
		CASE WHEN s.swiper_id = $1 THEN s.swiped_user_id ELSE s.swiper_id END AS other_id,
		COUNT(*) FILTER (WHERE s.swiper_id = $1)      AS likes_given,
		COUNT(*) FILTER (WHERE s.swiped_user_id = $1) AS likes_received,
		MAX(s.created_at)                             AS matched_at
	FROM swipes s
	WHERE s.is_like = TRUE
		AND (s.swiper_id = $1 OR s.swiped_user_id = $1)
	GROUP BY 1
	HAVING COUNT(*) FILTER (WHERE s.swiper_id = $1) >= 1
		AND COUNT(*) FILTER (WHERE s.swiped_user_id = $1) >= 1
)
SELECT
	m.other_id,
	u.email,
	COALESCE(p.first_name, ''),
	COALESCE(DATE_PART('year', AGE(NOW(), p.birth_date::timestamp))::int, 0),
	COALESCE(p.city, ''),
	m.matched_at
FROM mutual m
JOIN users u ON u.id = m.other_id
LEFT JOIN profiles p ON p.user_id = m.other_id
ORDER BY m.other_id
`, userID)
	if err != nil {
		return nil, fmt.Errorf("list mutual matches: %w", err)
	}
	defer rows.Close()

	items := make([]MutualMatchRecord, 0)
	for rows.Next() {
		var rec MutualMatchRecord
		if err := rows.Scan(
			&rec.UserID,
			&rec.Email,
			&rec.FirstName,
			&rec.Age,
			&rec.City,
			&rec.MatchedAt,
		); err != nil {
			return nil, fmt.Errorf("scan mutual match: %w", err)
		}
		items = append(items, rec)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate mutual matches: %w", rows.Err())
	}

	return items, nil
}

func scanIDs(rows pgx.Rows, what string) ([]int64, error) {
	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan %s: %w", what, err)
		}
		ids = append(ids, id)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate %ss: %w", what, rows.Err())
	}
	return ids, nil
}
