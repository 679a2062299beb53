package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DiscoverRepo struct {
	pool *pgxpool.Pool
}

func NewDiscoverRepo(pool *pgxpool.Pool) *DiscoverRepo {
	return &DiscoverRepo{pool: pool}
}

type DiscoverQuery struct {
	ViewerUserID int64
	Gender       *string
	Status       *string
	City         *string
	MinAge       *int
	MaxAge       *int
	Limit        int
	Offset       int
	Now          time.Time
}

type DiscoverCandidate struct {
	UserID     int64
	Email      string
	FirstName  string
	Gender     string
	Age        int
	City       string
	Status     string
	IsPrivate  bool
	LikesCount int
	JoinedAt   time.Time
}

// escapeLikePattern neutralizes LIKE metacharacters in a user-supplied
// value so a city of "%" does not match every row.
func escapeLikePattern(v *string) *string {
	if v == nil {
		return nil
	}
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(*v)
	return &escaped
}

// ListCandidates returns the discoverable pool for the viewer: everyone
// except the viewer, anyone the viewer already swiped in either direction
// outcome, and inactive or staff accounts, with the optional attribute
// filters applied. Age uses postgres AGE(), which carries the day-of-year
// correction. Newest-joined first.
func (r *DiscoverRepo) ListCandidates(ctx context.Context, q DiscoverQuery) ([]DiscoverCandidate, error) {
	if q.ViewerUserID <= 0 {
		return nil, fmt.Errorf("invalid viewer id")
	}
	if q.Limit <= 0 {
		q.Limit = 20
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	if q.Now.IsZero() {
		q.Now = time.Now().UTC()
	}
	if r.pool == nil {
		return []DiscoverCandidate{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT
	u.id,
	u.email,
	p.first_name,
	p.gender,
	DATE_PART('year', AGE($2::timestamptz, p.birth_date::timestamp))::int AS age,
	p.city,
	p.status,
	p.is_private,
	p.likes_count,
	u.created_at
FROM users u
JOIN profiles p ON p.user_id = u.id
WHERE
	u.id <> $1
	AND u.is_active = TRUE
	AND u.is_staff = FALSE
	AND NOT EXISTS (
		SELECT 1
		FROM swipes s
		WHERE s.swiper_id = $1 AND s.swiped_user_id = u.id
	)
	AND ($3::text IS NULL OR p.gender = $3)
	AND ($4::text IS NULL OR p.status = $4)
	AND ($5::text IS NULL OR p.city ILIKE '%' || $5 || '%' ESCAPE '\')
	AND ($6::int IS NULL OR DATE_PART('year', AGE($2::timestamptz, p.birth_date::timestamp))::int >= $6)
	AND ($7::int IS NULL OR DATE_PART('year', AGE($2::timestamptz, p.birth_date::timestamp))::int <= $7)
ORDER BY u.created_at DESC, u.id DESC
LIMIT $8 OFFSET $9
`,
		q.ViewerUserID,
		q.Now.UTC(),
		q.Gender,
		q.Status,
		escapeLikePattern(q.City),
		q.MinAge,
		q.MaxAge,
		q.Limit,
		q.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list discover candidates: %w", err)
	}
	defer rows.Close()

	items := make([]DiscoverCandidate, 0, q.Limit)
	for rows.Next() {
		var rec DiscoverCandidate
		if err := rows.Scan(
			&rec.UserID,
			&rec.Email,
			&rec.FirstName,
			&rec.Gender,
			&rec.Age,
			&rec.City,
			&rec.Status,
			&rec.IsPrivate,
			&rec.LikesCount,
			&rec.JoinedAt,
		); err != nil {
			return nil, fmt.Errorf("scan discover candidate: %w", err)
		}
		items = append(items, rec)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate discover candidates: %w", rows.Err())
	}

	return items, nil
}
