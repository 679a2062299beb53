package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepo struct {
	pool *pgxpool.Pool
}

type ProfileRecord struct {
	UserID     int64
	FirstName  string
	LastName   string
	MiddleName string
	Gender     string
	BirthDate  time.Time
	City       string
	Bio        string
	Status     string
	IsPrivate  bool
	LikesCount int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

func (r *ProfileRepo) GetByUserID(ctx context.Context, userID int64) (ProfileRecord, error) {
	if r.pool == nil {
		return ProfileRecord{}, fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 {
		return ProfileRecord{}, fmt.Errorf("invalid user id")
	}

	var rec ProfileRecord
	err := r.pool.QueryRow(ctx, `
SELECT
	user_id,
	first_name,
	COALESCE(last_name, ''),
	COALESCE(middle_name, ''),
	gender,
	birth_date,
	city,
	COALESCE(bio, ''),
	status,
	is_private,
	likes_count,
	created_at,
	updated_at
FROM profiles
WHERE user_id = $1
`, userID).Scan(
		&rec.UserID,
		&rec.FirstName,
		&rec.LastName,
		&rec.MiddleName,
		&rec.Gender,
		&rec.BirthDate,
		&rec.City,
		&rec.Bio,
		&rec.Status,
		&rec.IsPrivate,
		&rec.LikesCount,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ProfileRecord{}, ErrProfileNotFound
		}
		return ProfileRecord{}, fmt.Errorf("get profile: %w", err)
	}

	return rec, nil
}

func (r *ProfileRepo) Upsert(ctx context.Context, rec ProfileRecord) (ProfileRecord, error) {
	if r.pool == nil {
		return ProfileRecord{}, fmt.Errorf("postgres pool is nil")
	}
	if rec.UserID <= 0 {
		return ProfileRecord{}, fmt.Errorf("invalid user id")
	}

	var out ProfileRecord
	err := r.pool.QueryRow(ctx, `
INSERT INTO profiles (
	user_id, first_name, last_name, middle_name, gender, birth_date,
	city, bio, status, is_private, likes_count, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 0, NOW(), NOW())
ON CONFLICT (user_id) DO UPDATE SET
	first_name = EXCLUDED.first_name,
	last_name = EXCLUDED.last_name,
	middle_name = EXCLUDED.middle_name,
	gender = EXCLUDED.gender,
	birth_date = EXCLUDED.birth_date,
	city = EXCLUDED.city,
	bio = EXCLUDED.bio,
	status = EXCLUDED.status,
	is_private = EXCLUDED.is_private,
	updated_at = NOW()
RETURNING
	user_id, first_name, COALESCE(last_name, ''), COALESCE(middle_name, ''),
	gender, birth_date, city, COALESCE(bio, ''), status, is_private,
	likes_count, created_at, updated_at
`,
		rec.UserID, rec.FirstName, rec.LastName, rec.MiddleName, rec.Gender,
		rec.BirthDate, rec.City, rec.Bio, rec.Status, rec.IsPrivate,
	).Scan(
		&out.UserID,
		&out.FirstName,
		&out.LastName,
		&out.MiddleName,
		&out.Gender,
		&out.BirthDate,
		&out.City,
		&out.Bio,
		&out.Status,
		&out.IsPrivate,
		&out.LikesCount,
		&out.CreatedAt,
		&out.UpdatedAt,
	)
	if err != nil {
		return ProfileRecord{}, fmt.Errorf("upsert profile: %w", err)
	}

	return out, nil
}

// IncrementLikesCount bumps the denormalized received-likes counter. Runs in
// the swipe insert transaction so the counter never drifts from the ledger.
func (r *ProfileRepo) IncrementLikesCount(ctx context.Context, tx pgx.Tx, userID int64) error {
	if userID <= 0 {
		return fmt.Errorf("invalid user id")
	}
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}

	if _, err := tx.Exec(ctx, `
UPDATE profiles
SET likes_count = likes_count + 1, updated_at = NOW()
WHERE user_id = $1
`, userID); err != nil {
		return fmt.Errorf("increment likes count: %w", err)
	}

	return nil
}
