package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrPhotoNotFound     = errors.New("photo not found")
	ErrPhotoLimitReached = errors.New("photo limit reached")
)

type PhotoRepo struct {
	pool *pgxpool.Pool
}

type PhotoRecord struct {
	ID          int64
	UserID      int64
	ObjectKey   string
	ContentType string
	SizeBytes   int64
	IsMain      bool
	UploadedAt  time.Time
}

func NewPhotoRepo(pool *pgxpool.Pool) *PhotoRepo {
	return &PhotoRepo{pool: pool}
}

// Create inserts a photo row, enforcing the per-user cap and the first-photo
// auto-main rule. The user's photo rows are locked for the duration of the
// transaction so two concurrent uploads cannot both pass the cap check or
// both become main.
func (r *PhotoRepo) Create(ctx context.Context, userID int64, objectKey, contentType string, sizeBytes int64, maxPhotos int) (PhotoRecord, error) {
	if r.pool == nil {
		return PhotoRecord{}, fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 || objectKey == "" {
		return PhotoRecord{}, fmt.Errorf("invalid photo payload")
	}
	if maxPhotos <= 0 {
		return PhotoRecord{}, fmt.Errorf("invalid photo cap")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return PhotoRecord{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var count int
	if err := tx.QueryRow(ctx, `
SELECT COUNT(*)
FROM (
	SELECT id FROM photos WHERE user_id = $1 FOR UPDATE
) locked
`, userID).Scan(&count); err != nil {
		return PhotoRecord{}, fmt.Errorf("count user photos: %w", err)
	}

	if count >= maxPhotos {
		return PhotoRecord{}, ErrPhotoLimitReached
	}

	isMain := count == 0

	var rec PhotoRecord
	err = tx.QueryRow(ctx, `
INSERT INTO photos (user_id, object_key, content_type, size_bytes, is_main, uploaded_at)
VALUES ($1, $2, $3, $4, $5, NOW())
RETURNING id, user_id, object_key, content_type, size_bytes, is_main, uploaded_at
`, userID, objectKey, contentType, sizeBytes, isMain).Scan(
		&rec.ID,
		&rec.UserID,
		&rec.ObjectKey,
		&rec.ContentType,
		&rec.SizeBytes,
		&rec.IsMain,
		&rec.UploadedAt,
	)
	if err != nil {
		return PhotoRecord{}, fmt.Errorf("insert photo: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return PhotoRecord{}, fmt.Errorf("commit transaction: %w", err)
	}

	return rec, nil
}

func (r *PhotoRepo) ListByUser(ctx context.Context, userID int64) ([]PhotoRecord, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 {
		return nil, fmt.Errorf("invalid user id")
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, object_key, content_type, size_bytes, is_main, uploaded_at
FROM photos
WHERE user_id = $1
ORDER BY is_main DESC, uploaded_at DESC, id DESC
`, userID)
	if err != nil {
		return nil, fmt.Errorf("list user photos: %w", err)
	}
	defer rows.Close()

	photos := make([]PhotoRecord, 0)
	for rows.Next() {
		var rec PhotoRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.ObjectKey,
			&rec.ContentType,
			&rec.SizeBytes,
			&rec.IsMain,
			&rec.UploadedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user photo: %w", err)
		}
		photos = append(photos, rec)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate user photos: %w", rows.Err())
	}

	return photos, nil
}

// SetMain marks one photo as the user's main image. Demotion of the previous
// main and promotion of the new one happen in the same transaction, so the
// at-most-one-main invariant holds after every write, not only on insert.
func (r *PhotoRepo) SetMain(ctx context.Context, userID, photoID int64) (PhotoRecord, error) {
	if r.pool == nil {
		return PhotoRecord{}, fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 || photoID <= 0 {
		return PhotoRecord{}, fmt.Errorf("invalid photo payload")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return PhotoRecord{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, `
UPDATE photos
SET is_main = FALSE
WHERE user_id = $1 AND is_main = TRUE AND id <> $2
`, userID, photoID); err != nil {
		return PhotoRecord{}, fmt.Errorf("demote main photo: %w", err)
	}

	var rec PhotoRecord
	err = tx.QueryRow(ctx, `
UPDATE photos
SET is_main = TRUE
WHERE id = $1 AND user_id = $2
RETURNING id, user_id, object_key, content_type, size_bytes, is_main, uploaded_at
`, photoID, userID).Scan(
		&rec.ID,
		&rec.UserID,
		&rec.ObjectKey,
		&rec.ContentType,
		&rec.SizeBytes,
		&rec.IsMain,
		&rec.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return PhotoRecord{}, ErrPhotoNotFound
		}
		return PhotoRecord{}, fmt.Errorf("promote main photo: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return PhotoRecord{}, fmt.Errorf("commit transaction: %w", err)
	}

	return rec, nil
}

// Delete removes the user's photo and returns the removed record so the
// caller can delete the stored object. If the main photo is removed the
// newest remaining photo is promoted, keeping a main image whenever any
// photo exists.
func (r *PhotoRepo) Delete(ctx context.Context, userID, photoID int64) (PhotoRecord, error) {
	if r.pool == nil {
		return PhotoRecord{}, fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 || photoID <= 0 {
		return PhotoRecord{}, fmt.Errorf("invalid photo payload")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return PhotoRecord{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var rec PhotoRecord
	err = tx.QueryRow(ctx, `
DELETE FROM photos
WHERE id = $1 AND user_id = $2
RETURNING id, user_id, object_key, content_type, size_bytes, is_main, uploaded_at
`, photoID, userID).Scan(
		&rec.ID,
		&rec.UserID,
		&rec.ObjectKey,
		&rec.ContentType,
		&rec.SizeBytes,
		&rec.IsMain,
		&rec.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return PhotoRecord{}, ErrPhotoNotFound
		}
		return PhotoRecord{}, fmt.Errorf("delete photo: %w", err)
	}

	if rec.IsMain {
		if _, err := tx.Exec(ctx, `
UPDATE photos
SET is_main = TRUE
WHERE id = (
	SELECT id FROM photos
	WHERE user_id = $1
	ORDER BY uploaded_at DESC, id DESC
	LIMIT 1
)
`, userID); err != nil {
			return PhotoRecord{}, fmt.Errorf("promote fallback main photo: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return PhotoRecord{}, fmt.Errorf("commit transaction: %w", err)
	}

	return rec, nil
}
