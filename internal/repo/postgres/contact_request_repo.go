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
	ErrRequestNotFound   = errors.New("contact request not found")
	ErrDuplicateRequest  = errors.New("contact request already exists for this pair")
	ErrRequestNotPending = errors.New("contact request is not in sent state")
)

type ContactRequestRepo struct {
	pool *pgxpool.Pool
}

func NewContactRequestRepo(pool *pgxpool.Pool) *ContactRequestRepo {
	return &ContactRequestRepo{pool: pool}
}

type ContactRequestRecord struct {
	ID                   int64
	SenderID             int64
	ReceiverID           int64
	Status               string
	SentAt               time.Time
	RespondedAt          *time.Time
	SenderContactEmail   string
	ReceiverContactEmail string
}

// Create inserts a request in sent state. The partial unique index on the
// unordered pair (status <> 'declined') is the concurrency arbiter: of two
// racing creates for the same pair exactly one commits, the other returns
// ErrDuplicateRequest. Declined rows do not participate in the index, so a
// declined request never blocks a fresh one.
func (r *ContactRequestRepo) Create(ctx context.Context, tx pgx.Tx, senderID, receiverID int64, now time.Time) (ContactRequestRecord, error) {
	if senderID <= 0 || receiverID <= 0 {
		return ContactRequestRecord{}, fmt.Errorf("invalid contact request payload")
	}
	if tx == nil {
		return ContactRequestRecord{}, fmt.Errorf("transaction is required")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	var rec ContactRequestRecord
	err := tx.QueryRow(ctx, `
INSERT INTO contact_requests (
	sender_id,
	receiver_id,
	status,
	sent_at
) VALUES ($1, $2, 'sent', $3)
RETURNING
	id, sender_id, receiver_id, status, sent_at, responded_at,
	COALESCE(sender_contact_email, ''), COALESCE(receiver_contact_email, '')
`, senderID, receiverID, now.UTC()).Scan(
		&rec.ID,
		&rec.SenderID,
		&rec.ReceiverID,
		&rec.Status,
		&rec.SentAt,
		&rec.RespondedAt,
		&rec.SenderContactEmail,
		&rec.ReceiverContactEmail,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ContactRequestRecord{}, ErrDuplicateRequest
		}
		return ContactRequestRecord{}, fmt.Errorf("create contact request: %w", err)
	}

	return rec, nil
}

// ActiveExistsBetween reports whether a non-declined request exists between
// the two users in either direction.
func (r *ContactRequestRepo) ActiveExistsBetween(ctx context.Context, tx pgx.Tx, userA, userB int64) (bool, error) {
	if userA <= 0 || userB <= 0 {
		return false, fmt.Errorf("invalid contact request lookup payload")
	}
	if tx == nil {
		return false, fmt.Errorf("transaction is required")
	}

	var one int
	err := tx.QueryRow(ctx, `
SELECT 1
FROM contact_requests
WHERE
	((sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1))
	AND status <> 'declined'
LIMIT 1
`, userA, userB).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("lookup active contact request: %w", err)
	}

	return true, nil
}

// GetVisible loads a request only when viewerID is a participant. A request
// belonging to other users is indistinguishable from a missing one.
func (r *ContactRequestRepo) GetVisible(ctx context.Context, requestID, viewerID int64) (ContactRequestRecord, error) {
	if requestID <= 0 || viewerID <= 0 {
		return ContactRequestRecord{}, fmt.Errorf("invalid contact request lookup payload")
	}
	if r.pool == nil {
		return ContactRequestRecord{}, ErrRequestNotFound
	}

	var rec ContactRequestRecord
	err := r.pool.QueryRow(ctx, `
SELECT
	id, sender_id, receiver_id, status, sent_at, responded_at,
	COALESCE(sender_contact_email, ''), COALESCE(receiver_contact_email, '')
FROM contact_requests
WHERE id = $1 AND (sender_id = $2 OR receiver_id = $2)
`, requestID, viewerID).Scan(
		&rec.ID,
		&rec.SenderID,
		&rec.ReceiverID,
		&rec.Status,
		&rec.SentAt,
		&rec.RespondedAt,
		&rec.SenderContactEmail,
		&rec.ReceiverContactEmail,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ContactRequestRecord{}, ErrRequestNotFound
		}
		return ContactRequestRecord{}, fmt.Errorf("get contact request: %w", err)
	}

	return rec, nil
}

// ListForUser returns requests where the user is sender or receiver, newest
// first.
func (r *ContactRequestRepo) ListForUser(ctx context.Context, userID int64, limit int) ([]ContactRequestRecord, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	if limit <= 0 {
		limit = 100
	}
	if r.pool == nil {
		return []ContactRequestRecord{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT
	id, sender_id, receiver_id, status, sent_at, responded_at,
	COALESCE(sender_contact_email, ''), COALESCE(receiver_contact_email, '')
FROM contact_requests
WHERE sender_id = $1 OR receiver_id = $1
ORDER BY sent_at DESC, id DESC
LIMIT $2
`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list contact requests: %w", err)
	}
	defer rows.Close()

	items := make([]ContactRequestRecord, 0, limit)
	for rows.Next() {
		var rec ContactRequestRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.SenderID,
			&rec.ReceiverID,
			&rec.Status,
			&rec.SentAt,
			&rec.RespondedAt,
			&rec.SenderContactEmail,
			&rec.ReceiverContactEmail,
		); err != nil {
			return nil, fmt.Errorf("scan contact request: %w", err)
		}
		items = append(items, rec)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate contact requests: %w", rows.Err())
	}

	return items, nil
}

// Transition moves a request out of sent state with compare-and-set
// semantics: the WHERE status = 'sent' guard is evaluated against the
// persisted row, so of concurrent accept/decline calls only one commits.
// The loser gets ErrRequestNotPending. Emails are written only on accept,
// as a frozen snapshot of both parties' current addresses.
func (r *ContactRequestRepo) Transition(ctx context.Context, tx pgx.Tx, requestID int64, toStatus string, senderEmail, receiverEmail string, now time.Time) (ContactRequestRecord, error) {
	if requestID <= 0 {
		return ContactRequestRecord{}, fmt.Errorf("invalid contact request id")
	}
	if tx == nil {
		return ContactRequestRecord{}, fmt.Errorf("transaction is required")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	var rec ContactRequestRecord
	err := tx.QueryRow(ctx, `
UPDATE contact_requests
SET
	status = $2,
	responded_at = $3,
	sender_contact_email = CASE WHEN $2 = 'accepted' THEN $4 ELSE sender_contact_email END,
	receiver_contact_email = CASE WHEN $2 = 'accepted' THEN $5 ELSE receiver_contact_email END
WHERE id = $1 AND status = 'sent'
RETURNING
	id, sender_id, receiver_id, status, sent_at, responded_at,
	COALESCE(sender_contact_email, ''), COALESCE(receiver_contact_email, '')
`, requestID, toStatus, now.UTC(), senderEmail, receiverEmail).Scan(
		&rec.ID,
		&rec.SenderID,
		&rec.ReceiverID,
		&rec.Status,
		&rec.SentAt,
		&rec.RespondedAt,
		&rec.SenderContactEmail,
		&rec.ReceiverContactEmail,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ContactRequestRecord{}, ErrRequestNotPending
		}
		return ContactRequestRecord{}, fmt.Errorf("transition contact request: %w", err)
	}

	return rec, nil
}
