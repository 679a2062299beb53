package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

type UserRepo struct {
	pool *pgxpool.Pool
}

type UserRecord struct {
	ID           int64
	Email        string
	PasswordHash string
	IsActive     bool
	IsStaff      bool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, email, passwordHash string) (UserRecord, error) {
	if r.pool == nil {
		return UserRecord{}, fmt.Errorf("postgres pool is nil")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || passwordHash == "" {
		return UserRecord{}, fmt.Errorf("invalid user payload")
	}

	var user UserRecord
	err := r.pool.QueryRow(ctx, `
INSERT INTO users (email, password_hash, is_active, is_staff, created_at, updated_at)
VALUES ($1, $2, TRUE, FALSE, NOW(), NOW())
RETURNING id, email, password_hash, is_active, is_staff
`, email, passwordHash).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.IsActive, &user.IsStaff)
	if err != nil {
		if isUniqueViolation(err) {
			return UserRecord{}, ErrDuplicateEmail
		}
		return UserRecord{}, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (UserRecord, error) {
	if r.pool == nil {
		return UserRecord{}, fmt.Errorf("postgres pool is nil")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return UserRecord{}, fmt.Errorf("invalid email")
	}

	var user UserRecord
	err := r.pool.QueryRow(ctx, `
SELECT id, email, password_hash, is_active, is_staff
FROM users
WHERE email = $1
`, email).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.IsActive, &user.IsStaff)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return UserRecord{}, ErrUserNotFound
		}
		return UserRecord{}, fmt.Errorf("find user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepo) FindByID(ctx context.Context, userID int64) (UserRecord, error) {
	if r.pool == nil {
		return UserRecord{}, fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 {
		return UserRecord{}, fmt.Errorf("invalid user id")
	}

	var user UserRecord
	err := r.pool.QueryRow(ctx, `
SELECT id, email, password_hash, is_active, is_staff
FROM users
WHERE id = $1
`, userID).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.IsActive, &user.IsStaff)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return UserRecord{}, ErrUserNotFound
		}
		return UserRecord{}, fmt.Errorf("find user by id: %w", err)
	}

	return user, nil
}

// GetContactEmails loads both participants' current addresses in one query;
// used to snapshot emails into an accepted contact request.
func (r *UserRepo) GetContactEmails(ctx context.Context, tx pgx.Tx, senderID, receiverID int64) (string, string, error) {
	if senderID <= 0 || receiverID <= 0 {
		return "", "", fmt.Errorf("invalid user ids")
	}
	if tx == nil {
		return "", "", fmt.Errorf("transaction is required")
	}

	var senderEmail, receiverEmail string
	err := tx.QueryRow(ctx, `
SELECT
	COALESCE((SELECT email FROM users WHERE id = $1), ''),
	COALESCE((SELECT email FROM users WHERE id = $2), '')
`, senderID, receiverID).Scan(&senderEmail, &receiverEmail)
	if err != nil {
		return "", "", fmt.Errorf("get contact emails: %w", err)
	}
	if senderEmail == "" || receiverEmail == "" {
		return "", "", ErrUserNotFound
	}

	return senderEmail, receiverEmail, nil
}
