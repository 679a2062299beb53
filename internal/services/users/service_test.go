package users

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	pgrepo "github.com/Kaifateg/RelateHub/internal/repo/postgres"
)

type userStoreStub struct {
	nextID  int64
	byEmail map[string]pgrepo.UserRecord
	byID    map[int64]pgrepo.UserRecord
}

func newUserStoreStub() *userStoreStub {
	return &userStoreStub{
		nextID:  1,
		byEmail: map[string]pgrepo.UserRecord{},
		byID:    map[int64]pgrepo.UserRecord{},
	}
}

func (s *userStoreStub) Create(_ context.Context, email, passwordHash string) (pgrepo.UserRecord, error) {
	if _, ok := s.byEmail[email]; ok {
		return pgrepo.UserRecord{}, pgrepo.ErrDuplicateEmail
	}
	user := pgrepo.UserRecord{
		ID:           s.nextID,
		Email:        email,
		PasswordHash: passwordHash,
		IsActive:     true,
	}
	s.nextID++
	s.byEmail[email] = user
	s.byID[user.ID] = user
	return user, nil
}

func (s *userStoreStub) FindByID(_ context.Context, userID int64) (pgrepo.UserRecord, error) {
	user, ok := s.byID[userID]
	if !ok {
		return pgrepo.UserRecord{}, pgrepo.ErrUserNotFound
	}
	return user, nil
}

func TestRegisterHashesPasswordAndLowercasesEmail(t *testing.T) {
	store := newUserStoreStub()
	svc := NewService(store, bcrypt.MinCost)

	account, err := svc.Register(context.Background(), "  Alice@Example.COM ", "s3cret-pass")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if account.Email != "alice@example.com" {
		t.Fatalf("email was not normalized: %q", account.Email)
	}

	stored := store.byEmail["alice@example.com"]
	if stored.PasswordHash == "s3cret-pass" {
		t.Fatalf("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pass")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(newUserStoreStub(), bcrypt.MinCost)

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "s3cret-pass"},
		{"malformed email", "not-an-email", "s3cret-pass"},
		{"short password", "bob@example.com", "short"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(context.Background(), tc.email, tc.password); !errors.Is(err, ErrValidation) {
				t.Fatalf("want ErrValidation, got %v", err)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewService(newUserStoreStub(), bcrypt.MinCost)

	if _, err := svc.Register(context.Background(), "carol@example.com", "s3cret-pass"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), "carol@example.com", "another-pass"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("want ErrEmailTaken, got %v", err)
	}
}
