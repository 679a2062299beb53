package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	pgrepo "github.com/Kaifateg/RelateHub/internal/repo/postgres"
	redrepo "github.com/Kaifateg/RelateHub/internal/repo/redis"
	authsvc "github.com/Kaifateg/RelateHub/internal/services/auth"
)

type userStoreStub struct {
	users map[string]pgrepo.UserRecord
}

func (s *userStoreStub) FindByEmail(_ context.Context, email string) (pgrepo.UserRecord, error) {
	user, ok := s.users[email]
	if !ok {
		return pgrepo.UserRecord{}, pgrepo.ErrUserNotFound
	}
	return user, nil
}

func TestLoginAndValidate(t *testing.T) {
	svc, cleanup := newAuthServiceForTest(t)
	defer cleanup()

	ctx := context.Background()
	res, err := svc.Login(ctx, "alice@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Me.ID != 1001 {
		t.Fatalf("unexpected user id %d", res.Me.ID)
	}

	claims, err := svc.ValidateAccessToken(ctx, res.AccessToken)
	if err != nil {
		t.Fatalf("validate access token: %v", err)
	}
	if claims.UserID != 1001 {
		t.Fatalf("unexpected claims user id %d", claims.UserID)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, cleanup := newAuthServiceForTest(t)
	defer cleanup()

	ctx := context.Background()
	if _, err := svc.Login(ctx, "alice@example.com", "wrong-pass"); !errors.Is(err, authsvc.ErrInvalidCredentials) {
		t.Fatalf("wrong password should fail with invalid credentials, got err=%v", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "s3cret-pass"); !errors.Is(err, authsvc.ErrInvalidCredentials) {
		t.Fatalf("unknown email should fail with invalid credentials, got err=%v", err)
	}
	if _, err := svc.Login(ctx, "blocked@example.com", "s3cret-pass"); !errors.Is(err, authsvc.ErrInvalidCredentials) {
		t.Fatalf("inactive account should fail with invalid credentials, got err=%v", err)
	}
}

func TestRefreshRotation(t *testing.T) {
	svc, cleanup := newAuthServiceForTest(t)
	defer cleanup()

	ctx := context.Background()
	loginRes, err := svc.Login(ctx, "alice@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	refreshRes, err := svc.Refresh(ctx, loginRes.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if refreshRes.RefreshToken == loginRes.RefreshToken {
		t.Fatalf("refresh token was not rotated")
	}

	if _, err := svc.Refresh(ctx, loginRes.RefreshToken); !errors.Is(err, authsvc.ErrUnauthorized) {
		t.Fatalf("old refresh token should be unauthorized, got err=%v", err)
	}

	if _, err := svc.ValidateAccessToken(ctx, refreshRes.AccessToken); err != nil {
		t.Fatalf("new access token validation failed: %v", err)
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	svc, cleanup := newAuthServiceForTest(t)
	defer cleanup()

	ctx := context.Background()
	loginRes, err := svc.Login(ctx, "alice@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := svc.ValidateAccessToken(ctx, loginRes.AccessToken)
	if err != nil {
		t.Fatalf("validate access token before logout: %v", err)
	}

	if err := svc.Logout(ctx, claims.SID); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if _, err := svc.ValidateAccessToken(ctx, loginRes.AccessToken); !errors.Is(err, authsvc.ErrUnauthorized) {
		t.Fatalf("access token should be unauthorized after logout, got err=%v", err)
	}
}

func newAuthServiceForTest(t *testing.T) (*authsvc.Service, func()) {
	t.Helper()

	mini, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash test password: %v", err)
	}

	users := &userStoreStub{users: map[string]pgrepo.UserRecord{
		"alice@example.com": {
			ID:           1001,
			Email:        "alice@example.com",
			PasswordHash: string(hash),
			IsActive:     true,
		},
		"blocked@example.com": {
			ID:           1002,
			Email:        "blocked@example.com",
			PasswordHash: string(hash),
			IsActive:     false,
		},
	}}

	client := goredis.NewClient(&goredis.Options{Addr: mini.Addr()})
	repo := redrepo.NewSessionRepo(client)
	jwtManager := authsvc.NewJWTManager("test-secret", 15*time.Minute)
	svc := authsvc.NewService(jwtManager, repo, users, 45*24*time.Hour)

	cleanup := func() {
		_ = client.Close()
		mini.Close()
	}

	return svc, cleanup
}
