package auth

import (
	"errors"
	"strconv"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("jwt-test-secret", time.Minute)

	signed, expiresAt, err := m.GenerateAccessToken(7, "sid-1", "user")
	if err != nil {
		t.Fatalf("generate access token: %v", err)
	}

	claims, err := m.ParseAccessToken(signed)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != 7 || claims.SID != "sid-1" || claims.Role != "user" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if !claims.ExpiresAt.Equal(expiresAt.Truncate(time.Second)) {
		t.Fatalf("expiry mismatch: claims %v, issued %v", claims.ExpiresAt, expiresAt)
	}
}

func TestParseAccessTokenRejectsForeignIssuer(t *testing.T) {
	m := NewJWTManager("jwt-test-secret", time.Minute)

	now := time.Now().UTC()
	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, accessTokenClaims{
		SID:  "sid-1",
		Role: "user",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "other-service",
			Subject:   strconv.FormatInt(7, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
		},
	})
	signed, err := foreign.SignedString([]byte("jwt-test-secret"))
	if err != nil {
		t.Fatalf("sign foreign token: %v", err)
	}

	if _, err := m.ParseAccessToken(signed); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized for foreign issuer, got %v", err)
	}
}
