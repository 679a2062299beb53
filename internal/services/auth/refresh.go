package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const (
	refreshTokenBytes = 32
	sessionIDBytes    = 20
)

func newOpaqueToken(byteLen int) (string, error) {
	if byteLen <= 0 {
		return "", fmt.Errorf("invalid token size")
	}

	b := make([]byte, byteLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	// URL-safe so the token survives query strings and redis keys untouched.
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func NewRefreshToken() (string, error) {
	return newOpaqueToken(refreshTokenBytes)
}

func NewSessionID() (string, error) {
	return newOpaqueToken(sessionIDBytes)
}
