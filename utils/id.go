package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// NewSessionID names a login session. It is also the token's jti.
func NewSessionID() string {
	return uuid.NewString()
}

func NewRequestID() string {
	return uuid.NewString()
}

// NewSigningKey returns 32 random bytes, hex encoded, for signing tokens
// when no JWT_SECRET is configured.
func NewSigningKey() (string, error) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("generate signing key: %w", err)
	}
	return hex.EncodeToString(key), nil
}
