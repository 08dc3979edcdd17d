// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidToken is returned for any token that fails validation
var ErrInvalidToken = errors.New("invalid session token")

// NewSessionID creates a random (version 4) UUID for a new session
func NewSessionID() string {
	return uuid.NewString()
}

// SignSession creates the session token handed to clients: the session ID
// followed by an HMAC of it. This is deterministic and verifiable
func SignSession(sessionID, salt string) string {
	return sessionID + "." + signature(sessionID, salt)
}

// ValidateSessionToken checks the token signature and returns the session ID
func ValidateSessionToken(token, salt string) (string, error) {
	i := strings.LastIndexByte(token, '.')
	if i <= 0 {
		return "", ErrInvalidToken
	}
	sessionID, sig := token[:i], token[i+1:]

	if _, err := uuid.Parse(sessionID); err != nil {
		return "", ErrInvalidToken
	}
	if !hmac.Equal([]byte(sig), []byte(signature(sessionID, salt))) {
		return "", ErrInvalidToken
	}
	return sessionID, nil
}

func signature(sessionID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(sessionID))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner tokens
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for log correlation
	return hex.EncodeToString(sum[:8])
}
