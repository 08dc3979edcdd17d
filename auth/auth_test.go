// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewSessionID(t *testing.T) {
	id := NewSessionID()
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("NewSessionID() = %q is not a UUID: %v", id, err)
	}

	// Test randomness - should not produce duplicates
	ids := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewSessionID()
		if ids[id] {
			t.Errorf("NewSessionID() produced duplicate ID: %s", id)
		}
		ids[id] = true
	}
}

func TestSignSession(t *testing.T) {
	tests := []struct {
		name      string
		sessionID string
		salt      string
	}{
		{"standard", "0b6f5f3e-8f5a-4a59-9d4c-1f0f6a2b7c11", "secret-salt"},
		{"empty salt", "0b6f5f3e-8f5a-4a59-9d4c-1f0f6a2b7c11", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := SignSession(tt.sessionID, tt.salt)

			// Should carry the session ID as prefix
			if !strings.HasPrefix(token, tt.sessionID+".") {
				t.Errorf("SignSession() = %q, want prefix %q", token, tt.sessionID+".")
			}

			// Should be deterministic
			if token != SignSession(tt.sessionID, tt.salt) {
				t.Error("SignSession() is not deterministic")
			}

			// Should be URL-safe (no padding)
			if strings.Contains(token, "=") {
				t.Error("SignSession() contains padding characters")
			}
		})
	}

	if SignSession("a", "salt1") == SignSession("a", "salt2") {
		t.Error("SignSession() produced same token for different salts")
	}
}

func TestValidateSessionToken(t *testing.T) {
	salt := "test-salt"
	sessionID := NewSessionID()
	validToken := SignSession(sessionID, salt)
	otherToken := SignSession(NewSessionID(), salt)

	tests := []struct {
		name    string
		token   string
		salt    string
		wantErr bool
	}{
		{"valid token", validToken, salt, false},
		{"wrong salt", validToken, "different-salt", true},
		{"empty token", "", salt, true},
		{"no separator", sessionID, salt, true},
		{"missing id", "." + strings.SplitN(validToken, ".", 2)[1], salt, true},
		{"tampered signature", validToken + "x", salt, true},
		{"swapped signature", sessionID + otherToken[strings.LastIndex(otherToken, "."):], salt, true},
		{"not a uuid", SignSession("not-a-uuid", salt), salt, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ValidateSessionToken(tt.token, tt.salt)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSessionToken() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err != ErrInvalidToken {
				t.Errorf("ValidateSessionToken() error = %v, want %v", err, ErrInvalidToken)
			}
			if !tt.wantErr && id != sessionID {
				t.Errorf("ValidateSessionToken() id = %q, want %q", id, sessionID)
			}
		})
	}
}

func TestHashIP(t *testing.T) {
	tests := []struct {
		name string
		ip   string
		salt string
	}{
		{"IPv4", "192.168.1.1", "ip-salt"},
		{"IPv6", "2001:0db8:85a3::8a2e:0370:7334", "ip-salt"},
		{"localhost", "127.0.0.1", "ip-salt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash := HashIP(tt.ip, tt.salt)

			// Should not be empty
			if hash == "" {
				t.Error("HashIP() returned empty string")
			}

			// Should be 16 hex characters (8 bytes * 2)
			if len(hash) != 16 {
				t.Errorf("HashIP() length = %d, want 16", len(hash))
			}

			// Should be valid hex
			for _, c := range hash {
				if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
					t.Errorf("HashIP() contains invalid hex char: %c", c)
				}
			}

			// Should be deterministic
			hash2 := HashIP(tt.ip, tt.salt)
			if hash != hash2 {
				t.Error("HashIP() is not deterministic")
			}
		})
	}

	// Different IPs should produce different hashes
	hash1 := HashIP("192.168.1.1", "salt")
	hash2 := HashIP("192.168.1.2", "salt")
	if hash1 == hash2 {
		t.Error("HashIP() produced same hash for different IPs")
	}

	// Different salts should produce different hashes
	hash3 := HashIP("192.168.1.1", "salt1")
	hash4 := HashIP("192.168.1.1", "salt2")
	if hash3 == hash4 {
		t.Error("HashIP() produced same hash for different salts")
	}
}

// Benchmark tests
func BenchmarkSignSession(b *testing.B) {
	sessionID := NewSessionID()
	salt := "test-salt"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		SignSession(sessionID, salt)
	}
}

func BenchmarkValidateSessionToken(b *testing.B) {
	salt := "test-salt"
	token := SignSession(NewSessionID(), salt)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ValidateSessionToken(token, salt)
	}
}
