// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/symptom-ranker/auth"
	"github.com/danielhkuo/symptom-ranker/cliparse"
	"github.com/danielhkuo/symptom-ranker/db"
	"github.com/danielhkuo/symptom-ranker/kb"
	"github.com/danielhkuo/symptom-ranker/ranker"
	"github.com/danielhkuo/symptom-ranker/storage"
)

// TestSessionSalt signs the session tokens used in tests
const TestSessionSalt = "test-session-salt"

// SetupTestDB creates a fresh in-memory sqlite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return conn
}

// SetupTestStorage returns SQL storage over a fresh test database
func SetupTestStorage(t *testing.T) *storage.SQL {
	t.Helper()
	return storage.NewSQL(SetupTestDB(t))
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         cliparse.DefaultPort,
		DatabaseType: cliparse.DatabaseSQLite,
		DatabaseURL:  ":memory:",
		SessionSalt:  TestSessionSalt,
		DefaultTopN:  5,

		MaxSessions:        cliparse.DefaultMaxSessions,
		SessionIdleTimeout: cliparse.DefaultSessionIdleTimeout,
	}
}

// NewTestCatalog returns the lookups for the built-in knowledge base
func NewTestCatalog() *ranker.Catalog {
	return ranker.NewCatalog(kb.Default())
}

// CreateTestSession returns a new session ID and its signed token
func CreateTestSession(cfg cliparse.Config) (sessionID, token string) {
	sessionID = auth.NewSessionID()
	return sessionID, auth.SignSession(sessionID, cfg.SessionSalt)
}

// SessionHeaders returns the headers that authenticate a session route
func SessionHeaders(token string) map[string]string {
	return map[string]string{"X-Session-Token": token}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
