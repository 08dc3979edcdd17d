// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/symptom-ranker/models"
)

// captureLogs routes the default logger into a buffer for one test
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

// logRecords decodes every JSON log line with the given message
func logRecords(t *testing.T, buf *bytes.Buffer, msg string) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("Log line is not JSON: %q", line)
		}
		if rec["msg"] == msg {
			out = append(out, rec)
		}
	}
	return out
}

func TestWithLogging_CompletionStatus(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		status  int
	}{
		{
			name:    "implicit 200",
			handler: func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("ok")) },
			status:  http.StatusOK,
		},
		{
			name: "missing session token",
			handler: func(w http.ResponseWriter, r *http.Request) {
				ErrorResponse(w, http.StatusUnauthorized, "Missing session token")
			},
			status: http.StatusUnauthorized,
		},
		{
			name: "session created",
			handler: func(w http.ResponseWriter, r *http.Request) {
				JSONResponse(w, http.StatusCreated, models.CreateSessionResponse{SessionToken: "id.sig"})
			},
			status: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)

			req := httptest.NewRequest("POST", "/session/analyze", nil)
			req.Header.Set("X-Real-IP", "10.1.2.3")
			w := httptest.NewRecorder()
			WithLogging(tt.handler)(w, req)

			if w.Code != tt.status {
				t.Errorf("Client saw status %d, want %d", w.Code, tt.status)
			}

			started := logRecords(t, buf, "request started")
			if len(started) != 1 || started[0]["remote"] != "10.1.2.3" {
				t.Errorf("Expected one start record with remote 10.1.2.3, got %v", started)
			}

			done := logRecords(t, buf, "request completed")
			if len(done) != 1 {
				t.Fatalf("Expected one completion record, got %d", len(done))
			}
			// JSON numbers decode as float64
			if got := done[0]["status"]; got != float64(tt.status) {
				t.Errorf("Logged status %v, want %d", got, tt.status)
			}
			if done[0]["method"] != "POST" || done[0]["path"] != "/session/analyze" {
				t.Errorf("Unexpected method/path in %v", done[0])
			}
			if _, ok := done[0]["duration_ms"]; !ok {
				t.Error("Completion record is missing duration_ms")
			}
		})
	}
}

func TestStatusRecorder_PassesThrough(t *testing.T) {
	w := httptest.NewRecorder()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

	rec.WriteHeader(http.StatusNotFound)
	rec.Write([]byte("gone"))

	if rec.status != http.StatusNotFound {
		t.Errorf("Recorded %d, want 404", rec.status)
	}
	if w.Code != http.StatusNotFound || w.Body.String() != "gone" {
		t.Errorf("Underlying writer got %d %q", w.Code, w.Body.String())
	}
}

func TestErrorResponse_APIMessages(t *testing.T) {
	tests := []struct {
		status  int
		message string
	}{
		{http.StatusBadRequest, "Invalid JSON"},
		{http.StatusBadRequest, "days_ago is required"},
		{http.StatusUnauthorized, "Invalid session token"},
		{http.StatusNotFound, "Condition not found"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			w := httptest.NewRecorder()
			ErrorResponse(w, tt.status, tt.message)

			if w.Code != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Expected application/json, got %q", ct)
			}

			var resp models.ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode error body: %v", err)
			}
			if resp.Error != http.StatusText(tt.status) || resp.Message != tt.message {
				t.Errorf("Got %+v", resp)
			}
		})
	}
}

func TestJSONResponse_EmptyAnalysis(t *testing.T) {
	w := httptest.NewRecorder()
	JSONResponse(w, http.StatusOK, models.Analysis{
		Status:      models.StatusNeedsInput,
		TopN:        5,
		Results:     []models.MatchResult{},
		Precautions: []models.PrecautionGroup{},
	})

	body := w.Body.String()
	for _, want := range []string{`"status":"needs_input"`, `"results":[]`, `"precautions":[]`} {
		if !strings.Contains(body, want) {
			t.Errorf("Body %s is missing %s", body, want)
		}
	}
}

func TestParseJSONBody_DaysAgo(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
		wantNil bool
		want    int
	}{
		{"explicit zero", `{"days_ago": 0}`, false, false, 0},
		{"positive", `{"days_ago": 4}`, false, false, 4},
		{"missing field", `{}`, false, true, 0},
		{"wrong type", `{"days_ago": "four"}`, true, false, 0},
		{"truncated", `{"days_ago":`, true, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("PUT", "/session/symptoms/fever/days", strings.NewReader(tt.body))

			var got models.SetDaysAgoRequest
			err := ParseJSONBody(req, &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseJSONBody() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if (got.DaysAgo == nil) != tt.wantNil {
				t.Fatalf("DaysAgo nil = %v, want %v", got.DaysAgo == nil, tt.wantNil)
			}
			if !tt.wantNil && *got.DaysAgo != tt.want {
				t.Errorf("DaysAgo = %d, want %d", *got.DaysAgo, tt.want)
			}
		})
	}
}

func TestParseJSONBody_SizeCap(t *testing.T) {
	// A JSON string literal just under and just over the cap
	fits := `{"symptom":"` + strings.Repeat("a", MaxBodyBytes-20) + `"}`
	tooBig := `{"symptom":"` + strings.Repeat("a", MaxBodyBytes) + `"}`

	var ok models.AddSymptomRequest
	req := httptest.NewRequest("POST", "/session/symptoms", strings.NewReader(fits))
	if err := ParseJSONBody(req, &ok); err != nil {
		t.Fatalf("Body under the cap rejected: %v", err)
	}
	if len(ok.Symptom) != MaxBodyBytes-20 {
		t.Errorf("Decoded %d bytes, want %d", len(ok.Symptom), MaxBodyBytes-20)
	}

	var big models.AddSymptomRequest
	req = httptest.NewRequest("POST", "/session/symptoms", strings.NewReader(tooBig))
	err := ParseJSONBody(req, &big)
	var maxErr *http.MaxBytesError
	if !errors.As(err, &maxErr) {
		t.Fatalf("Expected *http.MaxBytesError, got %v", err)
	}
	if maxErr.Limit != MaxBodyBytes {
		t.Errorf("Limit = %d, want %d", maxErr.Limit, MaxBodyBytes)
	}
}

func TestCORS_Origins(t *testing.T) {
	tests := []struct {
		name       string
		allowed    []string
		origin     string
		wantOrigin string
		wantVary   bool
	}{
		{"no allowlist", nil, "https://anywhere.example", "*", false},
		{"no allowlist, no origin", nil, "", "*", false},
		{"listed origin", []string{"https://app.example", "https://admin.example"}, "https://admin.example", "https://admin.example", true},
		{"unlisted origin", []string{"https://app.example"}, "https://evil.example", "", false},
		{"allowlist, no origin", []string{"https://app.example"}, "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := CORS(tt.allowed, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest("GET", "/session/symptoms", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
			if got := w.Header().Get("Vary") == "Origin"; got != tt.wantVary {
				t.Errorf("Vary: Origin set = %v, want %v", got, tt.wantVary)
			}
			if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "" {
				t.Errorf("Credentials must not be allowed, got %q", got)
			}
		})
	}
}

func TestCORS_PreflightForSessionRoutes(t *testing.T) {
	called := false
	handler := CORS([]string{"https://app.example"}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest("OPTIONS", "/session/symptoms/fever/days", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", "PUT")
	req.Header.Set("Access-Control-Request-Headers", "X-Session-Token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if called {
		t.Error("Preflight should not reach the wrapped handler")
	}
	if w.Code != http.StatusNoContent {
		t.Errorf("Expected 204, got %d", w.Code)
	}
	if h := w.Header().Get("Access-Control-Allow-Headers"); !strings.Contains(h, "X-Session-Token") {
		t.Errorf("Allow-Headers %q does not admit the session token header", h)
	}
	if m := w.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(m, "PUT") || !strings.Contains(m, "DELETE") {
		t.Errorf("Allow-Methods %q is missing PUT or DELETE", m)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		xff        string
		realIP     string
		remoteAddr string
		want       string
	}{
		{"proxy chain keeps first hop", "203.0.113.7, 10.0.0.1", "", "10.0.0.1:443", "203.0.113.7"},
		{"forwarded wins over real ip", "203.0.113.7", "198.51.100.2", "10.0.0.1:443", "203.0.113.7"},
		{"real ip from nginx", "", "198.51.100.2", "10.0.0.1:443", "198.51.100.2"},
		{"remote addr without port", "", "", "192.0.2.10:52100", "192.0.2.10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/sessions", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}

			if got := GetClientIP(req); got != tt.want {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
