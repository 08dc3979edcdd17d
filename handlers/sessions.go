// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/danielhkuo/symptom-ranker/auth"
	"github.com/danielhkuo/symptom-ranker/cliparse"
	"github.com/danielhkuo/symptom-ranker/middleware"
	"github.com/danielhkuo/symptom-ranker/models"
	"github.com/danielhkuo/symptom-ranker/ranker"
	"github.com/danielhkuo/symptom-ranker/storage"
)

// SessionHeader carries the signed session token on session routes
const SessionHeader = "X-Session-Token"

type sessionEntry struct {
	mu      sync.Mutex
	session *ranker.Session

	// Guarded by SessionRegistry.mu
	lastUsed time.Time
	inFlight int
}

// SessionRegistry keeps one ranker.Session per session ID. Each session
// persists its selection under its own key prefix in the shared storage,
// so a session evicted from memory (or lost in a restart) is reopened
// from storage on its next request.
//
// The registry holds at most cfg.MaxSessions sessions. When a new session
// does not fit, idle sessions are dropped first, then the least recently
// used ones. Sessions with a request in flight are never dropped.
type SessionRegistry struct {
	catalog     *ranker.Catalog
	store       storage.Storage
	maxSessions int
	idleTimeout time.Duration
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

// NewSessionRegistry creates a registry bounded by cfg.MaxSessions and
// cfg.SessionIdleTimeout.
func NewSessionRegistry(catalog *ranker.Catalog, store storage.Storage, cfg cliparse.Config) *SessionRegistry {
	return &SessionRegistry{
		catalog:     catalog,
		store:       store,
		maxSessions: cfg.MaxSessions,
		idleTimeout: cfg.SessionIdleTimeout,
		now:         time.Now,
		sessions:    make(map[string]*sessionEntry),
	}
}

func sessionPrefix(id string) string {
	return "session/" + id + "/"
}

func (reg *SessionRegistry) acquire(id string) *sessionEntry {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	now := reg.now()
	e, ok := reg.sessions[id]
	if !ok {
		reg.makeRoom(now)
		e = &sessionEntry{
			session: ranker.NewSession(reg.catalog, storage.WithPrefix(reg.store, sessionPrefix(id))),
		}
		reg.sessions[id] = e
	}
	e.inFlight++
	e.lastUsed = now
	return e
}

func (reg *SessionRegistry) release(e *sessionEntry) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	e.inFlight--
	e.lastUsed = reg.now()
}

// makeRoom evicts sessions until one more fits. Caller holds reg.mu.
func (reg *SessionRegistry) makeRoom(now time.Time) {
	if reg.maxSessions <= 0 || len(reg.sessions) < reg.maxSessions {
		return
	}
	if n := reg.sweepLocked(now); n > 0 {
		slog.Debug("evicted idle sessions", "count", n)
	}
	for len(reg.sessions) >= reg.maxSessions {
		var oldestID string
		var oldest *sessionEntry
		for id, e := range reg.sessions {
			if e.inFlight > 0 {
				continue
			}
			if oldest == nil || e.lastUsed.Before(oldest.lastUsed) {
				oldestID, oldest = id, e
			}
		}
		if oldest == nil {
			// Every held session is busy
			slog.Warn("session registry over capacity", "sessions", len(reg.sessions), "max", reg.maxSessions)
			return
		}
		delete(reg.sessions, oldestID)
	}
}

func (reg *SessionRegistry) sweepLocked(now time.Time) int {
	if reg.idleTimeout <= 0 {
		return 0
	}
	evicted := 0
	for id, e := range reg.sessions {
		if e.inFlight == 0 && now.Sub(e.lastUsed) >= reg.idleTimeout {
			delete(reg.sessions, id)
			evicted++
		}
	}
	return evicted
}

// With runs fn with exclusive access to the session
func (reg *SessionRegistry) With(id string, fn func(s *ranker.Session)) {
	e := reg.acquire(id)
	defer reg.release(e)

	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.session)
}

// Evict drops the in-memory session unless a request is using it.
// Its persisted state is kept.
func (reg *SessionRegistry) Evict(id string) bool {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	e, ok := reg.sessions[id]
	if !ok || e.inFlight > 0 {
		return false
	}
	delete(reg.sessions, id)
	return true
}

// Sweep drops every session idle for longer than the idle timeout and
// returns how many were dropped
func (reg *SessionRegistry) Sweep() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return reg.sweepLocked(reg.now())
}

// RunSweeper calls Sweep every interval until ctx is done
func (reg *SessionRegistry) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 || reg.idleTimeout <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := reg.Sweep(); n > 0 {
				slog.Debug("evicted idle sessions", "count", n, "remaining", reg.Len())
			}
		}
	}
}

// Len returns the number of sessions held in memory
func (reg *SessionRegistry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.sessions)
}

// SessionHandler issues session tokens
type SessionHandler struct {
	registry *SessionRegistry
	cfg      cliparse.Config
}

func NewSessionHandler(registry *SessionRegistry, cfg cliparse.Config) *SessionHandler {
	return &SessionHandler{registry: registry, cfg: cfg}
}

// CreateSession handles POST /sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	sessionID := auth.NewSessionID()

	// Open eagerly so the empty selection is persisted
	h.registry.With(sessionID, func(s *ranker.Session) {
		s.OnClear()
	})

	slog.Info("session created",
		"session_id", sessionID,
		"ip_hash", auth.HashIP(middleware.GetClientIP(r), h.cfg.SessionSalt),
	)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateSessionResponse{
		SessionToken: auth.SignSession(sessionID, h.cfg.SessionSalt),
	})
}

// sessionID validates the session token header, writing a 401 on failure
func sessionID(w http.ResponseWriter, r *http.Request, salt string) (string, bool) {
	token := r.Header.Get(SessionHeader)
	if token == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Missing session token")
		return "", false
	}
	id, err := auth.ValidateSessionToken(token, salt)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid session token")
		return "", false
	}
	return id, true
}
