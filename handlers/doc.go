// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the symptom ranker API.

# Handler Types

Each handler is a struct with its dependencies injected:

  - SessionHandler: Session creation
  - SymptomHandler: Selection editing, analysis and per-session precautions
  - CatalogHandler: Read-only knowledge base lookups

Handlers are created via constructor functions:

	registry := handlers.NewSessionRegistry(catalog, store, cfg)
	symptomHandler := handlers.NewSymptomHandler(registry, cfg)

# Sessions

A session is one user's selection. POST /sessions returns a signed token:

	POST /sessions → CreateSession (returns session_token)

Session routes require the X-Session-Token header. The registry keeps one
ranker.Session per session ID and serializes requests for the same
session with a per-session mutex. Selections are persisted under a
"session/<id>/" key prefix in the shared storage, so a valid token reopens
its selection after a restart or after its session was dropped from memory.

The registry is bounded. It holds at most cfg.MaxSessions sessions and,
when full, drops idle sessions and then the least recently used ones.
RunSweeper drops sessions unused for cfg.SessionIdleTimeout in the
background. Sessions with a request in flight are never dropped.

# Selection and Analysis

	GET    /session/symptoms                  → ListSymptoms
	POST   /session/symptoms                  → AddSymptom
	DELETE /session/symptoms                  → ClearSymptoms
	DELETE /session/symptoms/{symptom}        → RemoveSymptom
	PUT    /session/symptoms/{symptom}/days   → SetDaysAgo
	POST   /session/analyze?top=N             → Analyze
	GET    /session/precautions               → GetPrecautions

Input symptoms are normalized before use. Adding a duplicate or an empty
symptom, or removing an absent one, succeeds with "changed": false.
Analyze reports a status of needs_input, no_matches or ok.

# Catalog

	GET /suggest?q=&limit=     → Suggest
	GET /normalize?text=       → Normalize
	GET /conditions            → ListConditions
	GET /conditions/{name}     → GetCondition
	GET /vocabulary            → GetVocabulary
	GET /precautions/{symptom} → GetPrecautions
*/
package handlers
