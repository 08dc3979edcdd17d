// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the symptom ranker API server.

The symptom ranker takes free-text symptoms and returns a ranked list of
plausible conditions from a small static knowledge base. Each condition is
scored by symptom overlap (80%) blended with onset plausibility (20%). It
is an educational demo, not a diagnostic tool.

# Starting the Server

The server requires a session salt via environment or CLI flag:

	SESSION_SALT=change-me go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -session-salt change-me

A .env file in the working directory is loaded first.

# Configuration

Required settings:

  - SESSION_SALT (-session-salt): Secret for session token HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite, postgres or memory (default: sqlite)
  - DATABASE_URL (-d): Connection string (default: symptom-ranker.db for sqlite)
  - KNOWLEDGE_BASE (-kb): TOML file replacing the built-in knowledge base
  - LOG_LEVEL (-log-level): debug, info, warn or error (default: info)
  - DEFAULT_TOP_N (-top): 3, 5 or 10 (default: 5)

# Architecture

The ranking core is a set of small packages:

  - normalize: Symptom text canonicalization and synonyms
  - kb: Embedded knowledge base (conditions, vocabulary, precautions)
  - suggest: Substring completion over the vocabulary
  - selection: Persisted symptom selection
  - scoring: Condition ranking
  - precautions: Per-symptom advice
  - ranker: Session commands tying the core together

The server wraps it with a handler-based architecture:

  - handlers: HTTP request handlers (sessions, symptoms, catalog)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Domain and request/response types
  - auth: Session IDs and signed tokens
  - storage, db: Selection persistence (memory, file, sqlite, postgres)
  - cliparse: Configuration parsing

The console front end lives in cmd/ranker-cli.

See package documentation for each component.
*/
package main
