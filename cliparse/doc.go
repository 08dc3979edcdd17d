// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: sqlite, postgres or memory (default: sqlite)
  - DatabaseURL: Connection string (default for sqlite: symptom-ranker.db)
  - SessionSalt: Secret for session token HMAC (required)
  - KnowledgeBasePath: TOML knowledge base replacing the built-in one
  - LogLevel: Minimum slog level (default: info)
  - DefaultTopN: Ranked conditions when a request names none (3, 5 or 10; default 5)

# CLI Flags

	-p             Server port
	-t             Database type
	-d             Database URL
	-kb            Knowledge base file
	-log-level     Log level
	-top           Default top N
	-session-salt  Session token salt

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_TYPE  → -t
	DATABASE_URL   → -d
	KNOWLEDGE_BASE → -kb
	LOG_LEVEL      → -log-level
	DEFAULT_TOP_N  → -top
	SESSION_SALT   → -session-salt

CLI flags take precedence over environment variables. LoadEnvFiles reads
a .env file first (github.com/joho/godotenv) without overriding variables
already set in the environment.

# Validation

ParseFlags returns an error if:

  - SESSION_SALT is missing
  - DATABASE_URL is missing for postgres
  - the database type, port or log level is invalid

An unsupported top N silently falls back to 5.

# Example

	// In main.go
	if err := cliparse.LoadEnvFiles(); err != nil {
		log.Fatal(err)
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
*/
package cliparse
