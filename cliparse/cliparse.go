// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/symptom-ranker/scoring"
)

// Database types
const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
	DatabaseMemory   = "memory"
)

const (
	DefaultPort      = 3318
	DefaultSQLiteURL = "symptom-ranker.db"

	// Server session registry bounds
	DefaultMaxSessions        = 10000
	DefaultSessionIdleTimeout = 30 * time.Minute
)

// Config holds the server settings resolved from flags and environment
type Config struct {
	Port              int
	DatabaseType      string
	DatabaseURL       string
	SessionSalt       string
	KnowledgeBasePath string
	LogLevel          slog.Level
	DefaultTopN       int

	// MaxSessions caps the sessions held in memory by the server
	MaxSessions        int
	// SessionIdleTimeout is how long an unused session stays in memory
	SessionIdleTimeout time.Duration
	// AllowedOrigins lists the browser origins allowed by CORS; empty allows any
	AllowedOrigins     []string
}

// LoadEnvFiles loads variables from .env files into the environment.
// Missing files are skipped; variables already set are not overridden.
func LoadEnvFiles(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var logLevel, topN, origins string

	fs := flag.NewFlagSet("symptom-ranker", flag.ContinueOnError)

	// Network and storage config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite, postgres or memory)")
	fs.StringVar(&cfg.KnowledgeBasePath, "kb", "", "Knowledge base TOML file (default: built-in)")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&topN, "top", "", "Default number of ranked conditions (3, 5 or 10)")
	fs.IntVar(&cfg.MaxSessions, "max-sessions", 0, "Sessions held in memory before the least recently used is dropped")
	fs.StringVar(&origins, "cors-origins", "", "Comma-separated browser origins allowed to call the API (default: any)")
	fs.DurationVar(&cfg.SessionIdleTimeout, "session-idle", 0, "Drop sessions from memory after this long unused")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SessionSalt, "session-salt", "", "Session token salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("port %d out of range", cfg.Port)
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseSQLite
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	switch cfg.DatabaseType {
	case DatabaseSQLite:
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = DefaultSQLiteURL
		}
	case DatabasePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
	case DatabaseMemory:
	default:
		return Config{}, fmt.Errorf("unknown database type %q", cfg.DatabaseType)
	}

	if cfg.KnowledgeBasePath == "" {
		cfg.KnowledgeBasePath = os.Getenv("KNOWLEDGE_BASE")
	}

	if logLevel == "" {
		logLevel = os.Getenv("LOG_LEVEL")
	}
	if logLevel != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
			return Config{}, fmt.Errorf("invalid log level %q", logLevel)
		}
	}

	if topN == "" {
		topN = os.Getenv("DEFAULT_TOP_N")
	}
	cfg.DefaultTopN = scoring.ParseTopN(topN)

	if cfg.MaxSessions == 0 {
		if v := os.Getenv("MAX_SESSIONS"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return Config{}, errors.New("invalid MAX_SESSIONS env variable")
			}
			cfg.MaxSessions = n
		} else {
			cfg.MaxSessions = DefaultMaxSessions
		}
	}
	if cfg.MaxSessions <= 0 {
		return Config{}, fmt.Errorf("max sessions must be positive, got %d", cfg.MaxSessions)
	}

	if cfg.SessionIdleTimeout == 0 {
		if v := os.Getenv("SESSION_IDLE_TIMEOUT"); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return Config{}, errors.New("invalid SESSION_IDLE_TIMEOUT env variable")
			}
			cfg.SessionIdleTimeout = d
		} else {
			cfg.SessionIdleTimeout = DefaultSessionIdleTimeout
		}
	}
	if cfg.SessionIdleTimeout <= 0 {
		return Config{}, fmt.Errorf("session idle timeout must be positive, got %s", cfg.SessionIdleTimeout)
	}

	if origins == "" {
		origins = os.Getenv("CORS_ORIGINS")
	}
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	// Secrets - MUST be provided
	if cfg.SessionSalt == "" {
		cfg.SessionSalt = os.Getenv("SESSION_SALT")
	}
	if cfg.SessionSalt == "" {
		return Config{}, errors.New("SESSION_SALT required")
	}

	return cfg, nil
}
