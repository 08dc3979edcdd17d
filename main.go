// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/symptom-ranker/cliparse"
	"github.com/danielhkuo/symptom-ranker/db"
	"github.com/danielhkuo/symptom-ranker/handlers"
	"github.com/danielhkuo/symptom-ranker/kb"
	"github.com/danielhkuo/symptom-ranker/middleware"
	"github.com/danielhkuo/symptom-ranker/ranker"
	"github.com/danielhkuo/symptom-ranker/router"
	"github.com/danielhkuo/symptom-ranker/storage"
)

func main() {
	var err error

	// Load .env before reading configuration
	if err := cliparse.LoadEnvFiles(); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})))

	// Load knowledge base
	knowledge := kb.Default()
	if cfg.KnowledgeBasePath != "" {
		knowledge, err = kb.LoadFile(cfg.KnowledgeBasePath)
		if err != nil {
			slog.Error("knowledge base load failed", "path", cfg.KnowledgeBasePath, "error", err)
			os.Exit(1)
		}
	}
	slog.Info("Knowledge base ready",
		"conditions", len(knowledge.Conditions()),
		"vocabulary", len(knowledge.Vocabulary()),
	)

	// Open selection storage
	var store storage.Storage
	if cfg.DatabaseType == cliparse.DatabaseMemory {
		store = storage.NewMemory()
		slog.Warn("Using in-memory storage, selections are lost on restart")
	} else {
		// Connect and create schema (tables)
		dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			slog.Error("database setup failed", "type", cfg.DatabaseType, "error", err)
			os.Exit(1)
		}
		defer dbConn.Close()
		store = storage.NewSQL(dbConn)
		slog.Info("Database schema ready", "type", cfg.DatabaseType)
	}

	// Session registry, swept for idle sessions until shutdown
	catalog := ranker.NewCatalog(knowledge)
	registry := handlers.NewSessionRegistry(catalog, store, cfg)
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go registry.RunSweeper(sweepCtx, cfg.SessionIdleTimeout/2)

	// Create router
	mux := router.NewRouter(catalog, registry, cfg)

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(cfg.AllowedOrigins, mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Warn("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
