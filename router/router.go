// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/symptom-ranker/cliparse"
	"github.com/danielhkuo/symptom-ranker/handlers"
	"github.com/danielhkuo/symptom-ranker/middleware"
	"github.com/danielhkuo/symptom-ranker/ranker"
)

// NewRouter registers every endpoint. Session routes share registry.
func NewRouter(catalog *ranker.Catalog, registry *handlers.SessionRegistry, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(registry, cfg)
	symptomHandler := handlers.NewSymptomHandler(registry, cfg)
	catalogHandler := handlers.NewCatalogHandler(catalog)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Sessions
	mux.HandleFunc("POST /sessions", middleware.WithLogging(sessionHandler.CreateSession))

	// Selection and analysis (requires X-Session-Token)
	mux.HandleFunc("GET /session/symptoms", middleware.WithLogging(symptomHandler.ListSymptoms))
	mux.HandleFunc("POST /session/symptoms", middleware.WithLogging(symptomHandler.AddSymptom))
	mux.HandleFunc("DELETE /session/symptoms", middleware.WithLogging(symptomHandler.ClearSymptoms))
	mux.HandleFunc("DELETE /session/symptoms/{symptom}", middleware.WithLogging(symptomHandler.RemoveSymptom))
	mux.HandleFunc("PUT /session/symptoms/{symptom}/days", middleware.WithLogging(symptomHandler.SetDaysAgo))
	mux.HandleFunc("POST /session/analyze", middleware.WithLogging(symptomHandler.Analyze))
	mux.HandleFunc("GET /session/precautions", middleware.WithLogging(symptomHandler.GetPrecautions))

	// Catalog lookups (public)
	mux.HandleFunc("GET /suggest", middleware.WithLogging(catalogHandler.Suggest))
	mux.HandleFunc("GET /normalize", middleware.WithLogging(catalogHandler.Normalize))
	mux.HandleFunc("GET /conditions", middleware.WithLogging(catalogHandler.ListConditions))
	mux.HandleFunc("GET /conditions/{name}", middleware.WithLogging(catalogHandler.GetCondition))
	mux.HandleFunc("GET /vocabulary", middleware.WithLogging(catalogHandler.GetVocabulary))
	mux.HandleFunc("GET /precautions/{symptom}", middleware.WithLogging(catalogHandler.GetPrecautions))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("symptom-ranker API v1"))
	})

	return mux
}
