// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the symptom ranker API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	registry := handlers.NewSessionRegistry(catalog, store, cfg)
	mux := router.NewRouter(catalog, registry, cfg)

# Endpoints

Health:

	GET /health

Sessions:

	POST /sessions - Create session (returns session_token)

Selection and analysis (requires X-Session-Token):

	GET    /session/symptoms                - List selection
	POST   /session/symptoms                - Add symptom
	DELETE /session/symptoms                - Clear selection
	DELETE /session/symptoms/{symptom}      - Remove symptom
	PUT    /session/symptoms/{symptom}/days - Set days since onset
	POST   /session/analyze?top=N           - Rank conditions
	GET    /session/precautions             - Advice for the selection

Catalog (public):

	GET /suggest?q=&limit=     - Symptom completions
	GET /normalize?text=       - Canonical symptom for free text
	GET /conditions            - All conditions
	GET /conditions/{name}     - One condition
	GET /vocabulary            - Known symptoms
	GET /precautions/{symptom} - Advice for one symptom

# Handler Initialization

The router creates handler instances with dependency injection:

	sessionHandler := handlers.NewSessionHandler(registry, cfg)
	symptomHandler := handlers.NewSymptomHandler(registry, cfg)
	catalogHandler := handlers.NewCatalogHandler(catalog)

All session handlers share the registry passed in by the caller, which
also owns its idle sweeper.
*/
package router
