// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start at debug level (method, path, remote client IP) and
completion at info level (status, duration_ms).

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(cfg.AllowedOrigins, mux),
	}

An empty allowlist answers any origin with "*". Otherwise only listed
origins are echoed back. Allows methods GET, POST, PUT, DELETE, OPTIONS
with headers Content-Type and X-Session-Token; credentials are not
allowed. Preflight requests get 204 No Content.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.AddSymptomRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used for request logs and, hashed, for session creation logs.

# Body Limits

ParseJSONBody rejects bodies larger than MaxBodyBytes (1 MiB).
*/
package middleware
