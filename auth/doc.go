// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides session identifiers and signed session tokens.

# Session IDs

Every HTTP client works in its own session, identified by a random UUID:

	id := auth.NewSessionID()

The ID also namespaces the session's persisted selection in storage.

# Session Tokens

Tokens use HMAC-SHA256 to bind a session ID to the server's salt:

	token := auth.SignSession(id, salt)
	id, err := auth.ValidateSessionToken(token, salt)

A token has the form "<uuid>.<signature>", with the signature URL-safe
base64 encoded without padding. Since it's deterministic, validation needs
no server-side token table, and a forged or truncated token fails with
ErrInvalidToken.

# IP Hashing

For privacy-preserving request logs:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
