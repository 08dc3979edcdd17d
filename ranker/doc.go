// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package ranker connects the symptom ranking core to its front ends.
//
// A Catalog holds the lookups derived from one knowledge base and is
// shared by all sessions. A Session owns one persisted selection and
// exposes the commands a front end issues: add, remove, set days-ago,
// clear, query for suggestions, and analyze. Both the HTTP handlers and
// the console program are thin layers over these commands.
package ranker
