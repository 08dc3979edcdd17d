// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package normalize canonicalizes free-text symptom input.

# Cleaning

Clean applies NFKC compatibility folding, lower-cases, replaces every
character outside [a-z0-9] with a space, collapses whitespace and trims:

	normalize.Clean("  Sore-Throat!! ") // "sore throat"
	normalize.Clean("ＦＥＶＥＲ")         // "fever"

# Synonym Folding

A Normalizer adds a synonym lookup on top of Clean:

	n, _ := normalize.New(map[string]string{"high temperature": "fever"})
	n.Normalize("High temperature") // "fever"
	n.Normalize("?!")               // ""

An empty result means "no symptom"; callers discard it.

Normalize is idempotent: New rejects synonym targets that are not clean or
that are themselves synonym keys.
*/
package normalize
