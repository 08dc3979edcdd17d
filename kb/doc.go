// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package kb holds the static knowledge base: conditions with their symptom
sets and onset timings, the synonym table, the display vocabulary and the
precaution texts.

# Loading

The built-in catalog is embedded from data/knowledge.toml:

	k := kb.Default()

An operator can supply a replacement with the same schema:

	k, err := kb.LoadFile("custom.toml")

# Schema

	vocabulary = ["fever", "cough"]

	[synonyms]
	"high temperature" = "fever"

	[[conditions]]
	name = "Common Cold"
	symptoms = ["runny nose", "cough"]
	[conditions.onset]
	"cough" = 2

	[precautions]
	"fever" = ["Drink plenty of water"]

# Validation

Load rejects (with ErrInvalidKnowledgeBase) unparsable TOML, an empty
catalog, unnamed or duplicate conditions, conditions without symptoms, onset
entries for symptoms outside the condition, negative onset days and synonym
tables that would make normalization non-idempotent.

A KnowledgeBase is never mutated after Load; every accessor returns a copy.
*/
package kb
