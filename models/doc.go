// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types shared by the
core packages and the HTTP API.

# Request Types

Types for parsing incoming JSON:

  - AddSymptomRequest: symptom (free text)
  - SetDaysAgoRequest: days_ago

# Response Types

Types for JSON responses:

  - CreateSessionResponse: session_token
  - SelectionResponse: changed, selected
  - SuggestResponse: query, suggestions
  - NormalizeResponse: input, symptom
  - ConditionInfo: name, symptoms, onset
  - VocabularyResponse: symptoms
  - ErrorResponse: error, message

# Domain Types

  - SelectedSymptom: a selected symptom with its reported onset
  - MatchResult: scoring output for one condition
  - PrecautionGroup: advisory texts for one symptom
  - Analysis: ranked results plus precautions and a display status

# Constants

Analysis status:

	StatusNeedsInput = "needs_input" // selection is empty
	StatusNoMatches  = "no_matches"  // nothing overlaps the selection
	StatusOK         = "ok"

Defaults:

	DefaultTopN         = 5
	DefaultSuggestLimit = 8
	StorageKey          = "symptom-ranker-state-v1"
*/
package models
