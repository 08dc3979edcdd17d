// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Analysis status constants
const (
	StatusNeedsInput = "needs_input"
	StatusNoMatches  = "no_matches"
	StatusOK         = "ok"
)

// Scoring constants
const (
	DefaultTopN         = 5
	DefaultSuggestLimit = 8
	StorageKey          = "symptom-ranker-state-v1"
)

// Request types

type AddSymptomRequest struct {
	Symptom string `json:"symptom"`
}

// SetDaysAgoRequest uses a pointer so a missing days_ago can be told apart
// from an explicit 0.
type SetDaysAgoRequest struct {
	DaysAgo *int `json:"days_ago"`
}

// Response types

type CreateSessionResponse struct {
	SessionToken string `json:"session_token"`
}

type SelectionResponse struct {
	Changed  bool              `json:"changed"`
	Selected []SelectedSymptom `json:"selected"`
}

type SuggestResponse struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

type NormalizeResponse struct {
	Input   string `json:"input"`
	Symptom string `json:"symptom"`
}

type ConditionInfo struct {
	Name     string         `json:"name"`
	Symptoms []string       `json:"symptoms"`
	Onset    map[string]int `json:"onset"`
}

type VocabularyResponse struct {
	Symptoms []string `json:"symptoms"`
}

// Domain types

// SelectedSymptom is one entry of a session's selection. Reported is false
// until the user sets DaysAgo explicitly; unreported entries are scored as if
// they matched each condition's expected onset.
type SelectedSymptom struct {
	Symptom  string `json:"symptom"`
	DaysAgo  int    `json:"days_ago"`
	Reported bool   `json:"reported"`
}

type MatchResult struct {
	Condition            string   `json:"condition"`
	MatchCount           int      `json:"match_count"`
	TotalSymptoms        int      `json:"total_symptoms"`
	ConfidencePercent    float64  `json:"confidence_percent"`
	TimelineScorePercent float64  `json:"timeline_score_percent"`
	FinalScorePercent    float64  `json:"final_score_percent"`
	MissingSymptoms      []string `json:"missing_symptoms"`
}

type PrecautionGroup struct {
	Symptom     string   `json:"symptom"`
	Precautions []string `json:"precautions"`
}

// Analysis is what the presentation layer renders after an analyze request.
type Analysis struct {
	Status      string            `json:"status"`
	TopN        int               `json:"top_n"`
	Results     []MatchResult     `json:"results"`
	Precautions []PrecautionGroup `json:"precautions"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
