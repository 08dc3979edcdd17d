// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/danielhkuo/symptom-ranker/kb"
	"github.com/danielhkuo/symptom-ranker/models"
)

// Blend weights for the final score.
const (
	ConfidenceWeight = 0.8
	TimelineWeight   = 0.2

	// OnsetTolerance is how many days a reported onset may differ from the
	// expected one and still count as a timeline match.
	OnsetTolerance = 1
)

// AllowedTopN lists the result counts a presentation layer may offer.
var AllowedTopN = []int{3, 5, 10}

// Catalog is the part of the knowledge base the engine reads.
type Catalog interface {
	Conditions() []kb.Condition
}

// Engine ranks catalog conditions against a symptom selection.
type Engine struct {
	catalog Catalog
}

// NewEngine creates an engine over catalog.
func NewEngine(catalog Catalog) *Engine {
	return &Engine{catalog: catalog}
}

// Analyze scores every condition that shares at least one symptom with
// selection and returns the topN best, highest final score first. Ties keep
// catalog order. A non-positive topN means DefaultTopN.
//
// Symptoms without a reported onset are assumed to match each condition's
// expected onset exactly, which favours unannotated selections.
func (e *Engine) Analyze(selection []models.SelectedSymptom, topN int) []models.MatchResult {
	results := []models.MatchResult{}
	if len(selection) == 0 {
		return results
	}
	if topN <= 0 {
		topN = models.DefaultTopN
	}

	selected, reported := indexSelection(selection)

	for _, cond := range e.catalog.Conditions() {
		result, ok := scoreCondition(cond, selected, reported)
		if !ok {
			continue
		}
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].FinalScorePercent > results[j].FinalScorePercent
	})

	if len(results) > topN {
		results = results[:topN]
	}
	return results
}

// indexSelection collapses duplicate symptoms (first entry wins) and returns
// the ordered symptom list plus the explicitly reported onsets.
func indexSelection(selection []models.SelectedSymptom) ([]string, map[string]int) {
	seen := make(map[string]struct{}, len(selection))
	selected := make([]string, 0, len(selection))
	reported := make(map[string]int, len(selection))

	for _, sel := range selection {
		if sel.Symptom == "" {
			continue
		}
		if _, dup := seen[sel.Symptom]; dup {
			continue
		}
		seen[sel.Symptom] = struct{}{}
		selected = append(selected, sel.Symptom)
		if sel.Reported {
			reported[sel.Symptom] = sel.DaysAgo
		}
	}
	return selected, reported
}

// scoreCondition returns false when the condition shares no symptom with
// the selection. That exclusion holds whatever the score would be.
func scoreCondition(cond kb.Condition, selected []string, reported map[string]int) (models.MatchResult, bool) {
	total := len(cond.Symptoms)
	if total == 0 {
		return models.MatchResult{}, false
	}

	// 1. Matches, in selection order
	matches := make([]string, 0, len(selected))
	for _, s := range selected {
		if cond.HasSymptom(s) {
			matches = append(matches, s)
		}
	}
	if len(matches) == 0 {
		return models.MatchResult{}, false
	}

	// 2. Missing, in declared order
	inSelection := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		inSelection[s] = struct{}{}
	}
	missing := make([]string, 0, total)
	for _, s := range cond.Symptoms {
		if _, ok := inSelection[s]; !ok {
			missing = append(missing, s)
		}
	}

	// 3. Symptom overlap
	confidence := float64(len(matches)) / float64(total) * 100

	// 4-5. Onset plausibility over matched symptoms that declare an onset
	var timelineMatches, timelinePossible int
	for _, s := range matches {
		expected, ok := cond.ExpectedOnset(s)
		if !ok {
			continue
		}
		timelinePossible++
		actual, ok := reported[s]
		if !ok {
			actual = expected
		}
		if abs(actual-expected) <= OnsetTolerance {
			timelineMatches++
		}
	}
	timelineScore := 0.0
	if timelinePossible > 0 {
		timelineScore = float64(timelineMatches) / float64(timelinePossible) * 100
	}

	// 6. Blend
	finalScore := confidence*ConfidenceWeight + timelineScore*TimelineWeight

	// 7. Round
	return models.MatchResult{
		Condition:            cond.Name,
		MatchCount:           len(matches),
		TotalSymptoms:        total,
		ConfidencePercent:    Round1(confidence),
		TimelineScorePercent: Round1(timelineScore),
		FinalScorePercent:    Round1(finalScore),
		MissingSymptoms:      missing,
	}, true
}

// Round1 rounds v to one decimal place, halves rounding up.
func Round1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

// ParseTopN turns presentation input into a result count. Anything other
// than one of AllowedTopN falls back to DefaultTopN.
func ParseTopN(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return models.DefaultTopN
	}
	for _, allowed := range AllowedTopN {
		if n == allowed {
			return n
		}
	}
	return models.DefaultTopN
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
