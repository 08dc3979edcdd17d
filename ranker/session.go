// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ranker

import (
	"github.com/danielhkuo/symptom-ranker/kb"
	"github.com/danielhkuo/symptom-ranker/models"
	"github.com/danielhkuo/symptom-ranker/normalize"
	"github.com/danielhkuo/symptom-ranker/precautions"
	"github.com/danielhkuo/symptom-ranker/scoring"
	"github.com/danielhkuo/symptom-ranker/selection"
	"github.com/danielhkuo/symptom-ranker/storage"
	"github.com/danielhkuo/symptom-ranker/suggest"
)

// Catalog bundles the read-only lookups shared by every session built on
// one knowledge base.
type Catalog struct {
	KB          *kb.KnowledgeBase
	Engine      *scoring.Engine
	Index       *suggest.Index
	Precautions *precautions.Lookup
}

// NewCatalog builds the shared lookups for k.
func NewCatalog(k *kb.KnowledgeBase) *Catalog {
	return &Catalog{
		KB:          k,
		Engine:      scoring.NewEngine(k),
		Index:       suggest.NewIndex(k.Vocabulary()),
		Precautions: precautions.NewLookup(k.Precautions()),
	}
}

// Normalizer returns the knowledge base's symptom normalizer.
func (c *Catalog) Normalizer() *normalize.Normalizer {
	return c.KB.Normalizer()
}

// Session is the command surface a presentation layer drives. It is not
// safe for concurrent use; callers serialize commands per session.
type Session struct {
	catalog *Catalog
	store   *selection.Store
}

// NewSession opens the selection persisted in s.
func NewSession(c *Catalog, s storage.Storage) *Session {
	return &Session{
		catalog: c,
		store:   selection.Open(s, c.Normalizer()),
	}
}

// OnAddSymptom adds raw to the selection and reports whether it changed.
func (s *Session) OnAddSymptom(raw string) bool {
	return s.store.Add(raw)
}

// OnRemoveSymptom drops a symptom and its onset.
func (s *Session) OnRemoveSymptom(symptom string) bool {
	return s.store.Remove(symptom)
}

// OnSetDaysAgo records how many days ago a selected symptom started.
func (s *Session) OnSetDaysAgo(symptom string, days int) bool {
	return s.store.SetDaysAgo(symptom, days)
}

// OnClear empties the selection.
func (s *Session) OnClear() {
	s.store.Clear()
}

// OnQueryChanged returns completions for a partially typed symptom.
func (s *Session) OnQueryChanged(query string) []string {
	return s.catalog.Index.Suggest(query, models.DefaultSuggestLimit)
}

// OnAnalyzeRequested ranks the current selection. The status tells the
// caller whether to prompt for input, report no matches, or render results.
func (s *Session) OnAnalyzeRequested(topN int) models.Analysis {
	if topN <= 0 {
		topN = models.DefaultTopN
	}
	selected := s.store.List()

	analysis := models.Analysis{
		TopN:        topN,
		Results:     []models.MatchResult{},
		Precautions: []models.PrecautionGroup{},
	}
	if len(selected) == 0 {
		analysis.Status = models.StatusNeedsInput
		return analysis
	}

	analysis.Results = s.catalog.Engine.Analyze(selected, topN)
	analysis.Precautions = s.catalog.Precautions.ForSelection(selected)
	if len(analysis.Results) == 0 {
		analysis.Status = models.StatusNoMatches
	} else {
		analysis.Status = models.StatusOK
	}
	return analysis
}

// Selected lists the selection in insertion order.
func (s *Session) Selected() []models.SelectedSymptom {
	return s.store.List()
}

// Precautions returns the advice for each selected symptom.
func (s *Session) Precautions() []models.PrecautionGroup {
	return s.catalog.Precautions.ForSelection(s.store.List())
}

// State exposes the persisted form of the selection.
func (s *Session) State() selection.State {
	return s.store.State()
}
