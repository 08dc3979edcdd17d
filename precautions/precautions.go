// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package precautions

import (
	"slices"

	"github.com/danielhkuo/symptom-ranker/models"
)

// Fallback is returned for symptoms without specific advice.
const Fallback = "No specific precaution available. Consult a physician if concerned."

// Lookup maps canonical symptoms to advisory texts.
type Lookup struct {
	table map[string][]string
}

// NewLookup wraps a symptom -> precautions table. The table is copied.
func NewLookup(table map[string][]string) *Lookup {
	copied := make(map[string][]string, len(table))
	for s, tips := range table {
		if len(tips) == 0 {
			continue
		}
		copied[s] = slices.Clone(tips)
	}
	return &Lookup{table: copied}
}

// For returns the precautions for symptom, or a single fallback notice.
func (l *Lookup) For(symptom string) []string {
	if tips, ok := l.table[symptom]; ok {
		return slices.Clone(tips)
	}
	return []string{Fallback}
}

// Has reports whether symptom has specific advice.
func (l *Lookup) Has(symptom string) bool {
	_, ok := l.table[symptom]
	return ok
}

// ForSelection groups precautions per selected symptom, in selection order.
func (l *Lookup) ForSelection(selection []models.SelectedSymptom) []models.PrecautionGroup {
	groups := make([]models.PrecautionGroup, 0, len(selection))
	for _, sel := range selection {
		groups = append(groups, models.PrecautionGroup{
			Symptom:     sel.Symptom,
			Precautions: l.For(sel.Symptom),
		})
	}
	return groups
}
