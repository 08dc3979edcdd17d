// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package suggest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/danielhkuo/symptom-ranker/kb"
)

func TestSuggestDefaultVocabulary(t *testing.T) {
	idx := NewIndex(kb.Default().Vocabulary())

	got := idx.Suggest("nas", 8)
	assert.Contains(t, got, "nasal congestion")
	for _, s := range got {
		assert.Contains(t, s, "nas")
	}
}

func TestSuggestPreservesVocabularyOrder(t *testing.T) {
	idx := NewIndex(kb.Default().Vocabulary())

	assert.Equal(t, []string{"fever", "fever with chills", "mild fever"}, idx.Suggest("fever", 8))
	assert.Equal(t, []string{"fever with chills", "chills"}, idx.Suggest("chills", 8))
}

func TestSuggestCaseInsensitive(t *testing.T) {
	idx := NewIndex([]string{"Sore Throat", "cough"})
	assert.Equal(t, []string{"Sore Throat"}, idx.Suggest("  THROAT ", 8))
}

func TestSuggestLimit(t *testing.T) {
	idx := NewIndex(kb.Default().Vocabulary())

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"explicit", 2, 2},
		{"default when zero", 0, 8},
		{"default when negative", -3, 8},
		{"larger than matches", 100, countContaining(kb.Default().Vocabulary(), "e")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, idx.Suggest("e", tt.limit), tt.want)
		})
	}
}

func TestSuggestEmptyQuery(t *testing.T) {
	idx := NewIndex(kb.Default().Vocabulary())

	for _, q := range []string{"", "   ", "\t"} {
		got := idx.Suggest(q, 8)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
	assert.Empty(t, idx.Suggest("zzz", 8))
}

func countContaining(vocab []string, sub string) int {
	n := 0
	for _, s := range vocab {
		if strings.Contains(s, sub) {
			n++
		}
	}
	return n
}
