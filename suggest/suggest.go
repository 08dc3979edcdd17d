// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package suggest

import (
	"slices"
	"strings"

	"github.com/danielhkuo/symptom-ranker/models"
)

// Index answers autocomplete queries against a fixed vocabulary.
type Index struct {
	vocabulary []string
	lowered    []string
}

// NewIndex builds an index over vocabulary, keeping its order.
func NewIndex(vocabulary []string) *Index {
	lowered := make([]string, len(vocabulary))
	for i, s := range vocabulary {
		lowered[i] = strings.ToLower(s)
	}
	return &Index{vocabulary: slices.Clone(vocabulary), lowered: lowered}
}

// Suggest returns up to limit vocabulary entries containing query,
// case-insensitively, in vocabulary order. A blank query yields an empty
// slice. A non-positive limit means DefaultSuggestLimit.
func (idx *Index) Suggest(query string, limit int) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []string{}
	}
	if limit <= 0 {
		limit = models.DefaultSuggestLimit
	}

	out := make([]string, 0, min(limit, len(idx.vocabulary)))
	for i, s := range idx.lowered {
		if len(out) == limit {
			break
		}
		if strings.Contains(s, q) {
			out = append(out, idx.vocabulary[i])
		}
	}
	return out
}

// Len returns the vocabulary size.
func (idx *Index) Len() int {
	return len(idx.vocabulary)
}
