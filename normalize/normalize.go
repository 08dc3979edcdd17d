// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package normalize

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalizer folds raw symptom text onto canonical tokens.
// It is immutable after construction and safe to share.
type Normalizer struct {
	synonyms map[string]string
}

// New builds a Normalizer from a raw phrase -> canonical symptom table.
// Keys are cleaned before use. Targets must already be clean and must not be
// keys themselves, otherwise Normalize would not be idempotent.
func New(synonyms map[string]string) (*Normalizer, error) {
	table := make(map[string]string, len(synonyms))
	for raw, target := range synonyms {
		key := Clean(raw)
		if key == "" {
			return nil, fmt.Errorf("synonym %q cleans to an empty phrase", raw)
		}
		if target == "" || Clean(target) != target {
			return nil, fmt.Errorf("synonym target %q for %q is not canonical", target, raw)
		}
		if prev, ok := table[key]; ok && prev != target {
			return nil, fmt.Errorf("synonym %q maps to both %q and %q", key, prev, target)
		}
		table[key] = target
	}
	for key, target := range table {
		if _, chained := table[target]; chained {
			return nil, fmt.Errorf("synonym target %q (from %q) is itself a synonym", target, key)
		}
	}
	return &Normalizer{synonyms: table}, nil
}

// Normalize returns the canonical symptom for raw, or "" when raw carries no
// symptom text at all. It never fails.
func (n *Normalizer) Normalize(raw string) string {
	cleaned := Clean(raw)
	if cleaned == "" {
		return ""
	}
	if n != nil {
		if target, ok := n.synonyms[cleaned]; ok {
			return target
		}
	}
	return cleaned
}

// NormalizeAll normalizes each entry, dropping empties and duplicates while
// keeping first-seen order.
func (n *Normalizer) NormalizeAll(raws []string) []string {
	seen := make(map[string]struct{}, len(raws))
	out := make([]string, 0, len(raws))
	for _, raw := range raws {
		s := n.Normalize(raw)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Synonyms returns a copy of the cleaned synonym table.
func (n *Normalizer) Synonyms() map[string]string {
	if n == nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(n.synonyms))
	for k, v := range n.synonyms {
		out[k] = v
	}
	return out
}

// Clean lower-cases raw, replaces everything outside [a-z0-9] and whitespace
// with a space, collapses whitespace runs and trims. No synonym lookup.
func Clean(raw string) string {
	if raw == "" {
		return ""
	}
	folded := strings.ToLower(norm.NFKC.String(raw))
	mapped := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return ' '
	}, folded)
	return strings.Join(strings.Fields(mapped), " ")
}
