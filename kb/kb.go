// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package kb

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/danielhkuo/symptom-ranker/normalize"
)

// ErrInvalidKnowledgeBase wraps every validation failure reported by Load.
var ErrInvalidKnowledgeBase = errors.New("invalid knowledge base")

//go:embed data/knowledge.toml
var defaultData []byte

// document mirrors the TOML resource layout.
type document struct {
	Vocabulary  []string            `toml:"vocabulary"`
	Synonyms    map[string]string   `toml:"synonyms"`
	Conditions  []conditionDocument `toml:"conditions"`
	Precautions map[string][]string `toml:"precautions"`
}

type conditionDocument struct {
	Name     string         `toml:"name"`
	Symptoms []string       `toml:"symptoms"`
	Onset    map[string]int `toml:"onset"`
}

// Condition is a catalog entry. Symptoms keeps declaration order; Onset maps
// a subset of Symptoms to the expected days since onset.
type Condition struct {
	Name     string
	Symptoms []string
	Onset    map[string]int
}

// HasSymptom reports whether s belongs to the condition's symptom set.
func (c Condition) HasSymptom(s string) bool {
	return slices.Contains(c.Symptoms, s)
}

// ExpectedOnset returns the expected days-since-onset for s, if declared.
func (c Condition) ExpectedOnset(s string) (int, bool) {
	days, ok := c.Onset[s]
	return days, ok
}

func (c Condition) clone() Condition {
	onset := make(map[string]int, len(c.Onset))
	for k, v := range c.Onset {
		onset[k] = v
	}
	return Condition{
		Name:     c.Name,
		Symptoms: slices.Clone(c.Symptoms),
		Onset:    onset,
	}
}

// KnowledgeBase is the read-only catalog consulted by the scoring engine,
// the suggestion index and the precaution lookup.
type KnowledgeBase struct {
	normalizer  *normalize.Normalizer
	conditions  []Condition
	vocabulary  []string
	precautions map[string][]string
}

var loadDefault = sync.OnceValues(func() (*KnowledgeBase, error) {
	return Load(defaultData)
})

// Default returns the built-in knowledge base. It panics if the embedded
// resource is invalid, which the package tests rule out.
func Default() *KnowledgeBase {
	k, err := loadDefault()
	if err != nil {
		panic(fmt.Sprintf("kb: embedded knowledge base: %v", err))
	}
	return k
}

// LoadFile reads and validates a knowledge base from a TOML file.
func LoadFile(path string) (*KnowledgeBase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge base '%s': %w", path, err)
	}
	return Load(data)
}

// Load decodes and validates a TOML knowledge base.
func Load(data []byte) (*KnowledgeBase, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: failed to parse TOML: %v", ErrInvalidKnowledgeBase, err)
	}

	n, err := normalize.New(doc.Synonyms)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKnowledgeBase, err)
	}

	if len(doc.Conditions) == 0 {
		return nil, fmt.Errorf("%w: no conditions defined", ErrInvalidKnowledgeBase)
	}

	k := &KnowledgeBase{
		normalizer:  n,
		conditions:  make([]Condition, 0, len(doc.Conditions)),
		precautions: make(map[string][]string, len(doc.Precautions)),
	}

	names := make(map[string]struct{}, len(doc.Conditions))
	for i, cd := range doc.Conditions {
		cond, err := buildCondition(n, cd)
		if err != nil {
			return nil, fmt.Errorf("%w: condition #%d: %v", ErrInvalidKnowledgeBase, i+1, err)
		}
		if _, dup := names[cond.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate condition %q", ErrInvalidKnowledgeBase, cond.Name)
		}
		names[cond.Name] = struct{}{}
		k.conditions = append(k.conditions, cond)
	}

	k.vocabulary = n.NormalizeAll(doc.Vocabulary)
	seen := make(map[string]struct{}, len(k.vocabulary))
	for _, s := range k.vocabulary {
		seen[s] = struct{}{}
	}
	for _, c := range k.conditions {
		for _, s := range c.Symptoms {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			k.vocabulary = append(k.vocabulary, s)
		}
	}

	for raw, tips := range doc.Precautions {
		s := n.Normalize(raw)
		if s == "" {
			return nil, fmt.Errorf("%w: precaution key %q is empty after normalization", ErrInvalidKnowledgeBase, raw)
		}
		if len(tips) == 0 {
			continue
		}
		k.precautions[s] = append(k.precautions[s], tips...)
	}

	return k, nil
}

func buildCondition(n *normalize.Normalizer, cd conditionDocument) (Condition, error) {
	if cd.Name == "" {
		return Condition{}, errors.New("missing name")
	}
	symptoms := n.NormalizeAll(cd.Symptoms)
	if len(symptoms) == 0 {
		return Condition{}, fmt.Errorf("%q has no symptoms", cd.Name)
	}

	onset := make(map[string]int, len(cd.Onset))
	for raw, days := range cd.Onset {
		s := n.Normalize(raw)
		if !slices.Contains(symptoms, s) {
			return Condition{}, fmt.Errorf("%q declares onset for unknown symptom %q", cd.Name, raw)
		}
		if days < 0 {
			return Condition{}, fmt.Errorf("%q has negative onset for %q", cd.Name, raw)
		}
		onset[s] = days
	}

	return Condition{Name: cd.Name, Symptoms: symptoms, Onset: onset}, nil
}

// Normalizer returns the normalizer built from the synonym table.
func (k *KnowledgeBase) Normalizer() *normalize.Normalizer {
	return k.normalizer
}

// Conditions returns the catalog in declaration order.
func (k *KnowledgeBase) Conditions() []Condition {
	out := make([]Condition, len(k.conditions))
	for i, c := range k.conditions {
		out[i] = c.clone()
	}
	return out
}

// Condition looks up a condition by name.
func (k *KnowledgeBase) Condition(name string) (Condition, bool) {
	for _, c := range k.conditions {
		if c.Name == name {
			return c.clone(), true
		}
	}
	return Condition{}, false
}

// Vocabulary returns the known symptoms: the display list first, then any
// condition symptom it lacks, in catalog order.
func (k *KnowledgeBase) Vocabulary() []string {
	return slices.Clone(k.vocabulary)
}

// Synonyms returns the cleaned synonym table.
func (k *KnowledgeBase) Synonyms() map[string]string {
	return k.normalizer.Synonyms()
}

// Precautions returns the advisory table keyed by canonical symptom.
func (k *KnowledgeBase) Precautions() map[string][]string {
	out := make(map[string][]string, len(k.precautions))
	for s, tips := range k.precautions {
		out[s] = slices.Clone(tips)
	}
	return out
}
