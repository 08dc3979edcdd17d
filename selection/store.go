// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package selection

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sort"

	"golang.org/x/exp/constraints"

	"github.com/danielhkuo/symptom-ranker/models"
	"github.com/danielhkuo/symptom-ranker/normalize"
	"github.com/danielhkuo/symptom-ranker/storage"
)

// State is the persisted form of a selection.
type State struct {
	Selected []string       `json:"selected"`
	Timeline map[string]int `json:"timeline"`
}

// Store is the set of symptoms a user has selected, in insertion order,
// with the days-ago values they reported. Every change is written through
// to its storage on a best-effort basis.
//
// A Store is not safe for concurrent use.
type Store struct {
	storage    storage.Storage
	normalizer *normalize.Normalizer

	selected []string
	timeline map[string]int
}

// Open returns a store backed by s, restoring any state previously saved
// under models.StorageKey. Unreadable state is treated as empty.
func Open(s storage.Storage, n *normalize.Normalizer) *Store {
	st := &Store{
		storage:    s,
		normalizer: n,
		timeline:   make(map[string]int),
	}
	if err := st.Load(); err != nil {
		slog.Debug("starting with empty selection", "key", models.StorageKey, "error", err)
	}
	return st
}

// Add normalizes raw and appends it to the selection. It reports false when
// raw normalizes to nothing or is already selected.
func (st *Store) Add(raw string) bool {
	symptom := st.normalizer.Normalize(raw)
	if symptom == "" || st.Contains(symptom) {
		return false
	}
	st.selected = append(st.selected, symptom)
	st.persist()
	return true
}

// Remove drops the symptom and its days-ago value.
func (st *Store) Remove(symptom string) bool {
	symptom = st.normalizer.Normalize(symptom)
	i := slices.Index(st.selected, symptom)
	if i < 0 {
		return false
	}
	st.selected = slices.Delete(st.selected, i, i+1)
	delete(st.timeline, symptom)
	st.persist()
	return true
}

// Clear empties the selection. It always persists.
func (st *Store) Clear() {
	st.selected = nil
	st.timeline = make(map[string]int)
	st.persist()
}

// SetDaysAgo records when a selected symptom started. Negative values are
// clamped to 0. Symptoms that are not selected are ignored.
func (st *Store) SetDaysAgo(symptom string, days int) bool {
	symptom = st.normalizer.Normalize(symptom)
	if !st.Contains(symptom) {
		return false
	}
	days = atLeast(days, 0)
	if prev, ok := st.timeline[symptom]; ok && prev == days {
		return false
	}
	st.timeline[symptom] = days
	st.persist()
	return true
}

// List returns the selection in insertion order.
func (st *Store) List() []models.SelectedSymptom {
	out := make([]models.SelectedSymptom, 0, len(st.selected))
	for _, s := range st.selected {
		days, reported := st.timeline[s]
		out = append(out, models.SelectedSymptom{
			Symptom:  s,
			DaysAgo:  days,
			Reported: reported,
		})
	}
	return out
}

// Contains reports whether the normalized symptom is selected.
func (st *Store) Contains(symptom string) bool {
	return slices.Contains(st.selected, symptom)
}

// Len returns the number of selected symptoms.
func (st *Store) Len() int {
	return len(st.selected)
}

// State returns a copy of the state as it would be persisted.
func (st *Store) State() State {
	state := State{
		Selected: slices.Clone(st.selected),
		Timeline: make(map[string]int, len(st.timeline)),
	}
	if state.Selected == nil {
		state.Selected = []string{}
	}
	for k, v := range st.timeline {
		state.Timeline[k] = v
	}
	return state
}

// Save writes the full state under models.StorageKey.
func (st *Store) Save() error {
	data, err := json.Marshal(st.State())
	if err != nil {
		return fmt.Errorf("failed to encode selection: %w", err)
	}
	if err := st.storage.SetItem(models.StorageKey, string(data)); err != nil {
		return fmt.Errorf("failed to save selection: %w", err)
	}
	return nil
}

// Load replaces the in-memory state with the persisted one. On error the
// store is left empty.
func (st *Store) Load() error {
	st.selected = nil
	st.timeline = make(map[string]int)

	raw, found, err := st.storage.GetItem(models.StorageKey)
	if err != nil {
		return fmt.Errorf("failed to read selection: %w", err)
	}
	if !found {
		return nil
	}

	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return fmt.Errorf("failed to decode selection: %w", err)
	}
	st.restore(state)
	return nil
}

// restore sanitizes a decoded state: entries are normalized, empties and
// duplicates dropped, negative days clamped, and timeline entries for
// unselected symptoms discarded.
func (st *Store) restore(state State) {
	st.selected = st.normalizer.NormalizeAll(state.Selected)

	keys := make([]string, 0, len(state.Timeline))
	for k := range state.Timeline {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		symptom := st.normalizer.Normalize(k)
		if !st.Contains(symptom) {
			continue
		}
		if _, dup := st.timeline[symptom]; dup {
			continue
		}
		st.timeline[symptom] = atLeast(state.Timeline[k], 0)
	}
}

func (st *Store) persist() {
	if err := st.Save(); err != nil {
		slog.Warn("selection not persisted", "key", models.StorageKey, "error", err)
	}
}

func atLeast[T constraints.Integer](v, lo T) T {
	if v < lo {
		return lo
	}
	return v
}
