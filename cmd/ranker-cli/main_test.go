// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/symptom-ranker/models"
)

func runCLI(t *testing.T, args []string, stdin string, interactive bool) (int, string) {
	t.Helper()
	t.Setenv("RANKER_STATE_FILE", "")
	t.Setenv("KNOWLEDGE_BASE", "")

	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr, interactive)
	return code, stdout.String()
}

func TestParseDays(t *testing.T) {
	got, err := parseDays("fever=2, sore throat = 1,")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"fever": 2, "sore throat": 1}, got)

	_, err = parseDays("fever")
	assert.Error(t, err)
	_, err = parseDays("fever=two")
	assert.Error(t, err)

	empty, err := parseDays("")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestParseArgs(t *testing.T) {
	t.Setenv("RANKER_STATE_FILE", "from-env.json")
	t.Setenv("KNOWLEDGE_BASE", "")

	opts, err := parseArgs([]string{"-symptoms", "fever, cough", "-top", "10", "rash"})
	require.NoError(t, err)
	assert.Equal(t, []string{"fever", "cough", "rash"}, opts.Symptoms)
	assert.Equal(t, 10, opts.TopN)
	assert.True(t, opts.TopSet)
	assert.Equal(t, "from-env.json", opts.StatePath)

	opts, err = parseArgs([]string{"-top", "4"})
	require.NoError(t, err)
	assert.Equal(t, 5, opts.TopN)

	opts, err = parseArgs(nil)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultTopN, opts.TopN)
	assert.False(t, opts.TopSet)

	_, err = parseArgs([]string{"-days", "nonsense"})
	assert.Error(t, err)
}

func TestRunWithFlags(t *testing.T) {
	code, out := runCLI(t, []string{"-symptoms", "fever,cough,sore throat", "-top", "3"}, "", false)

	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "Top 3 possible conditions:")
	assert.Contains(t, out, "1st  Influenza (Flu)")
	assert.Contains(t, out, "2nd  Common Cold")
	assert.NotContains(t, out, "Dengue")
	assert.Contains(t, out, "  - fever (onset not reported)")
	assert.Contains(t, out, "    - Gargle warm salt water")
	assert.Contains(t, out, disclaimer)
}

func TestRunWithDays(t *testing.T) {
	code, out := runCLI(t, []string{"-symptoms", "fever,cough,sore throat", "-days", "high temperature=5", "-top", "5"}, "", false)

	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "  - fever (started 5 days ago)")
	assert.Contains(t, out, "47.6%")
}

func TestRunReadsSymptomsFromStdin(t *testing.T) {
	code, out := runCLI(t, nil, "sneezing, itchy eyes\n", false)

	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "1st  Allergic Rhinitis")
	// No prompts are printed when stdin is not a terminal
	assert.NotContains(t, out, "Enter your symptoms")
}

func TestRunInteractive(t *testing.T) {
	stdin := strings.Join([]string{
		"Fever, Stomach Pain, vomiting", // symptoms
		"1",                             // fever
		"",                              // abdominal pain, skipped
		"soon",                          // vomiting, not a number
		"3",                             // top N
	}, "\n") + "\n"

	code, out := runCLI(t, nil, stdin, true)

	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "Enter your symptoms, separated by commas: ")
	assert.Contains(t, out, `How many days ago did "abdominal pain" start?`)
	assert.Contains(t, out, `"soon" is not a number`)
	assert.Contains(t, out, "  - fever (started 1 day ago)")
	assert.Contains(t, out, "  - vomiting (onset not reported)")
	assert.Contains(t, out, "Top 3 possible conditions:")
	assert.Contains(t, out, "1st  Gastroenteritis")
}

func TestRunNoSymptoms(t *testing.T) {
	code, out := runCLI(t, nil, "", false)

	assert.Equal(t, exitNoSymptoms, code)
	assert.Contains(t, out, "No symptoms entered.")
}

func TestRunNoMatches(t *testing.T) {
	code, out := runCLI(t, []string{"-symptoms", "purple toes"}, "", false)

	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "No matching conditions found")
	assert.Contains(t, out, "No specific precaution available.")
}

func TestRunKeepsStateBetweenRuns(t *testing.T) {
	state := filepath.Join(t.TempDir(), "state.json")

	code, _ := runCLI(t, []string{"-state", state, "-symptoms", "headache", "-days", "headache=0"}, "", false)
	require.Equal(t, exitOK, code)

	code, out := runCLI(t, []string{"-state", state, "-symptoms", "nausea"}, "", false)
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "  - headache (started today)")
	assert.Contains(t, out, "  - nausea (onset not reported)")
	assert.Contains(t, out, "1st  Migraine")

	code, out = runCLI(t, []string{"-state", state, "-clear"}, "", false)
	assert.Equal(t, exitNoSymptoms, code)
	assert.NotContains(t, out, "headache")
}

func TestRunBadKnowledgeBase(t *testing.T) {
	code, _ := runCLI(t, []string{"-kb", filepath.Join(t.TempDir(), "missing.toml")}, "", false)
	assert.Equal(t, exitError, code)
}

func TestOnset(t *testing.T) {
	tests := []struct {
		name string
		in   models.SelectedSymptom
		want string
	}{
		{"unreported", models.SelectedSymptom{Symptom: "fever"}, "onset not reported"},
		{"today", models.SelectedSymptom{Symptom: "fever", Reported: true}, "started today"},
		{"one day", models.SelectedSymptom{Symptom: "fever", DaysAgo: 1, Reported: true}, "started 1 day ago"},
		{"three days", models.SelectedSymptom{Symptom: "fever", DaysAgo: 3, Reported: true}, "started 3 days ago"},
		{"ten days", models.SelectedSymptom{Symptom: "fever", DaysAgo: 10, Reported: true}, "started 10 days ago"},
		{"two weeks", models.SelectedSymptom{Symptom: "fever", DaysAgo: 14, Reported: true}, "started 14 days ago"},
		{"over a month", models.SelectedSymptom{Symptom: "fever", DaysAgo: 45, Reported: true}, "started 45 days ago"},
		{"very long", models.SelectedSymptom{Symptom: "fever", DaysAgo: 200000, Reported: true}, "started 200,000 days ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, onset(tt.in))
		})
	}
}
