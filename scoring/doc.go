// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package scoring ranks knowledge base conditions against a symptom selection.

# Algorithm

For each condition d, with selected symptoms S and reported onsets T:

	matches    = S ∩ d.symptoms
	missing    = d.symptoms − S             (declared order)
	confidence = |matches| / |d.symptoms| · 100
	timeline   = share of matched symptoms with a declared onset whose
	             reported onset (T[s], or the expected value if unreported)
	             is within OnsetTolerance days of the expected one · 100
	             (0 when no matched symptom declares an onset)
	final      = 0.8 · confidence + 0.2 · timeline

All three percentages are rounded half-up to one decimal.

# Ranking

Conditions with no matching symptom are dropped first. The rest are sorted
by final score, highest first, with a stable sort so ties keep catalog
order, then truncated to topN:

	engine := scoring.NewEngine(kb.Default())
	results := engine.Analyze(selection, scoring.ParseTopN("5"))

An empty selection yields an empty result. Telling "nothing selected" apart
from "nothing matched" is left to the caller.
*/
package scoring
