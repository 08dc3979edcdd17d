// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/symptom-ranker/models"
)

const disclaimer = "Disclaimer: this is an educational demo, not medical advice. " +
	"Consult a qualified healthcare professional for any health concern."

func render(w io.Writer, selected []models.SelectedSymptom, a models.Analysis) {
	fmt.Fprintln(w)
	if a.Status == models.StatusNeedsInput {
		fmt.Fprintln(w, "No symptoms entered. Add at least one symptom to rank conditions.")
		return
	}

	fmt.Fprintln(w, "Selected symptoms:")
	for _, s := range selected {
		fmt.Fprintf(w, "  - %s (%s)\n", s.Symptom, onset(s))
	}
	fmt.Fprintln(w)

	if a.Status == models.StatusNoMatches {
		fmt.Fprintln(w, "No matching conditions found for these symptoms.")
	} else {
		fmt.Fprintf(w, "Top %d possible conditions:\n", a.TopN)
		for i, r := range a.Results {
			fmt.Fprintf(w, "  %s  %-22s %5.1f%%  (%d/%d symptoms, confidence %.1f%%, timeline %.1f%%)\n",
				humanize.Ordinal(i+1), r.Condition, r.FinalScorePercent,
				r.MatchCount, r.TotalSymptoms, r.ConfidencePercent, r.TimelineScorePercent)
			if len(r.MissingSymptoms) > 0 {
				fmt.Fprintf(w, "       not reported: %s\n", strings.Join(r.MissingSymptoms, ", "))
			}
		}
	}

	if len(a.Precautions) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Precautions:")
		for _, g := range a.Precautions {
			fmt.Fprintf(w, "  %s:\n", g.Symptom)
			for _, p := range g.Precautions {
				fmt.Fprintf(w, "    - %s\n", p)
			}
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, disclaimer)
}

// onset prints the reported day count as entered; scoring works in whole days
func onset(s models.SelectedSymptom) string {
	if !s.Reported {
		return "onset not reported"
	}
	switch s.DaysAgo {
	case 0:
		return "started today"
	case 1:
		return "started 1 day ago"
	}
	return fmt.Sprintf("started %s days ago", humanize.Comma(int64(s.DaysAgo)))
}
