// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/danielhkuo/symptom-ranker/cliparse"
	"github.com/danielhkuo/symptom-ranker/kb"
	"github.com/danielhkuo/symptom-ranker/models"
	"github.com/danielhkuo/symptom-ranker/ranker"
	"github.com/danielhkuo/symptom-ranker/scoring"
	"github.com/danielhkuo/symptom-ranker/storage"
)

// Exit codes
const (
	exitOK         = 0
	exitError      = 1
	exitNoSymptoms = 2
)

type options struct {
	Symptoms  []string
	Days      map[string]int
	TopN      int
	TopSet    bool
	StatePath string
	KBPath    string
	Clear     bool
	Verbose   bool
}

func main() {
	if err := cliparse.LoadEnvFiles(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitError)
	}

	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, interactive))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer, interactive bool) int {
	opts, err := parseArgs(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintln(stderr, "error:", err)
		return exitError
	}

	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	knowledge := kb.Default()
	if opts.KBPath != "" {
		knowledge, err = kb.LoadFile(opts.KBPath)
		if err != nil {
			fmt.Fprintln(stderr, "error:", err)
			return exitError
		}
	}

	var store storage.Storage = storage.NewMemory()
	if opts.StatePath != "" {
		store = storage.NewFile(opts.StatePath)
	}

	session := ranker.NewSession(ranker.NewCatalog(knowledge), store)
	if opts.Clear {
		session.OnClear()
	}

	p := newPrompter(stdin, stdout)
	fmt.Fprintln(stdout, "Symptom Ranker (educational demo)")

	symptoms := opts.Symptoms
	if len(symptoms) == 0 {
		line, ok := p.ask("Enter your symptoms, separated by commas: ", interactive)
		if ok {
			symptoms = splitList(line)
		}
	}
	var added []string
	for _, raw := range symptoms {
		if session.OnAddSymptom(raw) {
			added = append(added, raw)
		}
	}

	for symptom, days := range opts.Days {
		if !session.OnSetDaysAgo(symptom, days) {
			slog.Debug("days ignored", "symptom", symptom, "days", days)
		}
	}

	// Only ask about onsets the flags did not already answer
	if interactive {
		for _, s := range session.Selected() {
			if s.Reported {
				continue
			}
			line, ok := p.ask(fmt.Sprintf("How many days ago did %q start? (Enter to skip) ", s.Symptom), true)
			if !ok || strings.TrimSpace(line) == "" {
				continue
			}
			days, err := strconv.Atoi(strings.TrimSpace(line))
			if err != nil {
				fmt.Fprintf(stdout, "  %q is not a number, onset left unreported\n", strings.TrimSpace(line))
				continue
			}
			session.OnSetDaysAgo(s.Symptom, days)
		}
	}

	topN := opts.TopN
	if !opts.TopSet && interactive {
		line, ok := p.ask("How many top conditions to show? (3/5/10, default 5) ", true)
		if ok {
			topN = scoring.ParseTopN(line)
		}
	}

	slog.Debug("selection ready", "added", len(added), "selected", len(session.Selected()))

	analysis := session.OnAnalyzeRequested(topN)
	render(stdout, session.Selected(), analysis)

	if analysis.Status == models.StatusNeedsInput {
		return exitNoSymptoms
	}
	return exitOK
}

func parseArgs(args []string) (options, error) {
	var opts options
	var symptoms, days, top string

	fs := flag.NewFlagSet("ranker-cli", flag.ContinueOnError)
	fs.StringVar(&symptoms, "symptoms", "", "Comma-separated symptoms")
	fs.StringVar(&days, "days", "", "Days since onset, as symptom=N pairs separated by commas")
	fs.StringVar(&top, "top", "", "Number of conditions to show (3, 5 or 10)")
	fs.StringVar(&opts.StatePath, "state", "", "File that keeps the selection between runs")
	fs.StringVar(&opts.KBPath, "kb", "", "Knowledge base TOML file (default: built-in)")
	fs.BoolVar(&opts.Clear, "clear", false, "Start from an empty selection")
	fs.BoolVar(&opts.Verbose, "v", false, "Verbose logging")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	// Fall back to environment variables
	if opts.StatePath == "" {
		opts.StatePath = os.Getenv("RANKER_STATE_FILE")
	}
	if opts.KBPath == "" {
		opts.KBPath = os.Getenv("KNOWLEDGE_BASE")
	}

	opts.Symptoms = splitList(symptoms)
	if fs.NArg() > 0 {
		opts.Symptoms = append(opts.Symptoms, fs.Args()...)
	}

	parsed, err := parseDays(days)
	if err != nil {
		return options{}, err
	}
	opts.Days = parsed

	opts.TopN = models.DefaultTopN
	if top != "" {
		opts.TopN = scoring.ParseTopN(top)
		opts.TopSet = true
	}

	return opts, nil
}

// parseDays reads "fever=2, sore throat=1"
func parseDays(raw string) (map[string]int, error) {
	out := make(map[string]int)
	for _, pair := range splitList(raw) {
		symptom, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid -days entry %q, want symptom=N", pair)
		}
		days, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid day count in %q: %w", pair, err)
		}
		out[strings.TrimSpace(symptom)] = days
	}
	return out, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
