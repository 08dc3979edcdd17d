// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bufio"
	"fmt"
	"io"
)

type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

// ask reads one line, printing the question first when show is set.
// It reports false at end of input.
func (p *prompter) ask(question string, show bool) (string, bool) {
	if show {
		fmt.Fprint(p.out, question)
	}
	if !p.in.Scan() {
		return "", false
	}
	return p.in.Text(), true
}
