package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/jubentley/AIPDBQuery/reputation"
)

// Result lines use lightweight markup tokens that become ANSI escapes when
// color is on and vanish when it is off, so the visible text is identical
// either way.

const resetANSI = "\x1b[0m"

var ansiColorReplacer = strings.NewReplacer(
	"[red]", "\x1b[31m",
	"[green]", "\x1b[32m",
	"[yellow]", "\x1b[33m",
	"[cyan]", "\x1b[36m",
	"[-]", resetANSI,
)

var ansiStripReplacer = strings.NewReplacer(
	"[red]", "",
	"[green]", "",
	"[yellow]", "",
	"[cyan]", "",
	"[-]", "",
)

func applyANSIMarkup(line string, enableColor bool) string {
	if line == "" {
		return line
	}
	if enableColor {
		// Heuristic: any markup brackets triggers a reset append after replacement.
		hasMarkup := strings.Contains(line, "[")
		line = ansiColorReplacer.Replace(line)
		if hasMarkup {
			line += resetANSI
		}
		return line
	}
	return ansiStripReplacer.Replace(line)
}

// colorEnabled resolves the ui.color mode. "always" and "never" are
// absolute; anything else means color only when stdout is a terminal.
func colorEnabled(mode string, stdoutIsTerminal bool) bool {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "always":
		return true
	case "never":
		return false
	default:
		return stdoutIsTerminal
	}
}

// Purpose: Report whether stdout is attached to an interactive terminal.
// Key aspects: Uses term.IsTerminal on stdout fd.
// Upstream: main during startup.
// Downstream: term.IsTerminal.
func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// recordLines renders the four labeled result lines in display order. An
// absent field keeps its label and renders an empty value, so the shape of
// the output never changes.
func recordLines(rec reputation.Record) []string {
	score := ""
	if rec.HasScore {
		score = strconv.Itoa(rec.Score)
	}
	isp := ""
	if rec.HasISP {
		isp = rec.ISP
	}
	usage := ""
	if rec.HasUsageType {
		usage = rec.UsageType
	}
	country := ""
	if rec.HasCountryCode {
		country = rec.CountryCode
	}
	return []string{
		"Score [cyan]:[-] " + score,
		"ISP [cyan]:[-] " + isp,
		"Type [cyan]:[-] " + usage,
		"Country [cyan]:[-] " + country,
	}
}

// renderOutcome writes one query result to out: the labeled field lines for
// a success, a single reason line for a failure.
func renderOutcome(out io.Writer, outcome reputation.Outcome, colorOn bool) {
	if !outcome.OK {
		fmt.Fprintln(out, applyANSIMarkup("[red]Query failed:[-] "+outcome.Reason, colorOn))
		return
	}
	for _, line := range recordLines(outcome.Record) {
		fmt.Fprintln(out, applyANSIMarkup(line, colorOn))
	}
}
