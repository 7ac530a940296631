package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jubentley/AIPDBQuery/reputation"
	"github.com/jubentley/AIPDBQuery/stats"
)

const (
	promptText    = "AIPDB Query: "
	rejectionText = "Invalid IP address"
)

// addressQuerier is the one call the loop needs from the API client. Tests
// substitute a scripted implementation.
type addressQuerier interface {
	QueryAddress(address string) reputation.Outcome
}

// session drives the prompt, read, validate, query, render cycle. One
// iteration finishes completely before the next prompt appears; a query in
// flight cannot be abandoned.
type session struct {
	in      *bufio.Scanner
	out     io.Writer
	client  addressQuerier
	colorOn bool
	tracker *stats.Tracker
	diag    *logFanout
}

func newSession(in io.Reader, out io.Writer, client addressQuerier, colorOn bool, tracker *stats.Tracker, diag *logFanout) *session {
	return &session{
		in:      bufio.NewScanner(in),
		out:     out,
		client:  client,
		colorOn: colorOn,
		tracker: tracker,
		diag:    diag,
	}
}

// Purpose: Run the interactive loop until an exit trigger or input EOF.
// Key aspects: Validation failures and query failures both continue the loop.
// Upstream: main after startup checks pass.
// Downstream: reputation.Client.QueryAddress and renderOutcome.
func (s *session) run() error {
	for {
		fmt.Fprint(s.out, promptText)
		if !s.in.Scan() {
			return s.in.Err()
		}
		line := s.in.Text()
		if isExitInput(line) {
			return nil
		}
		if !reputation.IsPlausibleAddress(line) {
			s.tracker.RecordRejected()
			fmt.Fprintln(s.out, applyANSIMarkup("[yellow]"+rejectionText+"[-]", s.colorOn))
			continue
		}

		outcome := s.client.QueryAddress(line)
		renderOutcome(s.out, outcome, s.colorOn)
		s.record(line, outcome)
	}
}

// isExitInput reports whether a raw input line ends the session: blank or
// whitespace-only, "exit" in any case, or anything starting with q or Q.
func isExitInput(line string) bool {
	if strings.TrimSpace(line) == "" {
		return true
	}
	lower := strings.ToLower(line)
	return lower == "exit" || strings.HasPrefix(lower, "q")
}

// record updates the session counters and writes the per-query detail line
// to the diagnostic log. Nothing here touches the console.
func (s *session) record(address string, outcome reputation.Outcome) {
	now := time.Now()
	if outcome.OK {
		s.tracker.RecordSuccess(outcome.Bytes, outcome.Elapsed)
		score := "absent"
		if outcome.Record.HasScore {
			score = fmt.Sprintf("%d", outcome.Record.Score)
		}
		s.diag.WriteFileOnlyLine(fmt.Sprintf("query %s: ok score=%s bytes=%d elapsed=%s",
			address, score, outcome.Bytes, outcome.Elapsed.Round(time.Millisecond)), now)
		return
	}
	s.tracker.RecordFailure(outcome.Elapsed)
	s.diag.WriteFileOnlyLine(fmt.Sprintf("query %s: failed: %s (elapsed=%s)",
		address, outcome.Reason, outcome.Elapsed.Round(time.Millisecond)), now)
}
