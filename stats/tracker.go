// Package stats tracks per-session query counters for the summary line
// written to the diagnostic log at shutdown.
package stats

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
)

// Tracker counts what happened during one session. Counters are atomic so
// callers never need a lock around increments.
type Tracker struct {
	start     atomic.Int64
	successes atomic.Uint64
	failures  atomic.Uint64
	rejected  atomic.Uint64
	bytes     atomic.Uint64
	queryNS   atomic.Int64
}

// NewTracker creates a tracker with the session clock started.
func NewTracker() *Tracker {
	t := &Tracker{}
	t.start.Store(time.Now().UnixNano())
	return t
}

// RecordSuccess counts a lookup that produced a record.
func (t *Tracker) RecordSuccess(bytes int64, elapsed time.Duration) {
	t.successes.Add(1)
	if bytes > 0 {
		t.bytes.Add(uint64(bytes))
	}
	t.queryNS.Add(int64(elapsed))
}

// RecordFailure counts a lookup that ended in an HTTP or transport failure.
func (t *Tracker) RecordFailure(elapsed time.Duration) {
	t.failures.Add(1)
	t.queryNS.Add(int64(elapsed))
}

// RecordRejected counts an input line turned away before any network call.
func (t *Tracker) RecordRejected() {
	t.rejected.Add(1)
}

// Queries returns the number of lookups that reached the network.
func (t *Tracker) Queries() uint64 {
	return t.successes.Load() + t.failures.Load()
}

// Successes returns the number of lookups that produced a record.
func (t *Tracker) Successes() uint64 {
	return t.successes.Load()
}

// Failures returns the number of lookups that failed.
func (t *Tracker) Failures() uint64 {
	return t.failures.Load()
}

// Rejected returns the number of inputs refused by validation.
func (t *Tracker) Rejected() uint64 {
	return t.rejected.Load()
}

// BytesReceived returns the total response bytes read across the session.
func (t *Tracker) BytesReceived() uint64 {
	return t.bytes.Load()
}

// QueryTime returns the cumulative time spent waiting on the API.
func (t *Tracker) QueryTime() time.Duration {
	return time.Duration(t.queryNS.Load())
}

// Uptime returns how long the tracker has been running.
func (t *Tracker) Uptime() time.Duration {
	return time.Since(time.Unix(0, t.start.Load()))
}

// Summary renders the one-line session digest.
func (t *Tracker) Summary() string {
	return fmt.Sprintf("session summary: %s queries (%s ok, %s failed), %s rejected, %s received, %s querying, up %s",
		humanize.Comma(int64(t.Queries())),
		humanize.Comma(int64(t.Successes())),
		humanize.Comma(int64(t.Failures())),
		humanize.Comma(int64(t.Rejected())),
		humanize.IBytes(t.BytesReceived()),
		t.QueryTime().Round(time.Millisecond),
		t.Uptime().Round(time.Second))
}
