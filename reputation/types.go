package reputation

import "time"

// Record carries the fields shown for a successful lookup. Every value is
// paired with a presence flag: the endpoint may omit any of them, and an
// omitted field must stay distinguishable from an empty string or a zero
// score.
type Record struct {
	Score          int
	HasScore       bool
	ISP            string
	HasISP         bool
	UsageType      string
	HasUsageType   bool
	CountryCode    string
	HasCountryCode bool
}

// Outcome is the complete result of one lookup. Exactly one of the two arms
// is meaningful: a Record when OK is set, otherwise a human-readable Reason.
// Outcomes are produced per query and never retained.
type Outcome struct {
	OK      bool
	Record  Record
	Reason  string
	Bytes   int64
	Elapsed time.Duration
}
