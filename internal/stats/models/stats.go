package models

// Totals aggregates the per-sender document counters.
type Totals struct {
	Documents int64
	Senders   int64
}

// SenderCount is one row of the top-senders ranking.
type SenderCount struct {
	SenderID  string
	Name      string
	Documents int64
}
