package models

import "time"

// PendingIdentifier is a document code awaiting verification, tied to the
// sender that submitted it. Records are created by the bot when a submission
// arrives and destroyed by explicit deletion or the expiration sweep; there
// is no soft-delete state.
type PendingIdentifier struct {
	Identifier   string
	SenderID     string
	DocumentType string

	WantsFraming     bool
	WantsFolio       bool
	GroupAutoFraming bool

	// AttemptCount tracks retries by the verification pipeline. Records
	// above any ceiling are still only removed by the sweep; escalation is
	// handled elsewhere.
	AttemptCount int

	RequestedAt time.Time

	// ElapsedMinutes is derived at read time, never stored.
	ElapsedMinutes int
}

// ElapsedMinutesAt returns whole minutes elapsed since the request, floored.
func (p PendingIdentifier) ElapsedMinutesAt(now time.Time) int {
	if now.Before(p.RequestedAt) {
		return 0
	}
	return int(now.Sub(p.RequestedAt).Minutes())
}
