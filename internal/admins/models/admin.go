package models

import (
	"time"

	"docpanel/internal/domain"
)

// Administrator is a sender exempt from authorization checks. Administrators
// and authorized senders are disjoint by construction; the authorization
// service enforces the exclusion.
type Administrator struct {
	SenderID  string
	Name      string
	Kind      domain.SenderKind
	AddedBy   string
	CreatedAt time.Time
}
