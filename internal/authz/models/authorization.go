package models

import (
	"time"

	"docpanel/internal/domain"
)

// Authorization is the grant record for a sender. Records persist across
// revocation (Authorized flips false) so authorization history is retained.
type Authorization struct {
	SenderID     string
	Kind         domain.SenderKind
	Authorized   bool
	AuthorizedAt time.Time

	// Special per-sender processing flags, configured from the panel.
	AutoFraming   bool
	AutoAPIUpload bool

	// ConfiguredBy/ConfiguredAt track the last special-config change.
	// Nil ConfiguredAt means the flags were never configured explicitly.
	ConfiguredBy string
	ConfiguredAt *time.Time
}
