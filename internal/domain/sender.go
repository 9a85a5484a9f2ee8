// Package domain holds sender identity primitives shared by every module.
// Senders are messaging identifiers; groups carry a reserved domain suffix.
package domain

import "strings"

// SenderKind distinguishes individual users from groups.
type SenderKind string

const (
	SenderUser  SenderKind = "user"
	SenderGroup SenderKind = "group"
)

// GroupSuffix is the reserved identifier suffix for group senders.
const GroupSuffix = "@g.us"

// Valid reports whether the kind is one of the two known values.
func (k SenderKind) Valid() bool {
	return k == SenderUser || k == SenderGroup
}

// ParseSenderKind validates a wire-level type string.
func ParseSenderKind(s string) (SenderKind, bool) {
	k := SenderKind(s)
	return k, k.Valid()
}

// IsGroup reports whether the sender identifier belongs to a group.
func IsGroup(senderID string) bool {
	return strings.HasSuffix(senderID, GroupSuffix)
}

// KindOf derives the sender kind from the identifier suffix.
func KindOf(senderID string) SenderKind {
	if IsGroup(senderID) {
		return SenderGroup
	}
	return SenderUser
}

// FormatNumber renders a sender identifier for display: the domain suffix is
// stripped and the remainder prefixed with "+". Empty input renders as
// "Desconocido", matching the panel frontend contract.
func FormatNumber(senderID string) string {
	if senderID == "" {
		return "Desconocido"
	}
	local, _, _ := strings.Cut(senderID, "@")
	return "+" + local
}

// DisplayName renders a sender for listings: groups get a "Grupo: " prefix.
func DisplayName(senderID string) string {
	if IsGroup(senderID) {
		return "Grupo: " + FormatNumber(senderID)
	}
	return FormatNumber(senderID)
}
