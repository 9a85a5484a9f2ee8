package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is one immutable outbound notification unit destined for a single
// recipient. The dispatcher creates it; the external messaging transport
// consumes it and owns the delivered flag. Once enqueued a message is never
// edited by this system.
type Message struct {
	ID  uuid.UUID
	Seq int64

	Recipient string
	Body      string

	// CorrelationID echoes the pending identifier, or the derived
	// admin-log key for administrator copies.
	CorrelationID string

	CreatedAt time.Time
	Delivered bool

	// RelayedAt is set once the outbox worker has handed the message to
	// the external transport. Distinct from end-user delivery.
	RelayedAt *time.Time
}

// WireMessage is the JSON unit placed on the transport queue.
type WireMessage struct {
	Recipient     string `json:"destinatario"`
	Body          string `json:"mensaje"`
	CorrelationID string `json:"identificador"`
	Timestamp     string `json:"timestamp"`
	Processed     bool   `json:"procesado"`
}

// Wire converts the message to its transport representation.
func (m Message) Wire() WireMessage {
	return WireMessage{
		Recipient:     m.Recipient,
		Body:          m.Body,
		CorrelationID: m.CorrelationID,
		Timestamp:     m.CreatedAt.UTC().Format(time.RFC3339),
		Processed:     false,
	}
}
