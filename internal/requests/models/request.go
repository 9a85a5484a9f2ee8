package models

// PendingSender is a sender that has submitted document requests but holds no
// active authorization yet. The panel lists them as candidates for approval.
type PendingSender struct {
	SenderID string
	Name     string
}
