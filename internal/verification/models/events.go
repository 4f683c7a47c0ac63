package models

import "time"

// Event types emitted on the verification topic.
const (
	EventDocumentsUpdated = "documents_updated"
	EventSellerVerified   = "seller_verified"
	EventSellerUnverified = "seller_unverified"
)

// Event describes a change to a verification record.
type Event struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	SubjectID    string    `json:"subject_id"`
	ActorID      string    `json:"actor_id"`
	DocumentType string    `json:"document_type"`
	Verified     bool      `json:"verified"`
	OccurredAt   time.Time `json:"occurred_at"`
	Client       string    `json:"client,omitempty"`
}
