package model

import "time"

// ActivityType classifies an activity record for display.
type ActivityType string

const (
	ActivityCommit   ActivityType = "commit"
	ActivityAnalysis ActivityType = "analysis"
	ActivityComment  ActivityType = "comment"
	ActivityPR       ActivityType = "pr"
	ActivitySystem   ActivityType = "system"
)

// ActivityRecord is one append-only audit entry. Records are created on
// every user-visible state transition (load start/success/failure, delete,
// resolve, clear), never mutated, and cleared only by explicit user action.
type ActivityRecord struct {
	// ID is a random unique identifier for this record.
	ID string `json:"id"`

	// TicketID optionally back-references the ticket this record concerns.
	// It is a lookup key only; the record outlives the ticket.
	TicketID string `json:"ticket_id,omitempty"`

	// Timestamp is when the record was created.
	Timestamp time.Time `json:"timestamp"`

	// Action is a short human-readable label.
	Action string `json:"action"`

	// Details is the free-text description of what happened.
	Details string `json:"details"`

	// Type classifies the record (use the Activity* constants).
	Type ActivityType `json:"type"`
}
