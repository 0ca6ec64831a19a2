package domain

import (
	"time"
)

// AuditRecord is one structured record of a posting or allocation decision,
// kept for compliance review.
type AuditRecord struct {
	ID         string
	Action     AuditAction
	ResourceID string // journal ID or allocation context ID
	ActorID    string // submitter or previewing user
	Outcome    string
	Detail     JSON
	CreatedAt  time.Time
}

// JSON is a type alias for JSON data
type JSON map[string]any

// AuditAction represents different types of auditable actions
type AuditAction string

const (
	AuditActionJournalPost       AuditAction = "journal.post"
	AuditActionAllocationPreview AuditAction = "allocation.preview"
)

// Audit outcomes
const (
	AuditOutcomePosted   = "posted"
	AuditOutcomeFlagged  = "flagged"
	AuditOutcomeComputed = "computed"
)

// AuditFilter defines filters for querying audit records
type AuditFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	Action     string
	ResourceID string
	ActorID    string
	Limit      int
	Offset     int
}
