package model

import "time"

// Assignment change kinds recorded in the history log.
const (
	EventKindAssign       = "assign"
	EventKindReassign     = "reassign"
	EventKindBulkTransfer = "bulk_transfer"
)

// AssignmentEvent is one row of the append-only assignment history. Events
// are written in the same transaction as the ticket update they describe, so
// the log never disagrees with the ticket table.
type AssignmentEvent struct {
	ID             int64   `gorm:"autoIncrement;primaryKey"`
	TicketID       string  `gorm:"size:32;not null;index"`
	FromResourceID *string `gorm:"size:32"`
	ToResourceID   string  `gorm:"size:32;not null;index"`
	ScheduledDate  string  `gorm:"size:10"`
	ScheduledTime  string  `gorm:"size:5"`
	Kind           string  `gorm:"size:16;not null"`

	// Set on bulk transfers, which skip the per-ticket eligibility check as an
	// emergency coverage escape hatch.
	EligibilityBypassed bool `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
}
