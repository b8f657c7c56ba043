package model

import "time"

// Ticket is a unit of collections work tied to one client's overdue account.
// Tickets are created by the upstream ingestion collaborator; assignment and
// lifecycle state are mutated exclusively by the assignment engine.
type Ticket struct {
	ID          string      `gorm:"primaryKey;size:32"` // e.g. "T-500"
	ClientID    string      `gorm:"size:64;not null;index"`
	Segment     Segment     `gorm:"size:16;not null;index"`
	AmountCents int64       `gorm:"not null"`
	State       TicketState `gorm:"size:16;not null;index"`

	// Current assignment. Nil means unassigned; there is never more than one
	// active assignment, re-assigning overwrites this column.
	AssignedResourceID *string `gorm:"size:32;index"`
	ScheduledDate      string  `gorm:"size:10"` // "2006-01-02"
	ScheduledTime      string  `gorm:"size:5"`  // "15:04"

	CreatedAt time.Time
	UpdatedAt time.Time
}
