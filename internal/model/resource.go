package model

import "time"

// Resource represents a collection agent on the roster. The roster itself is
// maintained by the HR collaborator; this service only reads it.
type Resource struct {
	ID          string `gorm:"primaryKey;size:32"` // roster code, e.g. "R-07"
	DisplayName string `gorm:"size:128;not null"`
	Tier        Tier   `gorm:"size:16;not null"`
	Team        string `gorm:"size:64"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Associations
	Shifts []ResourceShift `gorm:"foreignKey:ResourceID;constraint:OnDelete:CASCADE"`
}

// ResourceShift is one weekday entry of an agent's shift calendar: either a
// working window or a rest day. Every resource carries exactly one entry per
// weekday, enforced by the unique index.
type ResourceShift struct {
	ID         int64        `gorm:"autoIncrement;primaryKey"`
	ResourceID string       `gorm:"size:32;not null;uniqueIndex:uniq_resource_weekday"`
	Weekday    time.Weekday `gorm:"not null;uniqueIndex:uniq_resource_weekday"`
	Rest       bool         `gorm:"not null"`
	StartTime  string       `gorm:"size:5"` // "09:00", empty on rest days
	EndTime    string       `gorm:"size:5"` // "18:00", empty on rest days
}

// ShiftFor returns the shift entry for the given weekday, or false if the
// calendar has no entry for it (an incomplete roster row).
func (r *Resource) ShiftFor(day time.Weekday) (ResourceShift, bool) {
	for _, s := range r.Shifts {
		if s.Weekday == day {
			return s, true
		}
	}
	return ResourceShift{}, false
}
