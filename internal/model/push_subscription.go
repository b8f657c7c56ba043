package model

import "time"

// PushSubscription holds the information for a browser push subscription.
// Operators subscribe to the agents they supervise and get notified when
// those agents' workload changes.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`

	// Associations
	Resources []*Resource `gorm:"many2many:subscription_resource_mapping;"`
}
