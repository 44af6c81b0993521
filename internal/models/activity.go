package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLog is the append-only audit ledger. Rows are written once per
// mutating dashboard operation and never updated or deleted by the
// application.
type ActivityLog struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	ActorID    uint              `gorm:"index;not null" json:"actor_id"`
	ActorRole  string            `gorm:"size:32;not null" json:"actor_role"`
	Action     string            `gorm:"size:64;not null" json:"action"`
	EntityType string            `gorm:"size:64;not null" json:"entity_type"`
	EntityID   *uint             `json:"entity_id"`
	Details    string            `gorm:"type:text" json:"details"`
	IPAddress  string            `gorm:"size:64" json:"ip_address"`
	Metadata   datatypes.JSONMap `gorm:"type:json" json:"metadata"`
	CreatedAt  time.Time         `json:"created_at"`
}
