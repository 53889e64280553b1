package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog records important operations for auditing.
type AuditLog struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     *uint          `gorm:"index" json:"user_id,omitempty"`
	Action     string         `gorm:"size:64;index;not null" json:"action"` // e.g. "LEASE_CREATE", "PAYMENT_STATUS_UPDATE"
	EntityType string         `gorm:"size:32;index" json:"entity_type"`     // "USER", "LEASE", "PAYMENT", ...
	EntityID   uint           `gorm:"index" json:"entity_id"`
	Details    datatypes.JSON `json:"details,omitempty"`
	IP         string         `gorm:"size:64" json:"ip,omitempty"`
	UserAgent  string         `gorm:"size:255" json:"user_agent,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}
