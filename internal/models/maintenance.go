package models

import (
	"time"

	"gorm.io/gorm"
)

// MaintenanceRequest is a tenant-filed repair request on a unit.
type MaintenanceRequest struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	TenantID    uint              `gorm:"index;not null" json:"tenant_id"`
	UnitID      uint              `gorm:"index;not null" json:"unit_id"`
	Description string            `gorm:"type:text;not null" json:"description"`
	Urgency     string            `gorm:"size:16;default:medium" json:"urgency"` // low / medium / high
	Status      MaintenanceStatus `gorm:"size:16;index;not null;default:open" json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	DeletedAt   gorm.DeletedAt    `gorm:"index" json:"-"`

	Unit *Unit `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
}
