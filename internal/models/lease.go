package models

import "time"

// Lease is a time-bounded agreement between one unit and one tenant.
// MonthlyRentEtb is a price snapshot computed once at creation; no
// update path mutates it, even if the unit's attributes change later.
type Lease struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	UnitID         uint        `gorm:"index;not null" json:"unit_id"`
	TenantID       uint        `gorm:"index:idx_lease_tenant_status;not null" json:"tenant_id"`
	ManagerID      uint        `gorm:"index;not null" json:"manager_id"`
	StartDate      time.Time   `gorm:"not null" json:"start_date"`
	EndDate        time.Time   `gorm:"index;not null" json:"end_date"`
	MonthlyRentEtb int64       `gorm:"not null" json:"monthly_rent_etb"`
	TaxRate        float64     `gorm:"default:0" json:"tax_rate"` // fraction, e.g. 0.15
	Status         LeaseStatus `gorm:"size:16;index:idx_lease_tenant_status;not null" json:"status"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`

	Unit   *Unit `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	Tenant *User `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
}
