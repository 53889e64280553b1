package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Unit represents a rentable physical space inside a property.
// Amounts are whole ETB; there is no subunit convention.
type Unit struct {
	ID             uint                        `gorm:"primaryKey" json:"id"`
	UnitNumber     string                      `gorm:"size:32;not null;uniqueIndex:idx_unit_property" json:"unit_number"`
	PropertyID     string                      `gorm:"size:64;not null;uniqueIndex:idx_unit_property" json:"property_id"`
	Floor          int                         `gorm:"not null" json:"floor"`
	UnitType       string                      `gorm:"size:32" json:"unit_type"` // e.g. "STUDIO", "1BR"
	AreaSqm        float64                     `gorm:"not null" json:"area_sqm"`
	BasePriceEtb   int64                       `gorm:"not null" json:"base_price_etb"`
	Status         UnitStatus                  `gorm:"size:24;index;not null;default:VACANT" json:"status"`
	Amenities      datatypes.JSONSlice[string] `json:"amenities"`
	ViewAttributes datatypes.JSONSlice[string] `json:"view_attributes"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
	DeletedAt      gorm.DeletedAt              `gorm:"index" json:"-"`
}
