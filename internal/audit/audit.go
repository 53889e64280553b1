// Package audit appends fire-and-forget audit records. A failed audit
// write never fails the operation that triggered it.
package audit

import (
	"encoding/json"
	"log"

	"rental-manager/internal/models"

	"gorm.io/gorm"
)

// Record persists one audit event. details may be nil.
func Record(db *gorm.DB, userID uint, action, entityType string, entityID uint, details map[string]interface{}) {
	var uid *uint
	if userID != 0 {
		uid = &userID
	}

	var raw []byte
	if details != nil {
		raw, _ = json.Marshal(details)
	}

	entry := models.AuditLog{
		UserID:     uid,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    raw,
	}
	if err := db.Create(&entry).Error; err != nil {
		log.Printf("audit: record %s failed: %v", action, err)
	}
}
