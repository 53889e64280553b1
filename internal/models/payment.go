package models

import "time"

// Payment records funds tendered against a lease. New payments always
// start PENDING; staff verification moves them to VERIFIED or REJECTED.
type Payment struct {
	ID                    uint          `gorm:"primaryKey" json:"id"`
	LeaseID               uint          `gorm:"index;not null" json:"lease_id"`
	TransactionDate       time.Time     `gorm:"index;not null" json:"transaction_date"`
	AmountEtb             int64         `gorm:"not null" json:"amount_etb"`
	PaymentMethod         string        `gorm:"size:32;not null" json:"payment_method"` // e.g. "MANUAL_CASH", "TELEBIRR"
	Status                PaymentStatus `gorm:"size:16;index;not null;default:PENDING" json:"status"`
	ExternalTransactionID string        `gorm:"size:128;index" json:"external_transaction_id,omitempty"`
	ReceiptNumber         string        `gorm:"size:64" json:"receipt_number,omitempty"`
	CreatedByID           uint          `gorm:"index;not null" json:"created_by_id"`
	VerifiedByID          *uint         `json:"verified_by_id,omitempty"`
	VerifiedAt            *time.Time    `json:"verified_at,omitempty"`
	CreatedAt             time.Time     `json:"created_at"`
	UpdatedAt             time.Time     `json:"updated_at"`

	Lease *Lease `gorm:"foreignKey:LeaseID" json:"lease,omitempty"`
}
