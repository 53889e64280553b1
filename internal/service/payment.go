package service

import (
	"errors"
	"strings"
	"time"

	"rental-manager/internal/audit"
	"rental-manager/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentService owns the payment ledger. Payments reference a lease
// and are never deleted; verification is the only mutation.
type PaymentService struct {
	DB *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{DB: db}
}

// CreatePaymentInput carries the fields required to record a payment.
// There is intentionally no status field: new payments always start
// PENDING regardless of what a caller supplies.
type CreatePaymentInput struct {
	LeaseID               uint
	AmountEtb             int64
	TransactionDate       time.Time
	PaymentMethod         string
	ExternalTransactionID string
	CreatedByID           uint
}

// Create records a PENDING payment against an existing lease.
func (s *PaymentService) Create(in CreatePaymentInput) (*models.Payment, error) {
	if in.LeaseID == 0 {
		return nil, validationf("leaseId is required")
	}
	if in.AmountEtb <= 0 {
		return nil, validationf("amount must be positive")
	}
	if in.TransactionDate.IsZero() {
		return nil, validationf("transactionDate is required")
	}
	if strings.TrimSpace(in.PaymentMethod) == "" {
		return nil, validationf("paymentMethod is required")
	}

	var lease models.Lease
	if err := s.DB.First(&lease, in.LeaseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("lease not found")
		}
		return nil, err
	}

	payment := models.Payment{
		LeaseID:               in.LeaseID,
		TransactionDate:       in.TransactionDate,
		AmountEtb:             in.AmountEtb,
		PaymentMethod:         in.PaymentMethod,
		Status:                models.PaymentPending,
		ExternalTransactionID: in.ExternalTransactionID,
		ReceiptNumber:         uuid.NewString(),
		CreatedByID:           in.CreatedByID,
	}
	if err := s.DB.Create(&payment).Error; err != nil {
		return nil, err
	}

	audit.Record(s.DB, in.CreatedByID, "PAYMENT_CREATE", "PAYMENT", payment.ID, map[string]interface{}{
		"lease_id":   payment.LeaseID,
		"amount_etb": payment.AmountEtb,
		"method":     payment.PaymentMethod,
	})
	return &payment, nil
}

// UpdateStatus decides a payment. Only PENDING payments can move, and
// only to VERIFIED or REJECTED; a decided payment stays decided.
func (s *PaymentService) UpdateStatus(paymentID uint, status models.PaymentStatus, verifierID uint) (*models.Payment, error) {
	if !models.ValidPaymentStatus(status) {
		return nil, validationf("invalid status value")
	}

	var payment models.Payment
	if err := s.DB.First(&payment, paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("payment not found")
		}
		return nil, err
	}

	if payment.Status != models.PaymentPending {
		return nil, validationf("payment already " + strings.ToLower(string(payment.Status)))
	}
	if status == models.PaymentPending {
		return nil, validationf("payment is already pending")
	}

	now := time.Now()
	payment.Status = status
	payment.VerifiedByID = &verifierID
	payment.VerifiedAt = &now
	if err := s.DB.Save(&payment).Error; err != nil {
		return nil, err
	}

	audit.Record(s.DB, verifierID, "PAYMENT_STATUS_UPDATE", "PAYMENT", payment.ID, map[string]interface{}{
		"status": string(status),
	})
	return &payment, nil
}

// ListByLease returns a lease's payments, newest first.
func (s *PaymentService) ListByLease(leaseID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := s.DB.Where("lease_id = ?", leaseID).
		Order("transaction_date DESC, id DESC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

// ListByTenant resolves the tenant's lease ids first, then returns the
// payments recorded against any of them.
func (s *PaymentService) ListByTenant(tenantID uint) ([]models.Payment, error) {
	var leaseIDs []uint
	err := s.DB.Model(&models.Lease{}).
		Where("tenant_id = ?", tenantID).
		Pluck("id", &leaseIDs).Error
	if err != nil {
		return nil, err
	}
	if len(leaseIDs) == 0 {
		return []models.Payment{}, nil
	}

	var payments []models.Payment
	err = s.DB.Where("lease_id IN ?", leaseIDs).
		Order("transaction_date DESC, id DESC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

// PaymentFilter holds optional filters for List. Search matches the
// external transaction id or method by case-insensitive substring.
type PaymentFilter struct {
	Status models.PaymentStatus
	Method string
	Search string
}

// List returns payments matching the filter, newest first, capped at
// 200 rows.
func (s *PaymentService) List(f PaymentFilter) ([]models.Payment, error) {
	q := s.DB.Model(&models.Payment{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Method != "" {
		q = q.Where("payment_method = ?", f.Method)
	}
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(external_transaction_id) LIKE ? OR LOWER(payment_method) LIKE ?", like, like)
	}

	var payments []models.Payment
	err := q.Order("transaction_date DESC, id DESC").
		Limit(200).
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}
