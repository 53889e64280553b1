package service

import (
	"errors"
	"time"

	"rental-manager/internal/audit"
	"rental-manager/internal/models"
	"rental-manager/internal/pricing"

	"gorm.io/gorm"
)

// LeaseService owns the lease lifecycle. The lease write and the unit
// occupancy write always happen inside one transaction so the pair can
// never be observed half-applied.
type LeaseService struct {
	DB *gorm.DB
}

func NewLeaseService(db *gorm.DB) *LeaseService {
	return &LeaseService{DB: db}
}

// CreateLeaseInput carries the fields required to open a lease.
type CreateLeaseInput struct {
	UnitID    uint
	TenantID  uint
	StartDate time.Time
	EndDate   time.Time
	TaxRate   float64
	ManagerID uint
}

// Create opens an ACTIVE lease on a vacant unit. The monthly rent is a
// snapshot computed from the unit's attributes at this instant; later
// unit changes never touch existing leases.
func (s *LeaseService) Create(in CreateLeaseInput) (*models.Lease, error) {
	if in.UnitID == 0 || in.TenantID == 0 {
		return nil, validationf("unitId and tenantId are required")
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return nil, validationf("startDate and endDate are required")
	}
	if !in.EndDate.After(in.StartDate) {
		return nil, validationf("endDate must be after startDate")
	}
	if in.TaxRate < 0 {
		return nil, validationf("taxRate must be non-negative")
	}

	var tenant models.User
	if err := s.DB.First(&tenant, in.TenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("tenant not found")
		}
		return nil, err
	}
	if tenant.Role != models.RoleTenant {
		return nil, validationf("user is not a tenant")
	}

	var lease models.Lease
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var unit models.Unit
		if err := tx.First(&unit, in.UnitID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("unit not found")
			}
			return err
		}
		// re-checked at write time so two concurrent creates cannot
		// both book the same unit
		if unit.Status != models.UnitVacant {
			return validationf("unit is not vacant")
		}

		rent, err := pricing.MonthlyRent(&unit)
		if err != nil {
			return validationf(err.Error())
		}

		lease = models.Lease{
			UnitID:         unit.ID,
			TenantID:       in.TenantID,
			ManagerID:      in.ManagerID,
			StartDate:      in.StartDate,
			EndDate:        in.EndDate,
			MonthlyRentEtb: rent,
			TaxRate:        in.TaxRate,
			Status:         models.LeaseActive,
		}
		if err := tx.Create(&lease).Error; err != nil {
			return err
		}

		return tx.Model(&unit).Update("status", models.UnitOccupied).Error
	})
	if err != nil {
		return nil, err
	}

	audit.Record(s.DB, in.ManagerID, "LEASE_CREATE", "LEASE", lease.ID, map[string]interface{}{
		"unit_id":   lease.UnitID,
		"tenant_id": lease.TenantID,
	})
	return &lease, nil
}

// End marks a lease ENDED and frees its unit. Leases only move forward:
// ending an already-ENDED lease is a validation error.
func (s *LeaseService) End(leaseID, actorID uint) (*models.Lease, error) {
	var lease models.Lease
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&lease, leaseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("lease not found")
			}
			return err
		}
		if lease.Status == models.LeaseEnded {
			return validationf("lease already ended")
		}

		if err := tx.Model(&lease).Update("status", models.LeaseEnded).Error; err != nil {
			return err
		}
		lease.Status = models.LeaseEnded

		// the unit may have been soft-deleted since; that is not an error
		var unit models.Unit
		if err := tx.First(&unit, lease.UnitID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		return tx.Model(&unit).Update("status", models.UnitVacant).Error
	})
	if err != nil {
		return nil, err
	}

	audit.Record(s.DB, actorID, "LEASE_END", "LEASE", lease.ID, map[string]interface{}{
		"unit_id":   lease.UnitID,
		"tenant_id": lease.TenantID,
	})
	return &lease, nil
}

// LeaseFilter holds optional equality filters for List.
type LeaseFilter struct {
	Status    models.LeaseStatus
	TenantID  uint
	ManagerID uint
}

// List returns leases matching the filter, newest first.
func (s *LeaseService) List(f LeaseFilter) ([]models.Lease, error) {
	q := s.DB.Model(&models.Lease{}).Preload("Unit").Preload("Tenant")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.TenantID != 0 {
		q = q.Where("tenant_id = ?", f.TenantID)
	}
	if f.ManagerID != 0 {
		q = q.Where("manager_id = ?", f.ManagerID)
	}

	var leases []models.Lease
	if err := q.Order("created_at DESC, id DESC").Find(&leases).Error; err != nil {
		return nil, err
	}
	return leases, nil
}

// Get returns one lease with its unit and tenant loaded.
func (s *LeaseService) Get(id uint) (*models.Lease, error) {
	var lease models.Lease
	if err := s.DB.Preload("Unit").Preload("Tenant").First(&lease, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("lease not found")
		}
		return nil, err
	}
	return &lease, nil
}
