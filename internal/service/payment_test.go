package service

import (
	"errors"
	"testing"
	"time"

	"rental-manager/internal/models"
)

func paymentInput(leaseID uint, amount int64) CreatePaymentInput {
	return CreatePaymentInput{
		LeaseID:         leaseID,
		AmountEtb:       amount,
		TransactionDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		PaymentMethod:   "TELEBIRR",
		CreatedByID:     1,
	}
}

// TestPaymentCreate_AlwaysPending: the input carries no status field at
// all, so every created payment starts PENDING.
func TestPaymentCreate_AlwaysPending(t *testing.T) {
	db := newTestDB(t)
	svc := NewPaymentService(db)
	tenant := seedUser(t, db, models.RoleTenant)
	manager := seedUser(t, db, models.RolePM)
	unit := seedUnit(t, db, 10000, 2, nil, nil)
	lease := seedLease(t, db, unit.ID, tenant.ID, manager.ID, 10000, models.LeaseActive, time.Now().AddDate(1, 0, 0))

	p, err := svc.Create(paymentInput(lease.ID, 5000))
	if err != nil {
		t.Fatalf("Create() error = %v, want nil", err)
	}
	if p.Status != models.PaymentPending {
		t.Errorf("status = %s, want PENDING", p.Status)
	}
	if p.ReceiptNumber == "" {
		t.Error("receipt number not assigned")
	}
}

// TestPaymentCreate_Validation
func TestPaymentCreate_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := NewPaymentService(db)
	tenant := seedUser(t, db, models.RoleTenant)
	manager := seedUser(t, db, models.RolePM)
	unit := seedUnit(t, db, 10000, 2, nil, nil)
	lease := seedLease(t, db, unit.ID, tenant.ID, manager.ID, 10000, models.LeaseActive, time.Now().AddDate(1, 0, 0))

	cases := []struct {
		name string
		in   CreatePaymentInput
	}{
		{"missing lease", paymentInput(0, 5000)},
		{"zero amount", paymentInput(lease.ID, 0)},
		{"negative amount", paymentInput(lease.ID, -100)},
		{"missing date", CreatePaymentInput{LeaseID: lease.ID, AmountEtb: 100, PaymentMethod: "CASH"}},
		{"missing method", CreatePaymentInput{LeaseID: lease.ID, AmountEtb: 100, TransactionDate: time.Now()}},
	}
	for _, c := range cases {
		if _, err := svc.Create(c.in); !errors.Is(err, ErrValidation) {
			t.Errorf("%s: Create() error = %v, want ErrValidation", c.name, err)
		}
	}
}

// TestPaymentCreate_LeaseNotFound
func TestPaymentCreate_LeaseNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewPaymentService(db)

	_, err := svc.Create(paymentInput(777, 5000))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Create(missing lease) error = %v, want ErrNotFound", err)
	}
}

// TestPaymentUpdateStatus_Verify records verifier identity and time.
func TestPaymentUpdateStatus_Verify(t *testing.T) {
	db := newTestDB(t)
	svc := NewPaymentService(db)
	tenant := seedUser(t, db, models.RoleTenant)
	manager := seedUser(t, db, models.RolePM)
	unit := seedUnit(t, db, 10000, 2, nil, nil)
	lease := seedLease(t, db, unit.ID, tenant.ID, manager.ID, 10000, models.LeaseActive, time.Now().AddDate(1, 0, 0))
	payment := seedPayment(t, db, lease.ID, 5000, models.PaymentPending)

	got, err := svc.UpdateStatus(payment.ID, models.PaymentVerified, manager.ID)
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v, want nil", err)
	}
	if got.Status != models.PaymentVerified {
		t.Errorf("status = %s, want VERIFIED", got.Status)
	}
	if got.VerifiedByID == nil || *got.VerifiedByID != manager.ID {
		t.Errorf("verified_by = %v, want %d", got.VerifiedByID, manager.ID)
	}
	if got.VerifiedAt == nil {
		t.Error("verified_at not set")
	}
}

// TestPaymentUpdateStatus_Guards: only PENDING payments can be decided,
// and only to VERIFIED or REJECTED.
func TestPaymentUpdateStatus_Guards(t *testing.T) {
	db := newTestDB(t)
	svc := NewPaymentService(db)
	tenant := seedUser(t, db, models.RoleTenant)
	manager := seedUser(t, db, models.RolePM)
	unit := seedUnit(t, db, 10000, 2, nil, nil)
	lease := seedLease(t, db, unit.ID, tenant.ID, manager.ID, 10000, models.LeaseActive, time.Now().AddDate(1, 0, 0))

	pending := seedPayment(t, db, lease.ID, 5000, models.PaymentPending)
	if _, err := svc.UpdateStatus(pending.ID, "WHATEVER", manager.ID); !errors.Is(err, ErrValidation) {
		t.Errorf("UpdateStatus(out-of-enum) error = %v, want ErrValidation", err)
	}
	if _, err := svc.UpdateStatus(pending.ID, models.PaymentPending, manager.ID); !errors.Is(err, ErrValidation) {
		t.Errorf("UpdateStatus(PENDING->PENDING) error = %v, want ErrValidation", err)
	}

	verified := seedPayment(t, db, lease.ID, 5000, models.PaymentVerified)
	if _, err := svc.UpdateStatus(verified.ID, models.PaymentRejected, manager.ID); !errors.Is(err, ErrValidation) {
		t.Errorf("UpdateStatus(VERIFIED->REJECTED) error = %v, want ErrValidation", err)
	}

	rejected := seedPayment(t, db, lease.ID, 5000, models.PaymentRejected)
	if _, err := svc.UpdateStatus(rejected.ID, models.PaymentVerified, manager.ID); !errors.Is(err, ErrValidation) {
		t.Errorf("UpdateStatus(REJECTED->VERIFIED) error = %v, want ErrValidation", err)
	}

	if _, err := svc.UpdateStatus(12345, models.PaymentVerified, manager.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateStatus(missing) error = %v, want ErrNotFound", err)
	}
}

// TestPaymentListByTenant resolves payments through the tenant's leases.
func TestPaymentListByTenant(t *testing.T) {
	db := newTestDB(t)
	svc := NewPaymentService(db)
	tenantA := seedUser(t, db, models.RoleTenant)
	tenantB := seedUser(t, db, models.RoleTenant)
	manager := seedUser(t, db, models.RolePM)
	end := time.Now().AddDate(1, 0, 0)

	unitA := seedUnit(t, db, 10000, 2, nil, nil)
	unitB := seedUnit(t, db, 12000, 2, nil, nil)
	leaseA := seedLease(t, db, unitA.ID, tenantA.ID, manager.ID, 10000, models.LeaseActive, end)
	leaseB := seedLease(t, db, unitB.ID, tenantB.ID, manager.ID, 12000, models.LeaseActive, end)
	seedPayment(t, db, leaseA.ID, 3000, models.PaymentPending)
	seedPayment(t, db, leaseA.ID, 4000, models.PaymentVerified)
	seedPayment(t, db, leaseB.ID, 5000, models.PaymentVerified)

	got, err := svc.ListByTenant(tenantA.ID)
	if err != nil {
		t.Fatalf("ListByTenant() error = %v, want nil", err)
	}
	if len(got) != 2 {
		t.Errorf("ListByTenant() = %d payments, want 2", len(got))
	}

	// a tenant with no leases gets an empty slice, not an error
	noLease := seedUser(t, db, models.RoleTenant)
	got, err = svc.ListByTenant(noLease.ID)
	if err != nil {
		t.Fatalf("ListByTenant(no leases) error = %v, want nil", err)
	}
	if len(got) != 0 {
		t.Errorf("ListByTenant(no leases) = %d payments, want 0", len(got))
	}
}

// TestPaymentList_Filters covers status/method filters and substring search.
func TestPaymentList_Filters(t *testing.T) {
	db := newTestDB(t)
	svc := NewPaymentService(db)
	tenant := seedUser(t, db, models.RoleTenant)
	manager := seedUser(t, db, models.RolePM)
	unit := seedUnit(t, db, 10000, 2, nil, nil)
	lease := seedLease(t, db, unit.ID, tenant.ID, manager.ID, 10000, models.LeaseActive, time.Now().AddDate(1, 0, 0))

	p1 := models.Payment{LeaseID: lease.ID, TransactionDate: time.Now(), AmountEtb: 1000,
		PaymentMethod: "TELEBIRR", Status: models.PaymentVerified, ExternalTransactionID: "TB-12345", CreatedByID: tenant.ID}
	p2 := models.Payment{LeaseID: lease.ID, TransactionDate: time.Now(), AmountEtb: 2000,
		PaymentMethod: "MANUAL_BANK", Status: models.PaymentPending, ExternalTransactionID: "CBE-777", CreatedByID: tenant.ID}
	if err := db.Create(&p1).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := db.Create(&p2).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	byStatus, err := svc.List(PaymentFilter{Status: models.PaymentVerified})
	if err != nil {
		t.Fatalf("List(status) error = %v, want nil", err)
	}
	if len(byStatus) != 1 || byStatus[0].ID != p1.ID {
		t.Errorf("List(status) = %d payments, want the verified one", len(byStatus))
	}

	byMethod, err := svc.List(PaymentFilter{Method: "MANUAL_BANK"})
	if err != nil {
		t.Fatalf("List(method) error = %v, want nil", err)
	}
	if len(byMethod) != 1 || byMethod[0].ID != p2.ID {
		t.Errorf("List(method) = %d payments, want the bank one", len(byMethod))
	}

	// search is case-insensitive and matches txn id or method
	bySearch, err := svc.List(PaymentFilter{Search: "tb-123"})
	if err != nil {
		t.Fatalf("List(search) error = %v, want nil", err)
	}
	if len(bySearch) != 1 || bySearch[0].ID != p1.ID {
		t.Errorf("List(search txn id) = %d payments, want 1", len(bySearch))
	}

	bySearch, err = svc.List(PaymentFilter{Search: "manual"})
	if err != nil {
		t.Fatalf("List(search method) error = %v, want nil", err)
	}
	if len(bySearch) != 1 || bySearch[0].ID != p2.ID {
		t.Errorf("List(search method) = %d payments, want 1", len(bySearch))
	}
}
