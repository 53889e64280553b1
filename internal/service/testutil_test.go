package service

import (
	"testing"
	"time"

	"rental-manager/internal/database"
	"rental-manager/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory SQLite database per test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	// a single connection keeps every query on the same :memory: db
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role models.Role) *models.User {
	t.Helper()
	u := models.User{
		FullName:     "Test " + string(role),
		Email:        string(role) + "-" + time.Now().Format("150405.000000000") + "@example.com",
		PasswordHash: "x",
		Role:         role,
		Status:       models.UserActive,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return &u
}

func seedUnit(t *testing.T, db *gorm.DB, base int64, floor int, amenities, views []string) *models.Unit {
	t.Helper()
	u := models.Unit{
		UnitNumber:     "U-" + time.Now().Format("150405.000000000"),
		PropertyID:     "P1",
		Floor:          floor,
		UnitType:       "1BR",
		AreaSqm:        52.5,
		BasePriceEtb:   base,
		Status:         models.UnitVacant,
		Amenities:      amenities,
		ViewAttributes: views,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed unit: %v", err)
	}
	return &u
}

func seedLease(t *testing.T, db *gorm.DB, unitID, tenantID, managerID uint, rent int64, status models.LeaseStatus, end time.Time) *models.Lease {
	t.Helper()
	l := models.Lease{
		UnitID:         unitID,
		TenantID:       tenantID,
		ManagerID:      managerID,
		StartDate:      end.AddDate(-1, 0, 0),
		EndDate:        end,
		MonthlyRentEtb: rent,
		Status:         status,
	}
	if err := db.Create(&l).Error; err != nil {
		t.Fatalf("seed lease: %v", err)
	}
	return &l
}

func seedPayment(t *testing.T, db *gorm.DB, leaseID uint, amount int64, status models.PaymentStatus) *models.Payment {
	t.Helper()
	p := models.Payment{
		LeaseID:         leaseID,
		TransactionDate: time.Now(),
		AmountEtb:       amount,
		PaymentMethod:   "MANUAL_CASH",
		Status:          status,
		CreatedByID:     1,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed payment: %v", err)
	}
	return &p
}
