package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rental-manager/internal/config"
	"rental-manager/internal/database"
	"rental-manager/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	// a single connection keeps every session on the same memory db
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{
		Server:   config.ServerConfig{Mode: "test"},
		JWT:      config.JWTConfig{Secret: "test-secret", ExpireHours: 1},
		Security: config.SecurityConfig{BcryptCost: bcrypt.MinCost},
	}
	return SetupRouter(cfg, db), db
}

func seedUser(t *testing.T, db *gorm.DB, role models.Role, email, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		FullName:     "Test " + string(role),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       models.UserActive,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedUnit(t *testing.T, db *gorm.DB, unitNumber string) *models.Unit {
	t.Helper()
	u := &models.Unit{
		UnitNumber:   unitNumber,
		PropertyID:   "BLDG-A",
		Floor:        2,
		UnitType:     "1BR",
		AreaSqm:      52.5,
		BasePriceEtb: 10000,
		Status:       models.UnitOccupied,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed unit: %v", err)
	}
	return u
}

func seedLease(t *testing.T, db *gorm.DB, unitID, tenantID, managerID uint) *models.Lease {
	t.Helper()
	l := &models.Lease{
		UnitID:         unitID,
		TenantID:       tenantID,
		ManagerID:      managerID,
		StartDate:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		MonthlyRentEtb: 12000,
		Status:         models.LeaseActive,
	}
	if err := db.Create(l).Error; err != nil {
		t.Fatalf("seed lease: %v", err)
	}
	return l
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: status %d, body %s", email, w.Code, w.Body.String())
	}
	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Data.Token == "" {
		t.Fatal("login returned empty token")
	}
	return resp.Data.Token
}

func TestRegisterAdmin_OnlyWhileNoAdmin(t *testing.T) {
	r, _ := newTestServer(t)

	body := map[string]string{
		"full_name": "First Admin",
		"email":     "admin@example.com",
		"password":  "Str0ngPass",
	}
	w := doJSON(t, r, http.MethodPost, "/api/auth/register-admin", "", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("first register: status %d, body %s", w.Code, w.Body.String())
	}

	body["email"] = "second@example.com"
	w = doJSON(t, r, http.MethodPost, "/api/auth/register-admin", "", body)
	if w.Code != http.StatusForbidden {
		t.Fatalf("second register: status %d, want 403", w.Code)
	}
}

func TestLogin_LockoutAfterRepeatedFailures(t *testing.T) {
	r, db := newTestServer(t)
	seedUser(t, db, models.RoleTenant, "tenant@example.com", "Str0ngPass")

	for i := 0; i < 5; i++ {
		w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":    "tenant@example.com",
			"password": "wrong-password",
		})
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: status %d, want 401", i+1, w.Code)
		}
	}

	// correct credentials are refused while the lock holds
	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "tenant@example.com",
		"password": "Str0ngPass",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("locked login: status %d, want 401", w.Code)
	}
}

func TestAuthRequired(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/api/me", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated /api/me: status %d, want 401", w.Code)
	}
}

func TestRoleGates(t *testing.T) {
	r, db := newTestServer(t)
	seedUser(t, db, models.RoleTenant, "tenant@example.com", "Str0ngPass")
	seedUser(t, db, models.RolePM, "pm@example.com", "Str0ngPass")

	tenantTok := login(t, r, "tenant@example.com", "Str0ngPass")
	pmTok := login(t, r, "pm@example.com", "Str0ngPass")

	unitBody := map[string]interface{}{
		"unit_number":    "A-101",
		"property_id":    "BLDG-A",
		"floor":          2,
		"area_sqm":       54.5,
		"base_price_etb": 10000,
	}

	w := doJSON(t, r, http.MethodPost, "/api/units", tenantTok, unitBody)
	if w.Code != http.StatusForbidden {
		t.Fatalf("tenant create unit: status %d, want 403", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/units", pmTok, unitBody)
	if w.Code != http.StatusCreated {
		t.Fatalf("pm create unit: status %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/audit", pmTok, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("pm read audit: status %d, want 403", w.Code)
	}
}

func TestListLeases_ManagerFilter(t *testing.T) {
	r, db := newTestServer(t)
	seedUser(t, db, models.RoleAdmin, "admin@example.com", "Str0ngPass")
	managerA := seedUser(t, db, models.RolePM, "pm-a@example.com", "Str0ngPass")
	managerB := seedUser(t, db, models.RolePM, "pm-b@example.com", "Str0ngPass")
	tenant := seedUser(t, db, models.RoleTenant, "tenant@example.com", "Str0ngPass")

	unitA := seedUnit(t, db, "A-101")
	unitB := seedUnit(t, db, "A-102")
	seedLease(t, db, unitA.ID, tenant.ID, managerA.ID)
	seedLease(t, db, unitB.ID, tenant.ID, managerB.ID)

	tok := login(t, r, "admin@example.com", "Str0ngPass")

	w := doJSON(t, r, http.MethodGet,
		fmt.Sprintf("/api/leases?manager_id=%d", managerA.ID), tok, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list leases: status %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			Leases []models.Lease `json:"leases"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data.Leases) != 1 {
		t.Fatalf("leases = %d, want 1 (manager filter)", len(resp.Data.Leases))
	}
	if resp.Data.Leases[0].ManagerID != managerA.ID {
		t.Errorf("lease manager = %d, want %d", resp.Data.Leases[0].ManagerID, managerA.ID)
	}
}

func TestTenantReadsOwnFinanceSummary(t *testing.T) {
	r, db := newTestServer(t)
	manager := seedUser(t, db, models.RolePM, "pm@example.com", "Str0ngPass")
	tenantA := seedUser(t, db, models.RoleTenant, "a@example.com", "Str0ngPass")
	tenantB := seedUser(t, db, models.RoleTenant, "b@example.com", "Str0ngPass")

	unit := seedUnit(t, db, "A-101")
	seedLease(t, db, unit.ID, tenantA.ID, manager.ID)

	tok := login(t, r, "a@example.com", "Str0ngPass")

	w := doJSON(t, r, http.MethodGet,
		fmt.Sprintf("/api/finance/tenant/%d/summary", tenantB.ID), tok, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("cross-tenant summary: status %d, want 403", w.Code)
	}

	w = doJSON(t, r, http.MethodGet,
		fmt.Sprintf("/api/finance/tenant/%d/summary", tenantA.ID), tok, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("own summary: status %d, body %s", w.Code, w.Body.String())
	}
}

func TestCreateUnit_DuplicateRejected(t *testing.T) {
	r, db := newTestServer(t)
	seedUser(t, db, models.RolePM, "pm@example.com", "Str0ngPass")
	tok := login(t, r, "pm@example.com", "Str0ngPass")

	body := map[string]interface{}{
		"unit_number":    "A-101",
		"property_id":    "BLDG-A",
		"floor":          2,
		"area_sqm":       54.5,
		"base_price_etb": 10000,
	}
	w := doJSON(t, r, http.MethodPost, "/api/units", tok, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("first create: status %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/units", tok, body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate create: status %d, want 400", w.Code)
	}
}

func TestTenantReadsOwnDataOnly(t *testing.T) {
	r, db := newTestServer(t)
	tenantA := seedUser(t, db, models.RoleTenant, "a@example.com", "Str0ngPass")
	tenantB := seedUser(t, db, models.RoleTenant, "b@example.com", "Str0ngPass")

	tok := login(t, r, "a@example.com", "Str0ngPass")

	w := doJSON(t, r, http.MethodGet,
		fmt.Sprintf("/api/tenants/%d/payments", tenantB.ID), tok, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("cross-tenant read: status %d, want 403", w.Code)
	}

	w = doJSON(t, r, http.MethodGet,
		fmt.Sprintf("/api/tenants/%d/payments", tenantA.ID), tok, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("own read: status %d, body %s", w.Code, w.Body.String())
	}
}
