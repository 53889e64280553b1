package handler

import (
	"net/http"

	"rental-manager/internal/middleware"
	"rental-manager/internal/models"
	"rental-manager/internal/service"
	"rental-manager/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LeaseHandler exposes the lease lifecycle over HTTP. All state rules
// live in the service; the handler only parses, authorizes, and maps
// errors.
type LeaseHandler struct {
	Leases *service.LeaseService
}

func NewLeaseHandler(db *gorm.DB) *LeaseHandler {
	return &LeaseHandler{Leases: service.NewLeaseService(db)}
}

type createLeaseReq struct {
	UnitID    uint    `json:"unit_id" binding:"required"`
	TenantID  uint    `json:"tenant_id" binding:"required"`
	StartDate string  `json:"start_date" binding:"required"`
	EndDate   string  `json:"end_date" binding:"required"`
	TaxRate   float64 `json:"tax_rate"`
}

// CreateLease opens a lease on a vacant unit.
func (h *LeaseHandler) CreateLease(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)

	var req createLeaseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "missing required fields")
		return
	}
	start, err := util.ParseDate(req.StartDate)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid start_date")
		return
	}
	end, err := util.ParseDate(req.EndDate)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid end_date")
		return
	}

	lease, err := h.Leases.Create(service.CreateLeaseInput{
		UnitID:    req.UnitID,
		TenantID:  req.TenantID,
		StartDate: start,
		EndDate:   end,
		TaxRate:   req.TaxRate,
		ManagerID: actor.ID,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Created(c, util.Response{"lease": lease})
}

// ListLeases returns leases with optional status/tenant filters.
func (h *LeaseHandler) ListLeases(c *gin.Context) {
	filter := service.LeaseFilter{}
	if status := c.Query("status"); status != "" {
		filter.Status = models.LeaseStatus(status)
	}
	if tenantID := c.Query("tenant_id"); tenantID != "" {
		id, ok := parseID(c, tenantID, "tenant_id")
		if !ok {
			return
		}
		filter.TenantID = id
	}
	if managerID := c.Query("manager_id"); managerID != "" {
		id, ok := parseID(c, managerID, "manager_id")
		if !ok {
			return
		}
		filter.ManagerID = id
	}

	leases, err := h.Leases.List(filter)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, util.Response{"leases": leases})
}

// GetLease returns one lease. Tenants may only read their own.
func (h *LeaseHandler) GetLease(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)

	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	lease, err := h.Leases.Get(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	if actor.Role == models.RoleTenant && lease.TenantID != actor.ID {
		util.Error(c, http.StatusForbidden, util.CodeForbidden, "access denied")
		return
	}
	util.Success(c, util.Response{"lease": lease})
}

// ListLeasesByTenant returns a tenant's leases. Tenants may only read
// their own; staff may read anyone's.
func (h *LeaseHandler) ListLeasesByTenant(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)

	tenantID, ok := idParam(c, "tenantId")
	if !ok {
		return
	}
	if actor.Role == models.RoleTenant && tenantID != actor.ID {
		util.Error(c, http.StatusForbidden, util.CodeForbidden, "access denied")
		return
	}

	leases, err := h.Leases.List(service.LeaseFilter{TenantID: tenantID})
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, util.Response{"leases": leases})
}

// EndLease terminates an active lease and frees its unit.
func (h *LeaseHandler) EndLease(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)

	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	lease, err := h.Leases.End(id, actor.ID)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, util.Response{"lease": lease})
}
