package handler

import (
	"net/http"
	"strings"

	"rental-manager/internal/audit"
	"rental-manager/internal/middleware"
	"rental-manager/internal/models"
	"rental-manager/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MaintenanceHandler owns tenant-filed repair requests.
type MaintenanceHandler struct {
	DB *gorm.DB
}

func NewMaintenanceHandler(db *gorm.DB) *MaintenanceHandler {
	return &MaintenanceHandler{DB: db}
}

type createMaintenanceReq struct {
	UnitID      uint   `json:"unit_id" binding:"required"`
	Description string `json:"description" binding:"required,max=2000"`
	Urgency     string `json:"urgency"`
}

// CreateRequest files a request. Tenants can only file against a unit
// they hold an active lease on.
func (h *MaintenanceHandler) CreateRequest(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)

	var req createMaintenanceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "missing required fields")
		return
	}

	urgency := strings.ToLower(strings.TrimSpace(req.Urgency))
	if urgency == "" {
		urgency = "medium"
	}
	switch urgency {
	case "low", "medium", "high":
	default:
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid urgency value")
		return
	}

	var count int64
	err := h.DB.Model(&models.Lease{}).
		Where("tenant_id = ? AND unit_id = ? AND status = ?", actor.ID, req.UnitID, models.LeaseActive).
		Count(&count).Error
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to check lease")
		return
	}
	if count == 0 {
		util.Error(c, http.StatusForbidden, util.CodeForbidden, "no active lease on this unit")
		return
	}

	request := models.MaintenanceRequest{
		TenantID:    actor.ID,
		UnitID:      req.UnitID,
		Description: req.Description,
		Urgency:     urgency,
		Status:      models.MaintenanceOpen,
	}
	if err := h.DB.Create(&request).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create request")
		return
	}

	audit.Record(h.DB, actor.ID, "MAINTENANCE_CREATE", "MAINTENANCE", request.ID, map[string]interface{}{
		"unit_id": request.UnitID,
		"urgency": request.Urgency,
	})

	util.Created(c, util.Response{"request": request})
}

// ListRequests returns requests with optional status/urgency filters.
func (h *MaintenanceHandler) ListRequests(c *gin.Context) {
	q := h.DB.Model(&models.MaintenanceRequest{}).Preload("Unit")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", strings.ToLower(status))
	}
	if urgency := c.Query("urgency"); urgency != "" {
		q = q.Where("urgency = ?", strings.ToLower(urgency))
	}

	var requests []models.MaintenanceRequest
	if err := q.Order("created_at DESC, id DESC").Find(&requests).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query requests")
		return
	}
	util.Success(c, util.Response{"requests": requests})
}

// ListRequestsByTenant returns a tenant's requests. Tenants may only
// read their own.
func (h *MaintenanceHandler) ListRequestsByTenant(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)

	tenantID, ok := idParam(c, "tenantId")
	if !ok {
		return
	}
	if actor.Role == models.RoleTenant && tenantID != actor.ID {
		util.Error(c, http.StatusForbidden, util.CodeForbidden, "access denied")
		return
	}

	var requests []models.MaintenanceRequest
	err := h.DB.Preload("Unit").
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC, id DESC").
		Find(&requests).Error
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query requests")
		return
	}
	util.Success(c, util.Response{"requests": requests})
}

type updateMaintenanceStatusReq struct {
	Status string `json:"status" binding:"required"`
}

// UpdateRequestStatus moves a request through its workflow.
func (h *MaintenanceHandler) UpdateRequestStatus(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)

	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req updateMaintenanceStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "status is required")
		return
	}
	status := models.MaintenanceStatus(strings.ToLower(req.Status))
	if !models.ValidMaintenanceStatus(status) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid status value")
		return
	}

	var request models.MaintenanceRequest
	if err := h.DB.First(&request, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "request not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query request")
		}
		return
	}

	request.Status = status
	if err := h.DB.Save(&request).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update request")
		return
	}

	audit.Record(h.DB, actor.ID, "MAINTENANCE_STATUS_UPDATE", "MAINTENANCE", request.ID, map[string]interface{}{
		"status": string(status),
	})

	util.Success(c, util.Response{"request": request})
}

// DeleteRequest soft-deletes a request.
func (h *MaintenanceHandler) DeleteRequest(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)

	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var request models.MaintenanceRequest
	if err := h.DB.First(&request, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "request not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query request")
		}
		return
	}
	if err := h.DB.Delete(&request).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete request")
		return
	}

	audit.Record(h.DB, actor.ID, "MAINTENANCE_DELETE", "MAINTENANCE", request.ID, nil)

	util.Success(c, util.Response{"message": "request deleted"})
}
