package handler

import (
	"net/http"
	"strconv"
	"strings"

	"rental-manager/internal/audit"
	"rental-manager/internal/middleware"
	"rental-manager/internal/models"
	"rental-manager/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UnitHandler owns unit CRUD. Units are soft-deleted, never removed.
type UnitHandler struct {
	DB *gorm.DB
}

func NewUnitHandler(db *gorm.DB) *UnitHandler {
	return &UnitHandler{DB: db}
}

type createUnitReq struct {
	UnitNumber     string   `json:"unit_number" binding:"required,max=32"`
	PropertyID     string   `json:"property_id" binding:"required,max=64"`
	Floor          *int     `json:"floor" binding:"required"`
	UnitType       string   `json:"unit_type" binding:"max=32"`
	AreaSqm        float64  `json:"area_sqm" binding:"required,gt=0"`
	BasePriceEtb   *int64   `json:"base_price_etb" binding:"required"`
	Amenities      []string `json:"amenities"`
	ViewAttributes []string `json:"view_attributes"`
}

// CreateUnit registers a new vacant unit.
func (h *UnitHandler) CreateUnit(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)

	var req createUnitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "missing required fields")
		return
	}
	if *req.Floor < 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "floor must be non-negative")
		return
	}
	if *req.BasePriceEtb < 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "base price must be non-negative")
		return
	}

	unitNumber := strings.TrimSpace(req.UnitNumber)
	propertyID := strings.TrimSpace(req.PropertyID)

	// Unscoped: the unique index covers soft-deleted rows too
	var count int64
	err := h.DB.Unscoped().Model(&models.Unit{}).
		Where("unit_number = ? AND property_id = ?", unitNumber, propertyID).
		Count(&count).Error
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query units")
		return
	}
	if count > 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam,
			"unit number already exists for this property")
		return
	}

	unit := models.Unit{
		UnitNumber:     unitNumber,
		PropertyID:     propertyID,
		Floor:          *req.Floor,
		UnitType:       req.UnitType,
		AreaSqm:        req.AreaSqm,
		BasePriceEtb:   *req.BasePriceEtb,
		Status:         models.UnitVacant,
		Amenities:      req.Amenities,
		ViewAttributes: req.ViewAttributes,
	}
	if err := h.DB.Create(&unit).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create unit")
		return
	}

	audit.Record(h.DB, actor.ID, "UNIT_CREATE", "UNIT", unit.ID, map[string]interface{}{
		"unit_number": unit.UnitNumber,
		"property_id": unit.PropertyID,
	})

	util.Created(c, util.Response{"unit": unit})
}

// ListUnits returns non-deleted units with optional filters.
func (h *UnitHandler) ListUnits(c *gin.Context) {
	q := h.DB.Model(&models.Unit{})
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", strings.ToUpper(status))
	}
	if propertyID := c.Query("property_id"); propertyID != "" {
		q = q.Where("property_id = ?", propertyID)
	}
	if floorStr := c.Query("floor"); floorStr != "" {
		floor, err := strconv.Atoi(floorStr)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid floor")
			return
		}
		q = q.Where("floor = ?", floor)
	}

	var units []models.Unit
	if err := q.Order("property_id ASC, unit_number ASC").Find(&units).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query units")
		return
	}
	util.Success(c, util.Response{"units": units})
}

// GetUnit returns one non-deleted unit.
func (h *UnitHandler) GetUnit(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var unit models.Unit
	if err := h.DB.First(&unit, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "unit not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query unit")
		}
		return
	}
	util.Success(c, util.Response{"unit": unit})
}

type updateUnitReq struct {
	UnitType       *string   `json:"unit_type"`
	Floor          *int      `json:"floor"`
	AreaSqm        *float64  `json:"area_sqm"`
	BasePriceEtb   *int64    `json:"base_price_etb"`
	Status         *string   `json:"status"`
	Amenities      *[]string `json:"amenities"`
	ViewAttributes *[]string `json:"view_attributes"`
}

// UpdateUnit applies a partial update. Changing pricing attributes here
// never touches existing leases; their rent is a creation-time snapshot.
func (h *UnitHandler) UpdateUnit(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)

	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req updateUnitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	var unit models.Unit
	if err := h.DB.First(&unit, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "unit not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query unit")
		}
		return
	}

	if req.UnitType != nil {
		unit.UnitType = *req.UnitType
	}
	if req.Floor != nil {
		if *req.Floor < 0 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "floor must be non-negative")
			return
		}
		unit.Floor = *req.Floor
	}
	if req.AreaSqm != nil {
		if *req.AreaSqm <= 0 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "area must be positive")
			return
		}
		unit.AreaSqm = *req.AreaSqm
	}
	if req.BasePriceEtb != nil {
		if *req.BasePriceEtb < 0 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "base price must be non-negative")
			return
		}
		unit.BasePriceEtb = *req.BasePriceEtb
	}
	if req.Status != nil {
		status := models.UnitStatus(strings.ToUpper(*req.Status))
		switch status {
		case models.UnitVacant, models.UnitOccupied, models.UnitUnderMaintenance:
			unit.Status = status
		default:
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid status value")
			return
		}
	}
	if req.Amenities != nil {
		unit.Amenities = *req.Amenities
	}
	if req.ViewAttributes != nil {
		unit.ViewAttributes = *req.ViewAttributes
	}

	if err := h.DB.Save(&unit).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update unit")
		return
	}

	audit.Record(h.DB, actor.ID, "UNIT_UPDATE", "UNIT", unit.ID, nil)

	util.Success(c, util.Response{"unit": unit})
}

// DeleteUnit soft-deletes a unit; listings stop returning it.
func (h *UnitHandler) DeleteUnit(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)

	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var unit models.Unit
	if err := h.DB.First(&unit, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "unit not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query unit")
		}
		return
	}

	if err := h.DB.Delete(&unit).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete unit")
		return
	}

	audit.Record(h.DB, actor.ID, "UNIT_DELETE", "UNIT", unit.ID, nil)

	util.Success(c, util.Response{"message": "unit soft deleted"})
}
