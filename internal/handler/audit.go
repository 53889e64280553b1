package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"rental-manager/internal/models"
	"rental-manager/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuditHandler serves the audit trail for administrators.
type AuditHandler struct {
	DB *gorm.DB
}

func NewAuditHandler(db *gorm.DB) *AuditHandler {
	return &AuditHandler{DB: db}
}

// ListLogs returns audit entries, paged, with optional user, action,
// entity, and date-range filters.
func (h *AuditHandler) ListLogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	base := h.DB.Model(&models.AuditLog{})

	if userIDStr := c.Query("user_id"); userIDStr != "" {
		userID, ok := parseID(c, userIDStr, "user_id")
		if !ok {
			return
		}
		base = base.Where("user_id = ?", userID)
	}
	if entityType := c.Query("entity_type"); entityType != "" {
		base = base.Where("entity_type = ?", strings.ToUpper(entityType))
	}
	if action := strings.TrimSpace(c.Query("q")); action != "" {
		base = base.Where("action LIKE ?", "%"+strings.ToUpper(action)+"%")
	}

	if startStr := c.Query("start"); startStr != "" {
		start, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid start date")
			return
		}
		base = base.Where("created_at >= ?", start)
	}
	if endStr := c.Query("end"); endStr != "" {
		end, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid end date")
			return
		}
		base = base.Where("created_at < ?", end.Add(24*time.Hour))
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query logs")
		return
	}

	var logs []models.AuditLog
	err := base.Order("created_at DESC, id DESC").
		Limit(size).
		Offset(offset).
		Find(&logs).Error
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query logs")
		return
	}

	util.Success(c, util.Response{
		"items": logs,
		"total": total,
		"page":  page,
		"size":  size,
	})
}
