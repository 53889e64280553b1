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

// FinanceHandler exposes the derived financial summaries.
type FinanceHandler struct {
	Finance *service.FinanceService
}

func NewFinanceHandler(db *gorm.DB) *FinanceHandler {
	return &FinanceHandler{Finance: service.NewFinanceService(db)}
}

// LeaseSummary returns billed/paid/outstanding figures for one lease.
func (h *FinanceHandler) LeaseSummary(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	summary, err := h.Finance.SummarizeLease(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, util.Response{"summary": summary})
}

// TenantSummary aggregates across a tenant's active leases. Tenants may
// only read their own summary.
func (h *FinanceHandler) TenantSummary(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)

	tenantID, ok := idParam(c, "tenantId")
	if !ok {
		return
	}
	if actor.Role == models.RoleTenant && tenantID != actor.ID {
		util.Error(c, http.StatusForbidden, util.CodeForbidden, "access denied")
		return
	}

	summary, err := h.Finance.SummarizeTenant(tenantID)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, util.Response{"summary": summary})
}

// PortfolioSummary aggregates the whole book.
func (h *FinanceHandler) PortfolioSummary(c *gin.Context) {
	summary, err := h.Finance.SummarizePortfolio()
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, util.Response{"summary": summary})
}
