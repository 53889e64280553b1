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

// PaymentHandler exposes the payment ledger over HTTP.
type PaymentHandler struct {
	Payments *service.PaymentService
}

func NewPaymentHandler(db *gorm.DB) *PaymentHandler {
	return &PaymentHandler{Payments: service.NewPaymentService(db)}
}

type createPaymentReq struct {
	LeaseID               uint   `json:"lease_id" binding:"required"`
	AmountEtb             int64  `json:"amount_etb" binding:"required"`
	TransactionDate       string `json:"transaction_date" binding:"required"`
	PaymentMethod         string `json:"payment_method" binding:"required"`
	ExternalTransactionID string `json:"external_transaction_id"`
	// accepted in the body but ignored: new payments always start PENDING
	Status string `json:"status"`
}

// CreatePayment records a PENDING payment against a lease. A status
// supplied by the caller is discarded.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)

	var req createPaymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "missing required fields")
		return
	}
	if err := util.ValidateAmount(req.AmountEtb); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	txDate, err := util.ParseDate(req.TransactionDate)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid transaction_date")
		return
	}

	payment, err := h.Payments.Create(service.CreatePaymentInput{
		LeaseID:               req.LeaseID,
		AmountEtb:             req.AmountEtb,
		TransactionDate:       txDate,
		PaymentMethod:         req.PaymentMethod,
		ExternalTransactionID: req.ExternalTransactionID,
		CreatedByID:           actor.ID,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Created(c, util.Response{"payment": payment})
}

type updatePaymentStatusReq struct {
	Status string `json:"status" binding:"required"`
}

// UpdatePaymentStatus decides a pending payment.
func (h *PaymentHandler) UpdatePaymentStatus(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)

	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req updatePaymentStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "status is required")
		return
	}

	payment, err := h.Payments.UpdateStatus(id, models.PaymentStatus(req.Status), actor.ID)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, util.Response{"payment": payment})
}

// ListPayments returns payments with optional status/method/search
// filters.
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	filter := service.PaymentFilter{
		Method: c.Query("method"),
		Search: c.Query("search"),
	}
	if status := c.Query("status"); status != "" {
		filter.Status = models.PaymentStatus(status)
	}

	payments, err := h.Payments.List(filter)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, util.Response{"payments": payments})
}

// ListPaymentsByLease returns one lease's payments.
func (h *PaymentHandler) ListPaymentsByLease(c *gin.Context) {
	leaseID, ok := idParam(c, "id")
	if !ok {
		return
	}

	payments, err := h.Payments.ListByLease(leaseID)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, util.Response{"payments": payments})
}

// ListPaymentsByTenant returns the payments across all of a tenant's
// leases. Tenants may only read their own.
func (h *PaymentHandler) ListPaymentsByTenant(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)

	tenantID, ok := idParam(c, "tenantId")
	if !ok {
		return
	}
	if actor.Role == models.RoleTenant && tenantID != actor.ID {
		util.Error(c, http.StatusForbidden, util.CodeForbidden, "access denied")
		return
	}

	payments, err := h.Payments.ListByTenant(tenantID)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, util.Response{"payments": payments})
}
