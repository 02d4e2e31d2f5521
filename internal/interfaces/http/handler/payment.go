package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	billingapp "github.com/preschool/backend/internal/application/billing"
	"github.com/preschool/backend/internal/domain/shared"
)

// PaymentHandler handles payment API endpoints
type PaymentHandler struct {
	*BaseHandler
	paymentService *billingapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(base *BaseHandler, paymentService *billingapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:    base,
		paymentService: paymentService,
	}
}

// RegisterRoutes registers all payment routes
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	{
		payments.GET("", h.ListPayments)
		payments.GET("/:id", h.GetPayment)
		payments.POST("", h.RecordPayment)
		payments.PUT("/:id", h.UpdatePayment)
		payments.POST("/:id/refund", h.RefundPayment)
	}
}

// RecordPayment records a payment against an invoice. The payment, the
// invoice status change and the receipt land in one transaction.
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	var req billingapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.paymentService.RecordPayment(c.Request.Context(), req)
	if err != nil {
		// A missing invoice is the caller's mistake, not a ledger failure
		if errors.Is(err, shared.ErrNotFound) {
			h.NotFound(c, "Invoice not found")
			return
		}
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// RefundPayment refunds a completed payment and re-reconciles the invoice
func (h *PaymentHandler) RefundPayment(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	result, err := h.paymentService.RefundPayment(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetPayment returns a payment and its receipt, if one was minted
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	payment, receipt, err := h.paymentService.GetPayment(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{
		"payment": payment,
		"receipt": receipt,
	})
}

// ListPayments returns a paginated, filtered payment list
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	var filter billingapp.PaymentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}
	list, ok := h.bindList(c, "payment_date", "amount", "created_at", "status")
	if !ok {
		return
	}
	filter.Page = list.Page
	filter.PageSize = list.PageSize
	filter.OrderBy = list.OrderBy
	filter.OrderDir = list.OrderDir

	payments, total, err := h.paymentService.ListPayments(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, payments, filter.Page, filter.PageSize, total)
}

// UpdatePayment patches payment fields without re-running reconciliation
func (h *PaymentHandler) UpdatePayment(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req billingapp.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	payment, err := h.paymentService.UpdatePayment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payment)
}
