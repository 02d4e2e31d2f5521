package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	billingapp "github.com/preschool/backend/internal/application/billing"
)

// ReceiptHandler handles receipt API endpoints
type ReceiptHandler struct {
	*BaseHandler
	receiptService *billingapp.ReceiptService
}

// NewReceiptHandler creates a new ReceiptHandler
func NewReceiptHandler(base *BaseHandler, receiptService *billingapp.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{
		BaseHandler:    base,
		receiptService: receiptService,
	}
}

// RegisterRoutes registers all receipt routes
func (h *ReceiptHandler) RegisterRoutes(rg *gin.RouterGroup) {
	receipts := rg.Group("/receipts")
	{
		receipts.GET("", h.ListReceipts)
		receipts.GET("/number/:number", h.GetReceiptByNumber)
		receipts.GET("/:id", h.GetReceipt)
		receipts.GET("/:id/download", h.DownloadReceipt)
		receipts.POST("/:id/regenerate", h.RegenerateReceipt)
	}
}

// ListReceipts returns a paginated receipt list with payment context
func (h *ReceiptHandler) ListReceipts(c *gin.Context) {
	var filter billingapp.ReceiptListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}
	list, ok := h.bindList(c, "generated_at", "receipt_number", "created_at")
	if !ok {
		return
	}
	filter.Page = list.Page
	filter.PageSize = list.PageSize
	filter.OrderBy = list.OrderBy
	filter.OrderDir = list.OrderDir

	receipts, total, err := h.receiptService.ListReceipts(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, receipts, filter.Page, filter.PageSize, total)
}

// GetReceipt returns a receipt with its payment and invoice context
func (h *ReceiptHandler) GetReceipt(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	receipt, err := h.receiptService.GetReceipt(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receipt)
}

// GetReceiptByNumber looks a receipt up by its receipt number
func (h *ReceiptHandler) GetReceiptByNumber(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "Missing receipt number")
		return
	}

	receipt, err := h.receiptService.GetReceiptByNumber(c.Request.Context(), number)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receipt)
}

// DownloadReceipt renders the receipt as a plain-text attachment
func (h *ReceiptHandler) DownloadReceipt(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	rendered, err := h.receiptService.RenderReceipt(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rendered.Filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(rendered.Content))
}

// RegenerateReceipt re-issues the receipt document URL
func (h *ReceiptHandler) RegenerateReceipt(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	receipt, err := h.receiptService.RegenerateReceipt(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receipt)
}
