package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	spendingapp "github.com/preschool/backend/internal/application/spending"
)

// SpendingHandler handles expense, category and remittance API endpoints
type SpendingHandler struct {
	*BaseHandler
	expenseService    *spendingapp.ExpenseService
	categoryService   *spendingapp.CategoryService
	remittanceService *spendingapp.RemittanceService
}

// NewSpendingHandler creates a new SpendingHandler
func NewSpendingHandler(
	base *BaseHandler,
	expenseService *spendingapp.ExpenseService,
	categoryService *spendingapp.CategoryService,
	remittanceService *spendingapp.RemittanceService,
) *SpendingHandler {
	return &SpendingHandler{
		BaseHandler:       base,
		expenseService:    expenseService,
		categoryService:   categoryService,
		remittanceService: remittanceService,
	}
}

// RegisterRoutes registers all spending routes
func (h *SpendingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	expenses := rg.Group("/expenses")
	{
		expenses.GET("", h.ListExpenses)
		expenses.GET("/reports/summary", h.GetExpenseSummary)
		expenses.GET("/:id", h.GetExpense)
		expenses.POST("", h.CreateExpense)
		expenses.PUT("/:id", h.UpdateExpense)
		expenses.DELETE("/:id", h.DeleteExpense)
	}

	categories := rg.Group("/expense-categories")
	{
		categories.GET("", h.ListCategories)
		categories.GET("/:id", h.GetCategory)
		categories.POST("", h.CreateCategory)
		categories.PUT("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}

	remittances := rg.Group("/remittances")
	{
		remittances.GET("", h.ListRemittances)
		remittances.GET("/reports/summary", h.GetRemittanceSummary)
		remittances.GET("/:id", h.GetRemittance)
		remittances.POST("", h.CreateRemittance)
		remittances.PUT("/:id", h.UpdateRemittance)
		remittances.DELETE("/:id", h.DeleteRemittance)
	}
}

// ===================== Expenses =====================

func (h *SpendingHandler) ListExpenses(c *gin.Context) {
	var filter spendingapp.ExpenseListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}
	list, ok := h.bindList(c, "expense_date", "amount", "created_at")
	if !ok {
		return
	}
	filter.Page = list.Page
	filter.PageSize = list.PageSize
	filter.OrderBy = list.OrderBy
	filter.OrderDir = list.OrderDir

	expenses, total, err := h.expenseService.ListExpenses(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, expenses, filter.Page, filter.PageSize, total)
}

func (h *SpendingHandler) GetExpense(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.GetExpense(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, expense)
}

func (h *SpendingHandler) CreateExpense(c *gin.Context) {
	var req spendingapp.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	if userID := h.getUserID(c); userID != uuid.Nil {
		req.CreatedBy = &userID
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, expense)
}

func (h *SpendingHandler) UpdateExpense(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req spendingapp.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, expense)
}

func (h *SpendingHandler) DeleteExpense(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

func (h *SpendingHandler) GetExpenseSummary(c *gin.Context) {
	var q struct {
		FromDate *time.Time `form:"from_date" time_format:"2006-01-02"`
		ToDate   *time.Time `form:"to_date" time_format:"2006-01-02"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		h.ValidationError(c, err)
		return
	}

	summary, err := h.expenseService.GetSummary(c.Request.Context(), h.getSchoolID(c), q.FromDate, q.ToDate)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// ===================== Categories =====================

func (h *SpendingHandler) ListCategories(c *gin.Context) {
	schoolID := h.getSchoolID(c)
	if raw := c.Query("school_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid school ID")
			return
		}
		schoolID = id
	}

	categories, err := h.categoryService.ListCategories(c.Request.Context(), schoolID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, categories)
}

func (h *SpendingHandler) GetCategory(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	category, err := h.categoryService.GetCategory(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, category)
}

func (h *SpendingHandler) CreateCategory(c *gin.Context) {
	var req spendingapp.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, category)
}

func (h *SpendingHandler) UpdateCategory(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req spendingapp.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, category)
}

func (h *SpendingHandler) DeleteCategory(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ===================== Remittances =====================

func (h *SpendingHandler) ListRemittances(c *gin.Context) {
	var filter spendingapp.RemittanceListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}
	list, ok := h.bindList(c, "remittance_date", "amount", "created_at")
	if !ok {
		return
	}
	filter.Page = list.Page
	filter.PageSize = list.PageSize
	filter.OrderBy = list.OrderBy
	filter.OrderDir = list.OrderDir

	remittances, total, err := h.remittanceService.ListRemittances(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, remittances, filter.Page, filter.PageSize, total)
}

func (h *SpendingHandler) GetRemittance(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	remittance, err := h.remittanceService.GetRemittance(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, remittance)
}

func (h *SpendingHandler) CreateRemittance(c *gin.Context) {
	var req spendingapp.CreateRemittanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	if userID := h.getUserID(c); userID != uuid.Nil {
		req.CreatedBy = &userID
	}

	remittance, err := h.remittanceService.CreateRemittance(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, remittance)
}

func (h *SpendingHandler) UpdateRemittance(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req spendingapp.UpdateRemittanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	remittance, err := h.remittanceService.UpdateRemittance(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, remittance)
}

func (h *SpendingHandler) DeleteRemittance(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.remittanceService.DeleteRemittance(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

func (h *SpendingHandler) GetRemittanceSummary(c *gin.Context) {
	var q struct {
		FromDate *time.Time `form:"from_date" time_format:"2006-01-02"`
		ToDate   *time.Time `form:"to_date" time_format:"2006-01-02"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		h.ValidationError(c, err)
		return
	}

	summary, err := h.remittanceService.GetSummary(c.Request.Context(), h.getSchoolID(c), q.FromDate, q.ToDate)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}
