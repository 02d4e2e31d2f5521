package spending

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/preschool/backend/internal/domain/shared"
	"github.com/preschool/backend/internal/domain/shared/valueobject"
	"github.com/preschool/backend/internal/domain/spending"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ExpenseService provides application-level expense operations
type ExpenseService struct {
	expenseRepo  spending.ExpenseRepository
	categoryRepo spending.CategoryRepository
	logger       *zap.Logger
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(
	expenseRepo spending.ExpenseRepository,
	categoryRepo spending.CategoryRepository,
	logger *zap.Logger,
) *ExpenseService {
	return &ExpenseService{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	SchoolID    uuid.UUID       `json:"school_id"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
	CreatedBy   *uuid.UUID      `json:"created_by,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	ReceiptURL  string          `json:"receipt_url,omitempty"`
	ExpenseDate time.Time       `json:"expense_date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ExpenseListItemResponse is an expense list row with category and creator
// names for display
type ExpenseListItemResponse struct {
	ExpenseResponse
	CategoryName string `json:"category_name,omitempty"`
	CreatorName  string `json:"creator_name,omitempty"`
}

// CreateExpenseRequest represents a request to record an expense
type CreateExpenseRequest struct {
	SchoolID    uuid.UUID       `json:"school_id" binding:"required"`
	CategoryID  *uuid.UUID      `json:"category_id"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
	ReceiptURL  string          `json:"receipt_url"`
	ExpenseDate time.Time       `json:"expense_date" binding:"required"`
	CreatedBy   *uuid.UUID      `json:"-"` // Set from JWT context, not from request body
}

// UpdateExpenseRequest represents a partial expense update. Nil fields are
// left untouched.
type UpdateExpenseRequest struct {
	CategoryID  *uuid.UUID       `json:"category_id"`
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description"`
	ReceiptURL  *string          `json:"receipt_url"`
	ExpenseDate *time.Time       `json:"expense_date"`
}

// ExpenseListFilter defines filtering options for expense list queries
type ExpenseListFilter struct {
	Search     string     `form:"search"`
	SchoolID   *uuid.UUID `form:"school_id"`
	CategoryID *uuid.UUID `form:"category_id"`
	FromDate   *time.Time `form:"from_date" time_format:"2006-01-02"`
	ToDate     *time.Time `form:"to_date" time_format:"2006-01-02"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	OrderBy    string     `form:"-"`
	OrderDir   string     `form:"-"`
}

// CreateExpense records a new expense. When a category is given it must
// exist and belong to the same school.
func (s *ExpenseService) CreateExpense(ctx context.Context, req CreateExpenseRequest) (*ExpenseResponse, error) {
	if req.CategoryID != nil {
		if err := s.checkCategory(ctx, req.SchoolID, *req.CategoryID); err != nil {
			return nil, err
		}
	}

	expense, err := spending.NewExpense(
		req.SchoolID,
		req.CategoryID,
		req.CreatedBy,
		valueobject.NewMoneyUSD(req.Amount),
		req.Description,
		req.ReceiptURL,
		req.ExpenseDate,
	)
	if err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	s.logger.Info("Expense recorded",
		zap.String("expense_id", expense.ID.String()),
		zap.String("amount", expense.Amount.String()))

	return toExpenseResponse(expense), nil
}

// GetExpense gets an expense with its category and creator names
func (s *ExpenseService) GetExpense(ctx context.Context, id uuid.UUID) (*ExpenseListItemResponse, error) {
	item, err := s.expenseRepo.FindDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	return toExpenseListItemResponse(item), nil
}

// ListExpenses lists expenses with filtering and pagination
func (s *ExpenseService) ListExpenses(ctx context.Context, filter ExpenseListFilter) ([]ExpenseListItemResponse, int64, error) {
	domainFilter := spending.ExpenseFilter{
		SchoolID:   filter.SchoolID,
		CategoryID: filter.CategoryID,
		FromDate:   filter.FromDate,
		ToDate:     filter.ToDate,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search
	domainFilter.OrderBy = filter.OrderBy
	domainFilter.OrderDir = filter.OrderDir

	items, err := s.expenseRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.expenseRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ExpenseListItemResponse, len(items))
	for i, item := range items {
		responses[i] = *toExpenseListItemResponse(&item)
	}
	return responses, total, nil
}

// UpdateExpense applies a partial update to an expense
func (s *ExpenseService) UpdateExpense(ctx context.Context, id uuid.UUID, req UpdateExpenseRequest) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if err := s.checkCategory(ctx, expense.SchoolID, *req.CategoryID); err != nil {
			return nil, err
		}
	}

	if err := expense.Patch(req.CategoryID, req.Amount, req.Description, req.ReceiptURL, req.ExpenseDate); err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// DeleteExpense deletes an expense
func (s *ExpenseService) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	if err := s.expenseRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Expense deleted", zap.String("expense_id", id.String()))
	return nil
}

// GetSummary aggregates a school's expenses by category name over an
// optional expense date range
func (s *ExpenseService) GetSummary(ctx context.Context, schoolID uuid.UUID, fromDate, toDate *time.Time) (*spending.ExpenseSummary, error) {
	if schoolID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SCHOOL", "School ID cannot be empty")
	}
	return s.expenseRepo.Summarize(ctx, schoolID, fromDate, toDate)
}

func (s *ExpenseService) checkCategory(ctx context.Context, schoolID, categoryID uuid.UUID) error {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if category.SchoolID != schoolID {
		return shared.NewDomainError("CATEGORY_SCHOOL_MISMATCH", "Category belongs to a different school")
	}
	return nil
}

func toExpenseResponse(e *spending.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:          e.ID,
		SchoolID:    e.SchoolID,
		CategoryID:  e.CategoryID,
		CreatedBy:   e.CreatedBy,
		Amount:      e.Amount,
		Description: e.Description,
		ReceiptURL:  e.ReceiptURL,
		ExpenseDate: e.ExpenseDate,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toExpenseListItemResponse(item *spending.ExpenseListItem) *ExpenseListItemResponse {
	resp := &ExpenseListItemResponse{
		ExpenseResponse: *toExpenseResponse(&item.Expense),
		CategoryName:    item.CategoryName,
	}
	if item.CreatorFirstName != "" || item.CreatorLastName != "" {
		resp.CreatorName = item.CreatorFirstName + " " + item.CreatorLastName
	}
	return resp
}
