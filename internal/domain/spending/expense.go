package spending

import (
	"time"

	"github.com/google/uuid"
	"github.com/preschool/backend/internal/domain/shared"
	"github.com/preschool/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Expense is a school spending record tracked for reporting only.
// No cross-record invariant applies.
type Expense struct {
	shared.BaseEntity
	SchoolID    uuid.UUID       `json:"school_id"`
	CategoryID  *uuid.UUID      `json:"category_id"`
	CreatedBy   *uuid.UUID      `json:"created_by"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	ReceiptURL  string          `json:"receipt_url"`
	ExpenseDate time.Time       `json:"expense_date"`
}

// NewExpense creates a new expense record
func NewExpense(
	schoolID uuid.UUID,
	categoryID *uuid.UUID,
	createdBy *uuid.UUID,
	amount valueobject.Money,
	description string,
	receiptURL string,
	expenseDate time.Time,
) (*Expense, error) {
	if schoolID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SCHOOL", "School ID cannot be empty")
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}
	if expenseDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_EXPENSE_DATE", "Expense date cannot be empty")
	}

	return &Expense{
		BaseEntity:  shared.NewBaseEntity(),
		SchoolID:    schoolID,
		CategoryID:  categoryID,
		CreatedBy:   createdBy,
		Amount:      amount.Amount(),
		Description: description,
		ReceiptURL:  receiptURL,
		ExpenseDate: expenseDate,
	}, nil
}

// Patch applies a partial update; nil fields are left untouched
func (e *Expense) Patch(categoryID *uuid.UUID, amount *decimal.Decimal, description, receiptURL *string, expenseDate *time.Time) error {
	if categoryID != nil {
		e.CategoryID = categoryID
	}
	if amount != nil {
		if amount.LessThanOrEqual(decimal.Zero) {
			return shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
		}
		e.Amount = *amount
	}
	if description != nil {
		e.Description = *description
	}
	if receiptURL != nil {
		e.ReceiptURL = *receiptURL
	}
	if expenseDate != nil {
		e.ExpenseDate = *expenseDate
	}
	e.UpdatedAt = time.Now()
	return nil
}

// ExpenseListItem is the list projection: expense joined with category
// name and creator name for display.
type ExpenseListItem struct {
	Expense
	CategoryName     string `json:"category_name"`
	CreatorFirstName string `json:"creator_first_name"`
	CreatorLastName  string `json:"creator_last_name"`
}

// ExpenseCategoryBucket is one row of the expense summary aggregation
type ExpenseCategoryBucket struct {
	CategoryName string          `json:"category_name"`
	Count        int64           `json:"count"`
	Amount       decimal.Decimal `json:"amount"`
}

// ExpenseSummary aggregates expenses for a school by category,
// with an ungrouped grand total
type ExpenseSummary struct {
	TotalExpenses int64                   `json:"total_expenses"`
	TotalAmount   decimal.Decimal         `json:"total_amount"`
	ByCategory    []ExpenseCategoryBucket `json:"by_category"`
}
