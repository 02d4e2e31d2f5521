package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/preschool/backend/internal/domain/shared"
	"github.com/preschool/backend/internal/domain/spending"
	"github.com/preschool/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormExpenseRepository implements spending.ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds an expense by its ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*spending.Expense, error) {
	var model models.ExpenseModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// expenseListRow is the flat scan target for the expense list join
type expenseListRow struct {
	ID               uuid.UUID
	CreatedAt        time.Time
	UpdatedAt        time.Time
	SchoolID         uuid.UUID
	CategoryID       *uuid.UUID
	CreatedBy        *uuid.UUID
	Amount           decimal.Decimal
	Description      string
	ReceiptURL       string
	ExpenseDate      time.Time
	CategoryName     string
	CreatorFirstName string
	CreatorLastName  string
}

func (row *expenseListRow) toListItem() spending.ExpenseListItem {
	return spending.ExpenseListItem{
		Expense: spending.Expense{
			BaseEntity: shared.BaseEntity{
				ID:        row.ID,
				CreatedAt: row.CreatedAt,
				UpdatedAt: row.UpdatedAt,
			},
			SchoolID:    row.SchoolID,
			CategoryID:  row.CategoryID,
			CreatedBy:   row.CreatedBy,
			Amount:      row.Amount,
			Description: row.Description,
			ReceiptURL:  row.ReceiptURL,
			ExpenseDate: row.ExpenseDate,
		},
		CategoryName:     row.CategoryName,
		CreatorFirstName: row.CreatorFirstName,
		CreatorLastName:  row.CreatorLastName,
	}
}

const expenseListSelect = `expenses.id, expenses.created_at, expenses.updated_at,
expenses.school_id, expenses.category_id, expenses.created_by, expenses.amount,
expenses.description, expenses.receipt_url, expenses.expense_date,
COALESCE(expense_categories.name, '') AS category_name,
COALESCE(users.first_name, '') AS creator_first_name,
COALESCE(users.last_name, '') AS creator_last_name`

func (r *GormExpenseRepository) listQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.ExpenseModel{}).
		Select(expenseListSelect).
		Joins("LEFT JOIN expense_categories ON expense_categories.id = expenses.category_id").
		Joins("LEFT JOIN users ON users.id = expenses.created_by")
}

// FindDetails loads the expense joined with category and creator names
func (r *GormExpenseRepository) FindDetails(ctx context.Context, id uuid.UUID) (*spending.ExpenseListItem, error) {
	var row expenseListRow
	result := r.listQuery(ctx).
		Where("expenses.id = ?", id).
		Limit(1).
		Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, shared.ErrNotFound
	}
	item := row.toListItem()
	return &item, nil
}

// FindAll finds expense list items matching the filter, ordered by expense
// date then creation time, newest first
func (r *GormExpenseRepository) FindAll(ctx context.Context, filter spending.ExpenseFilter) ([]spending.ExpenseListItem, error) {
	var rows []expenseListRow
	query := r.listQuery(ctx)
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order("expenses." + filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("expenses.expense_date DESC, expenses.created_at DESC")
	}

	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]spending.ExpenseListItem, len(rows))
	for i := range rows {
		items[i] = rows[i].toListItem()
	}
	return items, nil
}

// Count counts expenses matching the filter
func (r *GormExpenseRepository) Count(ctx context.Context, filter spending.ExpenseFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ExpenseModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, expense *spending.Expense) error {
	model := models.ExpenseModelFromDomain(expense)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes an expense
func (r *GormExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ExpenseModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Summarize aggregates a school's expenses by category name over an optional
// expense date range, alongside an ungrouped grand total.
func (r *GormExpenseRepository) Summarize(ctx context.Context, schoolID uuid.UUID, fromDate, toDate *time.Time) (*spending.ExpenseSummary, error) {
	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.ExpenseModel{}).
			Where("expenses.school_id = ?", schoolID)
		if fromDate != nil {
			q = q.Where("expenses.expense_date >= ?", *fromDate)
		}
		if toDate != nil {
			q = q.Where("expenses.expense_date <= ?", *toDate)
		}
		return q
	}

	var total struct {
		Count  int64
		Amount decimal.Decimal
	}
	if err := base().
		Select("COUNT(*) as count, COALESCE(SUM(amount), 0) as amount").
		Scan(&total).Error; err != nil {
		return nil, err
	}

	var buckets []spending.ExpenseCategoryBucket
	if err := base().
		Select("COALESCE(expense_categories.name, 'Uncategorized') AS category_name, COUNT(*) as count, COALESCE(SUM(expenses.amount), 0) as amount").
		Joins("LEFT JOIN expense_categories ON expense_categories.id = expenses.category_id").
		Group("expense_categories.name").
		Order("category_name").
		Scan(&buckets).Error; err != nil {
		return nil, err
	}

	return &spending.ExpenseSummary{
		TotalExpenses: total.Count,
		TotalAmount:   total.Amount,
		ByCategory:    buckets,
	}, nil
}

func (r *GormExpenseRepository) applyFilterWithoutPagination(query *gorm.DB, filter spending.ExpenseFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("expenses.description ILIKE ?", searchPattern)
	}
	if filter.SchoolID != nil {
		query = query.Where("expenses.school_id = ?", *filter.SchoolID)
	}
	if filter.CategoryID != nil {
		query = query.Where("expenses.category_id = ?", *filter.CategoryID)
	}
	if filter.FromDate != nil {
		query = query.Where("expenses.expense_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("expenses.expense_date <= ?", *filter.ToDate)
	}
	return query
}

// Ensure GormExpenseRepository implements spending.ExpenseRepository
var _ spending.ExpenseRepository = (*GormExpenseRepository)(nil)
