package spending

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/preschool/backend/internal/domain/shared"
)

// ExpenseFilter defines filtering options for expense queries.
// Predicates are conjunctive; nil fields are omitted.
type ExpenseFilter struct {
	shared.Filter
	SchoolID   *uuid.UUID
	CategoryID *uuid.UUID
	FromDate   *time.Time // Filter by expense date range start
	ToDate     *time.Time // Filter by expense date range end
}

// RemittanceFilter defines filtering options for remittance queries
type RemittanceFilter struct {
	shared.Filter
	SchoolID *uuid.UUID
	FromDate *time.Time // Filter by remittance date range start
	ToDate   *time.Time // Filter by remittance date range end
}

// ExpenseRepository defines the interface for expense persistence
type ExpenseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)

	// FindDetails loads the expense joined with category and creator names
	FindDetails(ctx context.Context, id uuid.UUID) (*ExpenseListItem, error)

	// FindAll finds expense list items matching the filter,
	// ordered by expense date then creation time, newest first
	FindAll(ctx context.Context, filter ExpenseFilter) ([]ExpenseListItem, error)

	Count(ctx context.Context, filter ExpenseFilter) (int64, error)
	Save(ctx context.Context, expense *Expense) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Summarize aggregates expenses for a school by category name over an
	// optional expense date range
	Summarize(ctx context.Context, schoolID uuid.UUID, fromDate, toDate *time.Time) (*ExpenseSummary, error)
}

// CategoryRepository defines the interface for expense category persistence
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindBySchool lists a school's categories ordered by name
	FindBySchool(ctx context.Context, schoolID uuid.UUID) ([]Category, error)

	Save(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RemittanceRepository defines the interface for remittance persistence
type RemittanceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Remittance, error)

	// FindDetails loads the remittance joined with the creator's name
	FindDetails(ctx context.Context, id uuid.UUID) (*RemittanceListItem, error)

	// FindAll finds remittance list items matching the filter,
	// ordered by remittance date then creation time, newest first
	FindAll(ctx context.Context, filter RemittanceFilter) ([]RemittanceListItem, error)

	Count(ctx context.Context, filter RemittanceFilter) (int64, error)
	Save(ctx context.Context, remittance *Remittance) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Summarize returns the count and sum for a school over an optional
	// remittance date range
	Summarize(ctx context.Context, schoolID uuid.UUID, fromDate, toDate *time.Time) (*RemittanceSummary, error)
}
