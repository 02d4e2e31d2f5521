package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/preschool/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceFilter defines filtering options for invoice queries.
// Predicates are conjunctive; nil fields are omitted.
type InvoiceFilter struct {
	shared.Filter
	SchoolID  *uuid.UUID     // Filter by school
	StudentID *uuid.UUID     // Filter by student
	Status    *InvoiceStatus // Filter by status
	FromDate  *time.Time     // Filter by creation date range start
	ToDate    *time.Time     // Filter by creation date range end
}

// PaymentFilter defines filtering options for payment queries
type PaymentFilter struct {
	shared.Filter
	InvoiceID *uuid.UUID     // Filter by owning invoice
	Status    *PaymentStatus // Filter by status
}

// ReceiptFilter defines filtering options for receipt queries
type ReceiptFilter struct {
	shared.Filter
	PaymentID *uuid.UUID // Filter by payment
}

// InvoiceStatusBucket is one row of the invoice summary aggregation
type InvoiceStatusBucket struct {
	Status InvoiceStatus   `json:"status"`
	Count  int64           `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// InvoiceSummary aggregates invoices for a school by status,
// with an ungrouped grand total
type InvoiceSummary struct {
	TotalInvoices int64                 `json:"total_invoices"`
	TotalAmount   decimal.Decimal       `json:"total_amount"`
	ByStatus      []InvoiceStatusBucket `json:"by_status"`
}

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	// FindByID finds an invoice by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindByIDForUpdate finds an invoice by ID and locks the row for the
	// duration of the surrounding transaction, serializing concurrent
	// ledger writes on the same invoice
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindByNumber finds an invoice by its invoice number
	FindByNumber(ctx context.Context, invoiceNumber string) (*Invoice, error)

	// FindAll finds invoices matching the filter, newest first
	FindAll(ctx context.Context, filter InvoiceFilter) ([]Invoice, error)

	// Count counts invoices matching the filter
	Count(ctx context.Context, filter InvoiceFilter) (int64, error)

	// Save creates or updates an invoice
	Save(ctx context.Context, invoice *Invoice) error

	// Delete removes an invoice. Callers must check the deletion guard
	// (no referencing payments) first.
	Delete(ctx context.Context, id uuid.UUID) error

	// Summarize aggregates invoices for a school by status over an
	// optional creation date range
	Summarize(ctx context.Context, schoolID uuid.UUID, fromDate, toDate *time.Time) (*InvoiceSummary, error)
}

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	// FindByID finds a payment by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindAll finds payments matching the filter, newest first
	FindAll(ctx context.Context, filter PaymentFilter) ([]Payment, error)

	// Count counts payments matching the filter
	Count(ctx context.Context, filter PaymentFilter) (int64, error)

	// Save creates or updates a payment
	Save(ctx context.Context, payment *Payment) error

	// MarkRefunded flips a payment from completed to refunded with
	// compare-and-swap semantics: the update applies only if the row
	// still reports completed. Returns shared.ErrInvalidState when no
	// row matched, which covers both absent and already-refunded.
	MarkRefunded(ctx context.Context, id uuid.UUID) error

	// SumCompletedByInvoice sums the amounts of all completed payments
	// on the given invoice
	SumCompletedByInvoice(ctx context.Context, invoiceID uuid.UUID) (decimal.Decimal, error)

	// CountByInvoice counts all payments referencing the given invoice,
	// regardless of status. Used by the invoice deletion guard.
	CountByInvoice(ctx context.Context, invoiceID uuid.UUID) (int64, error)
}

// ReceiptRepository defines the interface for receipt persistence
type ReceiptRepository interface {
	// FindByID finds a receipt by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Receipt, error)

	// FindByNumber finds a receipt by its receipt number
	FindByNumber(ctx context.Context, receiptNumber string) (*Receipt, error)

	// FindByPaymentID finds the receipt minted for the given payment
	FindByPaymentID(ctx context.Context, paymentID uuid.UUID) (*Receipt, error)

	// FindAll finds receipt list items matching the filter, newest first
	FindAll(ctx context.Context, filter ReceiptFilter) ([]ReceiptListItem, error)

	// Count counts receipts matching the filter
	Count(ctx context.Context, filter ReceiptFilter) (int64, error)

	// FindDetails loads the rendering projection for a receipt by ID
	FindDetails(ctx context.Context, id uuid.UUID) (*ReceiptDetails, error)

	// FindDetailsByNumber loads the rendering projection by receipt number
	FindDetailsByNumber(ctx context.Context, receiptNumber string) (*ReceiptDetails, error)

	// Save creates or updates a receipt
	Save(ctx context.Context, receipt *Receipt) error
}

// TxRepositories bundles the repositories bound to one transaction
type TxRepositories struct {
	Invoices InvoiceRepository
	Payments PaymentRepository
	Receipts ReceiptRepository
}

// UnitOfWork runs ledger operations inside one atomic transaction.
// The function receives transaction-bound repositories; returning an
// error rolls everything back, so no partial ledger state survives.
type UnitOfWork interface {
	InTransaction(ctx context.Context, fn func(repos TxRepositories) error) error
}
