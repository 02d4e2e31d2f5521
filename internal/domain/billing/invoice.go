package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/preschool/backend/internal/domain/shared"
	"github.com/preschool/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the payment status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending" // No completed payments recorded
	InvoiceStatusPartial InvoiceStatus = "partial" // 0 < total paid < amount
	InvoiceStatusPaid    InvoiceStatus = "paid"    // Total paid >= amount
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusPartial, InvoiceStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// Invoice represents a billing record for a student's fee obligation.
// Its status is kept consistent with the sum of completed payments by
// the reconciliation performed inside payment and refund transactions.
type Invoice struct {
	shared.BaseAggregateRoot
	InvoiceNumber string          `json:"invoice_number"`
	SchoolID      uuid.UUID       `json:"school_id"`
	StudentID     uuid.UUID       `json:"student_id"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       time.Time       `json:"due_date"`
	Status        InvoiceStatus   `json:"status"`
	Notes         string          `json:"notes"`
}

// NewInvoice creates a new invoice in pending status
func NewInvoice(
	schoolID uuid.UUID,
	studentID uuid.UUID,
	amount valueobject.Money,
	dueDate time.Time,
	notes string,
) (*Invoice, error) {
	if schoolID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SCHOOL", "School ID cannot be empty")
	}
	if studentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STUDENT", "Student ID cannot be empty")
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Invoice amount must be positive")
	}
	if dueDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date cannot be empty")
	}

	return &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceNumber:     NewInvoiceNumber(time.Now()),
		SchoolID:          schoolID,
		StudentID:         studentID,
		Amount:            amount.Amount(),
		DueDate:           dueDate,
		Status:            InvoiceStatusPending,
		Notes:             notes,
	}, nil
}

// GetAmountMoney returns the invoice amount as a Money value object
func (inv *Invoice) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(inv.Amount)
}

// ReconcileAfterPayment recomputes the status from the given total of
// completed payments. When the total is zero the invoice keeps whatever
// status it already has; payment recording never forces a downgrade.
func (inv *Invoice) ReconcileAfterPayment(totalPaid decimal.Decimal) {
	switch {
	case totalPaid.GreaterThanOrEqual(inv.Amount):
		inv.Status = InvoiceStatusPaid
	case totalPaid.GreaterThan(decimal.Zero):
		inv.Status = InvoiceStatusPartial
	}
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
}

// ReconcileAfterRefund recomputes the status after a payment reversal.
// Unlike ReconcileAfterPayment, a zero total resolves to pending: once a
// refund empties the ledger the invoice is outstanding again.
func (inv *Invoice) ReconcileAfterRefund(totalPaid decimal.Decimal) {
	switch {
	case totalPaid.GreaterThanOrEqual(inv.Amount):
		inv.Status = InvoiceStatusPaid
	case totalPaid.GreaterThan(decimal.Zero):
		inv.Status = InvoiceStatusPartial
	default:
		inv.Status = InvoiceStatusPending
	}
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
}

// AmountDue returns the remaining balance given a total of completed payments.
// Negative values indicate overpayment, which the ledger permits.
func (inv *Invoice) AmountDue(totalPaid decimal.Decimal) decimal.Decimal {
	return inv.Amount.Sub(totalPaid)
}

// Amend applies a partial update. Nil fields are left untouched. Status is an
// administrative override outside the payment-derived reconciliation; callers
// wanting payment-consistent status must go through the payment recorder.
func (inv *Invoice) Amend(amount *decimal.Decimal, dueDate *time.Time, status *InvoiceStatus, notes *string) error {
	if amount != nil {
		if amount.LessThanOrEqual(decimal.Zero) {
			return shared.NewDomainError("INVALID_AMOUNT", "Invoice amount must be positive")
		}
		inv.Amount = *amount
	}
	if dueDate != nil {
		inv.DueDate = *dueDate
	}
	if status != nil {
		if !status.IsValid() {
			return shared.NewDomainError("INVALID_STATUS", "Invoice status is not valid")
		}
		inv.Status = *status
	}
	if notes != nil {
		inv.Notes = *notes
	}
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
	return nil
}
