package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/preschool/backend/internal/domain/shared"
	"github.com/preschool/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the status of a payment
type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed" // Funds received, counts toward the invoice
	PaymentStatusRefunded  PaymentStatus = "refunded"  // Reversed, excluded from reconciliation
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	return s == PaymentStatusCompleted || s == PaymentStatusRefunded
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// Payment represents a recorded transfer of funds against one invoice
type Payment struct {
	shared.BaseAggregateRoot
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	TransactionID string          `json:"transaction_id"`
	Status        PaymentStatus   `json:"status"`
	PaymentDate   time.Time       `json:"payment_date"`
}

// NewPayment creates a completed payment against the given invoice
func NewPayment(
	invoiceID uuid.UUID,
	amount valueobject.Money,
	paymentMethod string,
	transactionID string,
) (*Payment, error) {
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVOICE", "Invoice ID cannot be empty")
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if paymentMethod == "" {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method cannot be empty")
	}

	return &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceID:         invoiceID,
		Amount:            amount.Amount(),
		PaymentMethod:     paymentMethod,
		TransactionID:     transactionID,
		Status:            PaymentStatusCompleted,
		PaymentDate:       time.Now(),
	}, nil
}

// GetAmountMoney returns the payment amount as a Money value object
func (p *Payment) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.Amount)
}

// IsCompleted returns true if the payment still counts toward its invoice
func (p *Payment) IsCompleted() bool {
	return p.Status == PaymentStatusCompleted
}

// Patch applies a direct field update. Nil fields are left untouched.
// Patching status here does not re-run invoice reconciliation; refunds
// must go through the refund operation to keep the ledger consistent.
func (p *Payment) Patch(status *PaymentStatus, transactionID *string) error {
	if status != nil {
		if !status.IsValid() {
			return shared.NewDomainError("INVALID_STATUS", "Payment status is not valid")
		}
		p.Status = *status
	}
	if transactionID != nil {
		p.TransactionID = *transactionID
	}
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}
