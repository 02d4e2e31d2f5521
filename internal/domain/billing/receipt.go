package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/preschool/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Receipt is the unique proof-of-payment document tied 1:1 to a payment.
// It is minted inside the same transaction that records the payment and
// is never deleted.
type Receipt struct {
	shared.BaseEntity
	PaymentID     uuid.UUID `json:"payment_id"`
	ReceiptNumber string    `json:"receipt_number"`
	ReceiptURL    string    `json:"receipt_url"`
	GeneratedAt   time.Time `json:"generated_at"`
}

// NewReceipt mints a receipt for the given payment
func NewReceipt(paymentID uuid.UUID) (*Receipt, error) {
	if paymentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PAYMENT", "Payment ID cannot be empty")
	}
	now := time.Now()
	return &Receipt{
		BaseEntity:    shared.NewBaseEntity(),
		PaymentID:     paymentID,
		ReceiptNumber: NewReceiptNumber(now),
		GeneratedAt:   now,
	}, nil
}

// Regenerate refreshes the receipt URL and generation time.
// The receipt number is immutable.
func (r *Receipt) Regenerate(url string) {
	r.ReceiptURL = url
	r.GeneratedAt = time.Now()
	r.UpdatedAt = time.Now()
}

// ReceiptDetails is the read projection used for rendering and retrieval:
// the receipt joined with its payment, invoice, student and school rows.
// The joined fields are metadata for display only, not part of the
// receipt's identity.
type ReceiptDetails struct {
	Receipt
	PaymentAmount    decimal.Decimal `json:"payment_amount"`
	PaymentMethod    string          `json:"payment_method"`
	PaymentDate      time.Time       `json:"payment_date"`
	TransactionID    string          `json:"transaction_id"`
	InvoiceNumber    string          `json:"invoice_number"`
	InvoiceAmount    decimal.Decimal `json:"invoice_amount"`
	InvoiceDueDate   time.Time       `json:"invoice_due_date"`
	StudentFirstName string          `json:"student_first_name"`
	StudentLastName  string          `json:"student_last_name"`
	SchoolName       string          `json:"school_name"`
	SchoolAddress    string          `json:"school_address"`
	SchoolEmail      string          `json:"school_email"`
	SchoolPhone      string          `json:"school_phone"`
}

const receiptRule = "========================================"
const receiptDivider = "----------------------------------------"

// RenderText formats the receipt as a fixed-layout plain-text document.
// Deterministic for a given projection snapshot. PDF rendering is left to
// an external formatter; this is the canonical fallback representation.
func (d *ReceiptDetails) RenderText() string {
	transactionID := d.TransactionID
	if transactionID == "" {
		transactionID = "N/A"
	}

	var b strings.Builder
	b.WriteString(receiptRule + "\n")
	b.WriteString("         PAYMENT RECEIPT\n")
	b.WriteString(receiptRule + "\n\n")
	fmt.Fprintf(&b, "Receipt Number: %s\n", d.ReceiptNumber)
	fmt.Fprintf(&b, "Date: %s\n\n", d.GeneratedAt.Format("2006-01-02"))
	b.WriteString(receiptDivider + "\n")
	b.WriteString("School Information\n")
	b.WriteString(receiptDivider + "\n")
	fmt.Fprintf(&b, "%s\n", d.SchoolName)
	fmt.Fprintf(&b, "%s\n", d.SchoolAddress)
	fmt.Fprintf(&b, "Email: %s\n", d.SchoolEmail)
	fmt.Fprintf(&b, "Phone: %s\n\n", d.SchoolPhone)
	b.WriteString(receiptDivider + "\n")
	b.WriteString("Student Information\n")
	b.WriteString(receiptDivider + "\n")
	fmt.Fprintf(&b, "Name: %s %s\n\n", d.StudentFirstName, d.StudentLastName)
	b.WriteString(receiptDivider + "\n")
	b.WriteString("Payment Details\n")
	b.WriteString(receiptDivider + "\n")
	fmt.Fprintf(&b, "Invoice Number: %s\n", d.InvoiceNumber)
	fmt.Fprintf(&b, "Invoice Amount: $%s\n", d.InvoiceAmount.StringFixed(2))
	fmt.Fprintf(&b, "Payment Amount: $%s\n", d.PaymentAmount.StringFixed(2))
	fmt.Fprintf(&b, "Payment Method: %s\n", d.PaymentMethod)
	fmt.Fprintf(&b, "Payment Date: %s\n", d.PaymentDate.Format("2006-01-02"))
	fmt.Fprintf(&b, "Transaction ID: %s\n\n", transactionID)
	b.WriteString(receiptRule + "\n")
	b.WriteString("       Thank you for your payment!\n")
	b.WriteString(receiptRule + "\n")
	return b.String()
}

// ReceiptListItem is the list projection: receipt plus light payment and
// invoice context for display in tables.
type ReceiptListItem struct {
	Receipt
	PaymentAmount decimal.Decimal `json:"payment_amount"`
	PaymentMethod string          `json:"payment_method"`
	InvoiceNumber string          `json:"invoice_number"`
	StudentID     uuid.UUID       `json:"student_id"`
}
