package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	invoiceNumberPrefix = "INV"
	receiptNumberPrefix = "RCP"
)

// numberToken returns the uniqueness component of a document number.
// A full UUID keeps generation collision-free without a database
// round-trip; the hyphens are stripped for a compact token.
func numberToken() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}

func formatDocumentNumber(prefix string, at time.Time) string {
	return fmt.Sprintf("%s-%s-%s", prefix, at.Format("20060102"), numberToken())
}

// NewInvoiceNumber generates a unique human-readable invoice number
// in the form INV-YYYYMMDD-<token>
func NewInvoiceNumber(at time.Time) string {
	return formatDocumentNumber(invoiceNumberPrefix, at)
}

// NewReceiptNumber generates a unique human-readable receipt number
// in the form RCP-YYYYMMDD-<token>
func NewReceiptNumber(at time.Time) string {
	return formatDocumentNumber(receiptNumberPrefix, at)
}
