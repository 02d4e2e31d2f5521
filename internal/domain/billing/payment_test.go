package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/preschool/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayment(t *testing.T) {
	t.Run("creates completed payment", func(t *testing.T) {
		invoiceID := uuid.New()
		p, err := NewPayment(invoiceID, valueobject.NewMoneyUSDFromFloat(40), "card", "txn-123")
		require.NoError(t, err)
		assert.Equal(t, invoiceID, p.InvoiceID)
		assert.Equal(t, PaymentStatusCompleted, p.Status)
		assert.True(t, p.IsCompleted())
		assert.False(t, p.PaymentDate.IsZero())
	})

	t.Run("rejects empty invoice", func(t *testing.T) {
		_, err := NewPayment(uuid.Nil, valueobject.NewMoneyUSDFromFloat(40), "card", "")
		assert.Error(t, err)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewPayment(uuid.New(), valueobject.ZeroUSD(), "card", "")
		assert.Error(t, err)
	})

	t.Run("rejects empty payment method", func(t *testing.T) {
		_, err := NewPayment(uuid.New(), valueobject.NewMoneyUSDFromFloat(40), "", "")
		assert.Error(t, err)
	})
}

func TestPaymentPatch(t *testing.T) {
	t.Run("patches supplied fields only", func(t *testing.T) {
		p, err := NewPayment(uuid.New(), valueobject.NewMoneyUSDFromFloat(40), "cash", "")
		require.NoError(t, err)

		txn := "bank-ref-9"
		require.NoError(t, p.Patch(nil, &txn))
		assert.Equal(t, txn, p.TransactionID)
		assert.Equal(t, PaymentStatusCompleted, p.Status)

		status := PaymentStatusRefunded
		require.NoError(t, p.Patch(&status, nil))
		assert.Equal(t, PaymentStatusRefunded, p.Status)
		assert.Equal(t, txn, p.TransactionID)
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		p, err := NewPayment(uuid.New(), valueobject.NewMoneyUSDFromFloat(40), "cash", "")
		require.NoError(t, err)

		status := PaymentStatus("voided")
		assert.Error(t, p.Patch(&status, nil))
	})
}
