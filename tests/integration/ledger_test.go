package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	billingapp "github.com/preschool/backend/internal/application/billing"
	"github.com/preschool/backend/internal/domain/billing"
	"github.com/preschool/backend/internal/domain/shared"
	"github.com/preschool/backend/internal/infrastructure/persistence"
	"github.com/preschool/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// defaultSchoolID is seeded by the first migration
var defaultSchoolID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

type ledgerFixture struct {
	invoiceService *billingapp.InvoiceService
	paymentService *billingapp.PaymentService
	receiptService *billingapp.ReceiptService
	db             *gorm.DB
	studentID      uuid.UUID
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()

	tdb := NewTestDB(t)
	log := zap.NewNop()

	invoiceRepo := persistence.NewGormInvoiceRepository(tdb.DB)
	paymentRepo := persistence.NewGormPaymentRepository(tdb.DB)
	receiptRepo := persistence.NewGormReceiptRepository(tdb.DB)
	uow := persistence.NewGormUnitOfWork(tdb.DB)

	student := &models.StudentModel{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		SchoolID:  defaultSchoolID,
		FirstName: "Mia",
		LastName:  "Johnson",
	}
	require.NoError(t, tdb.DB.Create(student).Error)

	return &ledgerFixture{
		invoiceService: billingapp.NewInvoiceService(invoiceRepo, paymentRepo, log),
		paymentService: billingapp.NewPaymentService(uow, paymentRepo, receiptRepo, log),
		receiptService: billingapp.NewReceiptService(receiptRepo, log),
		db:             tdb.DB,
		studentID:      student.ID,
	}
}

func (f *ledgerFixture) createInvoice(t *testing.T, amount string) *billingapp.InvoiceResponse {
	t.Helper()
	invoice, err := f.invoiceService.CreateInvoice(context.Background(), billingapp.CreateInvoiceRequest{
		SchoolID:  defaultSchoolID,
		StudentID: f.studentID,
		Amount:    decimal.RequireFromString(amount),
		DueDate:   time.Now().AddDate(0, 1, 0),
	})
	require.NoError(t, err)
	return invoice
}

func TestLedgerRecordPayment(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	f := newLedgerFixture(t)
	ctx := context.Background()

	t.Run("payment, invoice status and receipt commit together", func(t *testing.T) {
		invoice := f.createInvoice(t, "300.00")

		result, err := f.paymentService.RecordPayment(ctx, billingapp.RecordPaymentRequest{
			InvoiceID:     invoice.ID,
			Amount:        decimal.RequireFromString("300.00"),
			PaymentMethod: "card",
			TransactionID: "txn-001",
		})
		require.NoError(t, err)

		assert.Equal(t, "paid", result.InvoiceStatus)
		assert.True(t, result.AmountDue.IsZero())
		assert.NotEmpty(t, result.Receipt.ReceiptNumber)

		detail, err := f.invoiceService.GetInvoice(ctx, invoice.ID)
		require.NoError(t, err)
		assert.Equal(t, "paid", detail.Status)
		require.Len(t, detail.Payments, 1)

		receipt, err := f.receiptService.GetReceipt(ctx, result.Receipt.ID)
		require.NoError(t, err)
		assert.Equal(t, invoice.InvoiceNumber, receipt.InvoiceNumber)
		assert.Equal(t, "Mia", receipt.StudentFirstName)
	})

	t.Run("partial payment leaves invoice partial", func(t *testing.T) {
		invoice := f.createInvoice(t, "200.00")

		result, err := f.paymentService.RecordPayment(ctx, billingapp.RecordPaymentRequest{
			InvoiceID:     invoice.ID,
			Amount:        decimal.RequireFromString("80.00"),
			PaymentMethod: "cash",
		})
		require.NoError(t, err)

		assert.Equal(t, "partial", result.InvoiceStatus)
		assert.Equal(t, "120", result.AmountDue.String())
	})

	t.Run("unknown invoice rolls back the payment row", func(t *testing.T) {
		missing := uuid.New()
		_, err := f.paymentService.RecordPayment(ctx, billingapp.RecordPaymentRequest{
			InvoiceID:     missing,
			Amount:        decimal.RequireFromString("10.00"),
			PaymentMethod: "cash",
		})
		require.Error(t, err)

		var count int64
		require.NoError(t, f.db.Model(&models.PaymentModel{}).
			Where("invoice_id = ?", missing).
			Count(&count).Error)
		assert.Zero(t, count)
	})
}

func TestLedgerConcurrentPayments(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	f := newLedgerFixture(t)
	ctx := context.Background()
	invoice := f.createInvoice(t, "100.00")

	// Two parents pay the same invoice at once. The row lock serializes
	// the reconciliation, so both payments persist and the final status
	// reflects the full completed total.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.paymentService.RecordPayment(ctx, billingapp.RecordPaymentRequest{
				InvoiceID:     invoice.ID,
				Amount:        decimal.RequireFromString("60.00"),
				PaymentMethod: "card",
			})
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	detail, err := f.invoiceService.GetInvoice(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, "paid", detail.Status)
	assert.Equal(t, "120", detail.AmountPaid.String())
	require.Len(t, detail.Payments, 2)

	var receiptCount int64
	require.NoError(t, f.db.Model(&models.ReceiptModel{}).Count(&receiptCount).Error)
	assert.Equal(t, int64(2), receiptCount)
}

func TestLedgerRefund(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	f := newLedgerFixture(t)
	ctx := context.Background()

	t.Run("refunding the only payment reopens the invoice", func(t *testing.T) {
		invoice := f.createInvoice(t, "150.00")
		recorded, err := f.paymentService.RecordPayment(ctx, billingapp.RecordPaymentRequest{
			InvoiceID:     invoice.ID,
			Amount:        decimal.RequireFromString("150.00"),
			PaymentMethod: "bank_transfer",
		})
		require.NoError(t, err)

		result, err := f.paymentService.RefundPayment(ctx, recorded.Payment.ID)
		require.NoError(t, err)

		assert.Equal(t, string(billing.PaymentStatusRefunded), result.Payment.Status)
		assert.Equal(t, "pending", result.InvoiceStatus)
		assert.Equal(t, "150", result.AmountDue.String())
	})

	t.Run("double refund is rejected", func(t *testing.T) {
		invoice := f.createInvoice(t, "90.00")
		recorded, err := f.paymentService.RecordPayment(ctx, billingapp.RecordPaymentRequest{
			InvoiceID:     invoice.ID,
			Amount:        decimal.RequireFromString("90.00"),
			PaymentMethod: "card",
		})
		require.NoError(t, err)

		_, err = f.paymentService.RefundPayment(ctx, recorded.Payment.ID)
		require.NoError(t, err)

		_, err = f.paymentService.RefundPayment(ctx, recorded.Payment.ID)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PAYMENT_NOT_REFUNDABLE", domainErr.Code)
	})
}
