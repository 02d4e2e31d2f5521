package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/preschool/backend/internal/domain/billing"
	"github.com/preschool/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestGormPaymentRepository_MarkRefunded(t *testing.T) {
	t.Run("refunds a completed payment", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPaymentRepository(db)

		paymentID := uuid.New()
		mock.ExpectExec(`UPDATE "payments" SET .* WHERE id = \$\d+ AND status = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.MarkRefunded(context.Background(), paymentID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrInvalidState when no completed row matched", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPaymentRepository(db)

		paymentID := uuid.New()
		// Absent payment and already-refunded payment both match no row
		mock.ExpectExec(`UPDATE "payments" SET .* WHERE id = \$\d+ AND status = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.MarkRefunded(context.Background(), paymentID)

		assert.Equal(t, shared.ErrInvalidState, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPaymentRepository_SumCompletedByInvoice(t *testing.T) {
	t.Run("sums only completed payments", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPaymentRepository(db)

		invoiceID := uuid.New()
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) as total FROM "payments" WHERE invoice_id = \$1 AND status = \$2`).
			WithArgs(invoiceID, string(billing.PaymentStatusCompleted)).
			WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow("100.00"))

		total, err := repo.SumCompletedByInvoice(context.Background(), invoiceID)

		assert.NoError(t, err)
		assert.Equal(t, "100", total.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns zero when the invoice has no completed payments", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPaymentRepository(db)

		invoiceID := uuid.New()
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) as total FROM "payments" WHERE invoice_id = \$1 AND status = \$2`).
			WithArgs(invoiceID, string(billing.PaymentStatusCompleted)).
			WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow("0"))

		total, err := repo.SumCompletedByInvoice(context.Background(), invoiceID)

		assert.NoError(t, err)
		assert.True(t, total.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPaymentRepository_CountByInvoice(t *testing.T) {
	t.Run("counts payments regardless of status", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPaymentRepository(db)

		invoiceID := uuid.New()
		mock.ExpectQuery(`SELECT count\(\*\) FROM "payments" WHERE invoice_id = \$1`).
			WithArgs(invoiceID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		count, err := repo.CountByInvoice(context.Background(), invoiceID)

		assert.NoError(t, err)
		assert.Equal(t, int64(2), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
