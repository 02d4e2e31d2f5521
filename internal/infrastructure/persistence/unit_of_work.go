package persistence

import (
	"context"

	"github.com/preschool/backend/internal/domain/billing"
	"gorm.io/gorm"
)

// GormUnitOfWork implements billing.UnitOfWork over gorm transactions.
// Each InTransaction call opens one database transaction and hands the
// callback repositories bound to it; an error from the callback rolls the
// whole transaction back.
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewGormUnitOfWork creates a new GormUnitOfWork
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// InTransaction runs fn inside a single database transaction
func (u *GormUnitOfWork) InTransaction(ctx context.Context, fn func(repos billing.TxRepositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(billing.TxRepositories{
			Invoices: NewGormInvoiceRepository(tx),
			Payments: NewGormPaymentRepository(tx),
			Receipts: NewGormReceiptRepository(tx),
		})
	})
}

// Ensure GormUnitOfWork implements billing.UnitOfWork
var _ billing.UnitOfWork = (*GormUnitOfWork)(nil)
