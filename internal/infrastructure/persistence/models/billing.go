package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/preschool/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice aggregate root.
type InvoiceModel struct {
	AggregateModel
	InvoiceNumber string                `gorm:"type:varchar(50);not null;uniqueIndex"`
	SchoolID      uuid.UUID             `gorm:"type:uuid;not null;index"`
	StudentID     uuid.UUID             `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal       `gorm:"type:decimal(12,2);not null"`
	DueDate       time.Time             `gorm:"not null;index"`
	Status        billing.InvoiceStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	Notes         string                `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice entity.
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	return &billing.Invoice{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		InvoiceNumber:     m.InvoiceNumber,
		SchoolID:          m.SchoolID,
		StudentID:         m.StudentID,
		Amount:            m.Amount,
		DueDate:           m.DueDate,
		Status:            m.Status,
		Notes:             m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Invoice entity.
func (m *InvoiceModel) FromDomain(inv *billing.Invoice) {
	m.FromDomainAggregateRoot(inv.BaseAggregateRoot)
	m.InvoiceNumber = inv.InvoiceNumber
	m.SchoolID = inv.SchoolID
	m.StudentID = inv.StudentID
	m.Amount = inv.Amount
	m.DueDate = inv.DueDate
	m.Status = inv.Status
	m.Notes = inv.Notes
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice.
func InvoiceModelFromDomain(inv *billing.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}

// PaymentModel is the persistence model for the Payment aggregate root.
type PaymentModel struct {
	AggregateModel
	InvoiceID     uuid.UUID             `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal       `gorm:"type:decimal(12,2);not null"`
	PaymentMethod string                `gorm:"type:varchar(50);not null"`
	TransactionID string                `gorm:"type:varchar(100)"`
	Status        billing.PaymentStatus `gorm:"type:varchar(20);not null;default:'completed';index"`
	PaymentDate   time.Time             `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity.
func (m *PaymentModel) ToDomain() *billing.Payment {
	return &billing.Payment{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		InvoiceID:         m.InvoiceID,
		Amount:            m.Amount,
		PaymentMethod:     m.PaymentMethod,
		TransactionID:     m.TransactionID,
		Status:            m.Status,
		PaymentDate:       m.PaymentDate,
	}
}

// FromDomain populates the persistence model from a domain Payment entity.
func (m *PaymentModel) FromDomain(p *billing.Payment) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.InvoiceID = p.InvoiceID
	m.Amount = p.Amount
	m.PaymentMethod = p.PaymentMethod
	m.TransactionID = p.TransactionID
	m.Status = p.Status
	m.PaymentDate = p.PaymentDate
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment.
func PaymentModelFromDomain(p *billing.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}

// ReceiptModel is the persistence model for the Receipt entity.
type ReceiptModel struct {
	BaseModel
	PaymentID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	ReceiptNumber string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	ReceiptURL    string    `gorm:"type:varchar(500)"`
	GeneratedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ReceiptModel) TableName() string {
	return "receipts"
}

// ToDomain converts the persistence model to a domain Receipt entity.
func (m *ReceiptModel) ToDomain() *billing.Receipt {
	return &billing.Receipt{
		BaseEntity:    m.BaseModel.ToDomain(),
		PaymentID:     m.PaymentID,
		ReceiptNumber: m.ReceiptNumber,
		ReceiptURL:    m.ReceiptURL,
		GeneratedAt:   m.GeneratedAt,
	}
}

// FromDomain populates the persistence model from a domain Receipt entity.
func (m *ReceiptModel) FromDomain(r *billing.Receipt) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.PaymentID = r.PaymentID
	m.ReceiptNumber = r.ReceiptNumber
	m.ReceiptURL = r.ReceiptURL
	m.GeneratedAt = r.GeneratedAt
}

// ReceiptModelFromDomain creates a new persistence model from a domain Receipt.
func ReceiptModelFromDomain(r *billing.Receipt) *ReceiptModel {
	m := &ReceiptModel{}
	m.FromDomain(r)
	return m
}
