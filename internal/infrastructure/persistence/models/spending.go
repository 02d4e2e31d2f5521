package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/preschool/backend/internal/domain/spending"
	"github.com/shopspring/decimal"
)

// ExpenseModel is the persistence model for the Expense entity.
type ExpenseModel struct {
	BaseModel
	SchoolID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedBy   *uuid.UUID      `gorm:"type:uuid;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Description string          `gorm:"type:text"`
	ReceiptURL  string          `gorm:"type:varchar(500)"`
	ExpenseDate time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense entity.
func (m *ExpenseModel) ToDomain() *spending.Expense {
	return &spending.Expense{
		BaseEntity:  m.BaseModel.ToDomain(),
		SchoolID:    m.SchoolID,
		CategoryID:  m.CategoryID,
		CreatedBy:   m.CreatedBy,
		Amount:      m.Amount,
		Description: m.Description,
		ReceiptURL:  m.ReceiptURL,
		ExpenseDate: m.ExpenseDate,
	}
}

// FromDomain populates the persistence model from a domain Expense entity.
func (m *ExpenseModel) FromDomain(e *spending.Expense) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.SchoolID = e.SchoolID
	m.CategoryID = e.CategoryID
	m.CreatedBy = e.CreatedBy
	m.Amount = e.Amount
	m.Description = e.Description
	m.ReceiptURL = e.ReceiptURL
	m.ExpenseDate = e.ExpenseDate
}

// ExpenseModelFromDomain creates a new persistence model from a domain Expense.
func ExpenseModelFromDomain(e *spending.Expense) *ExpenseModel {
	m := &ExpenseModel{}
	m.FromDomain(e)
	return m
}

// CategoryModel is the persistence model for the expense Category entity.
type CategoryModel struct {
	BaseModel
	SchoolID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Description string    `gorm:"type:text"`
	IsCustom    bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "expense_categories"
}

// ToDomain converts the persistence model to a domain Category entity.
func (m *CategoryModel) ToDomain() *spending.Category {
	return &spending.Category{
		BaseEntity:  m.BaseModel.ToDomain(),
		SchoolID:    m.SchoolID,
		Name:        m.Name,
		Description: m.Description,
		IsCustom:    m.IsCustom,
	}
}

// FromDomain populates the persistence model from a domain Category entity.
func (m *CategoryModel) FromDomain(c *spending.Category) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.SchoolID = c.SchoolID
	m.Name = c.Name
	m.Description = c.Description
	m.IsCustom = c.IsCustom
}

// CategoryModelFromDomain creates a new persistence model from a domain Category.
func CategoryModelFromDomain(c *spending.Category) *CategoryModel {
	m := &CategoryModel{}
	m.FromDomain(c)
	return m
}

// RemittanceModel is the persistence model for the Remittance entity.
type RemittanceModel struct {
	BaseModel
	SchoolID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreatedBy      *uuid.UUID      `gorm:"type:uuid;index"`
	Amount         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	RemittanceDate time.Time       `gorm:"not null;index"`
	BankDetails    string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (RemittanceModel) TableName() string {
	return "remittances"
}

// ToDomain converts the persistence model to a domain Remittance entity.
func (m *RemittanceModel) ToDomain() *spending.Remittance {
	return &spending.Remittance{
		BaseEntity:     m.BaseModel.ToDomain(),
		SchoolID:       m.SchoolID,
		CreatedBy:      m.CreatedBy,
		Amount:         m.Amount,
		RemittanceDate: m.RemittanceDate,
		BankDetails:    m.BankDetails,
	}
}

// FromDomain populates the persistence model from a domain Remittance entity.
func (m *RemittanceModel) FromDomain(r *spending.Remittance) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.SchoolID = r.SchoolID
	m.CreatedBy = r.CreatedBy
	m.Amount = r.Amount
	m.RemittanceDate = r.RemittanceDate
	m.BankDetails = r.BankDetails
}

// RemittanceModelFromDomain creates a new persistence model from a domain Remittance.
func RemittanceModelFromDomain(r *spending.Remittance) *RemittanceModel {
	m := &RemittanceModel{}
	m.FromDomain(r)
	return m
}
