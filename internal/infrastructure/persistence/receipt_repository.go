package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/preschool/backend/internal/domain/billing"
	"github.com/preschool/backend/internal/domain/shared"
	"github.com/preschool/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormReceiptRepository implements billing.ReceiptRepository using GORM
type GormReceiptRepository struct {
	db *gorm.DB
}

// NewGormReceiptRepository creates a new GormReceiptRepository
func NewGormReceiptRepository(db *gorm.DB) *GormReceiptRepository {
	return &GormReceiptRepository{db: db}
}

// FindByID finds a receipt by its ID
func (r *GormReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Receipt, error) {
	var model models.ReceiptModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a receipt by its receipt number
func (r *GormReceiptRepository) FindByNumber(ctx context.Context, receiptNumber string) (*billing.Receipt, error) {
	var model models.ReceiptModel
	if err := r.db.WithContext(ctx).
		Where("receipt_number = ?", receiptNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPaymentID finds the receipt minted for the given payment
func (r *GormReceiptRepository) FindByPaymentID(ctx context.Context, paymentID uuid.UUID) (*billing.Receipt, error) {
	var model models.ReceiptModel
	if err := r.db.WithContext(ctx).
		Where("payment_id = ?", paymentID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// receiptListRow is the flat scan target for the receipt list join
type receiptListRow struct {
	ID            uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
	PaymentID     uuid.UUID
	ReceiptNumber string
	ReceiptURL    string
	GeneratedAt   time.Time
	PaymentAmount decimal.Decimal
	PaymentMethod string
	InvoiceNumber string
	StudentID     uuid.UUID
}

func (row *receiptListRow) toListItem() billing.ReceiptListItem {
	return billing.ReceiptListItem{
		Receipt: billing.Receipt{
			BaseEntity: shared.BaseEntity{
				ID:        row.ID,
				CreatedAt: row.CreatedAt,
				UpdatedAt: row.UpdatedAt,
			},
			PaymentID:     row.PaymentID,
			ReceiptNumber: row.ReceiptNumber,
			ReceiptURL:    row.ReceiptURL,
			GeneratedAt:   row.GeneratedAt,
		},
		PaymentAmount: row.PaymentAmount,
		PaymentMethod: row.PaymentMethod,
		InvoiceNumber: row.InvoiceNumber,
		StudentID:     row.StudentID,
	}
}

const receiptListSelect = `receipts.id, receipts.created_at, receipts.updated_at,
receipts.payment_id, receipts.receipt_number, receipts.receipt_url, receipts.generated_at,
payments.amount AS payment_amount, payments.payment_method,
invoices.invoice_number, invoices.student_id`

// FindAll finds receipt list items matching the filter, joined with payment
// and invoice metadata, newest first
func (r *GormReceiptRepository) FindAll(ctx context.Context, filter billing.ReceiptFilter) ([]billing.ReceiptListItem, error) {
	var rows []receiptListRow
	query := r.db.WithContext(ctx).Model(&models.ReceiptModel{}).
		Select(receiptListSelect).
		Joins("LEFT JOIN payments ON payments.id = receipts.payment_id").
		Joins("LEFT JOIN invoices ON invoices.id = payments.invoice_id")
	query = r.applyFilter(query, filter)

	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]billing.ReceiptListItem, len(rows))
	for i := range rows {
		items[i] = rows[i].toListItem()
	}
	return items, nil
}

// Count counts receipts matching the filter
func (r *GormReceiptRepository) Count(ctx context.Context, filter billing.ReceiptFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ReceiptModel{})
	if filter.PaymentID != nil {
		query = query.Where("payment_id = ?", *filter.PaymentID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// receiptDetailsRow is the flat scan target for the rendering projection
type receiptDetailsRow struct {
	receiptListRow
	PaymentDate      time.Time
	TransactionID    string
	InvoiceAmount    decimal.Decimal
	InvoiceDueDate   time.Time
	StudentFirstName string
	StudentLastName  string
	SchoolName       string
	SchoolAddress    string
	SchoolEmail      string
	SchoolPhone      string
}

func (row *receiptDetailsRow) toDetails() *billing.ReceiptDetails {
	item := row.toListItem()
	return &billing.ReceiptDetails{
		Receipt:          item.Receipt,
		PaymentAmount:    row.PaymentAmount,
		PaymentMethod:    row.PaymentMethod,
		PaymentDate:      row.PaymentDate,
		TransactionID:    row.TransactionID,
		InvoiceNumber:    row.InvoiceNumber,
		InvoiceAmount:    row.InvoiceAmount,
		InvoiceDueDate:   row.InvoiceDueDate,
		StudentFirstName: row.StudentFirstName,
		StudentLastName:  row.StudentLastName,
		SchoolName:       row.SchoolName,
		SchoolAddress:    row.SchoolAddress,
		SchoolEmail:      row.SchoolEmail,
		SchoolPhone:      row.SchoolPhone,
	}
}

const receiptDetailsSelect = receiptListSelect + `,
payments.payment_date, payments.transaction_id,
invoices.amount AS invoice_amount, invoices.due_date AS invoice_due_date,
students.first_name AS student_first_name, students.last_name AS student_last_name,
schools.name AS school_name, schools.address AS school_address,
schools.email AS school_email, schools.phone AS school_phone`

func (r *GormReceiptRepository) detailsQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.ReceiptModel{}).
		Select(receiptDetailsSelect).
		Joins("LEFT JOIN payments ON payments.id = receipts.payment_id").
		Joins("LEFT JOIN invoices ON invoices.id = payments.invoice_id").
		Joins("LEFT JOIN students ON students.id = invoices.student_id").
		Joins("LEFT JOIN schools ON schools.id = invoices.school_id")
}

// FindDetails loads the rendering projection for a receipt by ID
func (r *GormReceiptRepository) FindDetails(ctx context.Context, id uuid.UUID) (*billing.ReceiptDetails, error) {
	var row receiptDetailsRow
	result := r.detailsQuery(ctx).
		Where("receipts.id = ?", id).
		Limit(1).
		Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, shared.ErrNotFound
	}
	return row.toDetails(), nil
}

// FindDetailsByNumber loads the rendering projection by receipt number
func (r *GormReceiptRepository) FindDetailsByNumber(ctx context.Context, receiptNumber string) (*billing.ReceiptDetails, error) {
	var row receiptDetailsRow
	result := r.detailsQuery(ctx).
		Where("receipts.receipt_number = ?", receiptNumber).
		Limit(1).
		Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, shared.ErrNotFound
	}
	return row.toDetails(), nil
}

// Save creates or updates a receipt
func (r *GormReceiptRepository) Save(ctx context.Context, receipt *billing.Receipt) error {
	model := models.ReceiptModelFromDomain(receipt)
	return r.db.WithContext(ctx).Save(model).Error
}

func (r *GormReceiptRepository) applyFilter(query *gorm.DB, filter billing.ReceiptFilter) *gorm.DB {
	if filter.PaymentID != nil {
		query = query.Where("receipts.payment_id = ?", *filter.PaymentID)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order("receipts." + filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("receipts.created_at DESC")
	}

	return query
}

// Ensure GormReceiptRepository implements billing.ReceiptRepository
var _ billing.ReceiptRepository = (*GormReceiptRepository)(nil)
