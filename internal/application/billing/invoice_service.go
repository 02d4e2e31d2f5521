package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/preschool/backend/internal/domain/billing"
	"github.com/preschool/backend/internal/domain/shared"
	"github.com/preschool/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InvoiceService provides application-level invoice operations
type InvoiceService struct {
	invoiceRepo billing.InvoiceRepository
	paymentRepo billing.PaymentRepository
	logger      *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo billing.InvoiceRepository,
	paymentRepo billing.PaymentRepository,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		logger:      logger,
	}
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	SchoolID      uuid.UUID       `json:"school_id"`
	StudentID     uuid.UUID       `json:"student_id"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       time.Time       `json:"due_date"`
	Status        string          `json:"status"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// InvoiceDetailResponse is an invoice with its payment history and the
// derived ledger amounts
type InvoiceDetailResponse struct {
	InvoiceResponse
	AmountPaid decimal.Decimal   `json:"amount_paid"`
	AmountDue  decimal.Decimal   `json:"amount_due"`
	Payments   []PaymentResponse `json:"payments"`
}

// CreateInvoiceRequest represents a request to create an invoice
type CreateInvoiceRequest struct {
	SchoolID  uuid.UUID       `json:"school_id" binding:"required"`
	StudentID uuid.UUID       `json:"student_id" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	DueDate   time.Time       `json:"due_date" binding:"required"`
	Notes     string          `json:"notes"`
}

// UpdateInvoiceRequest represents a partial invoice update. Nil fields
// are left untouched.
type UpdateInvoiceRequest struct {
	Amount  *decimal.Decimal `json:"amount"`
	DueDate *time.Time       `json:"due_date"`
	Status  *string          `json:"status"`
	Notes   *string          `json:"notes"`
}

// InvoiceListFilter defines filtering options for invoice list queries
type InvoiceListFilter struct {
	Search    string     `form:"search"`
	SchoolID  *uuid.UUID `form:"school_id"`
	StudentID *uuid.UUID `form:"student_id"`
	Status    string     `form:"status"`
	FromDate  *time.Time `form:"from_date" time_format:"2006-01-02"`
	ToDate    *time.Time `form:"to_date" time_format:"2006-01-02"`
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
	OrderBy   string     `form:"-"`
	OrderDir  string     `form:"-"`
}

// CreateInvoice creates a new invoice in pending status
func (s *InvoiceService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	invoice, err := billing.NewInvoice(
		req.SchoolID,
		req.StudentID,
		valueobject.NewMoneyUSD(req.Amount),
		req.DueDate,
		req.Notes,
	)
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	s.logger.Info("Invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("amount", invoice.Amount.String()))

	return toInvoiceResponse(invoice), nil
}

// GetInvoice gets an invoice with its payment history and derived balance
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*InvoiceDetailResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.FindAll(ctx, billing.PaymentFilter{InvoiceID: &id})
	if err != nil {
		return nil, err
	}

	totalPaid, err := s.paymentRepo.SumCompletedByInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &InvoiceDetailResponse{
		InvoiceResponse: *toInvoiceResponse(invoice),
		AmountPaid:      totalPaid,
		AmountDue:       invoice.AmountDue(totalPaid),
		Payments:        make([]PaymentResponse, len(payments)),
	}
	for i, p := range payments {
		detail.Payments[i] = *toPaymentResponse(&p)
	}
	return detail, nil
}

// GetInvoiceByNumber gets an invoice by its document number
func (s *InvoiceService) GetInvoiceByNumber(ctx context.Context, number string) (*InvoiceDetailResponse, error) {
	invoice, err := s.invoiceRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	return s.GetInvoice(ctx, invoice.ID)
}

// ListInvoices lists invoices with filtering and pagination
func (s *InvoiceService) ListInvoices(ctx context.Context, filter InvoiceListFilter) ([]InvoiceResponse, int64, error) {
	domainFilter := billing.InvoiceFilter{
		SchoolID:  filter.SchoolID,
		StudentID: filter.StudentID,
		FromDate:  filter.FromDate,
		ToDate:    filter.ToDate,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search
	domainFilter.OrderBy = filter.OrderBy
	domainFilter.OrderDir = filter.OrderDir

	if filter.Status != "" {
		status := billing.InvoiceStatus(filter.Status)
		domainFilter.Status = &status
	}

	invoices, err := s.invoiceRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.invoiceRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		responses[i] = *toInvoiceResponse(&inv)
	}
	return responses, total, nil
}

// UpdateInvoice applies a partial update to an invoice. Status set here is
// an administrative override; payment-driven status changes go through the
// payment recorder.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id uuid.UUID, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var status *billing.InvoiceStatus
	if req.Status != nil {
		st := billing.InvoiceStatus(*req.Status)
		status = &st
	}

	if err := invoice.Amend(req.Amount, req.DueDate, status, req.Notes); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	return toInvoiceResponse(invoice), nil
}

// DeleteInvoice deletes an invoice. Invoices with recorded payments cannot
// be deleted; the payment ledger would be orphaned.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	count, err := s.paymentRepo.CountByInvoice(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("INVOICE_HAS_PAYMENTS", "Cannot delete an invoice with recorded payments")
	}

	if err := s.invoiceRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Invoice deleted", zap.String("invoice_id", id.String()))
	return nil
}

// GetSummary aggregates a school's invoices by status over an optional
// creation date range
func (s *InvoiceService) GetSummary(ctx context.Context, schoolID uuid.UUID, fromDate, toDate *time.Time) (*billing.InvoiceSummary, error) {
	if schoolID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SCHOOL", "School ID cannot be empty")
	}
	return s.invoiceRepo.Summarize(ctx, schoolID, fromDate, toDate)
}

func toInvoiceResponse(inv *billing.Invoice) *InvoiceResponse {
	return &InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		SchoolID:      inv.SchoolID,
		StudentID:     inv.StudentID,
		Amount:        inv.Amount,
		DueDate:       inv.DueDate,
		Status:        string(inv.Status),
		Notes:         inv.Notes,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}
