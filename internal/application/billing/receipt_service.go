package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/preschool/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReceiptService provides read and render operations over the receipt
// ledger. Receipts are minted by the payment recorder; this service never
// creates or deletes them.
type ReceiptService struct {
	receiptRepo billing.ReceiptRepository
	logger      *zap.Logger
}

// NewReceiptService creates a new ReceiptService
func NewReceiptService(receiptRepo billing.ReceiptRepository, logger *zap.Logger) *ReceiptService {
	return &ReceiptService{
		receiptRepo: receiptRepo,
		logger:      logger,
	}
}

// ReceiptListItemResponse is a receipt list row with payment and invoice
// context for display
type ReceiptListItemResponse struct {
	ReceiptResponse
	PaymentAmount decimal.Decimal `json:"payment_amount"`
	PaymentMethod string          `json:"payment_method"`
	InvoiceNumber string          `json:"invoice_number"`
	StudentID     uuid.UUID       `json:"student_id"`
}

// ReceiptDetailResponse is the full receipt projection used for rendering
type ReceiptDetailResponse struct {
	ReceiptResponse
	PaymentAmount    decimal.Decimal `json:"payment_amount"`
	PaymentMethod    string          `json:"payment_method"`
	PaymentDate      time.Time       `json:"payment_date"`
	TransactionID    string          `json:"transaction_id,omitempty"`
	InvoiceNumber    string          `json:"invoice_number"`
	InvoiceAmount    decimal.Decimal `json:"invoice_amount"`
	InvoiceDueDate   time.Time       `json:"invoice_due_date"`
	StudentFirstName string          `json:"student_first_name"`
	StudentLastName  string          `json:"student_last_name"`
	SchoolName       string          `json:"school_name"`
}

// ReceiptListFilter defines filtering options for receipt list queries
type ReceiptListFilter struct {
	PaymentID *uuid.UUID `form:"payment_id"`
	Search    string     `form:"search"`
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
	OrderBy   string     `form:"-"`
	OrderDir  string     `form:"-"`
}

// RenderedReceipt is a receipt rendered as a downloadable plain-text
// document
type RenderedReceipt struct {
	Filename string
	Content  string
}

// ListReceipts lists receipts with payment and invoice context
func (s *ReceiptService) ListReceipts(ctx context.Context, filter ReceiptListFilter) ([]ReceiptListItemResponse, int64, error) {
	domainFilter := billing.ReceiptFilter{
		PaymentID: filter.PaymentID,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search
	domainFilter.OrderBy = filter.OrderBy
	domainFilter.OrderDir = filter.OrderDir

	items, err := s.receiptRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.receiptRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ReceiptListItemResponse, len(items))
	for i, item := range items {
		responses[i] = ReceiptListItemResponse{
			ReceiptResponse: *toReceiptResponse(&item.Receipt),
			PaymentAmount:   item.PaymentAmount,
			PaymentMethod:   item.PaymentMethod,
			InvoiceNumber:   item.InvoiceNumber,
			StudentID:       item.StudentID,
		}
	}
	return responses, total, nil
}

// GetReceipt gets the full receipt projection by ID
func (s *ReceiptService) GetReceipt(ctx context.Context, id uuid.UUID) (*ReceiptDetailResponse, error) {
	details, err := s.receiptRepo.FindDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	return toReceiptDetailResponse(details), nil
}

// GetReceiptByNumber gets the full receipt projection by document number
func (s *ReceiptService) GetReceiptByNumber(ctx context.Context, number string) (*ReceiptDetailResponse, error) {
	details, err := s.receiptRepo.FindDetailsByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	return toReceiptDetailResponse(details), nil
}

// RenderReceipt renders the receipt as a plain-text document ready for
// download. Rendering is deterministic for a given ledger state.
func (s *ReceiptService) RenderReceipt(ctx context.Context, id uuid.UUID) (*RenderedReceipt, error) {
	details, err := s.receiptRepo.FindDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	return &RenderedReceipt{
		Filename: fmt.Sprintf("%s.txt", details.ReceiptNumber),
		Content:  details.RenderText(),
	}, nil
}

// RegenerateReceipt refreshes the receipt's URL and generation time. The
// receipt number never changes.
func (s *ReceiptService) RegenerateReceipt(ctx context.Context, id uuid.UUID) (*ReceiptResponse, error) {
	details, err := s.receiptRepo.FindDetails(ctx, id)
	if err != nil {
		return nil, err
	}

	receipt := details.Receipt
	receipt.Regenerate(fmt.Sprintf("/api/v1/receipts/%s/download", receipt.ID))

	if err := s.receiptRepo.Save(ctx, &receipt); err != nil {
		return nil, err
	}

	s.logger.Info("Receipt regenerated",
		zap.String("receipt_id", receipt.ID.String()),
		zap.String("receipt_number", receipt.ReceiptNumber))

	return toReceiptResponse(&receipt), nil
}

func toReceiptDetailResponse(d *billing.ReceiptDetails) *ReceiptDetailResponse {
	return &ReceiptDetailResponse{
		ReceiptResponse:  *toReceiptResponse(&d.Receipt),
		PaymentAmount:    d.PaymentAmount,
		PaymentMethod:    d.PaymentMethod,
		PaymentDate:      d.PaymentDate,
		TransactionID:    d.TransactionID,
		InvoiceNumber:    d.InvoiceNumber,
		InvoiceAmount:    d.InvoiceAmount,
		InvoiceDueDate:   d.InvoiceDueDate,
		StudentFirstName: d.StudentFirstName,
		StudentLastName:  d.StudentLastName,
		SchoolName:       d.SchoolName,
	}
}
