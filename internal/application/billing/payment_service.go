package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/preschool/backend/internal/domain/billing"
	"github.com/preschool/backend/internal/domain/shared"
	"github.com/preschool/backend/internal/domain/shared/valueobject"
	"github.com/preschool/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaymentService provides application-level payment operations. Recording
// and refunding a payment are ledger writes: the payment row, the invoice
// status and the receipt move together in one transaction.
type PaymentService struct {
	uow         billing.UnitOfWork
	paymentRepo billing.PaymentRepository
	receiptRepo billing.ReceiptRepository
	logger      *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	uow billing.UnitOfWork,
	paymentRepo billing.PaymentRepository,
	receiptRepo billing.ReceiptRepository,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		uow:         uow,
		paymentRepo: paymentRepo,
		receiptRepo: receiptRepo,
		logger:      logger,
	}
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	TransactionID string          `json:"transaction_id,omitempty"`
	Status        string          `json:"status"`
	PaymentDate   time.Time       `json:"payment_date"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ReceiptResponse represents a receipt in API responses
type ReceiptResponse struct {
	ID            uuid.UUID `json:"id"`
	PaymentID     uuid.UUID `json:"payment_id"`
	ReceiptNumber string    `json:"receipt_number"`
	ReceiptURL    string    `json:"receipt_url,omitempty"`
	GeneratedAt   time.Time `json:"generated_at"`
}

// RecordPaymentRequest represents a request to record a payment
type RecordPaymentRequest struct {
	InvoiceID     uuid.UUID       `json:"invoice_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod string          `json:"payment_method" binding:"required"`
	TransactionID string          `json:"transaction_id"`
}

// UpdatePaymentRequest represents a direct payment field update. It does
// not re-run invoice reconciliation; refunds go through RefundPayment.
type UpdatePaymentRequest struct {
	Status        *string `json:"status"`
	TransactionID *string `json:"transaction_id"`
}

// PaymentListFilter defines filtering options for payment list queries
type PaymentListFilter struct {
	InvoiceID *uuid.UUID `form:"invoice_id"`
	Status    string     `form:"status"`
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
	OrderBy   string     `form:"-"`
	OrderDir  string     `form:"-"`
}

// RecordPaymentResult is the outcome of recording a payment: the payment,
// the receipt minted for it and the invoice's reconciled state.
type RecordPaymentResult struct {
	Payment       PaymentResponse `json:"payment"`
	Receipt       ReceiptResponse `json:"receipt"`
	InvoiceStatus string          `json:"invoice_status"`
	AmountDue     decimal.Decimal `json:"amount_due"`
}

// RefundPaymentResult is the outcome of refunding a payment
type RefundPaymentResult struct {
	Payment       PaymentResponse `json:"payment"`
	InvoiceStatus string          `json:"invoice_status"`
	AmountDue     decimal.Decimal `json:"amount_due"`
}

// RecordPayment records a completed payment against an invoice, reconciles
// the invoice status from the new completed total and mints the receipt.
// All three writes commit or roll back together; a failure on any step
// leaves no partial ledger state. Overpayment is permitted.
func (s *PaymentService) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*RecordPaymentResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payment", "record",
		telemetry.WithAttribute(telemetry.SpanAttrInvoiceID, req.InvoiceID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrPaymentMethod, req.PaymentMethod),
		telemetry.WithAttribute(telemetry.SpanAttrAmount, req.Amount.String()),
	)
	defer span.End()

	payment, err := billing.NewPayment(
		req.InvoiceID,
		valueobject.NewMoneyUSD(req.Amount),
		req.PaymentMethod,
		req.TransactionID,
	)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	var result RecordPaymentResult
	err = s.uow.InTransaction(ctx, func(repos billing.TxRepositories) error {
		if err := repos.Payments.Save(ctx, payment); err != nil {
			return err
		}

		invoice, err := repos.Invoices.FindByIDForUpdate(ctx, req.InvoiceID)
		if err != nil {
			return err
		}

		totalPaid, err := repos.Payments.SumCompletedByInvoice(ctx, invoice.ID)
		if err != nil {
			return err
		}

		invoice.ReconcileAfterPayment(totalPaid)
		if err := repos.Invoices.Save(ctx, invoice); err != nil {
			return err
		}

		receipt, err := billing.NewReceipt(payment.ID)
		if err != nil {
			return err
		}
		if err := repos.Receipts.Save(ctx, receipt); err != nil {
			return err
		}

		result = RecordPaymentResult{
			Payment:       *toPaymentResponse(payment),
			Receipt:       *toReceiptResponse(receipt),
			InvoiceStatus: string(invoice.Status),
			AmountDue:     invoice.AmountDue(totalPaid),
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Warn("Payment recording rolled back",
			zap.String("invoice_id", req.InvoiceID.String()),
			zap.Error(err))
		return nil, shared.WrapDomainError("PAYMENT_NOT_RECORDED", "Payment could not be recorded", err)
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrPaymentID, result.Payment.ID.String(),
		telemetry.SpanAttrReceiptNumber, result.Receipt.ReceiptNumber,
		telemetry.SpanAttrInvoiceStatus, result.InvoiceStatus,
	)
	telemetry.SetOK(span)

	s.logger.Info("Payment recorded",
		zap.String("payment_id", result.Payment.ID.String()),
		zap.String("invoice_id", req.InvoiceID.String()),
		zap.String("receipt_number", result.Receipt.ReceiptNumber),
		zap.String("invoice_status", result.InvoiceStatus))

	return &result, nil
}

// RefundPayment marks a completed payment refunded and reconciles the
// invoice from the remaining completed total. The status flip is a
// compare-and-swap: only a completed payment can be refunded, so a second
// refund of the same payment fails instead of double-reversing the ledger.
func (s *PaymentService) RefundPayment(ctx context.Context, paymentID uuid.UUID) (*RefundPaymentResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payment", "refund",
		telemetry.WithAttribute(telemetry.SpanAttrPaymentID, paymentID.String()),
	)
	defer span.End()

	var result RefundPaymentResult
	err := s.uow.InTransaction(ctx, func(repos billing.TxRepositories) error {
		payment, err := repos.Payments.FindByID(ctx, paymentID)
		if err != nil {
			return err
		}

		if err := repos.Payments.MarkRefunded(ctx, payment.ID); err != nil {
			return err
		}
		payment.Status = billing.PaymentStatusRefunded

		invoice, err := repos.Invoices.FindByIDForUpdate(ctx, payment.InvoiceID)
		if err != nil {
			return err
		}

		totalPaid, err := repos.Payments.SumCompletedByInvoice(ctx, invoice.ID)
		if err != nil {
			return err
		}

		invoice.ReconcileAfterRefund(totalPaid)
		if err := repos.Invoices.Save(ctx, invoice); err != nil {
			return err
		}

		result = RefundPaymentResult{
			Payment:       *toPaymentResponse(payment),
			InvoiceStatus: string(invoice.Status),
			AmountDue:     invoice.AmountDue(totalPaid),
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		if errors.Is(err, shared.ErrInvalidState) {
			return nil, shared.NewDomainError("PAYMENT_NOT_REFUNDABLE", "Only a completed payment can be refunded")
		}
		return nil, err
	}

	telemetry.SetOK(span)
	s.logger.Info("Payment refunded",
		zap.String("payment_id", paymentID.String()),
		zap.String("invoice_status", result.InvoiceStatus))

	return &result, nil
}

// GetPayment gets a payment with its receipt, when one exists
func (s *PaymentService) GetPayment(ctx context.Context, id uuid.UUID) (*PaymentResponse, *ReceiptResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	var receiptResp *ReceiptResponse
	receipt, err := s.receiptRepo.FindByPaymentID(ctx, id)
	if err == nil {
		receiptResp = toReceiptResponse(receipt)
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, nil, err
	}

	return toPaymentResponse(payment), receiptResp, nil
}

// ListPayments lists payments with filtering and pagination
func (s *PaymentService) ListPayments(ctx context.Context, filter PaymentListFilter) ([]PaymentResponse, int64, error) {
	domainFilter := billing.PaymentFilter{
		InvoiceID: filter.InvoiceID,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.OrderBy = filter.OrderBy
	domainFilter.OrderDir = filter.OrderDir

	if filter.Status != "" {
		status := billing.PaymentStatus(filter.Status)
		domainFilter.Status = &status
	}

	payments, err := s.paymentRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.paymentRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		responses[i] = *toPaymentResponse(&p)
	}
	return responses, total, nil
}

// UpdatePayment applies a direct field update to a payment without
// re-running invoice reconciliation
func (s *PaymentService) UpdatePayment(ctx context.Context, id uuid.UUID, req UpdatePaymentRequest) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var status *billing.PaymentStatus
	if req.Status != nil {
		st := billing.PaymentStatus(*req.Status)
		status = &st
	}

	if err := payment.Patch(status, req.TransactionID); err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}
	return toPaymentResponse(payment), nil
}

func toPaymentResponse(p *billing.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:            p.ID,
		InvoiceID:     p.InvoiceID,
		Amount:        p.Amount,
		PaymentMethod: p.PaymentMethod,
		TransactionID: p.TransactionID,
		Status:        string(p.Status),
		PaymentDate:   p.PaymentDate,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toReceiptResponse(r *billing.Receipt) *ReceiptResponse {
	return &ReceiptResponse{
		ID:            r.ID,
		PaymentID:     r.PaymentID,
		ReceiptNumber: r.ReceiptNumber,
		ReceiptURL:    r.ReceiptURL,
		GeneratedAt:   r.GeneratedAt,
	}
}
