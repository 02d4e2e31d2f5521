package spending

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/preschool/backend/internal/domain/shared"
	"github.com/preschool/backend/internal/domain/shared/valueobject"
	"github.com/preschool/backend/internal/domain/spending"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RemittanceService provides application-level remittance operations
type RemittanceService struct {
	remittanceRepo spending.RemittanceRepository
	logger         *zap.Logger
}

// NewRemittanceService creates a new RemittanceService
func NewRemittanceService(remittanceRepo spending.RemittanceRepository, logger *zap.Logger) *RemittanceService {
	return &RemittanceService{
		remittanceRepo: remittanceRepo,
		logger:         logger,
	}
}

// RemittanceResponse represents a remittance in API responses
type RemittanceResponse struct {
	ID             uuid.UUID       `json:"id"`
	SchoolID       uuid.UUID       `json:"school_id"`
	CreatedBy      *uuid.UUID      `json:"created_by,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	RemittanceDate time.Time       `json:"remittance_date"`
	BankDetails    string          `json:"bank_details,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// RemittanceListItemResponse is a remittance list row with the creator's
// name for display
type RemittanceListItemResponse struct {
	RemittanceResponse
	CreatorName string `json:"creator_name,omitempty"`
}

// CreateRemittanceRequest represents a request to record a remittance
type CreateRemittanceRequest struct {
	SchoolID       uuid.UUID       `json:"school_id" binding:"required"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	RemittanceDate time.Time       `json:"remittance_date" binding:"required"`
	BankDetails    string          `json:"bank_details"`
	CreatedBy      *uuid.UUID      `json:"-"` // Set from JWT context, not from request body
}

// UpdateRemittanceRequest represents a partial remittance update. Nil
// fields are left untouched.
type UpdateRemittanceRequest struct {
	Amount         *decimal.Decimal `json:"amount"`
	RemittanceDate *time.Time       `json:"remittance_date"`
	BankDetails    *string          `json:"bank_details"`
}

// RemittanceListFilter defines filtering options for remittance list queries
type RemittanceListFilter struct {
	SchoolID *uuid.UUID `form:"school_id"`
	FromDate *time.Time `form:"from_date" time_format:"2006-01-02"`
	ToDate   *time.Time `form:"to_date" time_format:"2006-01-02"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
	OrderBy  string     `form:"-"`
	OrderDir string     `form:"-"`
}

// CreateRemittance records a transfer of collected funds to the head office
func (s *RemittanceService) CreateRemittance(ctx context.Context, req CreateRemittanceRequest) (*RemittanceResponse, error) {
	remittance, err := spending.NewRemittance(
		req.SchoolID,
		req.CreatedBy,
		valueobject.NewMoneyUSD(req.Amount),
		req.RemittanceDate,
		req.BankDetails,
	)
	if err != nil {
		return nil, err
	}

	if err := s.remittanceRepo.Save(ctx, remittance); err != nil {
		return nil, err
	}

	s.logger.Info("Remittance recorded",
		zap.String("remittance_id", remittance.ID.String()),
		zap.String("amount", remittance.Amount.String()))

	return toRemittanceResponse(remittance), nil
}

// GetRemittance gets a remittance with its creator's name
func (s *RemittanceService) GetRemittance(ctx context.Context, id uuid.UUID) (*RemittanceListItemResponse, error) {
	item, err := s.remittanceRepo.FindDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	return toRemittanceListItemResponse(item), nil
}

// ListRemittances lists remittances with filtering and pagination
func (s *RemittanceService) ListRemittances(ctx context.Context, filter RemittanceListFilter) ([]RemittanceListItemResponse, int64, error) {
	domainFilter := spending.RemittanceFilter{
		SchoolID: filter.SchoolID,
		FromDate: filter.FromDate,
		ToDate:   filter.ToDate,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.OrderBy = filter.OrderBy
	domainFilter.OrderDir = filter.OrderDir

	items, err := s.remittanceRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.remittanceRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]RemittanceListItemResponse, len(items))
	for i, item := range items {
		responses[i] = *toRemittanceListItemResponse(&item)
	}
	return responses, total, nil
}

// UpdateRemittance applies a partial update to a remittance
func (s *RemittanceService) UpdateRemittance(ctx context.Context, id uuid.UUID, req UpdateRemittanceRequest) (*RemittanceResponse, error) {
	remittance, err := s.remittanceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := remittance.Patch(req.Amount, req.RemittanceDate, req.BankDetails); err != nil {
		return nil, err
	}

	if err := s.remittanceRepo.Save(ctx, remittance); err != nil {
		return nil, err
	}
	return toRemittanceResponse(remittance), nil
}

// DeleteRemittance deletes a remittance
func (s *RemittanceService) DeleteRemittance(ctx context.Context, id uuid.UUID) error {
	if err := s.remittanceRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Remittance deleted", zap.String("remittance_id", id.String()))
	return nil
}

// GetSummary returns the count and sum of a school's remittances over an
// optional date range
func (s *RemittanceService) GetSummary(ctx context.Context, schoolID uuid.UUID, fromDate, toDate *time.Time) (*spending.RemittanceSummary, error) {
	if schoolID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SCHOOL", "School ID cannot be empty")
	}
	return s.remittanceRepo.Summarize(ctx, schoolID, fromDate, toDate)
}

func toRemittanceResponse(r *spending.Remittance) *RemittanceResponse {
	return &RemittanceResponse{
		ID:             r.ID,
		SchoolID:       r.SchoolID,
		CreatedBy:      r.CreatedBy,
		Amount:         r.Amount,
		RemittanceDate: r.RemittanceDate,
		BankDetails:    r.BankDetails,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func toRemittanceListItemResponse(item *spending.RemittanceListItem) *RemittanceListItemResponse {
	resp := &RemittanceListItemResponse{
		RemittanceResponse: *toRemittanceResponse(&item.Remittance),
	}
	if item.CreatorFirstName != "" || item.CreatorLastName != "" {
		resp.CreatorName = item.CreatorFirstName + " " + item.CreatorLastName
	}
	return resp
}
