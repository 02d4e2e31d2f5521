package spending

import (
	"time"

	"github.com/google/uuid"
	"github.com/preschool/backend/internal/domain/shared"
	"github.com/preschool/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Remittance is a record of funds transferred out of the school account
type Remittance struct {
	shared.BaseEntity
	SchoolID       uuid.UUID       `json:"school_id"`
	CreatedBy      *uuid.UUID      `json:"created_by"`
	Amount         decimal.Decimal `json:"amount"`
	RemittanceDate time.Time       `json:"remittance_date"`
	BankDetails    string          `json:"bank_details"`
}

// NewRemittance creates a new remittance record
func NewRemittance(
	schoolID uuid.UUID,
	createdBy *uuid.UUID,
	amount valueobject.Money,
	remittanceDate time.Time,
	bankDetails string,
) (*Remittance, error) {
	if schoolID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SCHOOL", "School ID cannot be empty")
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Remittance amount must be positive")
	}
	if remittanceDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_REMITTANCE_DATE", "Remittance date cannot be empty")
	}

	return &Remittance{
		BaseEntity:     shared.NewBaseEntity(),
		SchoolID:       schoolID,
		CreatedBy:      createdBy,
		Amount:         amount.Amount(),
		RemittanceDate: remittanceDate,
		BankDetails:    bankDetails,
	}, nil
}

// Patch applies a partial update; nil fields are left untouched
func (r *Remittance) Patch(amount *decimal.Decimal, remittanceDate *time.Time, bankDetails *string) error {
	if amount != nil {
		if amount.LessThanOrEqual(decimal.Zero) {
			return shared.NewDomainError("INVALID_AMOUNT", "Remittance amount must be positive")
		}
		r.Amount = *amount
	}
	if remittanceDate != nil {
		r.RemittanceDate = *remittanceDate
	}
	if bankDetails != nil {
		r.BankDetails = *bankDetails
	}
	r.UpdatedAt = time.Now()
	return nil
}

// RemittanceListItem is the list projection with the creator's name
type RemittanceListItem struct {
	Remittance
	CreatorFirstName string `json:"creator_first_name"`
	CreatorLastName  string `json:"creator_last_name"`
}

// RemittanceSummary is the count and sum of remittances over a date range
type RemittanceSummary struct {
	TotalRemittances int64           `json:"total_remittances"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
}
