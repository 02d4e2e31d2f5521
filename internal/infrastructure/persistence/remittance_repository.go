package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/preschool/backend/internal/domain/shared"
	"github.com/preschool/backend/internal/domain/spending"
	"github.com/preschool/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormRemittanceRepository implements spending.RemittanceRepository using GORM
type GormRemittanceRepository struct {
	db *gorm.DB
}

// NewGormRemittanceRepository creates a new GormRemittanceRepository
func NewGormRemittanceRepository(db *gorm.DB) *GormRemittanceRepository {
	return &GormRemittanceRepository{db: db}
}

// FindByID finds a remittance by its ID
func (r *GormRemittanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*spending.Remittance, error) {
	var model models.RemittanceModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// remittanceListRow is the flat scan target for the remittance list join
type remittanceListRow struct {
	ID               uuid.UUID
	CreatedAt        time.Time
	UpdatedAt        time.Time
	SchoolID         uuid.UUID
	CreatedBy        *uuid.UUID
	Amount           decimal.Decimal
	RemittanceDate   time.Time
	BankDetails      string
	CreatorFirstName string
	CreatorLastName  string
}

func (row *remittanceListRow) toListItem() spending.RemittanceListItem {
	return spending.RemittanceListItem{
		Remittance: spending.Remittance{
			BaseEntity: shared.BaseEntity{
				ID:        row.ID,
				CreatedAt: row.CreatedAt,
				UpdatedAt: row.UpdatedAt,
			},
			SchoolID:       row.SchoolID,
			CreatedBy:      row.CreatedBy,
			Amount:         row.Amount,
			RemittanceDate: row.RemittanceDate,
			BankDetails:    row.BankDetails,
		},
		CreatorFirstName: row.CreatorFirstName,
		CreatorLastName:  row.CreatorLastName,
	}
}

const remittanceListSelect = `remittances.id, remittances.created_at, remittances.updated_at,
remittances.school_id, remittances.created_by, remittances.amount,
remittances.remittance_date, remittances.bank_details,
COALESCE(users.first_name, '') AS creator_first_name,
COALESCE(users.last_name, '') AS creator_last_name`

func (r *GormRemittanceRepository) listQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.RemittanceModel{}).
		Select(remittanceListSelect).
		Joins("LEFT JOIN users ON users.id = remittances.created_by")
}

// FindDetails loads the remittance joined with the creator's name
func (r *GormRemittanceRepository) FindDetails(ctx context.Context, id uuid.UUID) (*spending.RemittanceListItem, error) {
	var row remittanceListRow
	result := r.listQuery(ctx).
		Where("remittances.id = ?", id).
		Limit(1).
		Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, shared.ErrNotFound
	}
	item := row.toListItem()
	return &item, nil
}

// FindAll finds remittance list items matching the filter, ordered by
// remittance date then creation time, newest first
func (r *GormRemittanceRepository) FindAll(ctx context.Context, filter spending.RemittanceFilter) ([]spending.RemittanceListItem, error) {
	var rows []remittanceListRow
	query := r.listQuery(ctx)
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order("remittances." + filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("remittances.remittance_date DESC, remittances.created_at DESC")
	}

	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]spending.RemittanceListItem, len(rows))
	for i := range rows {
		items[i] = rows[i].toListItem()
	}
	return items, nil
}

// Count counts remittances matching the filter
func (r *GormRemittanceRepository) Count(ctx context.Context, filter spending.RemittanceFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.RemittanceModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a remittance
func (r *GormRemittanceRepository) Save(ctx context.Context, remittance *spending.Remittance) error {
	model := models.RemittanceModelFromDomain(remittance)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a remittance
func (r *GormRemittanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.RemittanceModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Summarize returns the count and sum of a school's remittances over an
// optional remittance date range
func (r *GormRemittanceRepository) Summarize(ctx context.Context, schoolID uuid.UUID, fromDate, toDate *time.Time) (*spending.RemittanceSummary, error) {
	query := r.db.WithContext(ctx).Model(&models.RemittanceModel{}).
		Where("school_id = ?", schoolID)
	if fromDate != nil {
		query = query.Where("remittance_date >= ?", *fromDate)
	}
	if toDate != nil {
		query = query.Where("remittance_date <= ?", *toDate)
	}

	var total struct {
		Count  int64
		Amount decimal.Decimal
	}
	if err := query.
		Select("COUNT(*) as count, COALESCE(SUM(amount), 0) as amount").
		Scan(&total).Error; err != nil {
		return nil, err
	}

	return &spending.RemittanceSummary{
		TotalRemittances: total.Count,
		TotalAmount:      total.Amount,
	}, nil
}

func (r *GormRemittanceRepository) applyFilterWithoutPagination(query *gorm.DB, filter spending.RemittanceFilter) *gorm.DB {
	if filter.SchoolID != nil {
		query = query.Where("remittances.school_id = ?", *filter.SchoolID)
	}
	if filter.FromDate != nil {
		query = query.Where("remittances.remittance_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("remittances.remittance_date <= ?", *filter.ToDate)
	}
	return query
}

// Ensure GormRemittanceRepository implements spending.RemittanceRepository
var _ spending.RemittanceRepository = (*GormRemittanceRepository)(nil)
