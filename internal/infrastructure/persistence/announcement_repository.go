package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/preschool/backend/internal/domain/comms"
	"github.com/preschool/backend/internal/domain/shared"
	"github.com/preschool/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAnnouncementRepository implements comms.AnnouncementRepository using GORM
type GormAnnouncementRepository struct {
	db *gorm.DB
}

// NewGormAnnouncementRepository creates a new GormAnnouncementRepository
func NewGormAnnouncementRepository(db *gorm.DB) *GormAnnouncementRepository {
	return &GormAnnouncementRepository{db: db}
}

// FindByID finds an announcement by its ID
func (r *GormAnnouncementRepository) FindByID(ctx context.Context, id uuid.UUID) (*comms.Announcement, error) {
	var model models.AnnouncementModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds announcements matching the filter, newest first
func (r *GormAnnouncementRepository) FindAll(ctx context.Context, filter comms.AnnouncementFilter) ([]comms.Announcement, error) {
	var announcementModels []models.AnnouncementModel
	query := r.db.WithContext(ctx).Model(&models.AnnouncementModel{})
	if filter.SchoolID != nil {
		query = query.Where("school_id = ?", *filter.SchoolID)
	}
	if filter.PublishedOnly {
		query = query.Where("is_published = ?", true)
	}
	query = query.Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	if err := query.Find(&announcementModels).Error; err != nil {
		return nil, err
	}
	announcements := make([]comms.Announcement, len(announcementModels))
	for i, model := range announcementModels {
		announcements[i] = *model.ToDomain()
	}
	return announcements, nil
}

// Save creates or updates an announcement
func (r *GormAnnouncementRepository) Save(ctx context.Context, announcement *comms.Announcement) error {
	model := models.AnnouncementModelFromDomain(announcement)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormAnnouncementRepository implements comms.AnnouncementRepository
var _ comms.AnnouncementRepository = (*GormAnnouncementRepository)(nil)
